package repositories

import (
	"context"

	"github.com/Mubina-Mulla/Pigmi/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CustomerReader defines read operations for customer data
type CustomerReader interface {
	// FindCustomerByAccountNo retrieves a customer by account number.
	FindCustomerByAccountNo(ctx context.Context, accountNo string) (*domain.Customer, error)

	// FindCustomers retrieves customers, optionally filtered by agent name.
	// An empty agentName returns all customers.
	FindCustomers(ctx context.Context, agentName string) ([]domain.Customer, error)

	// AccountNoExists reports whether an account number is already taken.
	AccountNoExists(ctx context.Context, accountNo string) (bool, error)
}

// CustomerWriter defines write operations for customer data
type CustomerWriter interface {
	// SaveCustomer persists a new customer and, when initialDeposit is
	// non-nil, its opening transaction in the same database transaction.
	SaveCustomer(ctx context.Context, customer domain.Customer, initialDeposit *domain.Transaction) error

	// UpdateCustomer updates a customer's editable details. The account
	// number is immutable.
	UpdateCustomer(ctx context.Context, customer domain.Customer) error

	// RecordTransaction inserts a transaction and applies its effect to the
	// customer's running totals atomically. The transaction row is written
	// before the totals change.
	RecordTransaction(ctx context.Context, txn domain.Transaction) error

	// InsertTransactions bulk-inserts transaction rows without touching
	// customer totals. Used by the legacy import, where totals arrive on the
	// customer records themselves. Rows whose IDs already exist are skipped;
	// the count of inserted rows is returned.
	InsertTransactions(ctx context.Context, txns []domain.Transaction) (int, error)

	// ApplyInterest writes the interest credit transaction and the interest
	// bookkeeping fields (totalAmount increment, interestApplied flag,
	// appliedInterestAmount/Rate, lastInterestApplied) in one database
	// transaction.
	ApplyInterest(ctx context.Context, accountNo string, txn domain.Transaction, rate decimal.Decimal, appliedAt int64) error
}

// TransactionReader defines read operations for the transaction log
type TransactionReader interface {
	// FindTransactionsByAccount retrieves all transactions for an account,
	// newest first.
	FindTransactionsByAccount(ctx context.Context, accountNo string) ([]domain.Transaction, error)

	// FindTransactionsByDate retrieves all transactions recorded on a
	// calendar date (YYYY-MM-DD), across all accounts.
	FindTransactionsByDate(ctx context.Context, date string) ([]domain.Transaction, error)
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
	TransactionReader
}

// CustomerRepositoryWithTx adds transaction management to the customer repository
type CustomerRepositoryWithTx interface {
	CustomerRepositoryFacade
	TransactionManager
}
