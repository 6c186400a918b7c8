package services

import (
	"context"

	"github.com/Mubina-Mulla/Pigmi/internal/core/domain"
	"github.com/Mubina-Mulla/Pigmi/internal/dto"
)

// CustomerReaderSvc defines read operations for customer data
type CustomerReaderSvc interface {
	// GetCustomer retrieves a customer by account number.
	GetCustomer(ctx context.Context, accountNo string) (*domain.Customer, error)

	// GetCustomerDetail retrieves a customer with its transaction history,
	// ledger summary and projected interest.
	GetCustomerDetail(ctx context.Context, accountNo string) (*dto.CustomerDetail, error)

	// ListCustomers retrieves customers, optionally filtered by agent name.
	ListCustomers(ctx context.Context, agentName string) ([]domain.Customer, error)
}

// CustomerWriterSvc defines write operations for customer data
type CustomerWriterSvc interface {
	// CreateCustomer creates a customer with a generated account number and,
	// when requested, an opening deposit.
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, createdBy string) (*domain.Customer, error)

	// UpdateCustomer updates a customer's editable details.
	UpdateCustomer(ctx context.Context, accountNo string, req dto.UpdateCustomerRequest, updatedBy string) (*domain.Customer, error)

	// RecordTransaction records a deposit or withdrawal on an account.
	RecordTransaction(ctx context.Context, accountNo string, req dto.RecordTransactionRequest, addedBy string) (*domain.Transaction, error)
}

// CustomerInterestSvc defines the interest application operations
type CustomerInterestSvc interface {
	// ApplyInterest applies accrued interest to one account. Returns
	// ErrConflict if interest was already applied.
	ApplyInterest(ctx context.Context, accountNo string, appliedBy string) (*domain.Customer, error)

	// ApplyInterestToAll applies interest to every eligible account.
	ApplyInterestToAll(ctx context.Context, appliedBy string) (*dto.ApplyInterestSummary, error)
}

// CustomerLifecycleSvc defines operations for managing customer lifecycle
type CustomerLifecycleSvc interface {
	// DeleteCustomer moves a customer and its transactions to the recycle bin.
	DeleteCustomer(ctx context.Context, accountNo string, deletedBy string) error
}

// CustomerSvcFacade combines all customer-related service interfaces
type CustomerSvcFacade interface {
	CustomerReaderSvc
	CustomerWriterSvc
	CustomerInterestSvc
	CustomerLifecycleSvc
}
