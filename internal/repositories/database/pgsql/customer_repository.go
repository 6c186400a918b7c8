package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mubina-Mulla/Pigmi/internal/apperrors"
	"github.com/Mubina-Mulla/Pigmi/internal/core/domain"
	portsrepo "github.com/Mubina-Mulla/Pigmi/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// uniqueViolation is the PostgreSQL error code for duplicate keys.
const uniqueViolation = "23505"

type PgxCustomerRepository struct {
	BaseRepository
}

func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryWithTx {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepositoryWithTx = (*PgxCustomerRepository)(nil)

const customerColumns = `account_no, name, mobile, address, village, id_number, agent_name, route,
	total_amount, withdrawn_amount, status, interest_applied, applied_interest_amount,
	applied_interest_rate, last_interest_applied, created_date, last_updated, created_by, last_updated_by`

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.AccountNo,
		&c.Name,
		&c.Mobile,
		&c.Address,
		&c.Village,
		&c.IDNumber,
		&c.AgentName,
		&c.Route,
		&c.TotalAmount,
		&c.WithdrawnAmount,
		&c.Status,
		&c.InterestApplied,
		&c.AppliedInterestAmount,
		&c.AppliedInterestRate,
		&c.LastInterestApplied,
		&c.CreatedDate,
		&c.LastUpdated,
		&c.CreatedBy,
		&c.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const transactionColumns = `transaction_id, account_no, type, amount, date, ts, mode, phone_number, note, added_by`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.TransactionID,
		&t.AccountNo,
		&t.Type,
		&t.Amount,
		&t.Date,
		&t.Timestamp,
		&t.Mode,
		&t.PhoneNumber,
		&t.Note,
		&t.AddedBy,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PgxCustomerRepository) FindCustomerByAccountNo(ctx context.Context, accountNo string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE account_no = $1;`
	customer, err := scanCustomer(r.Pool.QueryRow(ctx, query, accountNo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer %s: %w", accountNo, err)
	}
	return customer, nil
}

func (r *PgxCustomerRepository) FindCustomers(ctx context.Context, agentName string) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers`
	args := []any{}
	if agentName != "" {
		query += ` WHERE agent_name = $1`
		args = append(args, agentName)
	}
	query += ` ORDER BY created_date DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, *c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", rows.Err())
	}
	return customers, nil
}

func (r *PgxCustomerRepository) AccountNoExists(ctx context.Context, accountNo string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM customers WHERE account_no = $1);`, accountNo).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account number %s: %w", accountNo, err)
	}
	return exists, nil
}

const insertCustomerQuery = `
	INSERT INTO customers (` + customerColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
`

const insertTransactionQuery = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

func customerArgs(c domain.Customer) []any {
	return []any{
		c.AccountNo, c.Name, c.Mobile, c.Address, c.Village, c.IDNumber, c.AgentName, c.Route,
		c.TotalAmount, c.WithdrawnAmount, c.Status, c.InterestApplied, c.AppliedInterestAmount,
		c.AppliedInterestRate, c.LastInterestApplied, c.CreatedDate, c.LastUpdated, c.CreatedBy, c.LastUpdatedBy,
	}
}

func transactionArgs(t domain.Transaction) []any {
	return []any{
		t.TransactionID, t.AccountNo, t.Type, t.Amount, t.Date, t.Timestamp, t.Mode,
		t.PhoneNumber, t.Note, t.AddedBy,
	}
}

// SaveCustomer inserts the customer row and, when present, the opening
// deposit in the same database transaction.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer, initialDeposit *domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, insertCustomerQuery, customerArgs(customer)...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("account number %s already exists: %w", customer.AccountNo, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert customer %s: %w", customer.AccountNo, err)
	}

	if initialDeposit != nil {
		if _, err := tx.Exec(ctx, insertTransactionQuery, transactionArgs(*initialDeposit)...); err != nil {
			return fmt.Errorf("failed to insert opening deposit for %s: %w", customer.AccountNo, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
		UPDATE customers
		SET name = $1, mobile = $2, address = $3, village = $4, id_number = $5,
			agent_name = $6, route = $7, status = $8, last_updated = $9, last_updated_by = $10
		WHERE account_no = $11;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		customer.Name, customer.Mobile, customer.Address, customer.Village, customer.IDNumber,
		customer.AgentName, customer.Route, customer.Status, customer.LastUpdated, customer.LastUpdatedBy,
		customer.AccountNo,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer %s: %w", customer.AccountNo, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("customer %s: %w", customer.AccountNo, apperrors.ErrNotFound)
	}
	return nil
}

// RecordTransaction inserts the transaction row and applies its effect to the
// customer totals in one database transaction. The transaction row goes in
// first so a failed totals update never leaves an unexplained balance.
func (r *PgxCustomerRepository) RecordTransaction(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, insertTransactionQuery, transactionArgs(txn)...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("transaction %s already exists: %w", txn.TransactionID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
	}

	var totalsQuery string
	switch txn.Type {
	case domain.Deposit, domain.Interest:
		totalsQuery = `UPDATE customers SET total_amount = total_amount + $1, last_updated = $2 WHERE account_no = $3;`
	case domain.Withdrawal:
		totalsQuery = `UPDATE customers SET withdrawn_amount = withdrawn_amount + $1, last_updated = $2 WHERE account_no = $3;`
	default:
		return fmt.Errorf("unknown transaction type %q: %w", txn.Type, apperrors.ErrValidation)
	}

	cmdTag, err := tx.Exec(ctx, totalsQuery, txn.Amount, txn.Timestamp, txn.AccountNo)
	if err != nil {
		return fmt.Errorf("failed to update totals for %s: %w", txn.AccountNo, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("customer %s: %w", txn.AccountNo, apperrors.ErrNotFound)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxCustomerRepository) InsertTransactions(ctx context.Context, txns []domain.Transaction) (int, error) {
	if len(txns) == 0 {
		return 0, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (transaction_id) DO NOTHING;
	`
	for _, t := range txns {
		batch.Queue(query, transactionArgs(t)...)
	}

	results := tx.SendBatch(ctx, batch)
	inserted := 0
	for range txns {
		cmdTag, err := results.Exec()
		if err != nil {
			results.Close()
			return 0, fmt.Errorf("failed to insert transaction batch: %w", err)
		}
		inserted += int(cmdTag.RowsAffected())
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("failed to close transaction batch: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return inserted, nil
}

// ApplyInterest writes the interest credit and all interest bookkeeping
// fields atomically. The flag update refuses accounts already flagged, so a
// concurrent double apply loses the race and rolls back.
func (r *PgxCustomerRepository) ApplyInterest(ctx context.Context, accountNo string, txn domain.Transaction, rate decimal.Decimal, appliedAt int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, insertTransactionQuery, transactionArgs(txn)...); err != nil {
		return fmt.Errorf("failed to insert interest credit %s: %w", txn.TransactionID, err)
	}

	query := `
		UPDATE customers
		SET total_amount = total_amount + $1,
			interest_applied = TRUE,
			applied_interest_amount = $1,
			applied_interest_rate = $2,
			last_interest_applied = $3,
			last_updated = $3
		WHERE account_no = $4 AND interest_applied = FALSE;
	`
	cmdTag, err := tx.Exec(ctx, query, txn.Amount, rate, appliedAt, accountNo)
	if err != nil {
		return fmt.Errorf("failed to apply interest to %s: %w", accountNo, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("interest already applied to %s: %w", accountNo, apperrors.ErrConflict)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxCustomerRepository) FindTransactionsByAccount(ctx context.Context, accountNo string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE account_no = $1 ORDER BY ts DESC;`
	return r.queryTransactions(ctx, query, accountNo)
}

func (r *PgxCustomerRepository) FindTransactionsByDate(ctx context.Context, date string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE date = $1 ORDER BY ts;`
	return r.queryTransactions(ctx, query, date)
}

func (r *PgxCustomerRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}
	return txns, nil
}
