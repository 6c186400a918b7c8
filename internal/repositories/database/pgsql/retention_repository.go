package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Mubina-Mulla/Pigmi/internal/apperrors"
	"github.com/Mubina-Mulla/Pigmi/internal/core/domain"
	portsrepo "github.com/Mubina-Mulla/Pigmi/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRetentionRepository struct {
	BaseRepository
}

func newPgxRetentionRepository(pool *pgxpool.Pool) portsrepo.RetentionRepositoryFacade {
	return &PgxRetentionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RetentionRepositoryFacade = (*PgxRetentionRepository)(nil)

// customerSnapshot is the JSONB payload of a deleted customer. The whole
// transaction log rides along so a restore is a faithful round trip.
type customerSnapshot struct {
	Customer     domain.Customer      `json:"customer"`
	Transactions []domain.Transaction `json:"transactions"`
}

// agentSnapshot re-exposes the password hash, which the domain type keeps
// out of JSON. Without it a restored agent would lose its credential.
type agentSnapshot struct {
	domain.Agent
	PasswordHash string `json:"passwordHash"`
}

func (r *PgxRetentionRepository) FindDeletedCustomers(ctx context.Context) ([]domain.DeletedCustomer, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT account_no, snapshot, transaction_count, deleted_at, deleted_by
		 FROM deleted_customers ORDER BY deleted_at DESC;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query deleted customers: %w", err)
	}
	defer rows.Close()

	records := []domain.DeletedCustomer{}
	for rows.Next() {
		rec, err := scanDeletedCustomer(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating deleted customer rows: %w", rows.Err())
	}
	return records, nil
}

func scanDeletedCustomer(row pgx.Row) (*domain.DeletedCustomer, error) {
	var rec domain.DeletedCustomer
	var snapshot []byte
	if err := row.Scan(&rec.AccountNo, &snapshot, &rec.TransactionCount, &rec.DeletedAt, &rec.DeletedBy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan deleted customer row: %w", err)
	}

	var snap customerSnapshot
	if err := json.Unmarshal(snapshot, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode customer snapshot %s: %w", rec.AccountNo, err)
	}
	rec.Customer = snap.Customer
	rec.Transactions = snap.Transactions
	return &rec, nil
}

func (r *PgxRetentionRepository) FindDeletedCustomer(ctx context.Context, accountNo string) (*domain.DeletedCustomer, error) {
	row := r.Pool.QueryRow(ctx,
		`SELECT account_no, snapshot, transaction_count, deleted_at, deleted_by
		 FROM deleted_customers WHERE account_no = $1;`, accountNo)
	return scanDeletedCustomer(row)
}

func (r *PgxRetentionRepository) FindDeletedAgents(ctx context.Context) ([]domain.DeletedAgent, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT name, snapshot, customer_count, deleted_at, deleted_by
		 FROM deleted_agents ORDER BY deleted_at DESC;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query deleted agents: %w", err)
	}
	defer rows.Close()

	records := []domain.DeletedAgent{}
	for rows.Next() {
		rec, err := scanDeletedAgent(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating deleted agent rows: %w", rows.Err())
	}
	return records, nil
}

func scanDeletedAgent(row pgx.Row) (*domain.DeletedAgent, error) {
	var rec domain.DeletedAgent
	var snapshot []byte
	if err := row.Scan(&rec.Name, &snapshot, &rec.CustomerCount, &rec.DeletedAt, &rec.DeletedBy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan deleted agent row: %w", err)
	}

	var snap agentSnapshot
	if err := json.Unmarshal(snapshot, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode agent snapshot %s: %w", rec.Name, err)
	}
	rec.Agent = snap.Agent
	rec.Agent.PasswordHash = snap.PasswordHash
	return &rec, nil
}

func (r *PgxRetentionRepository) FindDeletedAgent(ctx context.Context, name string) (*domain.DeletedAgent, error) {
	row := r.Pool.QueryRow(ctx,
		`SELECT name, snapshot, customer_count, deleted_at, deleted_by
		 FROM deleted_agents WHERE name = $1;`, name)
	return scanDeletedAgent(row)
}

// MoveCustomerToBin inserts the retention record and deletes the live rows
// in one database transaction. The transactions FK cascades off the
// customer delete.
func (r *PgxRetentionRepository) MoveCustomerToBin(ctx context.Context, record domain.DeletedCustomer) error {
	snapshot, err := json.Marshal(customerSnapshot{
		Customer:     record.Customer,
		Transactions: record.Transactions,
	})
	if err != nil {
		return fmt.Errorf("failed to encode customer snapshot %s: %w", record.AccountNo, err)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO deleted_customers (account_no, snapshot, transaction_count, deleted_at, deleted_by)
		 VALUES ($1, $2, $3, $4, $5);`,
		record.AccountNo, snapshot, record.TransactionCount, record.DeletedAt, record.DeletedBy); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("customer %s is already in the recycle bin: %w", record.AccountNo, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert customer retention record %s: %w", record.AccountNo, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM customers WHERE account_no = $1;`, record.AccountNo)
	if err != nil {
		return fmt.Errorf("failed to delete customer %s: %w", record.AccountNo, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("customer %s: %w", record.AccountNo, apperrors.ErrNotFound)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxRetentionRepository) MoveAgentToBin(ctx context.Context, record domain.DeletedAgent) error {
	snapshot, err := json.Marshal(agentSnapshot{
		Agent:        record.Agent,
		PasswordHash: record.Agent.PasswordHash,
	})
	if err != nil {
		return fmt.Errorf("failed to encode agent snapshot %s: %w", record.Name, err)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO deleted_agents (name, snapshot, customer_count, deleted_at, deleted_by)
		 VALUES ($1, $2, $3, $4, $5);`,
		record.Name, snapshot, record.CustomerCount, record.DeletedAt, record.DeletedBy); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("agent %s is already in the recycle bin: %w", record.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert agent retention record %s: %w", record.Name, err)
	}

	// Customers keep their agent_name reference; only the agent row goes.
	cmdTag, err := tx.Exec(ctx, `DELETE FROM agents WHERE name = $1;`, record.Name)
	if err != nil {
		return fmt.Errorf("failed to delete agent %s: %w", record.Name, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("agent %s: %w", record.Name, apperrors.ErrNotFound)
	}

	return r.Commit(ctx, tx)
}

// RestoreCustomer reinserts the snapshotted rows and drops the retention
// record in one database transaction.
func (r *PgxRetentionRepository) RestoreCustomer(ctx context.Context, record domain.DeletedCustomer) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, insertCustomerQuery, customerArgs(record.Customer)...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("account number %s is in use: %w", record.AccountNo, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to restore customer %s: %w", record.AccountNo, err)
	}

	for _, txn := range record.Transactions {
		if _, err := tx.Exec(ctx, insertTransactionQuery, transactionArgs(txn)...); err != nil {
			return fmt.Errorf("failed to restore transaction %s: %w", txn.TransactionID, err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM deleted_customers WHERE account_no = $1;`, record.AccountNo); err != nil {
		return fmt.Errorf("failed to remove customer retention record %s: %w", record.AccountNo, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxRetentionRepository) RestoreAgent(ctx context.Context, record domain.DeletedAgent) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	a := record.Agent
	if _, err := tx.Exec(ctx,
		`INSERT INTO agents (`+agentColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7);`,
		a.Name, a.Mobile, a.Address, a.PasswordHash, a.Route, a.CreatedDate, a.LastUpdated); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("agent %s is in use: %w", record.Name, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to restore agent %s: %w", record.Name, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM deleted_agents WHERE name = $1;`, record.Name); err != nil {
		return fmt.Errorf("failed to remove agent retention record %s: %w", record.Name, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxRetentionRepository) PurgeCustomer(ctx context.Context, accountNo string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM deleted_customers WHERE account_no = $1;`, accountNo)
	if err != nil {
		return fmt.Errorf("failed to purge customer %s: %w", accountNo, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("deleted customer %s: %w", accountNo, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxRetentionRepository) PurgeAgent(ctx context.Context, name string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM deleted_agents WHERE name = $1;`, name)
	if err != nil {
		return fmt.Errorf("failed to purge agent %s: %w", name, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("deleted agent %s: %w", name, apperrors.ErrNotFound)
	}
	return nil
}
