package repositories

import (
	"context"

	"github.com/Mubina-Mulla/Pigmi/internal/core/domain"
)

// RetentionReader defines read operations over the recycle bin
type RetentionReader interface {
	// FindDeletedCustomers retrieves all customer retention records.
	FindDeletedCustomers(ctx context.Context) ([]domain.DeletedCustomer, error)

	// FindDeletedCustomer retrieves one customer retention record.
	FindDeletedCustomer(ctx context.Context, accountNo string) (*domain.DeletedCustomer, error)

	// FindDeletedAgents retrieves all agent retention records.
	FindDeletedAgents(ctx context.Context) ([]domain.DeletedAgent, error)

	// FindDeletedAgent retrieves one agent retention record.
	FindDeletedAgent(ctx context.Context, name string) (*domain.DeletedAgent, error)
}

// RetentionWriter defines the move/restore/purge operations of the recycle bin
type RetentionWriter interface {
	// MoveCustomerToBin snapshots the customer and its full transaction log
	// into a retention record and removes the live rows, atomically.
	MoveCustomerToBin(ctx context.Context, record domain.DeletedCustomer) error

	// MoveAgentToBin snapshots the agent into a retention record and removes
	// the live row, atomically. Customers assigned to the agent are left
	// untouched.
	MoveAgentToBin(ctx context.Context, record domain.DeletedAgent) error

	// RestoreCustomer reinserts the snapshotted customer and transactions and
	// removes the retention record, atomically.
	RestoreCustomer(ctx context.Context, record domain.DeletedCustomer) error

	// RestoreAgent reinserts the snapshotted agent and removes the retention
	// record, atomically.
	RestoreAgent(ctx context.Context, record domain.DeletedAgent) error

	// PurgeCustomer removes a customer retention record permanently.
	PurgeCustomer(ctx context.Context, accountNo string) error

	// PurgeAgent removes an agent retention record permanently.
	PurgeAgent(ctx context.Context, name string) error
}

// RetentionRepositoryFacade combines the recycle-bin repository interfaces
type RetentionRepositoryFacade interface {
	RetentionReader
	RetentionWriter
}
