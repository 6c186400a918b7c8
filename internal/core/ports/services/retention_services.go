package services

import (
	"context"

	"github.com/Mubina-Mulla/Pigmi/internal/dto"
)

// RetentionSvcFacade defines the recycle-bin operations. Reads lazily purge
// records whose retention window has expired before returning results.
type RetentionSvcFacade interface {
	// ListDeletedCustomers returns unexpired customer retention records with
	// daysRemaining computed against the current time.
	ListDeletedCustomers(ctx context.Context) ([]dto.DeletedCustomerResponse, error)

	// ListDeletedAgents returns unexpired agent retention records.
	ListDeletedAgents(ctx context.Context) ([]dto.DeletedAgentResponse, error)

	// RestoreCustomer restores a deleted customer with its full transaction
	// history. Returns ErrConflict if the account number is live again.
	RestoreCustomer(ctx context.Context, accountNo string) error

	// RestoreAgent restores a deleted agent. Returns ErrConflict if the
	// name is live again.
	RestoreAgent(ctx context.Context, name string) error

	// PurgeCustomer permanently removes a customer retention record.
	PurgeCustomer(ctx context.Context, accountNo string) error

	// PurgeAgent permanently removes an agent retention record.
	PurgeAgent(ctx context.Context, name string) error
}
