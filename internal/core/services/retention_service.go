package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Mubina-Mulla/Pigmi/internal/apperrors"
	"github.com/Mubina-Mulla/Pigmi/internal/core/domain"
	portsrepo "github.com/Mubina-Mulla/Pigmi/internal/core/ports/repositories"
	portssvc "github.com/Mubina-Mulla/Pigmi/internal/core/ports/services"
	"github.com/Mubina-Mulla/Pigmi/internal/dto"
	"github.com/Mubina-Mulla/Pigmi/internal/watch"
)

// retentionService implements the RetentionSvcFacade interface. There is no
// background sweeper; expired records are purged lazily whenever the bin is
// read or a restore touches them.
type retentionService struct {
	BaseService
	retentionRepo portsrepo.RetentionRepositoryFacade
	customerRepo  portsrepo.CustomerReader
	agentRepo     portsrepo.AgentReader
	broker        *watch.Broker
	now           func() time.Time
}

// RetentionServiceOption is a functional option for configuring the retention service
type RetentionServiceOption func(*retentionService)

// WithRetentionClock overrides the time source, for tests
func WithRetentionClock(now func() time.Time) RetentionServiceOption {
	return func(s *retentionService) {
		s.now = now
	}
}

// WithRetentionBroker adds the change-notification broker
func WithRetentionBroker(b *watch.Broker) RetentionServiceOption {
	return func(s *retentionService) {
		s.broker = b
	}
}

// NewRetentionService creates a new recycle-bin service
func NewRetentionService(
	retentionRepo portsrepo.RetentionRepositoryFacade,
	customerRepo portsrepo.CustomerReader,
	agentRepo portsrepo.AgentReader,
	options ...RetentionServiceOption,
) portssvc.RetentionSvcFacade {
	svc := &retentionService{
		retentionRepo: retentionRepo,
		customerRepo:  customerRepo,
		agentRepo:     agentRepo,
		now:           time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.RetentionSvcFacade = (*retentionService)(nil)

func (s *retentionService) publish(path, op string) {
	if s.broker != nil {
		s.broker.Publish(path, op)
	}
}

func (s *retentionService) ListDeletedCustomers(ctx context.Context) ([]dto.DeletedCustomerResponse, error) {
	records, err := s.retentionRepo.FindDeletedCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list deleted customers: %w", err)
	}

	now := s.now()
	out := make([]dto.DeletedCustomerResponse, 0, len(records))
	for _, rec := range records {
		if domain.RetentionExpired(rec.DeletedAt, now) {
			if err := s.retentionRepo.PurgeCustomer(ctx, rec.AccountNo); err != nil {
				s.LogError(ctx, err, "Failed to purge expired customer record", slog.String("account_no", rec.AccountNo))
			}
			continue
		}
		rec.DaysRemaining = domain.DaysRemaining(rec.DeletedAt, now)
		out = append(out, dto.ToDeletedCustomerResponse(rec))
	}
	return out, nil
}

func (s *retentionService) ListDeletedAgents(ctx context.Context) ([]dto.DeletedAgentResponse, error) {
	records, err := s.retentionRepo.FindDeletedAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list deleted agents: %w", err)
	}

	now := s.now()
	out := make([]dto.DeletedAgentResponse, 0, len(records))
	for _, rec := range records {
		if domain.RetentionExpired(rec.DeletedAt, now) {
			if err := s.retentionRepo.PurgeAgent(ctx, rec.Name); err != nil {
				s.LogError(ctx, err, "Failed to purge expired agent record", slog.String("agent_name", rec.Name))
			}
			continue
		}
		rec.DaysRemaining = domain.DaysRemaining(rec.DeletedAt, now)
		out = append(out, dto.ToDeletedAgentResponse(rec))
	}
	return out, nil
}

func (s *retentionService) RestoreCustomer(ctx context.Context, accountNo string) error {
	record, err := s.retentionRepo.FindDeletedCustomer(ctx, accountNo)
	if err != nil {
		return fmt.Errorf("failed to find deleted customer %s: %w", accountNo, err)
	}

	if domain.RetentionExpired(record.DeletedAt, s.now()) {
		if err := s.retentionRepo.PurgeCustomer(ctx, accountNo); err != nil {
			s.LogError(ctx, err, "Failed to purge expired customer record", slog.String("account_no", accountNo))
		}
		return fmt.Errorf("retention window expired for %s: %w", accountNo, apperrors.ErrNotFound)
	}

	exists, err := s.customerRepo.AccountNoExists(ctx, accountNo)
	if err != nil {
		return fmt.Errorf("failed to check account number %s: %w", accountNo, err)
	}
	if exists {
		return fmt.Errorf("account number %s is in use: %w", accountNo, apperrors.ErrConflict)
	}

	if err := s.retentionRepo.RestoreCustomer(ctx, *record); err != nil {
		s.LogError(ctx, err, "Failed to restore customer", slog.String("account_no", accountNo))
		return fmt.Errorf("failed to restore customer %s: %w", accountNo, err)
	}

	s.LogInfo(ctx, "Customer restored",
		slog.String("account_no", accountNo),
		slog.Int("transaction_count", record.TransactionCount))
	s.publish(watch.Path("customers", accountNo), watch.OpCreate)
	return nil
}

func (s *retentionService) RestoreAgent(ctx context.Context, name string) error {
	record, err := s.retentionRepo.FindDeletedAgent(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to find deleted agent %s: %w", name, err)
	}

	if domain.RetentionExpired(record.DeletedAt, s.now()) {
		if err := s.retentionRepo.PurgeAgent(ctx, name); err != nil {
			s.LogError(ctx, err, "Failed to purge expired agent record", slog.String("agent_name", name))
		}
		return fmt.Errorf("retention window expired for %s: %w", name, apperrors.ErrNotFound)
	}

	if _, err := s.agentRepo.FindAgentByName(ctx, name); err == nil {
		return fmt.Errorf("agent %s is in use: %w", name, apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check agent %s: %w", name, err)
	}

	if err := s.retentionRepo.RestoreAgent(ctx, *record); err != nil {
		s.LogError(ctx, err, "Failed to restore agent", slog.String("agent_name", name))
		return fmt.Errorf("failed to restore agent %s: %w", name, err)
	}

	s.LogInfo(ctx, "Agent restored", slog.String("agent_name", name))
	s.publish(watch.Path("agents", name), watch.OpCreate)
	return nil
}

func (s *retentionService) PurgeCustomer(ctx context.Context, accountNo string) error {
	if err := s.retentionRepo.PurgeCustomer(ctx, accountNo); err != nil {
		return fmt.Errorf("failed to purge customer %s: %w", accountNo, err)
	}
	s.LogInfo(ctx, "Customer purged from recycle bin", slog.String("account_no", accountNo))
	return nil
}

func (s *retentionService) PurgeAgent(ctx context.Context, name string) error {
	if err := s.retentionRepo.PurgeAgent(ctx, name); err != nil {
		return fmt.Errorf("failed to purge agent %s: %w", name, err)
	}
	s.LogInfo(ctx, "Agent purged from recycle bin", slog.String("agent_name", name))
	return nil
}
