package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Mubina-Mulla/Pigmi/internal/adapters/legacy"
	"github.com/Mubina-Mulla/Pigmi/internal/apperrors"
	portsrepo "github.com/Mubina-Mulla/Pigmi/internal/core/ports/repositories"
	portssvc "github.com/Mubina-Mulla/Pigmi/internal/core/ports/services"
	"github.com/Mubina-Mulla/Pigmi/internal/dto"
)

// importService implements the ImportSvcFacade interface. It loads the
// normalized output of the legacy adapter, skipping records that already
// exist so re-running an import is safe.
type importService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
	agentRepo    portsrepo.AgentRepositoryFacade
	routeRepo    portsrepo.RouteRepositoryFacade
}

// NewImportService creates a new legacy-import service
func NewImportService(
	customerRepo portsrepo.CustomerRepositoryFacade,
	agentRepo portsrepo.AgentRepositoryFacade,
	routeRepo portsrepo.RouteRepositoryFacade,
) portssvc.ImportSvcFacade {
	return &importService{
		customerRepo: customerRepo,
		agentRepo:    agentRepo,
		routeRepo:    routeRepo,
	}
}

var _ portssvc.ImportSvcFacade = (*importService)(nil)

func (s *importService) ImportLegacy(ctx context.Context, data []byte, importedBy string) (*dto.ImportSummary, error) {
	export, err := legacy.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid legacy export: %w", apperrors.NewBadRequestError(err.Error()))
	}

	summary := &dto.ImportSummary{}

	for _, agent := range export.Agents {
		_, err := s.agentRepo.FindAgentByName(ctx, agent.Name)
		if err == nil {
			summary.Skipped++
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check agent %s: %w", agent.Name, err)
		}
		// Imported agents have no credential; a password must be set before
		// the agent can log in.
		if err := s.agentRepo.SaveAgent(ctx, agent); err != nil {
			return nil, fmt.Errorf("failed to import agent %s: %w", agent.Name, err)
		}
		summary.Agents++
	}

	for _, route := range export.Routes {
		_, err := s.routeRepo.FindRouteByName(ctx, route.Name)
		if err == nil {
			summary.Skipped++
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check route %s: %w", route.Name, err)
		}
		if err := s.routeRepo.SaveRoute(ctx, route); err != nil {
			return nil, fmt.Errorf("failed to import route %s: %w", route.Name, err)
		}
		summary.Routes++
	}

	for _, customer := range export.Customers {
		exists, err := s.customerRepo.AccountNoExists(ctx, customer.AccountNo)
		if err != nil {
			return nil, fmt.Errorf("failed to check account %s: %w", customer.AccountNo, err)
		}
		if exists {
			summary.Skipped++
			continue
		}
		if customer.CreatedBy == "" {
			customer.CreatedBy = importedBy
		}
		// Totals arrive on the customer record; transactions are inserted
		// separately without replaying their effects.
		if err := s.customerRepo.SaveCustomer(ctx, customer, nil); err != nil {
			return nil, fmt.Errorf("failed to import customer %s: %w", customer.AccountNo, err)
		}
		summary.Customers++
	}

	for accountNo, txns := range export.Transactions {
		inserted, err := s.customerRepo.InsertTransactions(ctx, txns)
		if err != nil {
			return nil, fmt.Errorf("failed to import transactions for %s: %w", accountNo, err)
		}
		summary.Transactions += inserted
		summary.Skipped += len(txns) - inserted
	}

	s.LogInfo(ctx, "Legacy import finished",
		slog.String("imported_by", importedBy),
		slog.Int("customers", summary.Customers),
		slog.Int("transactions", summary.Transactions),
		slog.Int("agents", summary.Agents),
		slog.Int("routes", summary.Routes),
		slog.Int("skipped", summary.Skipped))
	return summary, nil
}
