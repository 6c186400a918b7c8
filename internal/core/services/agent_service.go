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
	"github.com/Mubina-Mulla/Pigmi/internal/utils"
	"github.com/Mubina-Mulla/Pigmi/internal/watch"
)

// agentService implements the AgentSvcFacade interface
type agentService struct {
	BaseService
	agentRepo     portsrepo.AgentRepositoryFacade
	retentionRepo portsrepo.RetentionWriter
	broker        *watch.Broker
	now           func() time.Time
}

// AgentServiceOption is a functional option for configuring the agent service
type AgentServiceOption func(*agentService)

// WithAgentRetentionWriter adds the recycle-bin repository used by DeleteAgent
func WithAgentRetentionWriter(repo portsrepo.RetentionWriter) AgentServiceOption {
	return func(s *agentService) {
		s.retentionRepo = repo
	}
}

// WithAgentBroker adds the change-notification broker
func WithAgentBroker(b *watch.Broker) AgentServiceOption {
	return func(s *agentService) {
		s.broker = b
	}
}

// WithAgentClock overrides the time source, for tests
func WithAgentClock(now func() time.Time) AgentServiceOption {
	return func(s *agentService) {
		s.now = now
	}
}

// NewAgentService creates a new agent service with the provided options
func NewAgentService(repo portsrepo.AgentRepositoryFacade, options ...AgentServiceOption) portssvc.AgentSvcFacade {
	svc := &agentService{
		agentRepo: repo,
		now:       time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AgentSvcFacade = (*agentService)(nil)

func (s *agentService) publish(path, op string) {
	if s.broker != nil {
		s.broker.Publish(path, op)
	}
}

func (s *agentService) CreateAgent(ctx context.Context, req dto.CreateAgentRequest, createdBy string) (*domain.Agent, error) {
	if _, err := s.agentRepo.FindAgentByName(ctx, req.Name); err == nil {
		return nil, fmt.Errorf("agent %s already exists: %w", req.Name, apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check agent %s: %w", req.Name, err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash agent password")
		return nil, apperrors.NewInternalServerError("failed to hash password")
	}

	nowMillis := s.now().UnixMilli()
	agent := domain.Agent{
		Name:         req.Name,
		Mobile:       req.Mobile,
		Address:      req.Address,
		PasswordHash: hash,
		Route:        req.Route,
		CreatedDate:  nowMillis,
		LastUpdated:  nowMillis,
	}

	if err := s.agentRepo.SaveAgent(ctx, agent); err != nil {
		s.LogError(ctx, err, "Failed to create agent", slog.String("agent_name", req.Name))
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	s.LogInfo(ctx, "Agent created", slog.String("agent_name", req.Name), slog.String("created_by", createdBy))
	s.publish(watch.Path("agents", req.Name), watch.OpCreate)
	return &agent, nil
}

func (s *agentService) GetAgent(ctx context.Context, name string) (*domain.Agent, error) {
	agent, err := s.agentRepo.FindAgentByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get agent %s: %w", name, err)
	}
	return agent, nil
}

func (s *agentService) ListAgents(ctx context.Context) ([]dto.AgentResponse, error) {
	agents, err := s.agentRepo.FindAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}

	out := make([]dto.AgentResponse, 0, len(agents))
	for _, a := range agents {
		count, err := s.agentRepo.CountCustomersByAgent(ctx, a.Name)
		if err != nil {
			s.LogError(ctx, err, "Failed to count customers for agent", slog.String("agent_name", a.Name))
			count = 0
		}
		out = append(out, dto.ToAgentResponse(a, count))
	}
	return out, nil
}

func (s *agentService) UpdateAgent(ctx context.Context, name string, req dto.UpdateAgentRequest) (*domain.Agent, error) {
	agent, err := s.agentRepo.FindAgentByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get agent %s: %w", name, err)
	}

	if req.Mobile != nil {
		agent.Mobile = *req.Mobile
	}
	if req.Address != nil {
		agent.Address = *req.Address
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			s.LogError(ctx, err, "Failed to hash agent password")
			return nil, apperrors.NewInternalServerError("failed to hash password")
		}
		agent.PasswordHash = hash
	}
	if req.Route != nil {
		agent.Route = *req.Route
	}
	agent.LastUpdated = s.now().UnixMilli()

	if err := s.agentRepo.UpdateAgent(ctx, *agent); err != nil {
		s.LogError(ctx, err, "Failed to update agent", slog.String("agent_name", name))
		return nil, fmt.Errorf("failed to update agent %s: %w", name, err)
	}

	s.publish(watch.Path("agents", name), watch.OpUpdate)
	return agent, nil
}

func (s *agentService) RenameAgent(ctx context.Context, oldName string, req dto.RenameAgentRequest) (*domain.Agent, error) {
	if req.NewName == oldName {
		return nil, fmt.Errorf("new name equals current name: %w", apperrors.ErrValidation)
	}

	agent, err := s.agentRepo.FindAgentByName(ctx, oldName)
	if err != nil {
		return nil, fmt.Errorf("failed to get agent %s: %w", oldName, err)
	}

	if _, err := s.agentRepo.FindAgentByName(ctx, req.NewName); err == nil {
		return nil, fmt.Errorf("agent %s already exists: %w", req.NewName, apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check agent %s: %w", req.NewName, err)
	}

	nowMillis := s.now().UnixMilli()
	if err := s.agentRepo.RenameAgent(ctx, oldName, req.NewName, nowMillis); err != nil {
		s.LogError(ctx, err, "Failed to rename agent",
			slog.String("old_name", oldName),
			slog.String("new_name", req.NewName))
		return nil, fmt.Errorf("failed to rename agent %s: %w", oldName, err)
	}

	agent.Name = req.NewName
	agent.LastUpdated = nowMillis

	s.LogInfo(ctx, "Agent renamed", slog.String("old_name", oldName), slog.String("new_name", req.NewName))
	s.publish(watch.Path("agents", oldName), watch.OpDelete)
	s.publish(watch.Path("agents", req.NewName), watch.OpCreate)
	return agent, nil
}

func (s *agentService) DeleteAgent(ctx context.Context, name string, deletedBy string) error {
	if s.retentionRepo == nil {
		return apperrors.NewInternalServerError("retention repository not configured")
	}

	agent, err := s.agentRepo.FindAgentByName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to get agent %s: %w", name, err)
	}

	// Customers stay assigned to the deleted name. The count is recorded so
	// the recycle bin can show what a restore would reattach to.
	count, err := s.agentRepo.CountCustomersByAgent(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to count customers for %s: %w", name, err)
	}

	record := domain.DeletedAgent{
		Name:          name,
		Agent:         *agent,
		CustomerCount: count,
		DeletedAt:     s.now().UnixMilli(),
		DeletedBy:     deletedBy,
	}

	if err := s.retentionRepo.MoveAgentToBin(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to move agent to recycle bin", slog.String("agent_name", name))
		return fmt.Errorf("failed to delete agent %s: %w", name, err)
	}

	s.LogInfo(ctx, "Agent moved to recycle bin",
		slog.String("agent_name", name),
		slog.Int("customer_count", count))
	s.publish(watch.Path("agents", name), watch.OpDelete)
	return nil
}

func (s *agentService) AuthenticateAgent(ctx context.Context, name, password string) (*domain.Agent, error) {
	agent, err := s.agentRepo.FindAgentByName(ctx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrForbidden)
		}
		return nil, fmt.Errorf("failed to get agent %s: %w", name, err)
	}

	if !utils.CheckPasswordHash(password, agent.PasswordHash) {
		s.LogWarn(ctx, "Agent login failed", slog.String("agent_name", name))
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrForbidden)
	}

	return agent, nil
}
