package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/Mubina-Mulla/Pigmi/internal/apperrors"
	"github.com/Mubina-Mulla/Pigmi/internal/core/domain"
	portssvc "github.com/Mubina-Mulla/Pigmi/internal/core/ports/services"
	"github.com/Mubina-Mulla/Pigmi/internal/core/services"
	"github.com/Mubina-Mulla/Pigmi/internal/dto"
	"github.com/Mubina-Mulla/Pigmi/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AgentRepository ---
type MockAgentRepository struct {
	mock.Mock
}

func (m *MockAgentRepository) FindAgentByName(ctx context.Context, name string) (*domain.Agent, error) {
	args := m.Called(ctx, name)
	var a *domain.Agent
	if args.Get(0) != nil {
		a = args.Get(0).(*domain.Agent)
	}
	return a, args.Error(1)
}

func (m *MockAgentRepository) FindAgents(ctx context.Context) ([]domain.Agent, error) {
	args := m.Called(ctx)
	var as []domain.Agent
	if args.Get(0) != nil {
		as = args.Get(0).([]domain.Agent)
	}
	return as, args.Error(1)
}

func (m *MockAgentRepository) CountCustomersByAgent(ctx context.Context, name string) (int, error) {
	args := m.Called(ctx, name)
	return args.Int(0), args.Error(1)
}

func (m *MockAgentRepository) SaveAgent(ctx context.Context, agent domain.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}

func (m *MockAgentRepository) UpdateAgent(ctx context.Context, agent domain.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}

func (m *MockAgentRepository) RenameAgent(ctx context.Context, oldName, newName string, updatedAt int64) error {
	args := m.Called(ctx, oldName, newName, updatedAt)
	return args.Error(0)
}

// --- Suite ---
type AgentServiceTestSuite struct {
	suite.Suite
	repo      *MockAgentRepository
	retention *MockRetentionWriter
	now       time.Time
	ctx       context.Context
}

func (s *AgentServiceTestSuite) SetupTest() {
	s.repo = new(MockAgentRepository)
	s.retention = new(MockRetentionWriter)
	s.now = time.Date(2026, time.August, 15, 10, 0, 0, 0, time.UTC)
	s.ctx = context.Background()
}

func (s *AgentServiceTestSuite) service() portssvc.AgentSvcFacade {
	return services.NewAgentService(
		s.repo,
		services.WithAgentRetentionWriter(s.retention),
		services.WithAgentClock(func() time.Time { return s.now }),
	)
}

func (s *AgentServiceTestSuite) TestCreateAgent_HashesPassword() {
	s.repo.On("FindAgentByName", s.ctx, "ramesh").Return(nil, apperrors.ErrNotFound)

	var saved domain.Agent
	s.repo.On("SaveAgent", s.ctx, mock.AnythingOfType("domain.Agent")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Agent)
		}).Return(nil)

	agent, err := s.service().CreateAgent(s.ctx, dto.CreateAgentRequest{
		Name:     "ramesh",
		Mobile:   "9000000000",
		Password: "secret123",
		Route:    []string{"north"},
	}, "admin")

	s.Require().NoError(err)
	s.Equal("ramesh", agent.Name)
	s.NotEqual("secret123", saved.PasswordHash)
	s.True(utils.CheckPasswordHash("secret123", saved.PasswordHash))
}

func (s *AgentServiceTestSuite) TestCreateAgent_DuplicateName() {
	s.repo.On("FindAgentByName", s.ctx, "ramesh").Return(&domain.Agent{Name: "ramesh"}, nil)

	_, err := s.service().CreateAgent(s.ctx, dto.CreateAgentRequest{
		Name:     "ramesh",
		Mobile:   "9000000000",
		Password: "secret123",
	}, "admin")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *AgentServiceTestSuite) TestRenameAgent_OntoExistingNameConflicts() {
	s.repo.On("FindAgentByName", s.ctx, "ramesh").Return(&domain.Agent{Name: "ramesh"}, nil)
	s.repo.On("FindAgentByName", s.ctx, "suresh").Return(&domain.Agent{Name: "suresh"}, nil)

	_, err := s.service().RenameAgent(s.ctx, "ramesh", dto.RenameAgentRequest{NewName: "suresh"})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.repo.AssertNotCalled(s.T(), "RenameAgent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *AgentServiceTestSuite) TestRenameAgent_Cascades() {
	s.repo.On("FindAgentByName", s.ctx, "ramesh").Return(&domain.Agent{Name: "ramesh"}, nil)
	s.repo.On("FindAgentByName", s.ctx, "rajesh").Return(nil, apperrors.ErrNotFound)
	s.repo.On("RenameAgent", s.ctx, "ramesh", "rajesh", s.now.UnixMilli()).Return(nil)

	agent, err := s.service().RenameAgent(s.ctx, "ramesh", dto.RenameAgentRequest{NewName: "rajesh"})

	s.Require().NoError(err)
	s.Equal("rajesh", agent.Name)
	s.repo.AssertCalled(s.T(), "RenameAgent", s.ctx, "ramesh", "rajesh", s.now.UnixMilli())
}

func (s *AgentServiceTestSuite) TestDeleteAgent_RecordsCustomerCountWithoutTouchingCustomers() {
	s.repo.On("FindAgentByName", s.ctx, "ramesh").Return(&domain.Agent{Name: "ramesh", Mobile: "9000000000"}, nil)
	s.repo.On("CountCustomersByAgent", s.ctx, "ramesh").Return(3, nil)

	var record domain.DeletedAgent
	s.retention.On("MoveAgentToBin", s.ctx, mock.AnythingOfType("domain.DeletedAgent")).
		Run(func(args mock.Arguments) {
			record = args.Get(1).(domain.DeletedAgent)
		}).Return(nil)

	err := s.service().DeleteAgent(s.ctx, "ramesh", "admin")

	s.Require().NoError(err)
	s.Equal("ramesh", record.Name)
	s.Equal(3, record.CustomerCount)
	s.Equal(s.now.UnixMilli(), record.DeletedAt)
	// Customer rows are never rewritten on agent delete.
	s.repo.AssertNotCalled(s.T(), "RenameAgent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *AgentServiceTestSuite) TestAuthenticateAgent() {
	hash, err := utils.HashPassword("secret123")
	s.Require().NoError(err)
	s.repo.On("FindAgentByName", s.ctx, "ramesh").Return(&domain.Agent{Name: "ramesh", PasswordHash: hash}, nil)

	svc := s.service()
	agent, err := svc.AuthenticateAgent(s.ctx, "ramesh", "secret123")
	s.Require().NoError(err)
	s.Equal("ramesh", agent.Name)

	_, err = svc.AuthenticateAgent(s.ctx, "ramesh", "wrong")
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func TestAgentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AgentServiceTestSuite))
}
