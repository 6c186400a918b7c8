package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/Mubina-Mulla/Pigmi/internal/apperrors"
	"github.com/Mubina-Mulla/Pigmi/internal/core/domain"
	portssvc "github.com/Mubina-Mulla/Pigmi/internal/core/ports/services"
	"github.com/Mubina-Mulla/Pigmi/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RetentionRepository ---
type MockRetentionRepository struct {
	MockRetentionWriter
}

func (m *MockRetentionRepository) FindDeletedCustomers(ctx context.Context) ([]domain.DeletedCustomer, error) {
	args := m.Called(ctx)
	var recs []domain.DeletedCustomer
	if args.Get(0) != nil {
		recs = args.Get(0).([]domain.DeletedCustomer)
	}
	return recs, args.Error(1)
}

func (m *MockRetentionRepository) FindDeletedCustomer(ctx context.Context, accountNo string) (*domain.DeletedCustomer, error) {
	args := m.Called(ctx, accountNo)
	var rec *domain.DeletedCustomer
	if args.Get(0) != nil {
		rec = args.Get(0).(*domain.DeletedCustomer)
	}
	return rec, args.Error(1)
}

func (m *MockRetentionRepository) FindDeletedAgents(ctx context.Context) ([]domain.DeletedAgent, error) {
	args := m.Called(ctx)
	var recs []domain.DeletedAgent
	if args.Get(0) != nil {
		recs = args.Get(0).([]domain.DeletedAgent)
	}
	return recs, args.Error(1)
}

func (m *MockRetentionRepository) FindDeletedAgent(ctx context.Context, name string) (*domain.DeletedAgent, error) {
	args := m.Called(ctx, name)
	var rec *domain.DeletedAgent
	if args.Get(0) != nil {
		rec = args.Get(0).(*domain.DeletedAgent)
	}
	return rec, args.Error(1)
}

// --- Suite ---
type RetentionServiceTestSuite struct {
	suite.Suite
	repo      *MockRetentionRepository
	customers *MockCustomerRepository
	agents    *MockAgentRepository
	now       time.Time
	ctx       context.Context
}

func (s *RetentionServiceTestSuite) SetupTest() {
	s.repo = new(MockRetentionRepository)
	s.customers = new(MockCustomerRepository)
	s.agents = new(MockAgentRepository)
	s.now = time.Date(2026, time.August, 15, 10, 0, 0, 0, time.UTC)
	s.ctx = context.Background()
}

func (s *RetentionServiceTestSuite) service() portssvc.RetentionSvcFacade {
	return services.NewRetentionService(
		s.repo,
		s.customers,
		s.agents,
		services.WithRetentionClock(func() time.Time { return s.now }),
	)
}

func (s *RetentionServiceTestSuite) TestList_ExpiredRecordsPurgedLazily() {
	fresh := domain.DeletedCustomer{
		AccountNo: "ACC1700000000000001",
		Customer:  domain.Customer{AccountNo: "ACC1700000000000001", Name: "Sita"},
		DeletedAt: s.now.Add(-4 * 24 * time.Hour).UnixMilli(),
	}
	expired := domain.DeletedCustomer{
		AccountNo: "ACC1700000000000002",
		Customer:  domain.Customer{AccountNo: "ACC1700000000000002", Name: "Gita"},
		DeletedAt: s.now.Add(-5*24*time.Hour - time.Millisecond).UnixMilli(),
	}
	s.repo.On("FindDeletedCustomers", s.ctx).Return([]domain.DeletedCustomer{fresh, expired}, nil)
	s.repo.On("PurgeCustomer", s.ctx, "ACC1700000000000002").Return(nil)

	out, err := s.service().ListDeletedCustomers(s.ctx)

	s.Require().NoError(err)
	s.Require().Len(out, 1)
	s.Equal("ACC1700000000000001", out[0].AccountNo)
	s.Equal(1, out[0].DaysRemaining)
	s.repo.AssertCalled(s.T(), "PurgeCustomer", s.ctx, "ACC1700000000000002")
}

func (s *RetentionServiceTestSuite) TestRestoreCustomer_RoundTrip() {
	record := &domain.DeletedCustomer{
		AccountNo: "ACC1700000000000042",
		Customer: domain.Customer{
			AccountNo:   "ACC1700000000000042",
			Name:        "Sita Patil",
			TotalAmount: decimal.NewFromInt(500),
		},
		Transactions: []domain.Transaction{
			{TransactionID: "TXN00000001", AccountNo: "ACC1700000000000042", Type: domain.Deposit, Amount: decimal.NewFromInt(500), Mode: domain.ModeCash},
		},
		TransactionCount: 1,
		DeletedAt:        s.now.Add(-24 * time.Hour).UnixMilli(),
	}
	s.repo.On("FindDeletedCustomer", s.ctx, "ACC1700000000000042").Return(record, nil)
	s.customers.On("AccountNoExists", s.ctx, "ACC1700000000000042").Return(false, nil)

	var restored domain.DeletedCustomer
	s.repo.On("RestoreCustomer", s.ctx, mock.AnythingOfType("domain.DeletedCustomer")).
		Run(func(args mock.Arguments) {
			restored = args.Get(1).(domain.DeletedCustomer)
		}).Return(nil)

	err := s.service().RestoreCustomer(s.ctx, "ACC1700000000000042")

	s.Require().NoError(err)
	// The snapshot is restored whole, transactions included.
	s.Equal(*record, restored)
}

func (s *RetentionServiceTestSuite) TestRestoreCustomer_LiveAccountConflicts() {
	record := &domain.DeletedCustomer{
		AccountNo: "ACC1700000000000042",
		DeletedAt: s.now.Add(-24 * time.Hour).UnixMilli(),
	}
	s.repo.On("FindDeletedCustomer", s.ctx, "ACC1700000000000042").Return(record, nil)
	s.customers.On("AccountNoExists", s.ctx, "ACC1700000000000042").Return(true, nil)

	err := s.service().RestoreCustomer(s.ctx, "ACC1700000000000042")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.repo.AssertNotCalled(s.T(), "RestoreCustomer", mock.Anything, mock.Anything)
}

func (s *RetentionServiceTestSuite) TestRestoreCustomer_ExpiredRecordIsGone() {
	record := &domain.DeletedCustomer{
		AccountNo: "ACC1700000000000042",
		DeletedAt: s.now.Add(-6 * 24 * time.Hour).UnixMilli(),
	}
	s.repo.On("FindDeletedCustomer", s.ctx, "ACC1700000000000042").Return(record, nil)
	s.repo.On("PurgeCustomer", s.ctx, "ACC1700000000000042").Return(nil)

	err := s.service().RestoreCustomer(s.ctx, "ACC1700000000000042")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.repo.AssertCalled(s.T(), "PurgeCustomer", s.ctx, "ACC1700000000000042")
}

func (s *RetentionServiceTestSuite) TestRestoreAgent_LiveNameConflicts() {
	record := &domain.DeletedAgent{
		Name:      "ramesh",
		Agent:     domain.Agent{Name: "ramesh"},
		DeletedAt: s.now.Add(-24 * time.Hour).UnixMilli(),
	}
	s.repo.On("FindDeletedAgent", s.ctx, "ramesh").Return(record, nil)
	s.agents.On("FindAgentByName", s.ctx, "ramesh").Return(&domain.Agent{Name: "ramesh"}, nil)

	err := s.service().RestoreAgent(s.ctx, "ramesh")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func TestRetentionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RetentionServiceTestSuite))
}
