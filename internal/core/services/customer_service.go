package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Mubina-Mulla/Pigmi/internal/apperrors"
	"github.com/Mubina-Mulla/Pigmi/internal/core/domain"
	portsrepo "github.com/Mubina-Mulla/Pigmi/internal/core/ports/repositories"
	portssvc "github.com/Mubina-Mulla/Pigmi/internal/core/ports/services"
	"github.com/Mubina-Mulla/Pigmi/internal/dto"
	"github.com/Mubina-Mulla/Pigmi/internal/utils"
	"github.com/Mubina-Mulla/Pigmi/internal/utils/interest"
	"github.com/Mubina-Mulla/Pigmi/internal/utils/ledger"
	"github.com/Mubina-Mulla/Pigmi/internal/watch"
)

// accountNoAttempts bounds the regeneration loop when a generated account
// number collides with an existing one.
const accountNoAttempts = 5

const dateLayout = "2006-01-02"

// customerService implements the CustomerSvcFacade interface
type customerService struct {
	BaseService
	customerRepo  portsrepo.CustomerRepositoryFacade
	agentRepo     portsrepo.AgentReader
	retentionRepo portsrepo.RetentionWriter
	broker        *watch.Broker
	now           func() time.Time
}

// CustomerServiceOption is a functional option for configuring the customer service
type CustomerServiceOption func(*customerService)

// WithAgentReader adds the agent repository used for integrity checks
func WithAgentReader(repo portsrepo.AgentReader) CustomerServiceOption {
	return func(s *customerService) {
		s.agentRepo = repo
	}
}

// WithRetentionWriter adds the recycle-bin repository used by DeleteCustomer
func WithRetentionWriter(repo portsrepo.RetentionWriter) CustomerServiceOption {
	return func(s *customerService) {
		s.retentionRepo = repo
	}
}

// WithCustomerBroker adds the change-notification broker
func WithCustomerBroker(b *watch.Broker) CustomerServiceOption {
	return func(s *customerService) {
		s.broker = b
	}
}

// WithCustomerClock overrides the time source, for tests
func WithCustomerClock(now func() time.Time) CustomerServiceOption {
	return func(s *customerService) {
		s.now = now
	}
}

// NewCustomerService creates a new customer service with the provided options
func NewCustomerService(repo portsrepo.CustomerRepositoryFacade, options ...CustomerServiceOption) portssvc.CustomerSvcFacade {
	svc := &customerService{
		customerRepo: repo,
		now:          time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) publish(path, op string) {
	if s.broker != nil {
		s.broker.Publish(path, op)
	}
}

// nextAccountNo generates an account number, regenerating on collision.
func (s *customerService) nextAccountNo(ctx context.Context) (string, error) {
	for i := 0; i < accountNoAttempts; i++ {
		accountNo := utils.GenerateAccountNumber()
		exists, err := s.customerRepo.AccountNoExists(ctx, accountNo)
		if err != nil {
			return "", fmt.Errorf("failed to check account number %s: %w", accountNo, err)
		}
		if !exists {
			return accountNo, nil
		}
		s.LogWarn(ctx, "Account number collision, regenerating", slog.String("account_no", accountNo))
	}
	return "", apperrors.NewInternalServerError("could not generate a unique account number")
}

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, createdBy string) (*domain.Customer, error) {
	if s.agentRepo != nil && req.AgentName != "" {
		if _, err := s.agentRepo.FindAgentByName(ctx, req.AgentName); err != nil {
			s.LogError(ctx, err, "Agent not found for new customer", slog.String("agent_name", req.AgentName))
			return nil, fmt.Errorf("agent %s: %w", req.AgentName, err)
		}
	}

	accountNo, err := s.nextAccountNo(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate account number")
		return nil, err
	}

	now := s.now()
	nowMillis := now.UnixMilli()

	customer := domain.Customer{
		AccountNo:   accountNo,
		Name:        req.Name,
		Mobile:      req.Mobile,
		Address:     req.Address,
		Village:     req.Village,
		IDNumber:    req.IDNumber,
		AgentName:   req.AgentName,
		Route:       req.Route,
		Status:      domain.StatusActive,
		CreatedDate: nowMillis,
		LastUpdated: nowMillis,
		CreatedBy:   createdBy,
	}

	var initialDeposit *domain.Transaction
	if req.InitialDeposit.IsPositive() {
		mode := req.Mode
		if mode == "" {
			mode = domain.ModeCash
		}
		txn := domain.Transaction{
			TransactionID: utils.GenerateTransactionID(),
			AccountNo:     accountNo,
			Type:          domain.Deposit,
			Amount:        req.InitialDeposit,
			Date:          now.Format(dateLayout),
			Timestamp:     nowMillis,
			Mode:          mode,
			PhoneNumber:   req.PhoneNumber,
			Note:          "Opening deposit",
			AddedBy:       createdBy,
		}
		if err := txn.Validate(); err != nil {
			return nil, fmt.Errorf("%v: %w", err, apperrors.ErrValidation)
		}
		customer.TotalAmount = req.InitialDeposit
		initialDeposit = &txn
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer, initialDeposit); err != nil {
		s.LogError(ctx, err, "Failed to create customer", slog.String("account_no", accountNo))
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.LogInfo(ctx, "Customer created", slog.String("account_no", accountNo), slog.String("created_by", createdBy))
	s.publish(watch.Path("customers", accountNo), watch.OpCreate)
	return &customer, nil
}

func (s *customerService) GetCustomer(ctx context.Context, accountNo string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByAccountNo(ctx, accountNo)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer %s: %w", accountNo, err)
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context, agentName string) ([]domain.Customer, error) {
	customers, err := s.customerRepo.FindCustomers(ctx, agentName)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (s *customerService) GetCustomerDetail(ctx context.Context, accountNo string) (*dto.CustomerDetail, error) {
	customer, err := s.customerRepo.FindCustomerByAccountNo(ctx, accountNo)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer %s: %w", accountNo, err)
	}

	txns, err := s.customerRepo.FindTransactionsByAccount(ctx, accountNo)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for %s: %w", accountNo, err)
	}

	summary := ledger.Fold(txns)
	projection := interest.Calculate(customer.Balance(), customer.CreatedDate, s.now())

	detail := &dto.CustomerDetail{
		Customer:                dto.ToCustomerResponse(*customer),
		Transactions:            dto.ToTransactionResponses(txns),
		Summary:                 summary,
		ProjectedInterestRate:   projection.Rate,
		ProjectedInterestAmount: projection.Amount,
	}

	if summary.NegativeBalance {
		detail.IntegrityWarnings = append(detail.IntegrityWarnings, "balance is negative")
		s.LogWarn(ctx, "Customer balance is negative", slog.String("account_no", accountNo))
	}
	if s.agentRepo != nil && customer.AgentName != "" {
		if _, err := s.agentRepo.FindAgentByName(ctx, customer.AgentName); err != nil {
			detail.IntegrityWarnings = append(detail.IntegrityWarnings,
				fmt.Sprintf("agent %s no longer exists", customer.AgentName))
		}
	}

	return detail, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, accountNo string, req dto.UpdateCustomerRequest, updatedBy string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByAccountNo(ctx, accountNo)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer %s: %w", accountNo, err)
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Mobile != nil {
		customer.Mobile = *req.Mobile
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.Village != nil {
		customer.Village = *req.Village
	}
	if req.IDNumber != nil {
		customer.IDNumber = *req.IDNumber
	}
	if req.AgentName != nil {
		if s.agentRepo != nil && *req.AgentName != "" {
			if _, err := s.agentRepo.FindAgentByName(ctx, *req.AgentName); err != nil {
				return nil, fmt.Errorf("agent %s: %w", *req.AgentName, err)
			}
		}
		customer.AgentName = *req.AgentName
	}
	if req.Route != nil {
		customer.Route = *req.Route
	}
	customer.LastUpdated = s.now().UnixMilli()
	customer.LastUpdatedBy = updatedBy

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		s.LogError(ctx, err, "Failed to update customer", slog.String("account_no", accountNo))
		return nil, fmt.Errorf("failed to update customer %s: %w", accountNo, err)
	}

	s.publish(watch.Path("customers", accountNo), watch.OpUpdate)
	return customer, nil
}

func (s *customerService) RecordTransaction(ctx context.Context, accountNo string, req dto.RecordTransactionRequest, addedBy string) (*domain.Transaction, error) {
	customer, err := s.customerRepo.FindCustomerByAccountNo(ctx, accountNo)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer %s: %w", accountNo, err)
	}

	now := s.now()
	txn := domain.Transaction{
		TransactionID: utils.GenerateTransactionID(),
		AccountNo:     accountNo,
		Type:          req.Type,
		Amount:        req.Amount,
		Date:          now.Format(dateLayout),
		Timestamp:     now.UnixMilli(),
		Mode:          req.Mode,
		PhoneNumber:   req.PhoneNumber,
		Note:          req.Note,
		AddedBy:       addedBy,
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperrors.ErrValidation)
	}

	// Withdrawals beyond the balance are allowed; the resulting negative
	// balance is surfaced as an integrity warning on the read path.
	if txn.Type == domain.Withdrawal && req.Amount.GreaterThan(customer.Balance()) {
		s.LogWarn(ctx, "Withdrawal exceeds balance",
			slog.String("account_no", accountNo),
			slog.String("amount", req.Amount.String()),
			slog.String("balance", customer.Balance().String()))
	}

	if err := s.customerRepo.RecordTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to record transaction",
			slog.String("account_no", accountNo),
			slog.String("transaction_id", txn.TransactionID))
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction recorded",
		slog.String("account_no", accountNo),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)))
	s.publish(watch.Path("transactions", accountNo, txn.TransactionID), watch.OpCreate)
	s.publish(watch.Path("customers", accountNo), watch.OpUpdate)
	return &txn, nil
}

func (s *customerService) ApplyInterest(ctx context.Context, accountNo string, appliedBy string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByAccountNo(ctx, accountNo)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer %s: %w", accountNo, err)
	}

	if customer.InterestApplied {
		return nil, fmt.Errorf("interest already applied to %s: %w", accountNo, apperrors.ErrConflict)
	}

	now := s.now()
	result := interest.Calculate(customer.Balance(), customer.CreatedDate, now)
	if result.Rate.IsZero() {
		return nil, fmt.Errorf("account %s is not yet eligible for interest: %w", accountNo, apperrors.ErrValidation)
	}

	nowMillis := now.UnixMilli()
	txn := domain.Transaction{
		TransactionID: utils.GenerateTransactionID(),
		AccountNo:     accountNo,
		Type:          domain.Interest,
		Amount:        result.Amount,
		Date:          now.Format(dateLayout),
		Timestamp:     nowMillis,
		Mode:          domain.ModeAuto,
		Note:          fmt.Sprintf("Interest credited at %s%%", result.Rate),
		AddedBy:       appliedBy,
	}

	if err := s.customerRepo.ApplyInterest(ctx, accountNo, txn, result.Rate, nowMillis); err != nil {
		s.LogError(ctx, err, "Failed to apply interest", slog.String("account_no", accountNo))
		return nil, fmt.Errorf("failed to apply interest to %s: %w", accountNo, err)
	}

	customer.TotalAmount = customer.TotalAmount.Add(result.Amount)
	customer.InterestApplied = true
	customer.AppliedInterestAmount = result.Amount
	customer.AppliedInterestRate = result.Rate
	customer.LastInterestApplied = &nowMillis
	customer.LastUpdated = nowMillis

	s.LogInfo(ctx, "Interest applied",
		slog.String("account_no", accountNo),
		slog.String("rate", result.Rate.String()),
		slog.String("amount", result.Amount.String()))
	s.publish(watch.Path("customers", accountNo), watch.OpUpdate)
	return customer, nil
}

func (s *customerService) ApplyInterestToAll(ctx context.Context, appliedBy string) (*dto.ApplyInterestSummary, error) {
	customers, err := s.customerRepo.FindCustomers(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	summary := &dto.ApplyInterestSummary{}
	now := s.now()
	for _, c := range customers {
		if c.InterestApplied {
			summary.Skipped++
			continue
		}
		if interest.Calculate(c.Balance(), c.CreatedDate, now).Rate.IsZero() {
			summary.Skipped++
			continue
		}
		if _, err := s.ApplyInterest(ctx, c.AccountNo, appliedBy); err != nil {
			s.LogError(ctx, err, "Bulk interest run failed for account", slog.String("account_no", c.AccountNo))
			summary.Failed = append(summary.Failed, c.AccountNo)
			continue
		}
		summary.Applied++
	}

	s.LogInfo(ctx, "Bulk interest run finished",
		slog.Int("applied", summary.Applied),
		slog.Int("skipped", summary.Skipped),
		slog.Int("failed", len(summary.Failed)))
	return summary, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, accountNo string, deletedBy string) error {
	if s.retentionRepo == nil {
		return apperrors.NewInternalServerError("retention repository not configured")
	}

	customer, err := s.customerRepo.FindCustomerByAccountNo(ctx, accountNo)
	if err != nil {
		return fmt.Errorf("failed to get customer %s: %w", accountNo, err)
	}

	txns, err := s.customerRepo.FindTransactionsByAccount(ctx, accountNo)
	if err != nil {
		return fmt.Errorf("failed to load transactions for %s: %w", accountNo, err)
	}

	record := domain.DeletedCustomer{
		AccountNo:        accountNo,
		Customer:         *customer,
		Transactions:     txns,
		TransactionCount: len(txns),
		DeletedAt:        s.now().UnixMilli(),
		DeletedBy:        deletedBy,
	}

	if err := s.retentionRepo.MoveCustomerToBin(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to move customer to recycle bin", slog.String("account_no", accountNo))
		return fmt.Errorf("failed to delete customer %s: %w", accountNo, err)
	}

	s.LogInfo(ctx, "Customer moved to recycle bin",
		slog.String("account_no", accountNo),
		slog.Int("transaction_count", len(txns)))
	s.publish(watch.Path("customers", accountNo), watch.OpDelete)
	return nil
}
