package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Mubina-Mulla/Pigmi/internal/apperrors"
	"github.com/Mubina-Mulla/Pigmi/internal/core/domain"
	portssvc "github.com/Mubina-Mulla/Pigmi/internal/core/ports/services"
	"github.com/Mubina-Mulla/Pigmi/internal/dto"
	"github.com/Mubina-Mulla/Pigmi/internal/handlers"
	"github.com/Mubina-Mulla/Pigmi/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CustomerService ---
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) GetCustomer(ctx context.Context, accountNo string) (*domain.Customer, error) {
	args := m.Called(ctx, accountNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) GetCustomerDetail(ctx context.Context, accountNo string) (*dto.CustomerDetail, error) {
	args := m.Called(ctx, accountNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CustomerDetail), args.Error(1)
}
func (m *MockCustomerService) ListCustomers(ctx context.Context, agentName string) ([]domain.Customer, error) {
	args := m.Called(ctx, agentName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}
func (m *MockCustomerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, createdBy string) (*domain.Customer, error) {
	args := m.Called(ctx, req, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) UpdateCustomer(ctx context.Context, accountNo string, req dto.UpdateCustomerRequest, updatedBy string) (*domain.Customer, error) {
	args := m.Called(ctx, accountNo, req, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) RecordTransaction(ctx context.Context, accountNo string, req dto.RecordTransactionRequest, addedBy string) (*domain.Transaction, error) {
	args := m.Called(ctx, accountNo, req, addedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockCustomerService) ApplyInterest(ctx context.Context, accountNo string, appliedBy string) (*domain.Customer, error) {
	args := m.Called(ctx, accountNo, appliedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) ApplyInterestToAll(ctx context.Context, appliedBy string) (*dto.ApplyInterestSummary, error) {
	args := m.Called(ctx, appliedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ApplyInterestSummary), args.Error(1)
}
func (m *MockCustomerService) DeleteCustomer(ctx context.Context, accountNo string, deletedBy string) error {
	args := m.Called(ctx, accountNo, deletedBy)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.CustomerSvcFacade = (*MockCustomerService)(nil)

// --- Test Suite ---
type CustomerHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockCustomerService *MockCustomerService
	jwtSecret           string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *CustomerHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "pigmi-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *CustomerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	// Use the actual AuthMiddleware
	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockCustomerService = new(MockCustomerService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterCustomerRoutes(v1, suite.mockCustomerService)
}

func (suite *CustomerHandlerTestSuite) authedRequest(method, url string, body []byte, userID string) *http.Request {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Accept", "application/json")
	return req
}

// --- Test Cases ---

func (suite *CustomerHandlerTestSuite) TestRecordTransaction_Success() {
	accountNo := "ACC1700000000000042"
	userID := "admin"

	body, _ := json.Marshal(dto.RecordTransactionRequest{
		Type:   domain.Deposit,
		Amount: decimal.NewFromInt(250),
		Mode:   domain.ModeCash,
	})

	expected := &domain.Transaction{
		TransactionID: "TXN1A2B3C4D",
		AccountNo:     accountNo,
		Type:          domain.Deposit,
		Amount:        decimal.NewFromInt(250),
		Date:          "2026-08-15",
		Timestamp:     time.Now().UnixMilli(),
		Mode:          domain.ModeCash,
		AddedBy:       userID,
	}

	suite.mockCustomerService.On("RecordTransaction",
		mock.Anything,
		accountNo,
		mock.MatchedBy(func(r dto.RecordTransactionRequest) bool {
			return r.Type == domain.Deposit && r.Amount.Equal(decimal.NewFromInt(250))
		}),
		userID,
	).Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/customers/%s/transactions", accountNo)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, url, body, userID))

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.TransactionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.TransactionID, resp.TransactionID)
	suite.True(resp.Amount.Equal(expected.Amount))

	suite.mockCustomerService.AssertExpectations(suite.T())
}

func (suite *CustomerHandlerTestSuite) TestRecordTransaction_InvalidType() {
	body := []byte(`{"type":"interest","amount":"10","mode":"cash"}`)

	url := "/api/v1/customers/ACC1/transactions"
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, url, body, "admin"))

	// Interest credits are rejected at binding; they only come from the
	// apply-interest operations.
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCustomerService.AssertNotCalled(suite.T(), "RecordTransaction")
}

func (suite *CustomerHandlerTestSuite) TestGetCustomer_NotFound() {
	suite.mockCustomerService.On("GetCustomerDetail", mock.Anything, "ACC404").
		Return(nil, apperrors.ErrNotFound).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/customers/ACC404", nil, "admin"))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockCustomerService.AssertExpectations(suite.T())
}

func (suite *CustomerHandlerTestSuite) TestApplyInterest_AlreadyApplied() {
	accountNo := "ACC1700000000000042"
	suite.mockCustomerService.On("ApplyInterest", mock.Anything, accountNo, "admin").
		Return(nil, fmt.Errorf("interest already applied: %w", apperrors.ErrConflict)).Once()

	url := fmt.Sprintf("/api/v1/customers/%s/interest", accountNo)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, url, nil, "admin"))

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockCustomerService.AssertExpectations(suite.T())
}

func (suite *CustomerHandlerTestSuite) TestListCustomers_MissingToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/customers", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockCustomerService.AssertNotCalled(suite.T(), "ListCustomers")
}

// --- Run Test Suite ---
func TestCustomerHandler(t *testing.T) {
	suite.Run(t, new(CustomerHandlerTestSuite))
}
