package dto

import (
	"github.com/Mubina-Mulla/Pigmi/internal/core/domain"
	"github.com/Mubina-Mulla/Pigmi/internal/utils/ledger"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest is the request body for creating a customer.
// The account number is generated server-side and never accepted as input.
type CreateCustomerRequest struct {
	Name      string   `json:"name" binding:"required"`
	Mobile    string   `json:"mobile" binding:"required,len=10,numeric"`
	Address   string   `json:"address"`
	Village   string   `json:"village"`
	IDNumber  string   `json:"idNumber"`
	AgentName string   `json:"agentName"`
	Route     []string `json:"route"`

	// InitialDeposit, when positive, opens the account with a first deposit
	// recorded atomically with the customer row.
	InitialDeposit decimal.Decimal    `json:"initialDeposit" binding:"omitempty,positivedecimal"`
	Mode           domain.PaymentMode `json:"mode"`
	PhoneNumber    string             `json:"phoneNumber"`
}

// UpdateCustomerRequest is the request body for updating customer details.
// Nil fields are left unchanged; the account number is immutable.
type UpdateCustomerRequest struct {
	Name      *string   `json:"name,omitempty"`
	Mobile    *string   `json:"mobile,omitempty" binding:"omitempty,len=10,numeric"`
	Address   *string   `json:"address,omitempty"`
	Village   *string   `json:"village,omitempty"`
	IDNumber  *string   `json:"idNumber,omitempty"`
	AgentName *string   `json:"agentName,omitempty"`
	Route     *[]string `json:"route,omitempty"`
}

// CustomerResponse is the API representation of a customer.
type CustomerResponse struct {
	AccountNo             string          `json:"accountNo"`
	Name                  string          `json:"name"`
	Mobile                string          `json:"mobile"`
	Address               string          `json:"address,omitempty"`
	Village               string          `json:"village,omitempty"`
	IDNumber              string          `json:"idNumber,omitempty"`
	AgentName             string          `json:"agentName,omitempty"`
	Route                 []string        `json:"route,omitempty"`
	TotalAmount           decimal.Decimal `json:"totalAmount"`
	WithdrawnAmount       decimal.Decimal `json:"withdrawnAmount"`
	Balance               decimal.Decimal `json:"balance"`
	Status                string          `json:"status"`
	InterestApplied       bool            `json:"interestApplied"`
	AppliedInterestAmount decimal.Decimal `json:"appliedInterestAmount"`
	AppliedInterestRate   decimal.Decimal `json:"appliedInterestRate"`
	LastInterestApplied   *int64          `json:"lastInterestApplied,omitempty"`
	CreatedDate           int64           `json:"createdDate"`
	LastUpdated           int64           `json:"lastUpdated"`
	CreatedBy             string          `json:"createdBy,omitempty"`
}

// ToCustomerResponse maps a domain customer to its API representation.
func ToCustomerResponse(c domain.Customer) CustomerResponse {
	return CustomerResponse{
		AccountNo:             c.AccountNo,
		Name:                  c.Name,
		Mobile:                c.Mobile,
		Address:               c.Address,
		Village:               c.Village,
		IDNumber:              c.IDNumber,
		AgentName:             c.AgentName,
		Route:                 c.Route,
		TotalAmount:           c.TotalAmount,
		WithdrawnAmount:       c.WithdrawnAmount,
		Balance:               c.Balance(),
		Status:                string(c.Status),
		InterestApplied:       c.InterestApplied,
		AppliedInterestAmount: c.AppliedInterestAmount,
		AppliedInterestRate:   c.AppliedInterestRate,
		LastInterestApplied:   c.LastInterestApplied,
		CreatedDate:           c.CreatedDate,
		LastUpdated:           c.LastUpdated,
		CreatedBy:             c.CreatedBy,
	}
}

// ToCustomerResponses maps a slice of domain customers.
func ToCustomerResponses(cs []domain.Customer) []CustomerResponse {
	out := make([]CustomerResponse, len(cs))
	for i, c := range cs {
		out[i] = ToCustomerResponse(c)
	}
	return out
}

// CustomerDetail is a customer together with its transaction history and
// derived figures.
type CustomerDetail struct {
	Customer     CustomerResponse      `json:"customer"`
	Transactions []TransactionResponse `json:"transactions"`
	Summary      ledger.Summary        `json:"summary"`

	// ProjectedInterestRate/Amount describe the interest the account has
	// currently earned but not yet had applied.
	ProjectedInterestRate   decimal.Decimal `json:"projectedInterestRate"`
	ProjectedInterestAmount decimal.Decimal `json:"projectedInterestAmount"`

	// IntegrityWarnings surfaces data problems (negative balance, orphaned
	// agent reference) without failing the read.
	IntegrityWarnings []string `json:"integrityWarnings,omitempty"`
}

// ApplyInterestSummary reports the outcome of a bulk interest run.
type ApplyInterestSummary struct {
	Applied int      `json:"applied"`
	Skipped int      `json:"skipped"`
	Failed  []string `json:"failed,omitempty"`
}
