package domain

import (
	"github.com/shopspring/decimal"
)

// CustomerStatus is the lifecycle status flag carried on a customer record.
type CustomerStatus string

const (
	StatusActive   CustomerStatus = "Active"
	StatusInactive CustomerStatus = "Inactive"
)

// Customer represents a pigmi savings account holder within the core domain.
// This is the primary representation used by services.
//
// TotalAmount and WithdrawnAmount are cumulative running totals; they are
// never written directly, only through transaction application. The current
// balance is always the difference of the two.
type Customer struct {
	AccountNo             string          `json:"accountNo"` // Primary key, assigned at creation, immutable
	Name                  string          `json:"name"`
	Mobile                string          `json:"mobile"`
	Address               string          `json:"address"`
	Village               string          `json:"village"`
	IDNumber              string          `json:"idNumber"` // National ID number
	AgentName             string          `json:"agentName"`
	Route                 []string        `json:"route"`
	TotalAmount           decimal.Decimal `json:"totalAmount"`     // Cumulative deposits + interest credits
	WithdrawnAmount       decimal.Decimal `json:"withdrawnAmount"` // Cumulative withdrawals
	Status                CustomerStatus  `json:"status"`
	InterestApplied       bool            `json:"interestApplied"`
	AppliedInterestAmount decimal.Decimal `json:"appliedInterestAmount"`
	AppliedInterestRate   decimal.Decimal `json:"appliedInterestRate"`
	LastInterestApplied   *int64          `json:"lastInterestApplied,omitempty"` // Epoch millis
	CreatedDate           int64           `json:"createdDate"`                   // Epoch millis, immutable
	LastUpdated           int64           `json:"lastUpdated"`                   // Epoch millis
	CreatedBy             string          `json:"createdBy"`
	LastUpdatedBy         string          `json:"lastUpdatedBy"`
}

// Balance returns the current balance: cumulative deposits minus cumulative
// withdrawals. A negative result is possible (there is no overdraft
// protection); callers treat it as a data-integrity warning, not an error.
func (c *Customer) Balance() decimal.Decimal {
	return c.TotalAmount.Sub(c.WithdrawnAmount)
}
