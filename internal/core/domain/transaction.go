package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a transaction as a deposit, a withdrawal, or an
// interest credit.
type TransactionType string

const (
	Deposit    TransactionType = "deposit"
	Withdrawal TransactionType = "withdrawal"
	Interest   TransactionType = "interest"
)

// PaymentMode is how a payment was collected. Interest credits carry
// ModeAuto since they are recorded by the system, not collected.
type PaymentMode string

const (
	ModeCash   PaymentMode = "cash"
	ModeOnline PaymentMode = "online"
	ModeCheck  PaymentMode = "check"
	ModeAuto   PaymentMode = "auto"
)

// Transaction is a single immutable ledger entry against one customer
// account. Once created it is never edited or individually deleted; it only
// moves with its owning customer into retention.
type Transaction struct {
	TransactionID string          `json:"transactionId"` // Primary key, generated, immutable
	AccountNo     string          `json:"accountNo"`     // Owning customer account
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"` // Always positive
	Date          string          `json:"date"`   // YYYY-MM-DD, for daily reporting
	Timestamp     int64           `json:"timestamp"`
	Mode          PaymentMode     `json:"mode"`
	PhoneNumber   string          `json:"phoneNumber,omitempty"` // Counterparty, online mode only
	Note          string          `json:"note,omitempty"`
	AddedBy       string          `json:"addedBy"`
}

// Validate checks the structural invariants of a transaction.
func (t *Transaction) Validate() error {
	if t.TransactionID == "" {
		return errors.New("transaction ID is required")
	}
	if !strings.HasPrefix(t.TransactionID, "TXN") {
		return errors.New("transaction ID must start with \"TXN\"")
	}
	if t.AccountNo == "" {
		return errors.New("owning account number is required")
	}
	switch t.Type {
	case Deposit, Withdrawal, Interest:
	default:
		return errors.New("transaction type must be deposit, withdrawal or interest")
	}
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("transaction amount must be positive")
	}
	switch t.Mode {
	case ModeCash, ModeOnline, ModeCheck, ModeAuto:
	default:
		return errors.New("payment mode must be cash, online, check or auto")
	}
	if t.PhoneNumber != "" && t.Mode != ModeOnline {
		return errors.New("counterparty phone number is only valid for online payments")
	}
	return nil
}
