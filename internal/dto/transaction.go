package dto

import (
	"github.com/Mubina-Mulla/Pigmi/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordTransactionRequest is the request body for recording a deposit or
// withdrawal on an account. Interest credits are never accepted here; they
// are only written by the apply-interest operations.
type RecordTransactionRequest struct {
	Type        domain.TransactionType `json:"type" binding:"required,oneof=deposit withdrawal"`
	Amount      decimal.Decimal        `json:"amount" binding:"required,positivedecimal"`
	Mode        domain.PaymentMode     `json:"mode" binding:"required,oneof=cash online check"`
	PhoneNumber string                 `json:"phoneNumber,omitempty"`
	Note        string                 `json:"note,omitempty"`
}

// TransactionResponse is the API representation of a ledger transaction.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionId"`
	AccountNo     string                 `json:"accountNo"`
	Type          domain.TransactionType `json:"type"`
	Amount        decimal.Decimal        `json:"amount"`
	Date          string                 `json:"date"`
	Timestamp     int64                  `json:"timestamp"`
	Mode          domain.PaymentMode     `json:"mode"`
	PhoneNumber   string                 `json:"phoneNumber,omitempty"`
	Note          string                 `json:"note,omitempty"`
	AddedBy       string                 `json:"addedBy,omitempty"`
}

// ToTransactionResponse maps a domain transaction to its API representation.
func ToTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		AccountNo:     t.AccountNo,
		Type:          t.Type,
		Amount:        t.Amount,
		Date:          t.Date,
		Timestamp:     t.Timestamp,
		Mode:          t.Mode,
		PhoneNumber:   t.PhoneNumber,
		Note:          t.Note,
		AddedBy:       t.AddedBy,
	}
}

// ToTransactionResponses maps a slice of domain transactions.
func ToTransactionResponses(ts []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(ts))
	for i, t := range ts {
		out[i] = ToTransactionResponse(t)
	}
	return out
}
