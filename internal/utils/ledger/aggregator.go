// Package ledger folds a customer's transaction list into derived views:
// running totals, interest projections and report groupings. All functions
// are pure and never mutate their inputs.
package ledger

import (
	"time"

	"github.com/Mubina-Mulla/Pigmi/internal/core/domain"
	"github.com/Mubina-Mulla/Pigmi/internal/utils/interest"
	"github.com/shopspring/decimal"
)

// Summary is the fold of one customer's transactions.
type Summary struct {
	TotalDeposited  decimal.Decimal `json:"totalDeposited"` // Deposits + interest credits
	TotalWithdrawn  decimal.Decimal `json:"totalWithdrawn"`
	Balance         decimal.Decimal `json:"balance"`
	DepositCount    int             `json:"depositCount"`
	WithdrawalCount int             `json:"withdrawalCount"`
	InterestCount   int             `json:"interestCount"`

	// NegativeBalance flags a balance below zero. The model has no
	// overdraft protection, so this is a data-integrity warning for the
	// caller to surface, never a reason to clamp or fail.
	NegativeBalance bool `json:"negativeBalance"`
}

// Fold accumulates running totals over a transaction list.
func Fold(txns []domain.Transaction) Summary {
	var s Summary
	s.TotalDeposited = decimal.Zero
	s.TotalWithdrawn = decimal.Zero

	for _, t := range txns {
		switch t.Type {
		case domain.Deposit:
			s.TotalDeposited = s.TotalDeposited.Add(t.Amount)
			s.DepositCount++
		case domain.Interest:
			s.TotalDeposited = s.TotalDeposited.Add(t.Amount)
			s.InterestCount++
		case domain.Withdrawal:
			s.TotalWithdrawn = s.TotalWithdrawn.Add(t.Amount)
			s.WithdrawalCount++
		}
	}

	s.Balance = s.TotalDeposited.Sub(s.TotalWithdrawn)
	s.NegativeBalance = s.Balance.IsNegative()
	return s
}

// Merge combines transaction lists observed from multiple storage paths
// (the legacy per-agent nested mirror and the flat global path) into one
// de-duplicated list. Duplicates are collapsed by transaction ID with the
// later-observed occurrence winning, so callers pass the most authoritative
// source last. First-seen order of IDs is preserved; Merge is idempotent.
func Merge(sources ...[]domain.Transaction) []domain.Transaction {
	index := make(map[string]int)
	merged := make([]domain.Transaction, 0)

	for _, src := range sources {
		for _, t := range src {
			if i, seen := index[t.TransactionID]; seen {
				merged[i] = t
				continue
			}
			index[t.TransactionID] = len(merged)
			merged = append(merged, t)
		}
	}
	return merged
}

// GroupByType buckets transactions by type. The input slice is not mutated
// and bucket order follows the input order.
func GroupByType(txns []domain.Transaction) map[domain.TransactionType][]domain.Transaction {
	groups := make(map[domain.TransactionType][]domain.Transaction)
	for _, t := range txns {
		groups[t.Type] = append(groups[t.Type], t)
	}
	return groups
}

// GroupByMode buckets transactions by payment mode for reporting.
func GroupByMode(txns []domain.Transaction) map[domain.PaymentMode][]domain.Transaction {
	groups := make(map[domain.PaymentMode][]domain.Transaction)
	for _, t := range txns {
		groups[t.Mode] = append(groups[t.Mode], t)
	}
	return groups
}

// Sum totals the amounts of a transaction list.
func Sum(txns []domain.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(t.Amount)
	}
	return total
}

// BalanceWithInterest projects the balance a customer would hold if the
// currently accrued interest were applied. It is a projection only; nothing
// is persisted until an explicit apply-interest operation runs.
func BalanceWithInterest(c *domain.Customer, now time.Time) (decimal.Decimal, interest.Result) {
	res := interest.Calculate(c.Balance(), c.CreatedDate, now)
	return c.Balance().Add(res.Amount), res
}
