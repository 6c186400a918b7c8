package ledger_test

import (
	"testing"
	"time"

	"github.com/Mubina-Mulla/Pigmi/internal/core/domain"
	"github.com/Mubina-Mulla/Pigmi/internal/utils/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func txn(id string, typ domain.TransactionType, amount string) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		AccountNo:     "ACC1700000000000042",
		Type:          typ,
		Amount:        decimal.RequireFromString(amount),
		Mode:          domain.ModeCash,
	}
}

func TestFold_Totals(t *testing.T) {
	txns := []domain.Transaction{
		txn("TXN00000001", domain.Deposit, "500"),
		txn("TXN00000002", domain.Deposit, "250.50"),
		txn("TXN00000003", domain.Withdrawal, "100"),
		txn("TXN00000004", domain.Interest, "35"),
	}

	s := ledger.Fold(txns)
	assert.True(t, s.TotalDeposited.Equal(decimal.RequireFromString("785.50")), "deposited = %s", s.TotalDeposited)
	assert.True(t, s.TotalWithdrawn.Equal(decimal.NewFromInt(100)), "withdrawn = %s", s.TotalWithdrawn)
	assert.True(t, s.Balance.Equal(decimal.RequireFromString("685.50")), "balance = %s", s.Balance)
	assert.Equal(t, 2, s.DepositCount)
	assert.Equal(t, 1, s.WithdrawalCount)
	assert.Equal(t, 1, s.InterestCount)
	assert.False(t, s.NegativeBalance)
}

func TestFold_NegativeBalanceIsFlaggedNotClamped(t *testing.T) {
	txns := []domain.Transaction{
		txn("TXN00000001", domain.Deposit, "100"),
		txn("TXN00000002", domain.Withdrawal, "250"),
	}

	s := ledger.Fold(txns)
	assert.True(t, s.Balance.Equal(decimal.NewFromInt(-150)), "balance = %s", s.Balance)
	assert.True(t, s.NegativeBalance)
}

func TestFold_Empty(t *testing.T) {
	s := ledger.Fold(nil)
	assert.True(t, s.Balance.IsZero())
	assert.False(t, s.NegativeBalance)
}

func TestMerge_DuplicateIDsCollapseLaterWins(t *testing.T) {
	// The same transaction observed via the nested per-agent path and the
	// flat path must appear once, with the later source's copy kept.
	nested := []domain.Transaction{
		txn("TXN0A1B2C3D", domain.Deposit, "500"),
		txn("TXN11111111", domain.Deposit, "200"),
	}
	flat := []domain.Transaction{
		func() domain.Transaction {
			d := txn("TXN0A1B2C3D", domain.Deposit, "500")
			d.Note = "authoritative copy"
			return d
		}(),
		txn("TXN22222222", domain.Withdrawal, "50"),
	}

	merged := ledger.Merge(nested, flat)
	assert.Len(t, merged, 3)
	assert.Equal(t, "TXN0A1B2C3D", merged[0].TransactionID)
	assert.Equal(t, "authoritative copy", merged[0].Note)
	assert.Equal(t, "TXN11111111", merged[1].TransactionID)
	assert.Equal(t, "TXN22222222", merged[2].TransactionID)
}

func TestMerge_Idempotent(t *testing.T) {
	src := []domain.Transaction{
		txn("TXN00000001", domain.Deposit, "500"),
		txn("TXN00000002", domain.Withdrawal, "100"),
	}

	once := ledger.Merge(src)
	twice := ledger.Merge(once, once)
	assert.Equal(t, once, twice)
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	a := []domain.Transaction{txn("TXN00000001", domain.Deposit, "500")}
	b := []domain.Transaction{
		func() domain.Transaction {
			d := txn("TXN00000001", domain.Deposit, "500")
			d.Note = "replacement"
			return d
		}(),
	}

	_ = ledger.Merge(a, b)
	assert.Empty(t, a[0].Note)
}

func TestGroupByType(t *testing.T) {
	txns := []domain.Transaction{
		txn("TXN00000001", domain.Deposit, "500"),
		txn("TXN00000002", domain.Withdrawal, "100"),
		txn("TXN00000003", domain.Deposit, "200"),
	}

	groups := ledger.GroupByType(txns)
	assert.Len(t, groups[domain.Deposit], 2)
	assert.Len(t, groups[domain.Withdrawal], 1)
	assert.Equal(t, "TXN00000001", groups[domain.Deposit][0].TransactionID)
	assert.Equal(t, "TXN00000003", groups[domain.Deposit][1].TransactionID)
}

func TestGroupByMode(t *testing.T) {
	online := txn("TXN00000002", domain.Deposit, "300")
	online.Mode = domain.ModeOnline
	online.PhoneNumber = "9876543210"

	groups := ledger.GroupByMode([]domain.Transaction{
		txn("TXN00000001", domain.Deposit, "500"),
		online,
	})
	assert.Len(t, groups[domain.ModeCash], 1)
	assert.Len(t, groups[domain.ModeOnline], 1)
}

func TestSum(t *testing.T) {
	total := ledger.Sum([]domain.Transaction{
		txn("TXN00000001", domain.Deposit, "500"),
		txn("TXN00000002", domain.Deposit, "250.25"),
	})
	assert.True(t, total.Equal(decimal.RequireFromString("750.25")), "total = %s", total)
}

func TestBalanceWithInterest_Projection(t *testing.T) {
	now := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)
	c := &domain.Customer{
		AccountNo:   "ACC1700000000000042",
		TotalAmount: decimal.NewFromInt(1000),
		CreatedDate: now.AddDate(-2, 0, 0).UnixMilli(),
	}

	projected, res := ledger.BalanceWithInterest(c, now)
	assert.True(t, res.Rate.Equal(decimal.NewFromInt(7)), "rate = %s", res.Rate)
	assert.True(t, projected.Equal(decimal.NewFromInt(1070)), "projected = %s", projected)
	// Projection must not touch the customer.
	assert.True(t, c.Balance().Equal(decimal.NewFromInt(1000)))
}
