package services_test

import (
	"context"
	"testing"

	"github.com/Mubina-Mulla/Pigmi/internal/apperrors"
	"github.com/Mubina-Mulla/Pigmi/internal/core/domain"
	"github.com/Mubina-Mulla/Pigmi/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyReport(t *testing.T) {
	repo := new(MockCustomerRepository)
	repo.On("FindTransactionsByDate", context.Background(), "2026-08-15").Return([]domain.Transaction{
		{TransactionID: "TXN00000001", Type: domain.Deposit, Amount: decimal.NewFromInt(500), Mode: domain.ModeCash, Date: "2026-08-15"},
		{TransactionID: "TXN00000002", Type: domain.Deposit, Amount: decimal.NewFromInt(250), Mode: domain.ModeOnline, Date: "2026-08-15"},
		{TransactionID: "TXN00000003", Type: domain.Withdrawal, Amount: decimal.NewFromInt(100), Mode: domain.ModeCash, Date: "2026-08-15"},
		{TransactionID: "TXN00000004", Type: domain.Interest, Amount: decimal.NewFromInt(35), Mode: domain.ModeAuto, Date: "2026-08-15"},
	}, nil)

	report, err := services.NewReportService(repo).DailyReport(context.Background(), "2026-08-15")
	require.NoError(t, err)

	assert.Equal(t, 2, report.Deposits.Count)
	assert.True(t, report.Deposits.Total.Equal(decimal.NewFromInt(750)))
	assert.Equal(t, 1, report.Withdrawals.Count)
	assert.True(t, report.Withdrawals.Total.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 1, report.Interest.Count)
	assert.True(t, report.NetCollection.Equal(decimal.NewFromInt(685)), "net = %s", report.NetCollection)

	assert.Equal(t, 2, report.ByMode["cash"].Count)
	assert.Equal(t, 1, report.ByMode["online"].Count)
	assert.Equal(t, 1, report.ByMode["auto"].Count)
	assert.Len(t, report.Transactions, 4)
}

func TestDailyReport_InvalidDate(t *testing.T) {
	repo := new(MockCustomerRepository)
	_, err := services.NewReportService(repo).DailyReport(context.Background(), "15-08-2026")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
