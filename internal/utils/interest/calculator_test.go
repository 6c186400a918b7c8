package interest_test

import (
	"testing"
	"time"

	"github.com/Mubina-Mulla/Pigmi/internal/utils/interest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// openedMonthsAgo builds an open timestamp a whole number of calendar
// months before now.
func openedMonthsAgo(now time.Time, months int) int64 {
	return now.AddDate(0, -months, 0).UnixMilli()
}

func TestCalculate_TierBoundaries(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	balance := decimal.NewFromInt(1000)

	tests := []struct {
		name       string
		months     int
		wantRate   string
		wantAmount string
	}{
		{"brand new account", 0, "0", "0"},
		{"five months", 5, "0", "0"},
		{"six months reaches first tier", 6, "3.5", "35"},
		{"eleven months stays in first tier", 11, "3.5", "35"},
		{"twelve months reaches top tier", 12, "7", "70"},
		{"two years stays at top tier", 24, "7", "70"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := interest.Calculate(balance, openedMonthsAgo(now, tt.months), now)
			assert.True(t, got.Rate.Equal(decimal.RequireFromString(tt.wantRate)),
				"rate = %s, want %s", got.Rate, tt.wantRate)
			assert.True(t, got.Amount.Equal(decimal.RequireFromString(tt.wantAmount)),
				"amount = %s, want %s", got.Amount, tt.wantAmount)
		})
	}
}

func TestCalculate_AmountIsExact(t *testing.T) {
	now := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)

	// amount must equal balance * rate / 100 with no drift.
	balance := decimal.RequireFromString("1234.56")
	got := interest.Calculate(balance, openedMonthsAgo(now, 8), now)
	want := balance.Mul(decimal.RequireFromString("3.5")).Div(decimal.NewFromInt(100))
	assert.True(t, got.Amount.Equal(want), "amount = %s, want %s", got.Amount, want)
}

func TestCalculate_FourHundredDayOldAccount(t *testing.T) {
	now := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)
	openedAt := now.AddDate(0, 0, -400).UnixMilli()

	got := interest.Calculate(decimal.NewFromInt(1000), openedAt, now)
	assert.True(t, got.Rate.Equal(decimal.NewFromInt(7)), "rate = %s", got.Rate)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(70)), "amount = %s", got.Amount)
}

func TestCalculate_UnknownOpenDate(t *testing.T) {
	got := interest.Calculate(decimal.NewFromInt(1000), 0, time.Now())
	assert.True(t, got.Rate.IsZero())
	assert.True(t, got.Amount.IsZero())
}

func TestMonthsElapsed_IgnoresDayOfMonth(t *testing.T) {
	now := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)

	// Opened on the 31st of the previous month still counts as one month.
	opened := time.Date(2026, time.July, 31, 23, 59, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, 1, interest.MonthsElapsed(opened, now))

	// Opened later in the same month counts as zero.
	sameMonth := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, 0, interest.MonthsElapsed(sameMonth, now))
}
