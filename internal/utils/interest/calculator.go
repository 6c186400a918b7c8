// Package interest computes the time-tiered interest owed on a pigmi
// account balance. The computation is pure: applying the result to a
// balance is the caller's responsibility.
package interest

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tier rates by account age in whole calendar months. Only the highest
// matching tier applies; tiers never stack.
var (
	rateAfterYear     = decimal.NewFromInt(7)               // >= 12 months
	rateAfterHalfYear = decimal.RequireFromString("3.5")    // 6-11 months
	hundred           = decimal.NewFromInt(100)
)

// Result is the rate (percent) and amount of interest a balance has earned.
type Result struct {
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

// MonthsElapsed returns the number of whole calendar months between the
// account-open instant (epoch millis) and now. Day-of-month is deliberately
// ignored; the original product counts age at calendar-month granularity
// and compatibility requires preserving that.
func MonthsElapsed(openedAt int64, now time.Time) int {
	opened := time.UnixMilli(openedAt).In(now.Location())
	return (now.Year()-opened.Year())*12 + int(now.Month()) - int(opened.Month())
}

// Calculate returns the tier rate and interest amount for a balance on an
// account opened at openedAt (epoch millis). A zero openedAt means the open
// date is unknown and yields no interest. amount = balance * rate / 100,
// exact.
func Calculate(balance decimal.Decimal, openedAt int64, now time.Time) Result {
	if openedAt == 0 {
		return Result{Rate: decimal.Zero, Amount: decimal.Zero}
	}

	months := MonthsElapsed(openedAt, now)

	var rate decimal.Decimal
	switch {
	case months >= 12:
		rate = rateAfterYear
	case months >= 6:
		rate = rateAfterHalfYear
	default:
		return Result{Rate: decimal.Zero, Amount: decimal.Zero}
	}

	return Result{
		Rate:   rate,
		Amount: balance.Mul(rate).Div(hundred),
	}
}
