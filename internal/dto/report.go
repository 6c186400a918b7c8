package dto

import (
	"github.com/shopspring/decimal"
)

// ReportBucket is one grouping line of a daily report.
type ReportBucket struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// DailyReportResponse summarizes one calendar day of collections.
type DailyReportResponse struct {
	Date string `json:"date"`

	Deposits    ReportBucket `json:"deposits"`
	Withdrawals ReportBucket `json:"withdrawals"`
	Interest    ReportBucket `json:"interest"`

	// NetCollection is deposits plus interest minus withdrawals.
	NetCollection decimal.Decimal `json:"netCollection"`

	// ByMode groups the day's transactions by payment mode.
	ByMode map[string]ReportBucket `json:"byMode"`

	Transactions []TransactionResponse `json:"transactions"`
}
