package services

import (
	"context"

	"github.com/Mubina-Mulla/Pigmi/internal/dto"
)

// ReportSvcFacade defines reporting operations.
type ReportSvcFacade interface {
	// DailyReport builds per-type totals and payment-mode groupings for all
	// transactions recorded on a calendar date (YYYY-MM-DD).
	DailyReport(ctx context.Context, date string) (*dto.DailyReportResponse, error)
}
