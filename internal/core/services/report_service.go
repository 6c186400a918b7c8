package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Mubina-Mulla/Pigmi/internal/apperrors"
	"github.com/Mubina-Mulla/Pigmi/internal/core/domain"
	portsrepo "github.com/Mubina-Mulla/Pigmi/internal/core/ports/repositories"
	portssvc "github.com/Mubina-Mulla/Pigmi/internal/core/ports/services"
	"github.com/Mubina-Mulla/Pigmi/internal/dto"
	"github.com/Mubina-Mulla/Pigmi/internal/utils/ledger"
)

// reportService implements the ReportSvcFacade interface
type reportService struct {
	BaseService
	txnRepo portsrepo.TransactionReader
}

// NewReportService creates a new reporting service
func NewReportService(txnRepo portsrepo.TransactionReader) portssvc.ReportSvcFacade {
	return &reportService{txnRepo: txnRepo}
}

var _ portssvc.ReportSvcFacade = (*reportService)(nil)

func (s *reportService) DailyReport(ctx context.Context, date string) (*dto.DailyReportResponse, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid report date %q: %w", date, apperrors.ErrValidation)
	}

	txns, err := s.txnRepo.FindTransactionsByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for %s: %w", date, err)
	}

	byType := ledger.GroupByType(txns)
	deposits := byType[domain.Deposit]
	withdrawals := byType[domain.Withdrawal]
	interestCredits := byType[domain.Interest]

	report := &dto.DailyReportResponse{
		Date:         date,
		Deposits:     dto.ReportBucket{Count: len(deposits), Total: ledger.Sum(deposits)},
		Withdrawals:  dto.ReportBucket{Count: len(withdrawals), Total: ledger.Sum(withdrawals)},
		Interest:     dto.ReportBucket{Count: len(interestCredits), Total: ledger.Sum(interestCredits)},
		ByMode:       make(map[string]dto.ReportBucket),
		Transactions: dto.ToTransactionResponses(txns),
	}
	report.NetCollection = report.Deposits.Total.Add(report.Interest.Total).Sub(report.Withdrawals.Total)

	for mode, group := range ledger.GroupByMode(txns) {
		report.ByMode[string(mode)] = dto.ReportBucket{Count: len(group), Total: ledger.Sum(group)}
	}

	s.LogDebug(ctx, "Daily report built",
		slog.String("date", date),
		slog.Int("transactions", len(txns)))
	return report, nil
}
