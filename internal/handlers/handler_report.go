package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Mubina-Mulla/Pigmi/internal/apperrors"
	portssvc "github.com/Mubina-Mulla/Pigmi/internal/core/ports/services"
	"github.com/Mubina-Mulla/Pigmi/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ReportHandler holds the report service dependency.
type ReportHandler struct {
	reportService portssvc.ReportSvcFacade
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs portssvc.ReportSvcFacade) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// RegisterReportRoutes registers reporting routes on the authenticated group.
func RegisterReportRoutes(rg *gin.RouterGroup, reportService portssvc.ReportSvcFacade) {
	h := NewReportHandler(reportService)

	reports := rg.Group("/reports")
	{
		reports.GET("/daily/:date", h.DailyReport)
	}
}

// DailyReport godoc
// @Summary Daily collection report
// @Description Totals deposits, withdrawals and interest credits for one calendar date, grouped by payment mode.
// @Tags reports
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.DailyReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/daily/{date} [get]
func (h *ReportHandler) DailyReport(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	date := c.Param("date")

	report, err := h.reportService.DailyReport(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to build daily report", slog.String("date", date), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build daily report"})
		return
	}

	c.JSON(http.StatusOK, report)
}
