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

// RecycleBinHandler holds the retention service dependency.
type RecycleBinHandler struct {
	retentionService portssvc.RetentionSvcFacade
}

// NewRecycleBinHandler creates a new RecycleBinHandler.
func NewRecycleBinHandler(rs portssvc.RetentionSvcFacade) *RecycleBinHandler {
	return &RecycleBinHandler{retentionService: rs}
}

// RegisterRecycleBinRoutes registers recycle-bin routes on the authenticated group.
func RegisterRecycleBinRoutes(rg *gin.RouterGroup, retentionService portssvc.RetentionSvcFacade) {
	h := NewRecycleBinHandler(retentionService)

	bin := rg.Group("/recycle-bin")
	{
		bin.GET("/customers", h.ListDeletedCustomers)
		bin.POST("/customers/:accountNo/restore", h.RestoreCustomer)
		bin.DELETE("/customers/:accountNo", h.PurgeCustomer)

		bin.GET("/agents", h.ListDeletedAgents)
		bin.POST("/agents/:name/restore", h.RestoreAgent)
		bin.DELETE("/agents/:name", h.PurgeAgent)
	}
}

// ListDeletedCustomers godoc
// @Summary List deleted customers
// @Description Lists customer recycle-bin entries with days remaining. Expired entries are purged on read.
// @Tags recycle-bin
// @Produce json
// @Success 200 {array} dto.DeletedCustomerResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /recycle-bin/customers [get]
func (h *RecycleBinHandler) ListDeletedCustomers(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	records, err := h.retentionService.ListDeletedCustomers(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list deleted customers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list deleted customers"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// RestoreCustomer godoc
// @Summary Restore a deleted customer
// @Description Restores the customer and its transaction history. Fails with 409 if the account number is live again.
// @Tags recycle-bin
// @Param accountNo path string true "Account Number"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /recycle-bin/customers/{accountNo}/restore [post]
func (h *RecycleBinHandler) RestoreCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	accountNo := c.Param("accountNo")

	if err := h.retentionService.RestoreCustomer(c.Request.Context(), accountNo); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Deleted customer not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to restore customer", slog.String("account_no", accountNo), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to restore customer"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// PurgeCustomer godoc
// @Summary Permanently remove a deleted customer
// @Tags recycle-bin
// @Param accountNo path string true "Account Number"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /recycle-bin/customers/{accountNo} [delete]
func (h *RecycleBinHandler) PurgeCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	accountNo := c.Param("accountNo")

	if err := h.retentionService.PurgeCustomer(c.Request.Context(), accountNo); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Deleted customer not found"})
			return
		}
		logger.Error("Failed to purge customer", slog.String("account_no", accountNo), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to purge customer"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListDeletedAgents godoc
// @Summary List deleted agents
// @Tags recycle-bin
// @Produce json
// @Success 200 {array} dto.DeletedAgentResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /recycle-bin/agents [get]
func (h *RecycleBinHandler) ListDeletedAgents(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	records, err := h.retentionService.ListDeletedAgents(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list deleted agents", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list deleted agents"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// RestoreAgent godoc
// @Summary Restore a deleted agent
// @Tags recycle-bin
// @Param name path string true "Agent Name"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /recycle-bin/agents/{name}/restore [post]
func (h *RecycleBinHandler) RestoreAgent(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	name := c.Param("name")

	if err := h.retentionService.RestoreAgent(c.Request.Context(), name); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Deleted agent not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to restore agent", slog.String("agent", name), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to restore agent"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// PurgeAgent godoc
// @Summary Permanently remove a deleted agent
// @Tags recycle-bin
// @Param name path string true "Agent Name"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /recycle-bin/agents/{name} [delete]
func (h *RecycleBinHandler) PurgeAgent(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	name := c.Param("name")

	if err := h.retentionService.PurgeAgent(c.Request.Context(), name); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Deleted agent not found"})
			return
		}
		logger.Error("Failed to purge agent", slog.String("agent", name), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to purge agent"})
		return
	}

	c.Status(http.StatusNoContent)
}
