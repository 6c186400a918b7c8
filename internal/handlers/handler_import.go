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

// ImportHandler holds the import service dependency.
type ImportHandler struct {
	importService portssvc.ImportSvcFacade
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(is portssvc.ImportSvcFacade) *ImportHandler {
	return &ImportHandler{importService: is}
}

// RegisterImportRoutes registers the legacy import route on the authenticated group.
func RegisterImportRoutes(rg *gin.RouterGroup, importService portssvc.ImportSvcFacade) {
	h := NewImportHandler(importService)

	rg.POST("/imports/legacy", h.ImportLegacy)
}

// ImportLegacy godoc
// @Summary Import a legacy data export
// @Description Parses a hierarchical JSON export, normalizes field variants and loads the records. Existing keys are skipped.
// @Tags imports
// @Accept json
// @Produce json
// @Success 200 {object} dto.ImportSummary
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /imports/legacy [post]
func (h *ImportHandler) ImportLegacy(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	// The export is taken raw; its shape is too irregular for binding.
	data, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read request body: " + err.Error()})
		return
	}

	importedBy, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in token"})
		return
	}

	summary, err := h.importService.ImportLegacy(c.Request.Context(), data, importedBy)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Legacy import failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to import legacy export"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
