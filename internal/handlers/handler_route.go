package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Mubina-Mulla/Pigmi/internal/apperrors"
	portssvc "github.com/Mubina-Mulla/Pigmi/internal/core/ports/services"
	"github.com/Mubina-Mulla/Pigmi/internal/dto"
	"github.com/Mubina-Mulla/Pigmi/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RouteHandler holds the route service dependency.
type RouteHandler struct {
	routeService portssvc.RouteSvcFacade
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(rs portssvc.RouteSvcFacade) *RouteHandler {
	return &RouteHandler{routeService: rs}
}

// RegisterRouteRoutes registers collection-route routes on the authenticated group.
func RegisterRouteRoutes(rg *gin.RouterGroup, routeService portssvc.RouteSvcFacade) {
	h := NewRouteHandler(routeService)

	routes := rg.Group("/routes")
	{
		routes.POST("", h.CreateRoute)
		routes.GET("", h.ListRoutes)
		routes.GET("/:name", h.GetRoute)
		routes.PUT("/:name", h.UpdateRoute)
		routes.DELETE("/:name", h.DeleteRoute)
	}
}

// CreateRoute godoc
// @Summary Create a collection route
// @Tags routes
// @Accept json
// @Produce json
// @Param route body dto.CreateRouteRequest true "Route details"
// @Success 201 {object} dto.RouteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /routes [post]
func (h *RouteHandler) CreateRoute(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	route, err := h.routeService.CreateRoute(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create route", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create route"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToRouteResponse(*route))
}

// ListRoutes godoc
// @Summary List collection routes
// @Tags routes
// @Produce json
// @Success 200 {array} dto.RouteResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /routes [get]
func (h *RouteHandler) ListRoutes(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	routes, err := h.routeService.ListRoutes(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list routes", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list routes"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRouteResponses(routes))
}

// GetRoute godoc
// @Summary Get a collection route
// @Tags routes
// @Produce json
// @Param name path string true "Route Name"
// @Success 200 {object} dto.RouteResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /routes/{name} [get]
func (h *RouteHandler) GetRoute(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	name := c.Param("name")

	route, err := h.routeService.GetRoute(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Route not found"})
			return
		}
		logger.Error("Failed to get route", slog.String("route", name), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get route"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRouteResponse(*route))
}

// UpdateRoute godoc
// @Summary Replace a route's villages
// @Tags routes
// @Accept json
// @Produce json
// @Param name path string true "Route Name"
// @Param route body dto.UpdateRouteRequest true "New village list"
// @Success 200 {object} dto.RouteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /routes/{name} [put]
func (h *RouteHandler) UpdateRoute(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	name := c.Param("name")

	var req dto.UpdateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	route, err := h.routeService.UpdateRoute(c.Request.Context(), name, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Route not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update route", slog.String("route", name), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update route"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRouteResponse(*route))
}

// DeleteRoute godoc
// @Summary Delete a collection route
// @Tags routes
// @Param name path string true "Route Name"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /routes/{name} [delete]
func (h *RouteHandler) DeleteRoute(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	name := c.Param("name")

	if err := h.routeService.DeleteRoute(c.Request.Context(), name); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Route not found"})
			return
		}
		logger.Error("Failed to delete route", slog.String("route", name), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete route"})
		return
	}

	c.Status(http.StatusNoContent)
}
