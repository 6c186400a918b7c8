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

// AgentHandler holds the agent service dependency.
type AgentHandler struct {
	agentService portssvc.AgentSvcFacade
}

// NewAgentHandler creates a new AgentHandler.
func NewAgentHandler(as portssvc.AgentSvcFacade) *AgentHandler {
	return &AgentHandler{agentService: as}
}

// RegisterAgentRoutes registers agent routes on the authenticated group.
func RegisterAgentRoutes(rg *gin.RouterGroup, agentService portssvc.AgentSvcFacade) {
	h := NewAgentHandler(agentService)

	agents := rg.Group("/agents")
	{
		agents.POST("", h.CreateAgent)
		agents.GET("", h.ListAgents)
		agents.GET("/:name", h.GetAgent)
		agents.PUT("/:name", h.UpdateAgent)
		agents.POST("/:name/rename", h.RenameAgent)
		agents.DELETE("/:name", h.DeleteAgent)
	}
}

// CreateAgent godoc
// @Summary Create a collection agent
// @Description Creates an agent with a bcrypt-hashed login password.
// @Tags agents
// @Accept json
// @Produce json
// @Param agent body dto.CreateAgentRequest true "Agent details"
// @Success 201 {object} dto.AgentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /agents [post]
func (h *AgentHandler) CreateAgent(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in token"})
		return
	}

	agent, err := h.agentService.CreateAgent(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create agent", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create agent"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToAgentResponse(*agent, 0))
}

// ListAgents godoc
// @Summary List agents
// @Description Lists all agents with their assigned customer counts.
// @Tags agents
// @Produce json
// @Success 200 {array} dto.AgentResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /agents [get]
func (h *AgentHandler) ListAgents(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	agents, err := h.agentService.ListAgents(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list agents", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list agents"})
		return
	}

	c.JSON(http.StatusOK, agents)
}

// GetAgent godoc
// @Summary Get an agent
// @Tags agents
// @Produce json
// @Param name path string true "Agent Name"
// @Success 200 {object} dto.AgentResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /agents/{name} [get]
func (h *AgentHandler) GetAgent(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	name := c.Param("name")

	agent, err := h.agentService.GetAgent(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Agent not found"})
			return
		}
		logger.Error("Failed to get agent", slog.String("agent", name), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get agent"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAgentResponse(*agent, 0))
}

// UpdateAgent godoc
// @Summary Update agent details
// @Description Updates an agent's mobile, address, routes or password.
// @Tags agents
// @Accept json
// @Produce json
// @Param name path string true "Agent Name"
// @Param agent body dto.UpdateAgentRequest true "Fields to update"
// @Success 200 {object} dto.AgentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /agents/{name} [put]
func (h *AgentHandler) UpdateAgent(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	name := c.Param("name")

	var req dto.UpdateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	agent, err := h.agentService.UpdateAgent(c.Request.Context(), name, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Agent not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update agent", slog.String("agent", name), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update agent"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAgentResponse(*agent, 0))
}

// RenameAgent godoc
// @Summary Rename an agent
// @Description Renames an agent and cascades the new name to every assigned customer.
// @Tags agents
// @Accept json
// @Produce json
// @Param name path string true "Current Agent Name"
// @Param rename body dto.RenameAgentRequest true "New name"
// @Success 200 {object} dto.AgentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /agents/{name}/rename [post]
func (h *AgentHandler) RenameAgent(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	name := c.Param("name")

	var req dto.RenameAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	agent, err := h.agentService.RenameAgent(c.Request.Context(), name, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Agent not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to rename agent", slog.String("agent", name), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to rename agent"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAgentResponse(*agent, 0))
}

// DeleteAgent godoc
// @Summary Delete an agent
// @Description Moves the agent to the recycle bin. Assigned customers are left in place.
// @Tags agents
// @Param name path string true "Agent Name"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /agents/{name} [delete]
func (h *AgentHandler) DeleteAgent(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	name := c.Param("name")

	deleterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in token"})
		return
	}

	if err := h.agentService.DeleteAgent(c.Request.Context(), name, deleterUserID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Agent not found"})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to delete agent", slog.String("agent", name), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete agent"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
