package handlers

import (
	"io"

	"github.com/Mubina-Mulla/Pigmi/internal/middleware"
	"github.com/Mubina-Mulla/Pigmi/internal/watch"
	"github.com/gin-gonic/gin"
)

// EventHandler streams change notifications to dashboard sessions.
type EventHandler struct {
	broker *watch.Broker
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(b *watch.Broker) *EventHandler {
	return &EventHandler{broker: b}
}

// RegisterEventRoutes registers the event stream route on the authenticated group.
func RegisterEventRoutes(rg *gin.RouterGroup, broker *watch.Broker) {
	h := NewEventHandler(broker)

	rg.GET("/events", h.Stream)
}

// Stream godoc
// @Summary Subscribe to change events
// @Description Streams create/update/delete notifications for customers, agents and routes as server-sent events.
// @Tags events
// @Produce text/event-stream
// @Success 200 {object} watch.Event
// @Security BearerAuth
// @Router /events [get]
func (h *EventHandler) Stream(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	events, cancel := h.broker.Subscribe()
	defer cancel()

	logger.Debug("Event stream opened")

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("change", ev)
			return true
		}
	})

	logger.Debug("Event stream closed")
}
