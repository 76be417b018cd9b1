// Package v1 provides the v1 HTTP handlers for the agent.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskchat/agent/internal/repository"
	"github.com/taskchat/agent/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
	store   repository.Store
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service, store repository.Store) *Handler {
	return &Handler{
		service: service,
		store:   store,
	}
}

// RegisterRoutes registers the v1 routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Chat API
	e.POST("/v1/users/:user_id/chat", h.Chat)
	e.POST("/v1/users/:user_id/conversations", h.NewConversation)

	// Read API
	e.GET("/v1/users/:user_id/conversations", h.ListConversations)
	e.GET("/v1/users/:user_id/conversations/:conversation_id/messages", h.GetConversationMessages)
	e.GET("/v1/users/:user_id/tasks", h.ListTasks)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}
