// Package http provides the HTTP server implementation for the agent.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/taskchat/agent/internal/repository"
	"github.com/taskchat/agent/internal/service"
	v1 "github.com/taskchat/agent/internal/transport/http/v1"
)

// NewServer creates and configures the HTTP server. It exposes the chat API
// plus thin read endpoints over conversations and tasks.
func NewServer(svc *service.Service, store repository.Store) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Handlers
	v1Handler := v1.NewHandler(svc, store)
	v1Handler.RegisterRoutes(e)

	return e
}
