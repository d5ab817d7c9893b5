// Package http serves the console's local diagnostics endpoint. Long-running
// kiosk deployments scrape it for health and metrics; it binds to loopback
// by default and serves nothing else.
package http

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/weathersafe/admin-console/internal/core/ports"
	"github.com/weathersafe/admin-console/internal/infrastructure/http/handlers"
)

// NewRouter builds the Echo instance with the diagnostics routes registered.
func NewRouter(serverURL string, storage ports.CredentialStorage) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	healthHandler := handlers.NewHealthHandler()
	readyHandler := handlers.NewReadinessHandler(serverURL, storage)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readyHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
