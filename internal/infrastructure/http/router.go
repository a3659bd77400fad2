package http

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"

	"github.com/consultorio-juridico/portal-session/internal/infrastructure/http/handlers"
)

// RegisterProbes mounts the operational endpoints on e. None of them
// requires the bridge token.
func RegisterProbes(e *echo.Echo, deps map[string]handlers.Pinger) {
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: store and backend
	e.GET("/metrics", echoprometheus.NewHandler())
}
