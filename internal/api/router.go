package api

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/consultorio-juridico/portal-session/docs"
	"github.com/consultorio-juridico/portal-session/internal/api/handler"
	"github.com/consultorio-juridico/portal-session/internal/api/middleware"
	"github.com/consultorio-juridico/portal-session/internal/core/domain"
	"github.com/consultorio-juridico/portal-session/internal/core/ports"
	probes "github.com/consultorio-juridico/portal-session/internal/infrastructure/http"
	"github.com/consultorio-juridico/portal-session/internal/infrastructure/http/handlers"
)

// Controller is everything the bridge drives.
type Controller interface {
	ports.SessionService
	ports.RosterService
	ports.CaseRecordService
}

// Deps are the collaborators of the bridge.
type Deps struct {
	Controller  Controller
	Activity    handler.ActivityQueue
	BridgeToken string
	Probes      map[string]handlers.Pinger
	Logger      zerolog.Logger
	Swagger     bool
	// Registerer receives the HTTP metrics. Nil means the default registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "portal",
		Subsystem:  "bridge",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Path(), "/health") || c.Path() == "/metrics"
		},
	}))

	// --- Probes and docs (no bridge token) ---
	probes.RegisterProbes(e, d.Probes)
	if d.Swagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	sessionHandler := handler.NewSessionHandler(d.Controller, d.Activity)
	studentHandler := handler.NewStudentHandler(d.Controller)
	recordHandler := handler.NewCaseRecordHandler(d.Controller)

	shell := e.Group("", middleware.BridgeToken(d.BridgeToken))

	// --- Session routes ---
	s := shell.Group("/session")
	s.GET("", sessionHandler.Get)
	s.POST("/login", sessionHandler.Login)
	s.POST("/logout", sessionHandler.Logout)
	s.POST("/register", sessionHandler.Register)
	s.POST("/register-student", sessionHandler.RegisterStudent)
	s.PUT("/profile", sessionHandler.UpdateProfile)
	s.POST("/forgot-password", sessionHandler.ForgotPassword)
	s.POST("/reset-password", sessionHandler.ResetPassword)
	s.POST("/clear-error", sessionHandler.ClearError)
	s.POST("/activity", sessionHandler.Activity)
	s.POST("/validate-code", sessionHandler.ValidateCode)
	s.POST("/validate-personal-data", sessionHandler.ValidatePersonalData)

	requireSession := middleware.RequireSession(d.Controller)

	// --- Coordinator routes ---
	coord := shell.Group("/coordinator", requireSession, middleware.RBAC(domain.RoleCoordinator))
	coord.GET("/students", studentHandler.List)
	coord.POST("/students", studentHandler.Create)
	coord.PUT("/students/:id", studentHandler.Update)
	coord.DELETE("/students/:id", studentHandler.Delete)

	// --- Case record routes ---
	records := shell.Group("/case-records", requireSession)
	records.GET("", recordHandler.List)
	records.POST("", recordHandler.Create)
	records.GET("/:id", recordHandler.Get)
	records.PUT("/:id", recordHandler.Update)
	records.DELETE("/:id", recordHandler.Delete)
	records.POST("/:id/reactivate", recordHandler.Reactivate)
	records.GET("/:id/pdf", recordHandler.PDF)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
