package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/loomra/crm-api/internal/api/handler"
	"github.com/loomra/crm-api/internal/api/middleware"
	"github.com/loomra/crm-api/internal/core/service"
	"github.com/loomra/crm-api/internal/infrastructure/db/postgres"
	"github.com/loomra/crm-api/internal/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sql.DB, tokens *token.Service, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("loomra"))

	// --- Dependencies ---
	authRepo := postgres.NewAuthRepository(db)
	clientRepo := postgres.NewClientRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	meetingRepo := postgres.NewMeetingRepository(db)
	dashboardRepo := postgres.NewDashboardRepository(db)

	authHandler := handler.NewAuthHandler(service.NewAuthService(authRepo, tokens))
	clientHandler := handler.NewClientHandler(service.NewClientService(clientRepo))
	taskHandler := handler.NewTaskHandler(service.NewTaskService(taskRepo))
	meetingHandler := handler.NewMeetingHandler(service.NewMeetingService(meetingRepo))
	dashboardHandler := handler.NewDashboardHandler(service.NewDashboardService(dashboardRepo))
	transferHandler := handler.NewTransferHandler(service.NewTransferService(clientRepo))
	healthHandler := handler.NewHealthHandler(db)

	// --- Probes and metrics (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Auth routes (no token required) ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	// --- Authenticated API ---
	api := e.Group("/api", middleware.Auth(tokens))

	api.GET("/auth/user", authHandler.Me)

	api.GET("/clients", clientHandler.List)
	api.POST("/clients", clientHandler.Create)
	api.GET("/clients/export", transferHandler.Export)
	api.POST("/clients/import", transferHandler.Import)
	api.GET("/clients/:id", clientHandler.Get)
	api.PUT("/clients/:id", clientHandler.Update)
	api.DELETE("/clients/:id", clientHandler.Delete)
	api.GET("/clients/:id/tasks", taskHandler.ListForClient)
	api.GET("/clients/:id/meetings", meetingHandler.ListForClient)

	api.GET("/tasks", taskHandler.List)
	api.POST("/tasks", taskHandler.Create)

	api.GET("/meetings", meetingHandler.List)
	api.POST("/meetings", meetingHandler.Create)

	api.GET("/dashboard/stats", dashboardHandler.Stats)
	api.GET("/dashboard/activity", dashboardHandler.Activity)

	return e
}
