package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/aarogyasaathi/medrecords-api/internal/api/handler"
	"github.com/aarogyasaathi/medrecords-api/internal/api/metrics"
	"github.com/aarogyasaathi/medrecords-api/internal/api/middleware"
	"github.com/aarogyasaathi/medrecords-api/internal/core/domain"
	"github.com/aarogyasaathi/medrecords-api/internal/core/service"
	"github.com/aarogyasaathi/medrecords-api/internal/infrastructure/config"
	"github.com/aarogyasaathi/medrecords-api/internal/infrastructure/db/postgres"
	redisinfra "github.com/aarogyasaathi/medrecords-api/internal/infrastructure/db/redis"
	"github.com/aarogyasaathi/medrecords-api/internal/session"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(pool *pgxpool.Pool, rdb *redis.Client, registry *session.Registry, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("medrecords"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(pool)
	recordRepo := postgres.NewRecordRepository(pool)
	throttle := redisinfra.NewLoginThrottle(rdb)

	authService := service.NewAuthService(userRepo, registry, throttle, log)
	recordService := service.NewRecordService(recordRepo, userRepo, log)
	directoryService := service.NewDirectoryService(userRepo, userRepo)

	authHandler := handler.NewAuthHandler(authService, cfg.SessionTTL)
	recordHandler := handler.NewRecordHandler(recordService)
	directoryHandler := handler.NewDirectoryHandler(directoryService, recordService)

	sessionMW := middleware.Session(registry)
	metrics.RegisterSessionsActive(registry.Len)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, sessionMW)

	// --- Authenticated API ---
	v1 := e.Group("/v1", sessionMW)
	v1.GET("/me", directoryHandler.Me)
	v1.GET("/records", recordHandler.List)
	v1.POST("/records", recordHandler.Create, middleware.RBAC(domain.RoleDoctor))
	v1.GET("/patients", directoryHandler.Patients, middleware.RBAC(domain.RoleDoctor))
	v1.GET("/doctors", directoryHandler.Doctors, middleware.RBAC(domain.RolePatient))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Observability / docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	if cfg.Env == "development" {
		e.GET("/swagger/*", echoswagger.WrapHandler)
	}

	return e
}
