package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/platops/user-directory/internal/api/handler"
	"github.com/platops/user-directory/internal/api/middleware"
	"github.com/platops/user-directory/internal/core/domain"
	"github.com/platops/user-directory/internal/core/ports"
	"github.com/platops/user-directory/internal/core/service"
	"github.com/platops/user-directory/internal/infrastructure/config"
	mongodb "github.com/platops/user-directory/internal/infrastructure/db/mongo"
	redisdb "github.com/platops/user-directory/internal/infrastructure/db/redis"
	"github.com/platops/user-directory/internal/infrastructure/report"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil, in which case the user read cache is disabled.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("directory"))

	// --- Dependencies ---
	var userRepo ports.UserRepository = mongodb.NewUserRepository(db)
	if rdb != nil {
		userRepo = redisdb.NewCachedUserRepository(userRepo, rdb, log)
	}

	tokens := service.NewTokenService(cfg.JWTSecret, time.Hour)
	users := service.NewUserService(userRepo, service.NewBcryptHasher(), tokens, report.NewCSVRenderer(), log)
	userHandler := handler.NewUserHandler(users)
	authRequired := middleware.Auth(tokens)

	// --- Directory routes ---
	e.POST("/login", userHandler.Login)
	e.GET("/users", userHandler.List)
	e.GET("/users/report", userHandler.Report, authRequired, middleware.RequireLevel(domain.LevelExport))
	e.GET("/users/:id", userHandler.Get)
	e.POST("/users", userHandler.Create)
	e.PUT("/users/:id", userHandler.Update)
	e.DELETE("/users/:id", userHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
