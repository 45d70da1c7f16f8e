package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"

	"github.com/orgboard/orgboard-api/internal/api/handler"
	"github.com/orgboard/orgboard-api/internal/api/middleware"
	"github.com/orgboard/orgboard-api/internal/core/ports"
	"github.com/orgboard/orgboard-api/internal/core/rbac"
)

// Deps carries everything the router wires together. Mongo and Redis are nil
// in local (sqlite) mode; the readiness probe adapts.
type Deps struct {
	Sessions ports.SessionService
	Tokens   ports.TokenService
	Matrix   rbac.Matrix
	Mongo    *mongo.Database
	Redis    *redis.Client
	Log      zerolog.Logger

	// Login throttle; zero values disable it.
	LoginRPS   rate.Limit
	LoginBurst int
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("orgboard"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Sessions)
	rbacHandler := handler.NewRBACHandler(deps.Matrix)
	authRequired := middleware.Auth(deps.Tokens)

	// --- Auth routes ---
	var loginMW []echo.MiddlewareFunc
	if deps.LoginRPS > 0 && deps.LoginBurst > 0 {
		loginMW = append(loginMW, middleware.LoginThrottle(deps.LoginRPS, deps.LoginBurst))
	}
	e.POST("/auth/login", authHandler.Login, loginMW...)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/logout", authHandler.Logout, authRequired)
	e.GET("/auth/session", authHandler.Session)

	// --- RBAC routes ---
	e.GET("/rbac/navigation", rbacHandler.Navigation, authRequired)
	e.GET("/rbac/permissions/:resource", rbacHandler.Permissions, authRequired)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
