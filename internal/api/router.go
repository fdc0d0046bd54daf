package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/api/handler"
	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/api/middleware"
	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/core/domain"
	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/core/ports"
)

// Deps carries everything the router needs. The user-store backend and the
// attempt limiter are chosen at bootstrap, so the router receives already
// constructed services.
type Deps struct {
	Auth      ports.AuthService
	Estimator ports.EstimatorService
	History   ports.HistoryService
	Artifacts ports.ArtifactStore
	Users     ports.UserRepository
	Redis     *redis.Client // nil when Redis is not configured
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("housing"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	predictionHandler := handler.NewPredictionHandler(d.Estimator, d.History, d.Artifacts)
	adminHandler := handler.NewAdminHandler(d.History)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Artifacts, d.Users, d.Redis)

	auth := middleware.Auth(d.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/otp", authHandler.RequestOTP)
	e.POST("/auth/verify", authHandler.VerifyOTP)
	e.POST("/auth/logout", authHandler.Logout, auth)

	// --- Prediction routes (authenticated) ---
	e.POST("/predict", predictionHandler.Predict, auth)
	e.GET("/history", predictionHandler.History, auth)
	e.GET("/dashboard", predictionHandler.Dashboard, auth)
	e.GET("/localities", predictionHandler.Localities)

	// --- Admin routes ---
	e.GET("/admin/summary", adminHandler.Summary, auth, middleware.RequireRole(domain.RoleAdmin))

	// --- Health probes and metrics (no auth required) ---
	e.GET("/health", healthHandler.Liveness)              // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)    // readiness – are artifacts and stores usable?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
