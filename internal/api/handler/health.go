package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/core/ports"
)

// HealthHandler handles GET /health, the liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// ReadinessHandler handles GET /health/ready, the readiness probe.
// Checks the artifact store, the user store, and Redis (when configured)
// before declaring the service ready.
type ReadinessHandler struct {
	artifacts ports.ArtifactStore
	users     ports.UserRepository
	redis     *redis.Client // nil when the in-memory limiter is used
}

func NewReadinessHandler(artifacts ports.ArtifactStore, users ports.UserRepository, rdb *redis.Client) *ReadinessHandler {
	return &ReadinessHandler{
		artifacts: artifacts,
		users:     users,
		redis:     rdb,
	}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true

	// --- Artifacts loaded ---
	if len(h.artifacts.Schema()) == 0 {
		deps["artifacts"] = dependencyStatus{Status: "unhealthy", Error: "schema not loaded"}
		healthy = false
	} else {
		deps["artifacts"] = dependencyStatus{Status: "ok"}
	}

	// --- User store readable ---
	if _, err := h.users.LoadAll(ctx); err != nil {
		deps["user_store"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
		healthy = false
	} else {
		deps["user_store"] = dependencyStatus{Status: "ok"}
	}

	// --- Redis ping (optional dependency) ---
	if h.redis != nil {
		if _, err := h.redis.Ping(ctx).Result(); err != nil {
			deps["redis"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
		} else {
			deps["redis"] = dependencyStatus{Status: "ok"}
		}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
