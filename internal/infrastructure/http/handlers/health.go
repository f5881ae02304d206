// Package handlers holds the HTTP endpoints that sit outside the roster API
// surface: the liveness and readiness probes.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const probeTimeout = 3 * time.Second

// HealthHandler answers the liveness probe. It reports nothing beyond the
// process being up; dependency state belongs to the readiness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// HealthDependenciesHandler answers the readiness probe by pinging every
// backing store the roster depends on.
type HealthDependenciesHandler struct {
	checks []namedCheck
}

type namedCheck struct {
	name string
	ping func(ctx context.Context) error
}

func NewHealthDependenciesHandler(db *mongo.Database, rdb *redis.Client) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{checks: []namedCheck{
		{name: "mongodb", ping: func(ctx context.Context) error {
			return db.Client().Ping(ctx, nil)
		}},
		{name: "redis", ping: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}},
	}}
}

type checkStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status string                 `json:"status"`
	Checks map[string]checkStatus `json:"checks"`
}

func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	resp := readinessResponse{Status: "ok", Checks: make(map[string]checkStatus, len(h.checks))}
	code := http.StatusOK

	for _, check := range h.checks {
		if err := check.ping(ctx); err != nil {
			resp.Checks[check.name] = checkStatus{Status: "unhealthy", Error: err.Error()}
			resp.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[check.name] = checkStatus{Status: "ok"}
	}

	return c.JSON(code, resp)
}
