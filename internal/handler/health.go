package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/fefu-exchange/internal/middleware"
	"github.com/deppfellow/fefu-exchange/internal/server"
	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 5 * time.Second

// pinger is satisfied by the pgx pool and, through pingFunc, by Redis.
type pinger interface {
	Ping(ctx context.Context) error
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthHandler struct {
	Handler
	checks map[string]pinger
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	checks := map[string]pinger{}
	if s.DB != nil {
		checks["database"] = s.DB.Pool
	}
	if s.Redis != nil {
		checks["redis"] = pingFunc(func(ctx context.Context) error {
			return s.Redis.Ping(ctx).Err()
		})
	}

	return &HealthHandler{
		Handler: NewHandler(s),
		checks:  checks,
	}
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// CheckHealth pings every dependency. Any failure turns the answer into a
// 503, since both PostgreSQL and Redis are needed to save forms.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]checkResult, len(h.checks)),
	}

	for name, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
		checkStart := time.Now()
		err := check.Ping(ctx)
		cancel()

		result := checkResult{Status: "healthy", ResponseTime: time.Since(checkStart).String()}
		if err != nil {
			result.Status = "unhealthy"
			result.Error = err.Error()
			response.Status = "unhealthy"

			logger.Error().Err(err).Str("check", name).Msg("health check failed")
			h.recordFailure(name, err, time.Since(checkStart))
		}
		response.Checks[name] = result
	}

	logger.Debug().
		Str("status", response.Status).
		Dur("total_duration", time.Since(start)).
		Msg("health check done")

	if response.Status != "healthy" {
		return c.JSON(http.StatusServiceUnavailable, response)
	}
	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) recordFailure(check string, err error, took time.Duration) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}
	app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
		"check_type":       check,
		"operation":        "health_check",
		"error_type":       check + "_unhealthy",
		"response_time_ms": took.Milliseconds(),
		"error_message":    err.Error(),
	})
}
