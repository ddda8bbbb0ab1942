package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/deppfellow/fefu-exchange/internal/errs"
	"github.com/deppfellow/fefu-exchange/internal/lib/ratelimit"
	"github.com/deppfellow/fefu-exchange/internal/server"
	"github.com/labstack/echo/v4"
)

type Limiter interface {
	Consume(ctx context.Context, scope, subject string, limit int, window time.Duration) (ratelimit.Result, error)
}

type RateLimitMiddleware struct {
	server  *server.Server
	limiter Limiter
}

func NewRateLimitMiddleware(s *server.Server, limiter Limiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server:  s,
		limiter: limiter,
	}
}

// RecordRateLimitHit reports a rejected request to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint, subject string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
			"subject":  subject,
		})
	}
}

// Limit allows limit requests per window for each acting account (or
// subject, before an account exists) within scope. Limiter failures let
// the request through.
func (r *RateLimitMiddleware) Limit(scope string, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject := GetUserID(c)
			if account := GetAccount(c); account != nil {
				subject = strconv.FormatInt(account.ID, 10)
			}
			if subject == "" {
				subject = c.RealIP()
			}

			res, err := r.limiter.Consume(c.Request().Context(), scope, subject, limit, window)
			if err != nil {
				GetLogger(c).Error().Err(err).Str("scope", scope).Msg("rate limiter unavailable")
				return next(c)
			}

			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(res.Limit-res.Count, 0)))

			if !res.Allowed {
				r.RecordRateLimitHit(c.Path(), subject)
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())))
				return errs.NewTooManyRequestsError("Слишком много запросов, попробуйте позже.")
			}

			return next(c)
		}
	}
}

// LimitTransfers applies the configured transfer creation limit.
func (r *RateLimitMiddleware) LimitTransfers() echo.MiddlewareFunc {
	cfg := r.server.Config.Exchange
	return r.Limit("transfers", cfg.TransferRateLimit, cfg.TransferRateWindow)
}
