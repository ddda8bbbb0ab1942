// Package middleware holds the echo middleware of the API: request ids,
// request-scoped loggers, New Relic tracing, Clerk authentication, loading
// the acting account and rate limiting.
package middleware

import (
	"github.com/deppfellow/fefu-exchange/internal/lib/ratelimit"
	"github.com/deppfellow/fefu-exchange/internal/server"
	"github.com/deppfellow/fefu-exchange/internal/service"
)

// Middlewares groups the middleware built once at startup.
type Middlewares struct {
	Global          *GlobalMiddlewares
	Auth            *AuthMiddleware
	Account         *AccountMiddleware
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	RateLimit       *RateLimitMiddleware
}

func NewMiddlewares(s *server.Server, auth *service.AuthService, accounts AccountLookup) *Middlewares {
	limiter := ratelimit.New(nil, "")
	if s.Redis != nil {
		limiter = ratelimit.New(s.Redis, "")
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Auth:            NewAuthMiddleware(s, auth),
		Account:         NewAccountMiddleware(s, accounts),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		RateLimit:       NewRateLimitMiddleware(s, limiter),
	}
}
