package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	"github.com/deppfellow/fefu-exchange/internal/errs"
	"github.com/deppfellow/fefu-exchange/internal/server"
	"github.com/deppfellow/fefu-exchange/internal/service"
	"github.com/labstack/echo/v4"
)

type sessionReader interface {
	Session(ctx context.Context) (service.Session, bool)
}

type AuthMiddleware struct {
	server   *server.Server
	sessions sessionReader
}

func NewAuthMiddleware(s *server.Server, sessions sessionReader) *AuthMiddleware {
	return &AuthMiddleware{
		server:   s,
		sessions: sessions,
	}
}

// RequireAuth verifies the Clerk session token of the request and stores
// the subject under UserIDKey.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return echo.WrapMiddleware(
		clerkhttp.WithHeaderAuthorization(
			clerkhttp.AuthorizationFailureHandler(http.HandlerFunc(auth.writeUnauthorized))))(
		func(c echo.Context) error {
			session, ok := auth.sessions.Session(c.Request().Context())
			if !ok {
				auth.server.Logger.Error().
					Str("function", "RequireAuth").
					Str("request_id", GetRequestID(c)).
					Msg("could not get session claims from context")

				return errs.NewUnauthorizedError("Unauthorized", false)
			}

			c.Set(UserIDKey, session.Subject)
			c.Set(UserRoleKey, session.Role)

			return next(c)
		})
}

func (auth *AuthMiddleware) writeUnauthorized(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	err := json.NewEncoder(w).Encode(errs.NewUnauthorizedError("Unauthorized", false))

	event := auth.server.Logger.Warn()
	if err != nil {
		event = auth.server.Logger.Error().Err(err)
	}
	event.
		Str("function", "RequireAuth").
		Str("path", r.URL.Path).
		Dur("duration", time.Since(start)).
		Msg("rejected request without a valid session")
}
