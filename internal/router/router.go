// Package router builds the echo instance: global middleware, the system
// routes and the /api/v1 groups.
package router

import (
	"net/http"

	"github.com/deppfellow/fefu-exchange/internal/handler"
	"github.com/deppfellow/fefu-exchange/internal/middleware"
	"github.com/deppfellow/fefu-exchange/internal/server"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	r := echo.New()
	r.HideBanner = true
	r.HTTPErrorHandler = m.Global.GlobalErrorHandler

	r.Use(
		m.Global.Recover(),
		middleware.RequestID(),
		m.Tracing.NewRelicMiddleware(),
		m.Tracing.EnhanceTracing(),
		m.ContextEnhancer.EnhanceContext(),
		m.Global.RequestLogger(),
		m.Global.CORS(),
		m.Global.Secure(),
	)

	registerSystemRoutes(r, h)

	v1 := r.Group("/api/v1")
	registerPublicRoutes(v1, h)

	// Attached per route so unknown /api/v1 paths still answer 404.
	authed := []echo.MiddlewareFunc{m.Auth.RequireAuth, m.ContextEnhancer.EnhanceContext()}
	v1.POST("/accounts", handler.Handle(h.Accounts.Handler, h.Accounts.Register, http.StatusCreated, &handler.RegisterAccountRequest{}), authed...)

	account := append(authed[:len(authed):len(authed)], m.Account.RequireAccount)
	registerAccountRoutes(v1, h, account, m)

	s.Logger.Debug().Int("routes", len(r.Routes())).Msg("router ready")

	return r
}

// registerPublicRoutes serves what an anonymous client needs to render
// the forms.
func registerPublicRoutes(g *echo.Group, h *handler.Handlers) {
	g.GET("/forms", handler.Handle(h.Forms.Handler, h.Forms.List, http.StatusOK, &handler.EmptyRequest{}))
	g.GET("/forms/:name", handler.Handle(h.Forms.Handler, h.Forms.Get, http.StatusOK, &handler.GetFormRequest{}))
	g.GET("/captcha", handler.Handle(h.Forms.Handler, h.Forms.Captcha, http.StatusOK, &handler.EmptyRequest{}))
	g.GET("/groups", handler.Handle(h.Profiles.Handler, h.Profiles.Groups, http.StatusOK, &handler.EmptyRequest{}))
}

// registerAccountRoutes holds the endpoints that act on behalf of a
// registered account. mw loads that account.
func registerAccountRoutes(g *echo.Group, h *handler.Handlers, mw []echo.MiddlewareFunc, m *middleware.Middlewares) {
	limited := append(mw[:len(mw):len(mw)], m.RateLimit.LimitTransfers())

	g.GET("/accounts/me", handler.Handle(h.Accounts.Handler, h.Accounts.Me, http.StatusOK, &handler.EmptyRequest{}), mw...)
	g.PUT("/accounts/me", handler.Handle(h.Accounts.Handler, h.Accounts.Update, http.StatusOK, &handler.UpdateAccountRequest{}), mw...)

	g.POST("/profiles", handler.Handle(h.Profiles.Handler, h.Profiles.Register, http.StatusCreated, &handler.RegisterProfileRequest{}), mw...)
	g.GET("/profiles/me", handler.Handle(h.Profiles.Handler, h.Profiles.Get, http.StatusOK, &handler.EmptyRequest{}), mw...)
	g.PUT("/profiles/me", handler.Handle(h.Profiles.Handler, h.Profiles.Update, http.StatusOK, &handler.UpdateProfileRequest{}), mw...)

	g.GET("/transactions", handler.Handle(h.Transactions.Handler, h.Transactions.List, http.StatusOK, &handler.EmptyRequest{}), mw...)
	g.GET("/transactions/counterparties", handler.Handle(h.Transactions.Handler, h.Transactions.Counterparties, http.StatusOK, &handler.EmptyRequest{}), mw...)
	g.POST("/transactions", handler.Handle(h.Transactions.Handler, h.Transactions.Create, http.StatusCreated, &handler.CreateTransactionRequest{}), limited...)

	g.POST("/mail-claims", handler.Handle(h.MailClaims.Handler, h.MailClaims.Create, http.StatusCreated, &handler.CreateMailClaimRequest{}), mw...)

	g.POST("/tasks/:taskID/bids", handler.Handle(h.TaskBids.Handler, h.TaskBids.Create, http.StatusCreated, &handler.CreateTaskBidRequest{}), mw...)
}
