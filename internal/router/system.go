package router

import (
	"github.com/deppfellow/fefu-exchange/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the routes outside the API: health,
// docs and the static files behind the docs.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.Static("/static", "static")
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
