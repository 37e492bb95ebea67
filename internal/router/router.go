package router

import (
	"github.com/labstack/echo/v4"

	"github.com/enactusftu/gatekeeper/internal/config"
	"github.com/enactusftu/gatekeeper/internal/handler"
	"github.com/enactusftu/gatekeeper/internal/middleware"
)

// RegisterRoutes wires the public endpoints. The root path answers the
// hosting platform's keep-alive pings, /healthz is for infra probes.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Health)
	e.GET("/healthz", handler.Health)
}

// RegisterAdmin wires the operator surface. Login is open, everything
// under /v1/admin requires a valid access token with the ADMIN role.
func RegisterAdmin(e *echo.Echo, cfg *config.Config, auth *handler.AuthHandler, admin *handler.AdminHandler) {
	e.POST("/v1/auth/login", auth.Login)

	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(cfg.JWTSecret))
	g.Use(middleware.RequireRole("ADMIN"))

	g.GET("/sessions", admin.ListSessions)
	g.POST("/sweep", admin.TriggerSweep)
	g.POST("/expire/:id", admin.ExpireMember)
}
