// Package router builds the echo instance: global middleware, the error
// funnel, system routes and the procedure groups.
package router

import (
	"github.com/deppfellow/go-postrpc/internal/handler"
	"github.com/deppfellow/go-postrpc/internal/middleware"
	"github.com/deppfellow/go-postrpc/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter wires middleware and routes.
//
// Middleware order matters: the request ID must exist before tracing and
// the context logger read it, and the request logger must run inside the
// context enhancer to pick up the request-scoped logger.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.RateLimit.Limit(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api")
	registerPostRoutes(api, h, middlewares.Auth)

	return router
}
