package router

import (
	"net/http"

	"github.com/deppfellow/go-postrpc/internal/handler"
	"github.com/deppfellow/go-postrpc/internal/middleware"
	"github.com/labstack/echo/v4"
)

// registerPostRoutes mounts the post procedures under /api/post.
//
//	POST /api/post/hello             public
//	GET  /api/post/getSecretMessage  requires a Clerk session
func registerPostRoutes(api *echo.Group, h *handler.Handlers, auth *middleware.AuthMiddleware) {
	posts := api.Group("/post")

	posts.POST("/hello", handler.Handle(h.Post.Hello, http.StatusOK))
	posts.GET("/getSecretMessage", handler.Handle(h.Post.GetSecretMessage, http.StatusOK), auth.RequireAuth)
}
