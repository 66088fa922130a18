package handler

import (
	"github.com/deppfellow/go-postrpc/internal/model/post"
	"github.com/deppfellow/go-postrpc/internal/server"
	"github.com/deppfellow/go-postrpc/internal/service"
	"github.com/labstack/echo/v4"
)

// PostHandler serves the post procedures.
type PostHandler struct {
	Handler
	postService *service.PostService
}

func NewPostHandler(s *server.Server, postService *service.PostService) *PostHandler {
	return &PostHandler{
		Handler:     NewHandler(s),
		postService: postService,
	}
}

// Hello is public. Text is guaranteed non-nil once validation passed.
func (h *PostHandler) Hello(c echo.Context, req *post.HelloRequest) (*post.HelloResponse, error) {
	return h.postService.Hello(c.Request().Context(), *req.Text)
}

// GetSecretMessage is mounted behind RequireAuth.
func (h *PostHandler) GetSecretMessage(c echo.Context, req *post.GetSecretMessageRequest) (string, error) {
	return h.postService.SecretMessage(), nil
}
