package handler

import (
	"github.com/deppfellow/go-postrpc/internal/server"
	"github.com/deppfellow/go-postrpc/internal/service"
)

// Handlers groups every HTTP handler so router setup takes one value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Post    *PostHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Post:    NewPostHandler(s, services.Post),
	}
}
