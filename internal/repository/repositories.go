package repository

import (
	"github.com/deppfellow/go-postrpc/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Product *ProductRepository
}

// NewRepositories builds every repository on top of the shared pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Product: NewProductRepository(s.DB.Pool),
	}
}
