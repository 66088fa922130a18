package service

import (
	"github.com/deppfellow/go-postrpc/internal/repository"
	"github.com/deppfellow/go-postrpc/internal/server"
)

type Services struct {
	Auth *AuthService
	Post *PostService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Auth: NewAuthService(s),
		Post: NewPostService(repos.Product),
	}, nil
}
