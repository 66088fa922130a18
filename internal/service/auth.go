package service

// Clerk verifies session tokens with the secret key set here.
import (
	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/deppfellow/go-postrpc/internal/server"
)

type AuthService struct {
	server *server.Server
}

func NewAuthService(s *server.Server) *AuthService {
	clerk.SetKey(s.Config.Auth.SecretKey)
	return &AuthService{
		server: s,
	}
}
