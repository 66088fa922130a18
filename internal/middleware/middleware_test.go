package middleware

import (
	"net/http"
	"net/http/httptest"

	"github.com/deppfellow/go-postrpc/internal/config"
	"github.com/deppfellow/go-postrpc/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestServer(log zerolog.Logger) *server.Server {
	return &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: config.EnvTest},
			Server:        config.ServerConfig{RateLimit: config.DefaultRateLimit},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &log,
	}
}

func newContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(httptest.NewRequest(method, target, nil), rec), rec
}

func ok(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}
