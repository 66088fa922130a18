package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/deppfellow/go-postrpc/internal/config"
	"github.com/deppfellow/go-postrpc/internal/errs"
	"github.com/deppfellow/go-postrpc/internal/handler"
	"github.com/deppfellow/go-postrpc/internal/middleware"
	"github.com/deppfellow/go-postrpc/internal/server"
	"github.com/deppfellow/go-postrpc/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCounter struct {
	count int64
	calls int
}

func (s *stubCounter) Count(context.Context) (int64, error) {
	s.calls++
	return s.count, nil
}

func newTestRouter(t *testing.T, counter *stubCounter) *echo.Echo {
	t.Helper()

	log := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: config.EnvTest},
			Server: config.ServerConfig{
				CORSAllowedOrigins: []string{"*"},
				RateLimit:          1000,
			},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &log,
	}

	services := &service.Services{Post: service.NewPostService(counter)}
	return NewRouter(s, handler.NewHandlers(s, services))
}

func serve(r *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestHello(t *testing.T) {
	counter := &stubCounter{count: 3}
	r := newTestRouter(t, counter)

	rec := serve(r, jsonRequest(http.MethodPost, "/api/post/hello", `{"text":"hi"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"greeting":"Hello 3"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestHello_ValidationError(t *testing.T) {
	counter := &stubCounter{count: 3}
	r := newTestRouter(t, counter)

	rec := serve(r, jsonRequest(http.MethodPost, "/api/post/hello", `{"text":42}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "BAD_REQUEST", body.Code)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "text", body.Errors[0].Field)
	assert.Zero(t, counter.calls)
}

func TestGetSecretMessage_Unauthenticated(t *testing.T) {
	r := newTestRouter(t, &stubCounter{})

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/api/post/getSecretMessage", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "UNAUTHORIZED", body.Code)
}

func TestGetSecretMessage_Authenticated(t *testing.T) {
	r := newTestRouter(t, &stubCounter{})

	req := httptest.NewRequest(http.MethodGet, "/api/post/getSecretMessage", nil)
	claims := &clerk.SessionClaims{RegisteredClaims: clerk.RegisteredClaims{Subject: "user_123"}}
	req = req.WithContext(clerk.ContextWithSessionClaims(req.Context(), claims))

	rec := serve(r, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `"you can now see this secret message!"`, rec.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t, &stubCounter{})

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/api/post/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Route not found", body.Message)
}

func TestStatus_WithoutDatabase(t *testing.T) {
	r := newTestRouter(t, &stubCounter{})

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/status", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
