package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/go-postrpc/internal/config"
	"github.com/deppfellow/go-postrpc/internal/errs"
	"github.com/deppfellow/go-postrpc/internal/model/post"
	"github.com/deppfellow/go-postrpc/internal/server"
	"github.com/deppfellow/go-postrpc/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCounter struct {
	count int64
	err   error
	calls int
}

func (s *stubCounter) Count(context.Context) (int64, error) {
	s.calls++
	return s.count, s.err
}

func newTestServer() *server.Server {
	log := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: config.EnvTest},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &log,
	}
}

func newPostHandler(counter *stubCounter) *PostHandler {
	return NewPostHandler(newTestServer(), service.NewPostService(counter))
}

func callHello(t *testing.T, h *PostHandler, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/post/hello", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := Handle(h.Hello, http.StatusOK)(e.NewContext(req, rec))
	return rec, err
}

func requireBadRequest(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	return httpErr
}

func TestPostHandler_Hello(t *testing.T) {
	counter := &stubCounter{count: 7}

	rec, err := callHello(t, newPostHandler(counter), `{"text":"hello there"}`)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"greeting":"Hello 7"}`, rec.Body.String())
	assert.Equal(t, 1, counter.calls)
}

func TestPostHandler_HelloAcceptsEmptyText(t *testing.T) {
	rec, err := callHello(t, newPostHandler(&stubCounter{count: 0}), `{"text":""}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"greeting":"Hello 0"}`, rec.Body.String())
}

func TestPostHandler_HelloRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "missing text", body: `{}`, field: "text"},
		{name: "null text", body: `{"text":null}`, field: "text"},
		{name: "number", body: `{"text":5}`, field: "text"},
		{name: "object", body: `{"text":{"a":1}}`, field: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := &stubCounter{count: 7}

			_, err := callHello(t, newPostHandler(counter), tt.body)

			httpErr := requireBadRequest(t, err)
			require.NotEmpty(t, httpErr.Errors)
			assert.Equal(t, tt.field, httpErr.Errors[0].Field)
			assert.Zero(t, counter.calls, "no query may run for invalid input")
		})
	}
}

func TestPostHandler_HelloRejectsMalformedJSON(t *testing.T) {
	counter := &stubCounter{}

	_, err := callHello(t, newPostHandler(counter), `{"text":`)

	requireBadRequest(t, err)
	assert.Zero(t, counter.calls)
}

func TestPostHandler_HelloDatabaseError(t *testing.T) {
	errDown := errors.New("connection refused")

	_, err := callHello(t, newPostHandler(&stubCounter{err: errDown}), `{"text":"x"}`)
	require.ErrorIs(t, err, errDown)
}

func TestPostHandler_RequestsAreNotShared(t *testing.T) {
	counter := &stubCounter{count: 1}
	h := newPostHandler(counter)

	_, err := callHello(t, h, `{"text":"first"}`)
	require.NoError(t, err)

	// A stale Text from the previous request must not satisfy "required".
	_, err = callHello(t, h, `{}`)
	requireBadRequest(t, err)
	assert.Equal(t, 1, counter.calls)
}

func TestPostHandler_GetSecretMessage(t *testing.T) {
	h := newPostHandler(&stubCounter{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/post/getSecretMessage", nil)
	rec := httptest.NewRecorder()

	err := Handle(h.GetSecretMessage, http.StatusOK)(e.NewContext(req, rec))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `"you can now see this secret message!"`, rec.Body.String())
}

func TestNewRequest_FreshValue(t *testing.T) {
	a := newRequest[*post.HelloRequest]()
	b := newRequest[*post.HelloRequest]()

	require.NotNil(t, a)
	assert.NotSame(t, a, b)
	assert.Nil(t, a.Text)
}
