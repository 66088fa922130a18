package middleware

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnhanceContext_PropagatesLogger(t *testing.T) {
	var buf bytes.Buffer
	enhancer := NewContextEnhancer(newTestServer(zerolog.New(&buf)))

	c, _ := newContext(http.MethodPost, "/api/post/hello")
	c.Set(RequestIDKey, "req-1")
	c.Set(UserIDKey, "user_9")

	err := enhancer.EnhanceContext()(func(c echo.Context) error {
		zerolog.Ctx(c.Request().Context()).Info().Msg("from service")
		GetLogger(c).Info().Msg("from handler")
		return nil
	})(c)
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte(`"request_id":"req-1"`)))
	assert.Contains(t, out, `"user_id":"user_9"`)
	assert.Contains(t, out, `"method":"POST"`)
}

func TestGetLogger_FallsBackToNop(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/")
	require.NotNil(t, GetLogger(c))
	GetLogger(c).Info().Msg("discarded")
}
