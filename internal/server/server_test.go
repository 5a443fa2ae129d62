package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"quill/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The app used by Start is built in one place; this exercises that full
// construction (error handler, middleware chain, routes) plus Shutdown.
func TestServerAppLifecycle(t *testing.T) {
	db := setupHandlerTestDB(t)
	cfg := &config.Config{JWTSecret: "test_secret", Env: "test", Port: "0"}
	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := s.setupApp()
	require.Same(t, app, s.app)

	t.Run("Liveness through full middleware chain", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, "/health/live", nil)
		require.NoError(t, err)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Unknown route goes through the error handler", func(t *testing.T) {
		resp, envelope := doJSON(t, app, http.MethodGet, "/api/nope", "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, http.StatusNotFound, envelope.StatusCode)
	})

	t.Run("Protected routes are registered", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodGet, "/api/posts", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
}
