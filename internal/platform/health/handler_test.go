package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h *Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	r := chi.NewRouter()
	h.Register(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestLiveness(t *testing.T) {
	rec, body := serve(t, New("test"), "/health/live")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alive", body["status"])
}

func TestStatus(t *testing.T) {
	rec, body := serve(t, New("staging"), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "staging", body["environment"])
	assert.Equal(t, "memory", body["storage"])

	_, body = serve(t, New("staging", WithStorage("postgres")), "/health")
	assert.Equal(t, "postgres", body["storage"])
}

func TestReadiness(t *testing.T) {
	t.Run("all checks up", func(t *testing.T) {
		h := New("test")
		h.RegisterCheck("database", func(context.Context) error { return nil })
		rec, body := serve(t, h, "/health/ready")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ready", body["status"])
		assert.Equal(t, "up", body["checks"].(map[string]any)["database"])
	})

	t.Run("failing check", func(t *testing.T) {
		h := New("test")
		h.RegisterCheck("database", func(context.Context) error { return errors.New("connection refused") })
		rec, body := serve(t, h, "/health/ready")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "not_ready", body["status"])
		assert.Equal(t, "down: connection refused", body["checks"].(map[string]any)["database"])
	})

	t.Run("slow check times out", func(t *testing.T) {
		prev := CheckTimeout
		CheckTimeout = 10 * time.Millisecond
		defer func() { CheckTimeout = prev }()

		h := New("test")
		h.RegisterCheck("cache", func(context.Context) error { return nil })
		h.RegisterCheck("database", func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})
		rec, body := serve(t, h, "/health/ready")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		checks := body["checks"].(map[string]any)
		assert.Equal(t, "up", checks["cache"])
		assert.Equal(t, "down: context deadline exceeded", checks["database"])
	})
}
