package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"medirdv-service/internal/app/config"
	"medirdv-service/internal/pkg/constvars"
	"medirdv-service/internal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRequireAdminAPIKey(t *testing.T) {
	testAPIKey := "test-admin-api-key-12345"
	hash, err := utils.HashAPIKey(testAPIKey)
	require.NoError(t, err)

	middlewares := NewMiddlewares(zap.NewNop(), &config.InternalConfig{
		App: config.App{AdminAPIKeyHash: hash},
	})

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKeyAuth, ok := r.Context().Value(constvars.CONTEXT_API_KEY_AUTH_KEY).(bool)
		assert.True(t, ok, "api key flag should be set")
		assert.True(t, apiKeyAuth)

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})

	t.Run("Valid API Key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/availability/snapshots", nil)
		req.Header.Set(HeaderAPIKey, testAPIKey)

		rr := httptest.NewRecorder()
		middlewares.RequireAdminAPIKey(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "success", rr.Body.String())
	})

	t.Run("Missing API Key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/availability/snapshots", nil)

		rr := httptest.NewRecorder()
		middlewares.RequireAdminAPIKey(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "API key is required")
	})

	t.Run("Invalid API Key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/availability/snapshots", nil)
		req.Header.Set(HeaderAPIKey, "invalid-api-key")

		rr := httptest.NewRecorder()
		middlewares.RequireAdminAPIKey(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid API key")
	})

	t.Run("Not Configured", func(t *testing.T) {
		unconfigured := NewMiddlewares(zap.NewNop(), &config.InternalConfig{})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/availability/snapshots", nil)
		req.Header.Set(HeaderAPIKey, testAPIKey)

		rr := httptest.NewRecorder()
		unconfigured.RequireAdminAPIKey(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}
