package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medirdv-service/internal/app/config"
	"medirdv-service/internal/pkg/constvars"
	"medirdv-service/internal/pkg/utils"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRequireHookToken(t *testing.T) {
	secret := "hook-secret"
	middlewares := NewMiddlewares(zap.NewNop(), &config.InternalConfig{
		Backend: config.AppBackend{HookSecret: secret, HookIssuer: "medirdv-backend"},
	})

	called := false
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		issuer, _ := r.Context().Value(constvars.CONTEXT_HOOK_ISSUER_KEY).(string)
		assert.Equal(t, "medirdv-backend", issuer)
		w.WriteHeader(http.StatusOK)
	})

	serve := func(token string) *httptest.ResponseRecorder {
		called = false
		req := httptest.NewRequest(http.MethodPost, "/api/v1/hooks/working-hours", nil)
		if token != "" {
			req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+token)
		}
		rr := httptest.NewRecorder()
		middlewares.RequireHookToken(testHandler).ServeHTTP(rr, req)
		return rr
	}

	t.Run("Valid Token", func(t *testing.T) {
		token, err := utils.GenerateHookJWT("medirdv-backend", secret, time.Minute)
		require.NoError(t, err)

		rr := serve(token)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, called)
	})

	t.Run("Missing Token", func(t *testing.T) {
		rr := serve("")

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, called)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		token, err := utils.GenerateHookJWT("medirdv-backend", "other-secret", time.Minute)
		require.NoError(t, err)

		rr := serve(token)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, called)
	})

	t.Run("Expired Token", func(t *testing.T) {
		token, err := utils.GenerateHookJWT("medirdv-backend", secret, -time.Minute)
		require.NoError(t, err)

		rr := serve(token)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Token Without Expiry", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Issuer: "medirdv-backend",
		}).SignedString([]byte(secret))
		require.NoError(t, err)

		rr := serve(token)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, called)
	})

	t.Run("Unexpected Issuer", func(t *testing.T) {
		token, err := utils.GenerateHookJWT("someone-else", secret, time.Minute)
		require.NoError(t, err)

		rr := serve(token)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, called)
	})
}
