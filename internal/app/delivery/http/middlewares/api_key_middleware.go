package middlewares

import (
	"context"
	"medirdv-service/internal/pkg/constvars"
	"medirdv-service/internal/pkg/exceptions"
	"medirdv-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

const HeaderAPIKey = "x-api-key"

// RequireAdminAPIKey guards operator endpoints. The configured value is a
// bcrypt hash of the key, never the key itself.
func (m *Middlewares) RequireAdminAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.GetRequestID(r.Context())

		hash := m.InternalConfig.App.AdminAPIKeyHash
		if hash == "" {
			m.Log.Warn("Middlewares.RequireAdminAPIKey no admin api key configured",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrAPIKeyNotConfigured(nil))
			return
		}

		apiKey := r.Header.Get(HeaderAPIKey)
		if apiKey == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrAPIKeyRequired(nil))
			return
		}

		if !utils.CheckAPIKeyHash(apiKey, hash) {
			m.Log.Warn("Middlewares.RequireAdminAPIKey invalid api key",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_API_KEY_AUTH_KEY, true)

		m.Log.Info("API Key authentication successful",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
			zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			zap.String(constvars.LoggingMethodKey, r.Method),
		)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
