package middlewares

import (
	"context"
	"errors"
	"medirdv-service/internal/pkg/constvars"
	"medirdv-service/internal/pkg/exceptions"
	"medirdv-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

// RequireHookToken accepts backend callbacks signed with the shared HS256
// secret. When an issuer is configured the token must carry it.
func (m *Middlewares) RequireHookToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.GetRequestID(r.Context())

		token := utils.BearerToken(r)
		if token == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		secret := m.InternalConfig.Backend.HookSecret
		if secret == "" {
			m.Log.Warn("Middlewares.RequireHookToken no hook secret configured",
				zap.String(constvars.LoggingRequestIDKey, requestID),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(errors.New("hook secret not configured")))
			return
		}

		issuer, err := utils.ParseHookJWT(token, secret)
		if err != nil {
			m.Log.Warn("Middlewares.RequireHookToken rejected token",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		if expected := m.InternalConfig.Backend.HookIssuer; expected != "" && issuer != expected {
			m.Log.Warn("Middlewares.RequireHookToken unexpected issuer",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingIssuerKey, issuer),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(errors.New("unexpected issuer")))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_HOOK_ISSUER_KEY, issuer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
