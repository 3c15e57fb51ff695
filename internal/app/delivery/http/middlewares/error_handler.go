package middlewares

import (
	"errors"
	"fmt"
	"medirdv-service/internal/pkg/constvars"
	"medirdv-service/internal/pkg/exceptions"
	"medirdv-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

func (m *Middlewares) ErrorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				var err error
				switch x := rec.(type) {
				case string:
					err = errors.New(x)
				case error:
					err = x
				default:
					err = fmt.Errorf("unknown panic: %v", x)
				}

				m.Log.Error("Middlewares.ErrorHandler recovered from panic",
					zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
					zap.String(constvars.LoggingEndpointKey, r.URL.Path),
					zap.Error(err),
				)
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrPanicRecovered(err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
