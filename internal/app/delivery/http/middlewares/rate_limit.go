package middlewares

import (
	"medirdv-service/internal/pkg/exceptions"
	"medirdv-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimiter allows APP_MAX_REQUESTS per client IP within a window of
// APP_MAX_TIME_REQUESTS_PER_SECONDS and answers with the regular error
// envelope once exhausted.
func (m *Middlewares) RateLimiter() func(next http.Handler) http.Handler {
	window := time.Duration(m.InternalConfig.App.MaxTimeRequestsPerSeconds) * time.Second
	if window <= 0 {
		window = time.Second
	}
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(nil))
		}),
	)
}
