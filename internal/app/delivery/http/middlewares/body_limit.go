package middlewares

import (
	"net/http"
)

const defaultRequestBodyLimitInMegabyte = 1

// BodyLimit caps request bodies; decoding a larger body fails with a parse error.
func (m *Middlewares) BodyLimit(next http.Handler) http.Handler {
	limit := int64(m.InternalConfig.App.RequestBodyLimitInMegabyte)
	if limit <= 0 {
		limit = defaultRequestBodyLimitInMegabyte
	}
	limit <<= 20

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
		}
		next.ServeHTTP(w, r)
	})
}
