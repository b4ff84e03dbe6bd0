package middleware

import "net/http"

// MaxBody caps the request body at max bytes. Oversized bodies surface as
// decode errors in the handlers, which report them as client errors.
func MaxBody(max int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, max)
			next.ServeHTTP(w, r)
		})
	}
}
