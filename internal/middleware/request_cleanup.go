package middleware

import (
	"io"
	"net/http"
)

// DefaultMaxRequestBody caps frame submissions and session payloads.
const DefaultMaxRequestBody int64 = 4 << 20

// LimitAndDrainRequest caps the request body at maxBytes, then drains and
// closes whatever the handler left unread so the connection can be reused.
func LimitAndDrainRequest(maxBytes int64) func(next http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxRequestBody
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
			if r.Body != nil {
				_, _ = io.Copy(io.Discard, r.Body)
				_ = r.Body.Close()
			}
		})
	}
}
