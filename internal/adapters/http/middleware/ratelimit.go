package middleware

import (
	"encoding/json"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/mkoskela/qualcore/internal/adapters/http/dto"
)

// RateLimit returns middleware that rejects requests beyond the configured
// rate with 429 Too Many Requests. A requestsPerSecond of zero disables
// limiting and returns a pass-through middleware.
func RateLimit(requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	if requestsPerSecond <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				resp := dto.ErrorResponse{
					Type:     "about:blank",
					Title:    http.StatusText(http.StatusTooManyRequests),
					Status:   http.StatusTooManyRequests,
					Detail:   "request rate limit exceeded",
					Instance: r.RequestURI,
				}
				w.Header().Set("Content-Type", "application/problem+json")
				w.WriteHeader(resp.Status)
				_ = json.NewEncoder(w).Encode(resp)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
