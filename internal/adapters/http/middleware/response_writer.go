// Package middleware provides HTTP middleware for the inbound request
// pipeline. The stack composed in cmd/server runs in this order:
//
//	Recovery → RequestID → CorrelationID → RateLimit → OpenTelemetry → Logging → Timeout → Handler
//
// Every middleware has the shape func(http.Handler) http.Handler, so they
// compose through Chain or plain nesting.
package middleware

import "net/http"

// responseWriter records the status code and body size as the handler writes
// the response. Recovery uses wroteHeader to decide whether a 500 can still
// be sent; logging and otel read status and bytes after the handler returns.
type responseWriter struct {
	http.ResponseWriter
	status      int
	bytes       int64
	wroteHeader bool
}

func wrapWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader records the first status code written. Later calls are
// dropped, matching net/http's superfluous-WriteHeader behavior without the
// log noise.
func (rw *responseWriter) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.status = code
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(code)
}

// Write counts body bytes. Writing without an explicit WriteHeader implies
// 200 OK, same as the underlying writer.
func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += int64(n)
	return n, err
}

// Unwrap exposes the wrapped writer for http.ResponseController and
// interface upgrades such as http.Flusher.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
