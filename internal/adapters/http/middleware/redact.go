package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mkoskela/qualcore/internal/platform/logging"
)

// RedactHeaders flattens an http.Header into slog attributes for debug
// logging. Names listed in logging.SensitiveHeaders are masked so the same
// set governs both this call-site redaction and the masq handler underneath
// it. Multi-value headers are joined with a comma.
func RedactHeaders(headers http.Header) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(headers))
	for key, vals := range headers {
		if logging.SensitiveHeaders[strings.ToLower(key)] {
			attrs = append(attrs, slog.String(key, "[REDACTED]"))
			continue
		}
		attrs = append(attrs, slog.String(key, strings.Join(vals, ",")))
	}
	return attrs
}
