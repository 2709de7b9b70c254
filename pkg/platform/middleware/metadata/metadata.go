// Package metadata captures client details for the audit and log layers.
package metadata

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/mssola/useragent"

	"admissions/pkg/requestcontext"
)

// ClientMetadata copies the chi request ID, client IP and a summarized
// User-Agent into the request context. Apply it after middleware.RequestID.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if id := middleware.GetReqID(ctx); id != "" {
			ctx = requestcontext.WithRequestID(ctx, id)
		}
		ctx = requestcontext.WithClientMetadata(ctx,
			ClientIPFromRequest(r),
			SummarizeUserAgent(r.Header.Get("User-Agent")),
		)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SummarizeUserAgent reduces a raw User-Agent header to "browser/os", with
// a "bot" or "mobile" suffix where applicable. Empty input yields "".
func SummarizeUserAgent(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	ua := useragent.New(raw)
	name, _ := ua.Browser()
	if name == "" {
		name = "unknown"
	}
	summary := name
	if platform := ua.OS(); platform != "" {
		summary += "/" + platform
	}
	switch {
	case ua.Bot():
		summary += " bot"
	case ua.Mobile():
		summary += " mobile"
	}
	return summary
}

// ClientIPFromRequest returns the client address. chi's RealIP middleware
// has already folded X-Forwarded-For and X-Real-IP into RemoteAddr when it
// runs first; the headers are consulted here for handlers mounted without it.
func ClientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 && !strings.HasSuffix(addr, "]") {
			return strings.Trim(addr[:idx], "[]")
		}
		return addr
	}
	return "unknown"
}
