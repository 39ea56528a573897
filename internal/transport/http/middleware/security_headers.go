package middleware

import (
	"net/http"
	"strings"
)

const consoleCSP = "default-src 'self'; frame-ancestors 'none'; object-src 'none'; img-src 'self' data:; style-src 'self' 'unsafe-inline'"

// SecureHeaders sets browser hardening headers. API responses, including the
// notification stream, are marked uncacheable; the console pages get the CSP.
func SecureHeaders(isProd bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := w.Header()
			headers.Set("X-Content-Type-Options", "nosniff")
			headers.Set("Referrer-Policy", "no-referrer")
			if strings.HasPrefix(r.URL.Path, "/api/") {
				headers.Set("Cache-Control", "no-store")
			} else {
				headers.Set("X-Frame-Options", "DENY")
				headers.Set("Content-Security-Policy", consoleCSP)
				headers.Set("Cross-Origin-Opener-Policy", "same-origin")
			}
			if isProd {
				headers.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}
