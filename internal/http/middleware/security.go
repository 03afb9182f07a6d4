package middleware

import (
	"net/http"
)

// SecurityHeaders returns a middleware that adds security headers to responses
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// X-Content-Type-Options prevents MIME type sniffing
			w.Header().Set("X-Content-Type-Options", "nosniff")

			// X-Frame-Options prevents clickjacking
			w.Header().Set("X-Frame-Options", "DENY")

			// Referrer-Policy controls referrer information
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			// Remove headers that leak server information
			w.Header().Del("X-Powered-By")
			w.Header().Del("Server")

			next.ServeHTTP(w, r)
		})
	}
}
