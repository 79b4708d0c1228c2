// Package middleware provides reusable HTTP middleware for the facility catalog API.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// corsPreflightMaxAge is how long, in seconds, browsers may cache a preflight.
const corsPreflightMaxAge = 600

// NewCORSHandler returns a middleware that applies CORS headers for the
// origins listed in CORS_ORIGINS. Each entry must be a full origin (scheme +
// host, no trailing slash); a single "*" allows any origin.
//
// Facility writes use PUT and DELETE with JSON bodies, so those methods and
// Content-Type are allowed in preflights. Export downloads expose
// Content-Disposition so a browser client can read the suggested filename,
// and X-Request-Id is exposed for correlating client reports with server logs.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition", "X-Request-Id"},
		MaxAge:         corsPreflightMaxAge,
	})
	return c.Handler
}
