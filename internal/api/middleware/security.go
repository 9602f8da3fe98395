package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// contentSecurityPolicy allows the Swagger UI assets served from unpkg.
const contentSecurityPolicy = "default-src 'self'; " +
	"script-src 'self' 'unsafe-inline' https://unpkg.com; " +
	"style-src 'self' 'unsafe-inline' https://unpkg.com; " +
	"img-src 'self' data: https:; " +
	"object-src 'none'; frame-ancestors 'none'; base-uri 'self'"

// SecurityHeaders sets the usual hardening headers on every response.
// In development HSTS is left off so plain-HTTP localhost keeps working.
func SecurityHeaders(isDevelopment bool) func(http.Handler) http.Handler {
	s := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: contentSecurityPolicy,
		STSSeconds:            15552000,
		STSIncludeSubdomains:  true,
		ForceSTSHeader:        !isDevelopment,
		IsDevelopment:         isDevelopment,
	})
	return s.Handler
}
