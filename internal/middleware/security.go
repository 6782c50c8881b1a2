package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pixelplaque/pixelplaque/internal/ctxkeys"
)

// External origins the pages load from
const (
	scriptCDN = "https://unpkg.com"
	fontCSS   = "https://fonts.googleapis.com"
	fontFiles = "https://fonts.gstatic.com"
)

// SecurityHeaders sets CSP and the usual hardening headers.
// Needs NonceMiddleware and Config earlier in the chain.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", contentSecurityPolicy(r))
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

		cfg := ctxkeys.Config(r.Context())
		if cfg != nil && cfg.IsProduction() {
			h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}

func contentSecurityPolicy(r *http.Request) string {
	scriptSrc := "'self' " + scriptCDN
	if nonce := GetNonce(r.Context()); nonce != "" {
		scriptSrc += fmt.Sprintf(" 'nonce-%s'", nonce)
	}

	// Portfolio and cover images may live anywhere; uploads may live on a custom S3 endpoint
	imgSrc := "'self' data: https:"
	cfg := ctxkeys.Config(r.Context())
	if cfg != nil {
		for _, origin := range []string{cfg.S3Endpoint, cfg.S3PublicURL} {
			if origin != "" {
				imgSrc += " " + strings.TrimSuffix(origin, "/")
			}
		}
	}

	directives := []string{
		"default-src 'self'",
		"script-src " + scriptSrc,
		"style-src 'self' 'unsafe-inline' " + fontCSS,
		"font-src 'self' " + fontFiles,
		"img-src " + imgSrc,
		"connect-src 'self'",
		"frame-ancestors 'none'",
		"base-uri 'self'",
		"form-action 'self'",
	}
	return strings.Join(directives, "; ")
}
