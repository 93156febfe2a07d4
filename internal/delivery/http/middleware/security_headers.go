package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware sets the browser hardening headers for the page and the API.
// HSTS is only sent in release mode so local http development keeps working.
func SecurityHeadersMiddleware(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if production {
			c.Header("Strict-Transport-Security", "max-age=63072000; includeSubDomains; preload")
		}
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=()")

		// Swagger UI relies on inline scripts
		if strings.HasPrefix(c.Request.URL.Path, "/v1/swagger/") {
			c.Next()
			return
		}

		// The page only loads its own script and stylesheet; the relay is called server-side
		c.Header("Content-Security-Policy",
			"default-src 'self'; "+
				"script-src 'self'; "+
				"style-src 'self'; "+
				"img-src 'self' data:; "+
				"connect-src 'self'; "+
				"frame-ancestors 'none'; "+
				"base-uri 'self'; "+
				"form-action 'self'")

		c.Next()
	}
}
