package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

var devOrigins = map[string]bool{
	"http://localhost:3000": true,
	"http://127.0.0.1:3000": true,
	"http://localhost:8080": true,
	"http://127.0.0.1:8080": true,
}

// CORSMiddleware allows the configured frontend origin, plus localhost outside release mode.
// Same-origin requests (no Origin header) always pass.
func CORSMiddleware(frontendURL string, production bool) gin.HandlerFunc {
	frontendURL = strings.TrimRight(frontendURL, "/")

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		isAllowed := origin == "" || origin == frontendURL
		if !isAllowed && !production && devOrigins[origin] {
			isAllowed = true
		}

		if isAllowed && origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept, Origin, X-Request-ID")
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Max-Age", "86400")
		}

		c.Header("Vary", "Origin")

		if c.Request.Method == "OPTIONS" {
			if isAllowed {
				c.AbortWithStatus(204)
			} else {
				c.AbortWithStatus(403)
			}
			return
		}

		c.Next()
	}
}
