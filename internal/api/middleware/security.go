package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders returns middleware that sets security-related HTTP headers
// appropriate for a JSON-only API.
func SecurityHeaders(isDevelopment bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		// The API serves no markup, so the CSP can deny everything.
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if !isDevelopment {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Cross-Origin-Resource-Policy", "same-origin")

		c.Next()
	}
}
