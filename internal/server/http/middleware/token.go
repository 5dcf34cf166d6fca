package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/adapter/resource"
)

const (
	// SessionHeader names the header carrying the client editing session.
	SessionHeader   = "X-Session-ID"
	tokenCookieName = "orderdesk_token"
)

// ForwardToken puts the caller's bearer token into the request context so the
// resource API client sends it upstream.
func ForwardToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			c.Request = c.Request.WithContext(resource.WithToken(c.Request.Context(), token))
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(tokenCookieName); err == nil {
		return cookie
	}
	return ""
}

// SessionID identifies the editing session of a request. Requests without the
// session header are grouped by client address.
func SessionID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(SessionHeader)); id != "" {
		return id
	}
	return c.ClientIP()
}
