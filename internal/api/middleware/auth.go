package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenBinder attaches a bearer token to a context.
type TokenBinder func(ctx context.Context, token string) context.Context

// BearerToken forwards the Authorization bearer token of the incoming request
// to the request context through bind. bind also receives an empty token so
// it can fall back to a configured one.
func BearerToken(bind TokenBinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if h := c.GetHeader("Authorization"); len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
			token = strings.TrimSpace(h[7:])
		}
		c.Request = c.Request.WithContext(bind(c.Request.Context(), token))
		c.Next()
	}
}
