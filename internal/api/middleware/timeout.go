package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bassista/go_sitework/internal/backend"
	"github.com/gin-gonic/gin"
)

// RequestTimeout sets a per-request context deadline. Backend calls made by
// the handler inherit it; the handler itself is not interrupted.
func RequestTimeout(d time.Duration) gin.HandlerFunc {
	if d <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		// Once something was written the response can no longer change.
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{
				"error": "request timeout",
				"kind":  backend.KindTransport,
			})
		}
	}
}
