package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"runtime/debug"

	"github.com/bassista/go_sitework/internal/backend"
	"github.com/gin-gonic/gin"
	honeybadger "github.com/honeybadger-io/honeybadger-go"
	"github.com/sirupsen/logrus"
)

// HoneybadgerMiddleware sends error/warning notifications to Honeybadger.
// On panic, it notifies Honeybadger and re-panics to allow gin.Recovery to handle the response.
func HoneybadgerMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	apiKey := os.Getenv("HONEYBADGER_API_KEY")
	if apiKey == "" {
		logger.Info("Honeybadger is not active. To enable error reporting, set the HONEYBADGER_API_KEY environment variable.")
		return func(c *gin.Context) {
			c.Next()
		}
	}

	honeybadger.Configure(honeybadger.Configuration{
		APIKey: apiKey,
		Env:    os.Getenv("GO_ENV"),
	})

	logger.Info("Honeybadger error reporting is enabled.")

	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				honeybadger.Notify(fmt.Sprintf("Panic: %s %s", c.Request.Method, c.Request.URL.Path),
					c.Request, honeybadger.Context{"stack": string(debug.Stack())}, honeybadger.Tags{"panic", "http"})
				logger.Error("Recovered from panic, notified Honeybadger: ", rec)
				panic(rec)
			}
		}()

		c.Next()

		status := c.Writer.Status()
		if !reportable(status) {
			return
		}
		hbCtx := honeybadger.Context{}
		tags := honeybadger.Tags{"http"}
		if be := lastBackendError(c); be != nil {
			hbCtx["backend_kind"] = string(be.Kind)
			hbCtx["backend_status"] = be.Status
			hbCtx["backend_message"] = be.Message
			tags = append(tags, "backend:"+string(be.Kind))
		}
		if status >= 500 {
			honeybadger.Notify(fmt.Sprintf("Error: HTTP %d: %s %s", status, c.Request.Method, c.Request.URL.Path),
				c.Request, hbCtx, append(tags, "5XX"))
		} else {
			// 4xx are sent as notices without request details
			honeybadger.Notify(fmt.Sprintf("Warning: HTTP %d: %s %s", status, c.Request.Method, c.Request.URL.Path),
				hbCtx, append(tags, "4XX"))
		}
		logger.Warnf("Honeybadger reported HTTP %d for %s %s", status, c.Request.Method, c.Request.URL.Path)
	}
}

// reportable skips successes, unknown routes and missing credentials.
func reportable(status int) bool {
	return status >= 400 && status != http.StatusNotFound && status != http.StatusUnauthorized
}

func lastBackendError(c *gin.Context) *backend.Error {
	for i := len(c.Errors) - 1; i >= 0; i-- {
		var be *backend.Error
		if errors.As(c.Errors[i].Err, &be) {
			return be
		}
	}
	return nil
}
