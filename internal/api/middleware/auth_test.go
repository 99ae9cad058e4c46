package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bassista/go_sitework/internal/backend"
	"github.com/gin-gonic/gin"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantOK    bool
	}{
		{name: "bearer header", header: "Bearer abc123", wantToken: "abc123", wantOK: true},
		{name: "lowercase scheme", header: "bearer  xyz ", wantToken: "xyz", wantOK: true},
		{name: "no header", header: "", wantOK: false},
		{name: "basic scheme ignored", header: "Basic dXNlcjpwYXNz", wantOK: false},
		{name: "empty bearer", header: "Bearer ", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				gotToken string
				gotOK    bool
			)
			r := gin.New()
			r.Use(BearerToken(func(ctx context.Context, token string) context.Context {
				if token == "" {
					return ctx
				}
				return backend.WithToken(ctx, token)
			}))
			r.GET("/test", func(c *gin.Context) {
				gotToken, gotOK = backend.TokenFrom(c.Request.Context())
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(httptest.NewRecorder(), req)

			if gotOK != tt.wantOK || gotToken != tt.wantToken {
				t.Errorf("got (%q, %v), want (%q, %v)", gotToken, gotOK, tt.wantToken, tt.wantOK)
			}
		})
	}
}

func TestBearerToken_FallbackSeesEmptyToken(t *testing.T) {
	var calls int
	r := gin.New()
	r.Use(BearerToken(func(ctx context.Context, token string) context.Context {
		calls++
		if token == "" {
			token = "configured"
		}
		return backend.WithToken(ctx, token)
	}))
	var got string
	r.GET("/test", func(c *gin.Context) {
		got, _ = backend.TokenFrom(c.Request.Context())
		c.Status(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

	if calls != 1 || got != "configured" {
		t.Errorf("expected configured fallback once, got %q after %d calls", got, calls)
	}
}
