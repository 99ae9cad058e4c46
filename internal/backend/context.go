package backend

import (
	"context"
	"strings"
)

type tokenKey struct{}

// WithToken returns a context carrying the bearer token used by authenticated requests.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, strings.TrimSpace(token))
}

// TokenFrom returns the bearer token carried by ctx, if any.
func TokenFrom(ctx context.Context) (string, bool) {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token, token != ""
}
