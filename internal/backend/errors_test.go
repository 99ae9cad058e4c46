package backend

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_WithFallback(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"transport uses fallback", &Error{Kind: KindTransport, Message: "dial tcp: refused"}, "Failed to fetch materials"},
		{"decode uses fallback", &Error{Kind: KindDecode, Message: "bad json"}, "Failed to fetch materials"},
		{"server keeps message", &Error{Kind: KindServer, Status: 400, Message: "Bad id"}, "Bad id"},
		{"server without message", &Error{Kind: KindServer, Status: 500}, "Failed to fetch materials"},
		{"missing token keeps message", MissingToken(), ErrMissingToken.Message},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.WithFallback("Failed to fetch materials")
			assert.Equal(t, tt.want, got.Message)
			assert.Equal(t, tt.err.Kind, got.Kind)
		})
	}
}

func TestError_WithFallbackDoesNotMutate(t *testing.T) {
	orig := &Error{Kind: KindTransport, Message: "dial tcp"}
	_ = orig.WithFallback("fallback")
	assert.Equal(t, "dial tcp", orig.Message)
}

func TestAsError(t *testing.T) {
	assert.Nil(t, AsError(nil))

	be := Validation("name is required")
	assert.Same(t, be, AsError(fmt.Errorf("wrapped: %w", be)))

	timeout := AsError(fmt.Errorf("get: %w", context.DeadlineExceeded))
	assert.Equal(t, KindTransport, timeout.Kind)
	assert.Equal(t, "request timed out", timeout.Message)

	other := AsError(errors.New("boom"))
	assert.Equal(t, KindTransport, other.Kind)
	assert.Equal(t, "boom", other.Message)
}

func TestError_Error(t *testing.T) {
	assert.Equal(t, "Bad id (status 400)", (&Error{Kind: KindServer, Status: 400, Message: "Bad id"}).Error())
	assert.Equal(t, "backend returned status 500", (&Error{Kind: KindServer, Status: 500}).Error())
	assert.Equal(t, "name is required", Validation("name is required").Error())
}

func TestTokenFrom(t *testing.T) {
	_, ok := TokenFrom(context.Background())
	assert.False(t, ok)

	_, ok = TokenFrom(WithToken(context.Background(), "   "))
	assert.False(t, ok)

	tok, ok := TokenFrom(WithToken(context.Background(), " abc "))
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)
}
