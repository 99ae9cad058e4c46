package backend

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies a failure of a backend operation.
type Kind string

const (
	// KindMissingToken means no bearer token was available; no request was sent.
	KindMissingToken Kind = "missing_token"
	// KindTransport means no response was received.
	KindTransport Kind = "transport"
	// KindServer means the backend answered with a failure.
	KindServer Kind = "server"
	// KindValidation means the input was rejected locally; no request was sent.
	KindValidation Kind = "validation"
	// KindDecode means the response could not be decoded.
	KindDecode Kind = "decode"
)

// Error is the single error type returned by every backend operation.
type Error struct {
	Kind    Kind   `json:"kind"`
	Status  int    `json:"status,omitempty"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// Sentinels for errors.Is; they match on Kind only.
var (
	ErrMissingToken = &Error{Kind: KindMissingToken, Message: "No token found. Please login again."}
	ErrTransport    = &Error{Kind: KindTransport, Message: "backend unreachable"}
	ErrServer       = &Error{Kind: KindServer, Message: "backend returned an error"}
	ErrValidation   = &Error{Kind: KindValidation, Message: "invalid input"}
	ErrDecode       = &Error{Kind: KindDecode, Message: "invalid response from backend"}
)

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("backend returned status %d", e.Status)
	}
	if e.Status > 0 && e.Message != "" {
		return fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches sentinels by Kind, and by Status when the target carries one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Status == 0 || t.Status == e.Status
}

// WithFallback returns a copy whose message is replaced by fallback unless the
// backend or a local check supplied a meaningful one.
func (e *Error) WithFallback(fallback string) *Error {
	cp := *e
	switch {
	case e.Kind == KindTransport, e.Kind == KindDecode:
		cp.Message = fallback
	case e.Message == "":
		cp.Message = fallback
	}
	return &cp
}

// Validation builds a local validation failure.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// MissingToken builds a missing-credential failure.
func MissingToken() *Error {
	return &Error{Kind: KindMissingToken, Message: ErrMissingToken.Message}
}

// AsError normalizes any error into *Error. Unknown errors, including context
// cancellation, count as transport failures.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var be *Error
	if errors.As(err, &be) {
		return be
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTransport, Message: "request timed out", Cause: err}
	}
	return &Error{Kind: KindTransport, Message: err.Error(), Cause: err}
}
