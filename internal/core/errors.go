package core

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies failures so callers can decide whether to retry.
type ErrorKind int

const (
	// Bad or missing configuration. Fatal.
	KindConfig ErrorKind = iota + 1
	// Transport failure or timeout. Safe to retry with backoff.
	KindNetwork
	// Non-2xx response from the provider.
	KindHTTP
	// Body or record did not match the provider contract.
	KindMalformedResponse
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	case KindMalformedResponse:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching on the kind alone.
var (
	ErrConfig            = &Error{Kind: KindConfig}
	ErrNetwork           = &Error{Kind: KindNetwork}
	ErrHTTP              = &Error{Kind: KindHTTP}
	ErrMalformedResponse = &Error{Kind: KindMalformedResponse}
)

// Error is the single error type surfaced by window computation and fetching.
type Error struct {
	Kind ErrorKind
	Op   string
	// HTTP status, only for KindHTTP
	Status int
	// Leading part of the response body, only for KindHTTP
	Body string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String() + " error"
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Kind == KindHTTP && e.Status != 0 {
		msg += fmt.Sprintf(" (status %d %s)", e.Status, http.StatusText(e.Status))
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind. A target with a
// status also has to match the status.
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

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Retryable reports whether repeating the same call could succeed.
// Only network failures, 5xx and 429 qualify.
func Retryable(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Kind {
	case KindNetwork:
		return true
	case KindHTTP:
		return e.Status >= 500 || e.Status == http.StatusTooManyRequests
	default:
		return false
	}
}
