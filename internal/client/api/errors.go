package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed call so callers can decide between retrying,
// redirecting to login, or showing the server's rejection.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindInvalid
	KindUnavailable
	KindDecode
	KindCanceled
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrInvalid         = errors.New("rejected by server")
	ErrUnavailable     = errors.New("server unavailable")
	ErrDecode          = errors.New("undecodable response")
	ErrCanceled        = errors.New("request canceled")
)

func (k Kind) sentinel() error {
	switch k {
	case KindUnauthenticated:
		return ErrUnauthenticated
	case KindForbidden:
		return ErrForbidden
	case KindNotFound:
		return ErrNotFound
	case KindInvalid:
		return ErrInvalid
	case KindUnavailable:
		return ErrUnavailable
	case KindDecode:
		return ErrDecode
	case KindCanceled:
		return ErrCanceled
	default:
		return nil
	}
}

func (k Kind) String() string {
	if s := k.sentinel(); s != nil {
		return s.Error()
	}
	return "unknown"
}

// Error is the failure half of every resource call. It is never swallowed:
// each operation returns either its decoded body or an *Error.
type Error struct {
	Kind       Kind
	Op         string
	StatusCode int
	Message    string
	RequestID  string
	Err        error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel of the error's kind, so errors.Is(err, ErrUnavailable) works.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// Temporary reports whether retrying the same call may succeed.
func (e *Error) Temporary() bool { return e.Kind == KindUnavailable }

// KindOf extracts the kind of err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsTemporary reports whether err is a retryable transport failure.
func IsTemporary(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Temporary()
}

func kindForStatus(code int) Kind {
	switch {
	case code == http.StatusUnauthorized:
		return KindUnauthenticated
	case code == http.StatusForbidden:
		return KindForbidden
	case code == http.StatusNotFound:
		return KindNotFound
	case code >= 500:
		return KindUnavailable
	case code >= 400:
		return KindInvalid
	default:
		return KindUnknown
	}
}
