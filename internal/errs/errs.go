// Package errs defines the error kinds surfaced to users by the login flow
// and the content manager views.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failed collaborator call.
type Kind int

const (
	KindUnknown Kind = iota
	// KindDeliveryFailure: a one-time code could not be sent.
	KindDeliveryFailure
	// KindInvalidCode: a one-time code was rejected.
	KindInvalidCode
	// KindFetchError: a collection could not be listed.
	KindFetchError
	// KindWriteError: a create, update or delete was rejected.
	KindWriteError
	// KindLogoutError: remote logout failed. Never fatal, local state is cleared anyway.
	KindLogoutError
)

func (k Kind) String() string {
	switch k {
	case KindDeliveryFailure:
		return "delivery_failure"
	case KindInvalidCode:
		return "invalid_code"
	case KindFetchError:
		return "fetch_error"
	case KindWriteError:
		return "write_error"
	case KindLogoutError:
		return "logout_error"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching by kind.
var (
	DeliveryFailure = &Error{Kind: KindDeliveryFailure}
	InvalidCode     = &Error{Kind: KindInvalidCode}
	FetchError      = &Error{Kind: KindFetchError}
	WriteError      = &Error{Kind: KindWriteError}
	LogoutError     = &Error{Kind: KindLogoutError}
)

// Error carries a kind, the collaborator's message (if any) and the cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// New wraps cause with kind, keeping the cause's message for display.
func New(kind Kind, cause error) *Error {
	e := &Error{Kind: kind, Err: cause}
	if cause != nil {
		e.Message = cause.Error()
	}
	return e
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, errs.WriteError) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// UserMessage returns the collaborator's message verbatim when there is one,
// otherwise fallback.
func UserMessage(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}
