package market

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindUnconfigured
	KindNoIdentifiers
	KindProviderUnavailable
	KindBadResponse
	KindProviderError
	KindEntryInvalid
)

var kindNames = map[ErrorKind]string{
	KindNone:                "none",
	KindUnconfigured:        "unconfigured",
	KindNoIdentifiers:       "no_identifiers",
	KindProviderUnavailable: "provider_unavailable",
	KindBadResponse:         "bad_response",
	KindProviderError:       "provider_error",
	KindEntryInvalid:        "entry_invalid",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Retryable reports whether the next scheduled cycle should try again.
func (k ErrorKind) Retryable() bool {
	switch k {
	case KindProviderUnavailable, KindBadResponse, KindProviderError:
		return true
	default:
		return false
	}
}

type Error struct {
	Kind ErrorKind
	Err  error
}

func NewError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: errors.Errorf(format, args...)}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind carried by err, KindNone for nil and
// KindProviderUnavailable for untyped errors.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindProviderUnavailable
}
