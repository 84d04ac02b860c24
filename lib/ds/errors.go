package ds

import (
	"errors"
	"fmt"

	"github.com/ValentinKolb/rDS/lib/client"
)

// ErrKind categorizes adapter errors along local collection conventions so
// callers can branch on the failure category.
type ErrKind int

const (
	// KindIndex signals a sequence index out of range.
	KindIndex ErrKind = iota
	// KindKey signals an absent hash field or set member.
	KindKey
	// KindValue signals an absent sequence value.
	KindValue
	// KindType signals an incompatible operand or an invalid construction.
	KindType
	// KindUnsupported signals a request the remote mapping cannot express.
	KindUnsupported
)

func (k ErrKind) String() string {
	switch k {
	case KindIndex:
		return "IndexError"
	case KindKey:
		return "KeyError"
	case KindValue:
		return "ValueError"
	case KindType:
		return "TypeError"
	case KindUnsupported:
		return "UnsupportedError"
	default:
		return "UnknownError"
	}
}

// Error is the error type returned by all adapter operations for conditions
// the adapters themselves detect or translate.
type Error struct {
	Kind ErrKind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("DSError (%s): %s", e.Kind, e.Msg)
}

// NewError creates a new adapter error with the given kind and message.
func NewError(kind ErrKind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// newErrorf creates a new adapter error with a formatted message.
func newErrorf(kind ErrKind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// HasKind checks whether err is an adapter error of the given kind.
func HasKind(err error, kind ErrKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// translate maps store client errors onto the local taxonomy: a remote type
// mismatch becomes KindType, a list addressing error becomes KindIndex.
// Every other error (including transport failures) propagates unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var cErr *client.Error
	if errors.As(err, &cErr) {
		switch cErr.Code {
		case client.RetCWrongType:
			return &Error{Kind: KindType, Msg: cErr.Msg}
		case client.RetCOutOfRange:
			return &Error{Kind: KindIndex, Msg: cErr.Msg}
		}
	}
	return err
}
