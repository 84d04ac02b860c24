package client

import (
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IStructClient is the generic interface for interacting with a structured
// key–value store. It exposes the atomic single-command primitives of the
// store: ordered lists, unordered sets of unique members and field-value
// hashes, each addressed by a key string.
//
// All values are opaque strings. A key springs into existence on the first
// successful mutating call and is removed again once its structure becomes
// empty. Applying a command to a key that holds an incompatible structure
// returns an *Error with code RetCWrongType.
//
// Negative list indices are resolved from the tail (-1 is the last element).
type IStructClient interface {

	// --------------------------------------------------------------------------
	// List Operations
	// --------------------------------------------------------------------------

	// ListPush appends the given values to the tail of the list, preserving
	// argument order.
	ListPush(key string, values ...string) (err error)
	// ListPopHead removes and returns the first element of the list.
	// The boolean return value indicates whether an element was popped.
	ListPopHead(key string) (value string, ok bool, err error)
	// ListPopTail removes and returns the last element of the list.
	ListPopTail(key string) (value string, ok bool, err error)
	// ListIndex returns the element at the given index. The boolean return
	// value indicates whether an element exists at that index.
	ListIndex(key string, index int64) (value string, ok bool, err error)
	// ListSet overwrites the element at the given index in place.
	// Addressing a missing element fails with RetCOutOfRange.
	ListSet(key string, index int64, value string) (err error)
	// ListRange returns the elements between start and stop (both inclusive).
	ListRange(key string, start, stop int64) (values []string, err error)
	// ListRemove removes the first count occurrences of value. It returns the
	// number of elements actually removed.
	ListRemove(key string, count int64, value string) (removed int64, err error)
	// ListTrim truncates the list so that only the elements between start and
	// stop (both inclusive) remain.
	ListTrim(key string, start, stop int64) (err error)
	// ListLen returns the number of elements in the list (0 if the key is absent).
	ListLen(key string) (length int64, err error)

	// --------------------------------------------------------------------------
	// Set Operations
	// --------------------------------------------------------------------------

	// SetAdd adds the given members to the set, ignoring duplicates.
	SetAdd(key string, members ...string) (err error)
	// SetRemove removes one member from the set. The boolean return value
	// indicates whether the member was present.
	SetRemove(key string, member string) (removed bool, err error)
	// SetIsMember reports whether member is contained in the set.
	SetIsMember(key string, member string) (ok bool, err error)
	// SetMembers returns all members of the set in unspecified order.
	SetMembers(key string) (members []string, err error)
	// SetCard returns the cardinality of the set (0 if the key is absent).
	SetCard(key string) (card int64, err error)
	// SetUnionStore stores the union of the given source sets under dst,
	// replacing any previous value of dst.
	SetUnionStore(dst string, keys ...string) (err error)
	// SetInterStore stores the intersection of the given source sets under dst.
	SetInterStore(dst string, keys ...string) (err error)
	// SetDiffStore stores the difference of the first source set against all
	// following ones under dst.
	SetDiffStore(dst string, keys ...string) (err error)
	// SetInter returns the intersection of the given sets without writing
	// anything to the store.
	SetInter(keys ...string) (members []string, err error)
	// SetPop removes and returns an arbitrary member of the set.
	SetPop(key string) (member string, ok bool, err error)

	// --------------------------------------------------------------------------
	// Hash Operations
	// --------------------------------------------------------------------------

	// HashSet inserts or updates a single field.
	HashSet(key, field, value string) (err error)
	// HashGet returns the value of a field. The boolean return value
	// indicates whether the field exists.
	HashGet(key, field string) (value string, ok bool, err error)
	// HashDel deletes a single field. The boolean return value indicates
	// whether the field existed.
	HashDel(key, field string) (deleted bool, err error)
	// HashGetAll returns a snapshot of all field-value pairs.
	HashGetAll(key string) (fields map[string]string, err error)
	// HashKeys returns all field names.
	HashKeys(key string) (fields []string, err error)
	// HashValues returns all field values.
	HashValues(key string) (values []string, err error)
	// HashLen returns the number of fields (0 if the key is absent).
	HashLen(key string) (length int64, err error)

	// --------------------------------------------------------------------------
	// Key Operations
	// --------------------------------------------------------------------------

	// Delete removes a key and its structure entirely, whatever its kind.
	Delete(key string) (err error)
	// Exists reports whether a key currently holds any structure.
	Exists(key string) (ok bool, err error)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	errorCode := ""
	switch e.Code {
	case RetCInternalError:
		errorCode = "InternalError"
	case RetCWrongType:
		errorCode = "WrongType"
	case RetCOutOfRange:
		errorCode = "OutOfRange"
	case RetCInvalidOperation:
		errorCode = "InvalidOperation"
	default:
		errorCode = "Unknown"
	}

	return fmt.Sprintf("StructClientError (code %s): %s", errorCode, e.Msg)
}

// NewError creates a new Error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// HasCode reports whether err is a *Error carrying the given return code.
func HasCode(err error, code RetCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess          RetCode = iota // 0: Command executed successfully.
	RetCInternalError                   // 1: Command failed due to an internal error.
	RetCWrongType                       // 2: Command applied to a key holding an incompatible structure.
	RetCOutOfRange                      // 3: List addressing error (index outside the current bounds).
	RetCInvalidOperation                // 4: Invalid operation.
)
