package inputmap

import (
	"errors"
	"fmt"

	"github.com/dshills/inputkit/internal/host"
)

// Sentinel errors for handle operations.
var (
	// ErrInvalidPropertyAccess is matched by every property read or write
	// that is reserved, unknown, read-only, or unavailable for the current
	// action type.
	ErrInvalidPropertyAccess = errors.New("invalid property access")

	// ErrUseAfterDestroy is returned by every method except Destroy once a
	// handle has been destroyed.
	ErrUseAfterDestroy = errors.New("handle used after destroy")

	// ErrWrongClass is returned when wrapping a native object of the wrong class.
	ErrWrongClass = errors.New("native object has wrong class")

	// ErrAlreadyWrapped is returned when a native object is already owned by
	// a live handle anywhere in the tree.
	ErrAlreadyWrapped = errors.New("native object is already wrapped")

	// ErrNilCallback is returned when registering a nil event callback.
	ErrNilCallback = errors.New("callback cannot be nil")

	// errReserved marks writes to handle-internal keys.
	errReserved = errors.New("reserved handle field")
)

// PropertyError describes a failed property access.
type PropertyError struct {
	// Op is "get" or "set".
	Op string

	// Class is the class of the native object.
	Class host.Class

	// Property is the property name.
	Property string

	// Err is the underlying cause, usually a host error.
	Err error
}

// Error implements the error interface.
func (e *PropertyError) Error() string {
	return fmt.Sprintf("invalid property access: %s %s.%s: %v", e.Op, e.Class, e.Property, e.Err)
}

// Unwrap returns the underlying cause.
func (e *PropertyError) Unwrap() error {
	return e.Err
}

// Is matches ErrInvalidPropertyAccess.
func (e *PropertyError) Is(target error) bool {
	return target == ErrInvalidPropertyAccess
}
