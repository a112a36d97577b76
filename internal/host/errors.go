package host

import "errors"

// Errors reported by Host implementations.
var (
	// ErrUnknownClass is returned when creating an object of an unknown class.
	ErrUnknownClass = errors.New("unknown object class")

	// ErrUnknownProperty is returned for names missing from a class's property table.
	ErrUnknownProperty = errors.New("unknown property")

	// ErrReadOnlyProperty is returned when writing a read-only property.
	ErrReadOnlyProperty = errors.New("property is read-only")

	// ErrPropertyUnavailable is returned when a binding property is not
	// available for the owning action's current type.
	ErrPropertyUnavailable = errors.New("property not available for action type")

	// ErrTypeMismatch is returned when a value has the wrong kind for a property.
	ErrTypeMismatch = errors.New("value has wrong type for property")

	// ErrObjectDestroyed is returned when operating on a destroyed object.
	ErrObjectDestroyed = errors.New("object is destroyed")

	// ErrInvalidParent is returned when a Parent assignment would break the tree.
	ErrInvalidParent = errors.New("invalid parent")

	// ErrInvalidState is returned when a fired state does not match the action type.
	ErrInvalidState = errors.New("state does not match action type")

	// ErrUnknownSignal is returned for signal names an object does not expose.
	ErrUnknownSignal = errors.New("unknown signal")
)
