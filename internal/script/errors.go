package script

import "errors"

// Errors for runtime operations.
var (
	// ErrRuntimeClosed is returned when using a closed runtime.
	ErrRuntimeClosed = errors.New("script runtime is closed")

	// ErrBadArgument is raised for arguments of the wrong shape.
	ErrBadArgument = errors.New("bad argument")
)
