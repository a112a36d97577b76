package inputmap

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/inputkit/internal/host"
	"github.com/dshills/inputkit/internal/lifecycle"
)

// Reserved keys answered by the handle instead of the native object.
const (
	KeyInstance = "_instance"
	KeyChildren = "_children"
	KeyTracker  = "_tracker"
	KeyParent   = "_parent"
)

// IsReserved reports whether name is a handle-internal key.
func IsReserved(name string) bool {
	switch name {
	case KeyInstance, KeyChildren, KeyTracker, KeyParent:
		return true
	}
	return false
}

// handle is the state shared by every handle kind.
type handle struct {
	native    host.Object
	tracker   *lifecycle.Tracker
	destroyed bool
	errs      []error
}

// newHandle adopts native and records it as owned. The native object is the
// first tracked resource, so it is released after every subscription.
func newHandle(native host.Object) handle {
	own(native)
	h := handle{native: native, tracker: lifecycle.New()}
	h.tracker.Add(native)
	return h
}

// Native returns the wrapped engine object.
func (h *handle) Native() host.Object {
	return h.native
}

// Destroyed reports whether the handle has been destroyed.
func (h *handle) Destroyed() bool {
	return h.destroyed
}

// Err returns the errors recorded by chained calls since the last call to
// Err, joined, and clears them.
func (h *handle) Err() error {
	err := errors.Join(h.errs...)
	h.errs = nil
	return err
}

// live fails once the handle is destroyed.
func (h *handle) live(op string) error {
	if h.destroyed {
		return fmt.Errorf("%s %s: %w", h.native.Class(), op, ErrUseAfterDestroy)
	}
	return nil
}

// record keeps an error from a chained call.
func (h *handle) record(err error) {
	if err == nil {
		return
	}
	Logger().Debug("chained call failed",
		zap.String("class", string(h.native.Class())),
		zap.Error(err))
	h.errs = append(h.errs, err)
}

// get reads a property. Reserved keys are resolved by internal.
func (h *handle) get(name string, internal func(key string) any) (any, error) {
	if err := h.live("get " + name); err != nil {
		return nil, err
	}
	if IsReserved(name) {
		return internal(name), nil
	}

	class := h.native.Class()
	if _, ok := host.Lookup(class, name); !ok {
		return nil, &PropertyError{Op: "get", Class: class, Property: name, Err: host.ErrUnknownProperty}
	}
	v, err := h.native.Get(name)
	if err != nil {
		return nil, &PropertyError{Op: "get", Class: class, Property: name, Err: err}
	}
	return v, nil
}

// set writes a property after checking it against the class schema.
func (h *handle) set(name string, value any) error {
	if err := h.live("set " + name); err != nil {
		return err
	}

	class := h.native.Class()
	if IsReserved(name) {
		return &PropertyError{Op: "set", Class: class, Property: name, Err: errReserved}
	}
	spec, ok := host.Lookup(class, name)
	if !ok {
		return &PropertyError{Op: "set", Class: class, Property: name, Err: host.ErrUnknownProperty}
	}
	if spec.ReadOnly {
		return &PropertyError{Op: "set", Class: class, Property: name, Err: host.ErrReadOnlyProperty}
	}
	if err := h.native.Set(name, value); err != nil {
		return &PropertyError{Op: "set", Class: class, Property: name, Err: err}
	}
	return nil
}

// apply is set for chained calls.
func (h *handle) apply(name string, value any) {
	h.record(h.set(name, value))
}

// release marks the handle destroyed and cleans its tracker: subscriptions
// first, native object last.
func (h *handle) release() error {
	h.destroyed = true
	h.errs = nil
	err := h.tracker.Clean()
	disown(h.native)
	return err
}

// getAs reads a property and asserts its type.
func getAs[T any](h *handle, name string) (T, error) {
	var zero T
	v, err := h.get(name, func(string) any { return nil })
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, &PropertyError{
			Op: "get", Class: h.native.Class(), Property: name,
			Err: fmt.Errorf("%w: got %T", host.ErrTypeMismatch, v),
		}
	}
	return t, nil
}

// newNative creates and configures a native object, destroying it if any
// property assignment fails. Assignments run in order.
func newNative(engine host.Host, class host.Class, props ...property) (host.Object, error) {
	native, err := engine.New(class)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", class, err)
	}
	for _, p := range props {
		if err := native.Set(p.name, p.value); err != nil {
			native.Destroy()
			return nil, &PropertyError{Op: "set", Class: class, Property: p.name, Err: err}
		}
	}
	return native, nil
}

type property struct {
	name  string
	value any
}

// nameOf reads the Name property of a native object.
func nameOf(native host.Object) (string, error) {
	v, err := native.Get("Name")
	if err != nil {
		return "", &PropertyError{Op: "get", Class: native.Class(), Property: "Name", Err: err}
	}
	name, _ := v.(string)
	return name, nil
}

// checkAdoptable verifies a native object before adoption: it must have the
// wanted class, be live and not be wrapped by another handle.
func checkAdoptable(native host.Object, want host.Class) error {
	if native == nil {
		return fmt.Errorf("%w: nil %s", ErrWrongClass, want)
	}
	if native.Class() != want {
		return fmt.Errorf("%w: want %s, got %s", ErrWrongClass, want, native.Class())
	}
	if native.Destroyed() {
		return fmt.Errorf("wrap %s: %w", want, host.ErrObjectDestroyed)
	}
	if owned(native) {
		return fmt.Errorf("wrap %s: %w", want, ErrAlreadyWrapped)
	}
	return nil
}
