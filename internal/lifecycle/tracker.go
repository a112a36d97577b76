package lifecycle

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Destroyer is a resource released by Destroy, such as an engine object.
type Destroyer interface {
	Destroy()
}

// Connection is a subscription released by Disconnect.
type Connection interface {
	Disconnect()
}

// PanicError records a disposer that panicked during Clean.
type PanicError struct {
	// Index is the position of the resource in insertion order.
	Index int

	// Value is the value passed to panic().
	Value any

	// Stack is the stack trace at the time of the panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("lifecycle: disposer %d panicked: %v", e.Index, e.Value)
}

// Tracker owns a list of resources. It is not safe for concurrent use.
type Tracker struct {
	items    []func()
	cleaning bool
}

// New creates an empty tracker.
func New() *Tracker {
	return &Tracker{}
}

// Add tracks a resource released with Destroy and returns it.
func (t *Tracker) Add(d Destroyer) Destroyer {
	if d != nil {
		t.items = append(t.items, d.Destroy)
	}
	return d
}

// AddFunc tracks an arbitrary cleanup function.
func (t *Tracker) AddFunc(fn func()) {
	if fn != nil {
		t.items = append(t.items, fn)
	}
}

// Connect tracks a signal connection and returns it.
func (t *Tracker) Connect(c Connection) Connection {
	if c != nil {
		t.items = append(t.items, c.Disconnect)
	}
	return c
}

// Len returns the number of resources awaiting release.
func (t *Tracker) Len() int {
	return len(t.items)
}

// Clean releases every tracked resource in reverse insertion order.
// Each resource is released exactly once; a panicking disposer does not
// stop the others. Resources added while cleaning are released in the
// same call. The tracker is empty and reusable afterwards.
func (t *Tracker) Clean() error {
	if t.cleaning {
		return nil
	}
	t.cleaning = true
	defer func() { t.cleaning = false }()

	var errs []error
	for len(t.items) > 0 {
		last := len(t.items) - 1
		fn := t.items[last]
		t.items[last] = nil
		t.items = t.items[:last]
		if err := release(last, fn); err != nil {
			errs = append(errs, err)
		}
	}
	t.items = nil
	return errors.Join(errs...)
}

func release(index int, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Index: index, Value: r, Stack: string(debug.Stack())}
		}
	}()
	fn()
	return nil
}
