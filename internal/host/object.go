package host

// Host creates engine objects.
type Host interface {
	// New creates a fresh, unparented object of the given class with the
	// class's default property values.
	New(class Class) (Object, error)
}

// Object is an engine-owned object with a property table.
type Object interface {
	// ID returns a stable identifier unique within the host.
	ID() string

	// Class returns the object's class.
	Class() Class

	// Get reads a property.
	Get(name string) (any, error)

	// Set writes a property.
	Set(name string, value any) error

	// Destroy releases the object and all of its descendants.
	// Destroying an already destroyed object does nothing.
	Destroy()

	// Destroyed reports whether Destroy has been called.
	Destroyed() bool
}

// ActionObject is an InputAction object.
type ActionObject interface {
	Object

	// Fire sets the action's state programmatically. The state shape
	// depends on the action type.
	Fire(state any) error

	// State returns the current state.
	State() (any, error)

	// Signal returns the named signal.
	Signal(name SignalName) (Signal, error)
}

// Listener receives the action state carried by a signal.
type Listener func(state any)

// Signal delivers action state changes to listeners in connection order.
type Signal interface {
	Connect(fn Listener) Connection
}

// Connection is a live signal subscription.
type Connection interface {
	// Disconnect stops delivery. Calling it again does nothing.
	Disconnect()

	// Connected reports whether the listener still receives events.
	Connected() bool
}
