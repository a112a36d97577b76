package memhost

import (
	"fmt"

	"github.com/dshills/inputkit/internal/host"
)

// object is the record behind every host.Object handed out by a Host.
// All fields except id, class, host and self are guarded by host.mu.
type object struct {
	host  *Host
	id    string
	class host.Class
	self  host.Object

	props     map[string]any
	parent    *object
	children  []*object
	destroyed bool

	// Action objects only.
	state   any
	signals map[host.SignalName]*signal
}

// actionObject exposes the action capabilities of an object.
type actionObject struct {
	*object
}

var (
	_ host.Object       = (*object)(nil)
	_ host.ActionObject = (*actionObject)(nil)
)

// ID returns the object's UUID.
func (o *object) ID() string { return o.id }

// Class returns the object's class.
func (o *object) Class() host.Class { return o.class }

// String returns "Class(Name)".
func (o *object) String() string {
	o.host.mu.Lock()
	defer o.host.mu.Unlock()
	return fmt.Sprintf("%s(%v)", o.class, o.props["Name"])
}

// Get reads a property.
func (o *object) Get(name string) (any, error) {
	o.host.mu.Lock()
	defer o.host.mu.Unlock()

	if o.destroyed {
		return nil, host.ErrObjectDestroyed
	}
	spec, ok := host.Lookup(o.class, name)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", host.ErrUnknownProperty, o.class, name)
	}
	if err := o.available(spec); err != nil {
		return nil, err
	}

	switch name {
	case "ClassName":
		return string(o.class), nil
	case "Parent":
		if o.parent == nil {
			return nil, nil
		}
		return o.parent.self, nil
	}
	return o.props[name], nil
}

// Set writes a property.
func (o *object) Set(name string, value any) error {
	o.host.mu.Lock()
	defer o.host.mu.Unlock()

	if o.destroyed {
		return host.ErrObjectDestroyed
	}
	spec, ok := host.Lookup(o.class, name)
	if !ok {
		return fmt.Errorf("%w: %s.%s", host.ErrUnknownProperty, o.class, name)
	}
	if spec.ReadOnly {
		return fmt.Errorf("%w: %s.%s", host.ErrReadOnlyProperty, o.class, name)
	}
	if err := o.available(spec); err != nil {
		return err
	}
	v, err := host.Coerce(spec.Kind, value)
	if err != nil {
		return fmt.Errorf("%s.%s: %w", o.class, name, err)
	}

	switch name {
	case "Parent":
		return o.setParent(v)
	case "Type":
		if v != o.props["Type"] {
			o.state = v.(host.ActionType).ZeroState()
		}
	}
	o.props[name] = v
	return nil
}

// available checks per-action-type availability of binding properties.
func (o *object) available(spec host.PropertySpec) error {
	if o.class != host.ClassBinding || !spec.TypeDependent() {
		return nil
	}
	if o.parent == nil || o.parent.class != host.ClassAction {
		return fmt.Errorf("%w: %s requires an owning %s", host.ErrPropertyUnavailable, spec.Name, host.ClassAction)
	}
	t := o.parent.props["Type"].(host.ActionType)
	if !spec.AvailableFor(t) {
		return fmt.Errorf("%w: %s on %s action", host.ErrPropertyUnavailable, spec.Name, t)
	}
	return nil
}

// setParent moves o under v. Callers hold host.mu.
func (o *object) setParent(v any) error {
	var p *object
	if v != nil {
		var ok bool
		p, ok = o.host.own(v.(host.Object))
		if !ok {
			return fmt.Errorf("%w: object belongs to another host", host.ErrInvalidParent)
		}
		if p.destroyed {
			return fmt.Errorf("%w: parent is destroyed", host.ErrInvalidParent)
		}
		for a := p; a != nil; a = a.parent {
			if a == o {
				return fmt.Errorf("%w: %s would become its own ancestor", host.ErrInvalidParent, o.class)
			}
		}
	}

	o.detach()
	o.parent = p
	if p != nil {
		p.children = append(p.children, o)
	}
	return nil
}

// detach removes o from its parent's child list. Callers hold host.mu.
func (o *object) detach() {
	if o.parent == nil {
		return
	}
	siblings := o.parent.children
	for i, c := range siblings {
		if c == o {
			o.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	o.parent = nil
}

// Destroy releases o and its descendants and disconnects their signals.
func (o *object) Destroy() {
	o.host.mu.Lock()
	if o.destroyed {
		o.host.mu.Unlock()
		return
	}
	o.detach()

	var signals []*signal
	var walk func(*object)
	walk = func(n *object) {
		for _, c := range n.children {
			walk(c)
		}
		n.children = nil
		n.destroyed = true
		delete(o.host.objects, n.id)
		for _, s := range n.signals {
			signals = append(signals, s)
		}
	}
	walk(o)
	o.host.mu.Unlock()

	for _, s := range signals {
		s.close()
	}
}

// Destroyed reports whether Destroy has been called on o or an ancestor.
func (o *object) Destroyed() bool {
	o.host.mu.Lock()
	defer o.host.mu.Unlock()
	return o.destroyed
}

// Fire sets the action state and emits the resulting signals.
func (a *actionObject) Fire(state any) error {
	o := a.object
	o.host.mu.Lock()
	if o.destroyed {
		o.host.mu.Unlock()
		return host.ErrObjectDestroyed
	}
	next, err := host.CoerceState(o.props["Type"].(host.ActionType), state)
	if err != nil {
		o.host.mu.Unlock()
		return err
	}
	prev := o.state
	o.state = next
	o.host.mu.Unlock()

	switch {
	case !host.Active(prev) && host.Active(next):
		o.signals[host.SignalPressed].emit(next)
	case host.Active(prev) && !host.Active(next):
		o.signals[host.SignalReleased].emit(next)
	}
	if prev != next {
		o.signals[host.SignalStateChanged].emit(next)
	}
	return nil
}

// State returns the current action state.
func (a *actionObject) State() (any, error) {
	a.host.mu.Lock()
	defer a.host.mu.Unlock()
	if a.destroyed {
		return nil, host.ErrObjectDestroyed
	}
	return a.state, nil
}

// Signal returns one of the action's signals.
func (a *actionObject) Signal(name host.SignalName) (host.Signal, error) {
	a.host.mu.Lock()
	defer a.host.mu.Unlock()
	if a.destroyed {
		return nil, host.ErrObjectDestroyed
	}
	s, ok := a.signals[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", host.ErrUnknownSignal, name)
	}
	return s, nil
}
