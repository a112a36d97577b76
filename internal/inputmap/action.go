package inputmap

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/inputkit/internal/host"
	"github.com/dshills/inputkit/internal/input/key"
)

// Action is an owning handle for an InputAction object.
type Action struct {
	handle
	action   host.ActionObject
	context  *Context
	slot     string
	bindings *registry[*Binding]
}

func newAction(c *Context, name string, native host.ActionObject) *Action {
	return &Action{
		handle:   newHandle(native),
		action:   native,
		context:  c,
		slot:     name,
		bindings: newRegistry[*Binding](),
	}
}

// Context returns the owning context handle.
func (a *Action) Context() *Context {
	return a.context
}

// Name returns the native action's name.
func (a *Action) Name() (string, error) {
	return getAs[string](&a.handle, "Name")
}

// Type returns the action type.
func (a *Action) Type() (host.ActionType, error) {
	return getAs[host.ActionType](&a.handle, "Type")
}

// Enabled returns the native Enabled property.
func (a *Action) Enabled() (bool, error) {
	return getAs[bool](&a.handle, "Enabled")
}

// Get reads a property of the native action, or a reserved key:
// _instance, _children (map of bindings), _tracker, _parent (*Context).
func (a *Action) Get(name string) (any, error) {
	return a.get(name, func(k string) any {
		switch k {
		case KeyInstance:
			return a.native
		case KeyChildren:
			return a.bindings.snapshot()
		case KeyTracker:
			return a.tracker
		case KeyParent:
			return a.context
		}
		return nil
	})
}

// Set writes a property of the native action.
func (a *Action) Set(name string, value any) error {
	return a.set(name, value)
}

// SetType changes the action type. This changes which binding properties
// the engine accepts and resets the action state.
func (a *Action) SetType(t host.ActionType) *Action {
	a.apply("Type", t)
	return a
}

// SetEnabled sets the Enabled property.
func (a *Action) SetEnabled(enabled bool) *Action {
	a.apply("Enabled", enabled)
	return a
}

// Fire sets the action state as if input had produced it. The state shape
// follows the action type: bool, float64, host.Vector2 or host.Vector3.
func (a *Action) Fire(state any) error {
	if err := a.live("Fire"); err != nil {
		return err
	}
	if err := a.action.Fire(state); err != nil {
		return fmt.Errorf("fire %s: %w", a.slot, err)
	}
	return nil
}

// State returns the current action state.
func (a *Action) State() (any, error) {
	if err := a.live("State"); err != nil {
		return nil, err
	}
	return a.action.State()
}

// CreateBinding creates a native binding under this action and registers
// its handle under name. An existing binding with that name is destroyed
// first.
func (a *Action) CreateBinding(name string) (*Binding, error) {
	if err := a.live("CreateBinding"); err != nil {
		return nil, err
	}
	native, err := newNative(a.context.engine, host.ClassBinding,
		property{"Name", name},
		property{"Parent", a.native},
	)
	if err != nil {
		return nil, fmt.Errorf("create binding %q: %w", name, err)
	}
	return a.adopt(name, native), nil
}

// WrapBinding adopts an existing native binding, moves it under this
// action and registers it under its Name.
func (a *Action) WrapBinding(native host.Object) (*Binding, error) {
	if err := a.live("WrapBinding"); err != nil {
		return nil, err
	}
	if err := checkAdoptable(native, host.ClassBinding); err != nil {
		return nil, err
	}
	name, err := nameOf(native)
	if err != nil {
		return nil, err
	}
	if err := native.Set("Parent", a.native); err != nil {
		return nil, &PropertyError{Op: "set", Class: host.ClassBinding, Property: "Parent", Err: err}
	}
	return a.adopt(name, native), nil
}

func (a *Action) adopt(name string, native host.Object) *Binding {
	b := newBinding(a, name, native)
	if old, replaced := a.bindings.put(name, b); replaced {
		Logger().Warn("replacing binding", zap.String("action", a.slot), zap.String("binding", name))
		if err := old.Destroy(); err != nil {
			Logger().Warn("destroying replaced binding", zap.String("binding", name), zap.Error(err))
		}
	}
	return b
}

// Binding returns the binding registered under name.
func (a *Action) Binding(name string) (*Binding, bool) {
	if a.destroyed {
		return nil, false
	}
	return a.bindings.get(name)
}

// Bindings returns a copy of the name-to-binding mapping.
func (a *Action) Bindings() map[string]*Binding {
	return a.bindings.snapshot()
}

// BindingNames returns the registered names in registration order.
func (a *Action) BindingNames() []string {
	return a.bindings.names()
}

// RemoveBinding destroys the binding registered under name.
// Removing an unknown name does nothing.
func (a *Action) RemoveBinding(name string) error {
	if err := a.live("RemoveBinding"); err != nil {
		return err
	}
	b, ok := a.bindings.get(name)
	if !ok {
		return nil
	}
	return b.Destroy()
}

// addWith creates a binding and configures it, keeping the chain on the action.
func (a *Action) addWith(name string, configure func(*Binding)) *Action {
	b, err := a.CreateBinding(name)
	if err != nil {
		a.record(err)
		return a
	}
	configure(b)
	a.record(b.Err())
	return a
}

// AddBinding creates a binding for a single key code.
func (a *Action) AddBinding(name string, code key.Code) *Action {
	return a.addWith(name, func(b *Binding) { b.SetKeyCode(code) })
}

// AddTouchBinding creates a binding driven by an on-screen button.
func (a *Action) AddTouchBinding(name string, button string) *Action {
	return a.addWith(name, func(b *Binding) { b.SetUIButton(button) })
}

// AddWASDBinding creates a directional binding on W, A, S and D.
func (a *Action) AddWASDBinding(name string) *Action {
	return a.addWith(name, func(b *Binding) { b.SetWASD() })
}

// AddArrowKeysBinding creates a directional binding on the arrow keys.
func (a *Action) AddArrowKeysBinding(name string) *Action {
	return a.addWith(name, func(b *Binding) { b.SetArrowKeys() })
}

// OnPressed calls fn with the action state each time the action becomes active.
func (a *Action) OnPressed(fn func(state any)) *Action {
	a.record(a.connect(host.SignalPressed, fn))
	return a
}

// OnReleased calls fn with the action state each time the action becomes inactive.
func (a *Action) OnReleased(fn func(state any)) *Action {
	a.record(a.connect(host.SignalReleased, fn))
	return a
}

// OnStateChanged calls fn with the new state each time it changes.
func (a *Action) OnStateChanged(fn func(state any)) *Action {
	a.record(a.connect(host.SignalStateChanged, fn))
	return a
}

func (a *Action) connect(name host.SignalName, fn func(state any)) error {
	if err := a.live("On" + string(name)); err != nil {
		return err
	}
	if fn == nil {
		return fmt.Errorf("On%s: %w", name, ErrNilCallback)
	}
	sig, err := a.action.Signal(name)
	if err != nil {
		return fmt.Errorf("On%s: %w", name, err)
	}
	a.tracker.Connect(sig.Connect(fn))
	return nil
}

// Destroy destroys every binding, disconnects the action's callbacks,
// destroys the native action and unregisters it from its context.
// Calling Destroy again does nothing.
func (a *Action) Destroy() error {
	if a.destroyed {
		return nil
	}
	a.destroyed = true

	var errs []error
	for _, b := range a.bindings.values() {
		errs = append(errs, b.Destroy())
	}
	errs = append(errs, a.release())
	a.context.actions.remove(a.slot, a)
	Logger().Debug("action destroyed", zap.String("action", a.slot))
	return errors.Join(errs...)
}
