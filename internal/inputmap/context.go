package inputmap

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/inputkit/internal/host"
)

// Context is an owning handle for an InputContext object.
type Context struct {
	handle
	engine  host.Host
	actions *registry[*Action]
}

// Option configures a Context at creation.
type Option func(*contextConfig)

type contextConfig struct {
	parent   host.Object
	priority *int
	sink     *bool
	enabled  *bool
}

// WithParent places the native context under parent in the object tree.
func WithParent(parent host.Object) Option {
	return func(c *contextConfig) {
		c.parent = parent
	}
}

// WithPriority sets the initial priority.
func WithPriority(p int) Option {
	return func(c *contextConfig) {
		c.priority = &p
	}
}

// WithSink sets the initial sink flag.
func WithSink(sink bool) Option {
	return func(c *contextConfig) {
		c.sink = &sink
	}
}

// WithEnabled sets the initial enabled flag. Contexts are enabled by default.
func WithEnabled(enabled bool) Option {
	return func(c *contextConfig) {
		c.enabled = &enabled
	}
}

// Create makes a new native context named name and wraps it.
func Create(engine host.Host, name string, opts ...Option) (*Context, error) {
	var cfg contextConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	props := []property{{"Name", name}}
	if cfg.enabled != nil {
		props = append(props, property{"Enabled", *cfg.enabled})
	}
	if cfg.priority != nil {
		props = append(props, property{"Priority", *cfg.priority})
	}
	if cfg.sink != nil {
		props = append(props, property{"Sink", *cfg.sink})
	}
	if cfg.parent != nil {
		props = append(props, property{"Parent", cfg.parent})
	}

	native, err := newNative(engine, host.ClassContext, props...)
	if err != nil {
		return nil, fmt.Errorf("create context %q: %w", name, err)
	}
	Logger().Debug("context created", zap.String("context", name), zap.String("id", native.ID()))
	return newContext(engine, native), nil
}

// Wrap adopts an existing native context. The handle owns it from now on.
func Wrap(engine host.Host, native host.Object) (*Context, error) {
	if err := checkAdoptable(native, host.ClassContext); err != nil {
		return nil, err
	}
	return newContext(engine, native), nil
}

func newContext(engine host.Host, native host.Object) *Context {
	return &Context{
		handle:  newHandle(native),
		engine:  engine,
		actions: newRegistry[*Action](),
	}
}

// Name returns the native context's name.
func (c *Context) Name() (string, error) {
	return getAs[string](&c.handle, "Name")
}

// Enabled returns the native Enabled property.
func (c *Context) Enabled() (bool, error) {
	return getAs[bool](&c.handle, "Enabled")
}

// Priority returns the native Priority property.
func (c *Context) Priority() (int, error) {
	return getAs[int](&c.handle, "Priority")
}

// Sink returns the native Sink property.
func (c *Context) Sink() (bool, error) {
	return getAs[bool](&c.handle, "Sink")
}

// Get reads a property of the native context, or a reserved key:
// _instance (host.Object), _children (map of actions), _tracker and
// _parent (always nil for contexts).
func (c *Context) Get(name string) (any, error) {
	return c.get(name, func(key string) any {
		switch key {
		case KeyInstance:
			return c.native
		case KeyChildren:
			return c.actions.snapshot()
		case KeyTracker:
			return c.tracker
		}
		return nil
	})
}

// Set writes a property of the native context.
func (c *Context) Set(name string, value any) error {
	return c.set(name, value)
}

// SetEnabled sets the Enabled property.
func (c *Context) SetEnabled(enabled bool) *Context {
	c.apply("Enabled", enabled)
	return c
}

// SetPriority sets the Priority property.
func (c *Context) SetPriority(priority int) *Context {
	c.apply("Priority", priority)
	return c
}

// SetSink sets the Sink property.
func (c *Context) SetSink(sink bool) *Context {
	c.apply("Sink", sink)
	return c
}

// SetParent places the native context under parent; nil unparents it.
func (c *Context) SetParent(parent host.Object) *Context {
	c.apply("Parent", parent)
	return c
}

// CreateAction creates a native action under this context and registers
// its handle under name. The type defaults to host.ActionBool. An existing
// action registered under the same name is destroyed first.
func (c *Context) CreateAction(name string, typ ...host.ActionType) (*Action, error) {
	if err := c.live("CreateAction"); err != nil {
		return nil, err
	}
	t := host.ActionBool
	if len(typ) > 0 {
		t = typ[0]
	}

	native, err := newNative(c.engine, host.ClassAction,
		property{"Name", name},
		property{"Type", t},
		property{"Parent", c.native},
	)
	if err != nil {
		return nil, fmt.Errorf("create action %q: %w", name, err)
	}
	a, err := c.adopt(name, native)
	if err != nil {
		native.Destroy()
		return nil, err
	}
	return a, nil
}

// WrapAction adopts an existing native action, moves it under this context
// and registers it under its Name.
func (c *Context) WrapAction(native host.Object) (*Action, error) {
	if err := c.live("WrapAction"); err != nil {
		return nil, err
	}
	if err := checkAdoptable(native, host.ClassAction); err != nil {
		return nil, err
	}
	name, err := nameOf(native)
	if err != nil {
		return nil, err
	}
	if err := native.Set("Parent", c.native); err != nil {
		return nil, &PropertyError{Op: "set", Class: host.ClassAction, Property: "Parent", Err: err}
	}
	return c.adopt(name, native)
}

// adopt wraps native and registers it, replacing any previous holder of name.
func (c *Context) adopt(name string, native host.Object) (*Action, error) {
	obj, ok := native.(host.ActionObject)
	if !ok {
		return nil, fmt.Errorf("%w: %T has no action capabilities", ErrWrongClass, native)
	}
	a := newAction(c, name, obj)
	if old, replaced := c.actions.put(name, a); replaced {
		Logger().Warn("replacing action", zap.String("action", name))
		if err := old.Destroy(); err != nil {
			Logger().Warn("destroying replaced action", zap.String("action", name), zap.Error(err))
		}
	}
	Logger().Debug("action registered", zap.String("action", name), zap.String("id", native.ID()))
	return a, nil
}

// Action returns the action registered under name.
func (c *Context) Action(name string) (*Action, bool) {
	if c.destroyed {
		return nil, false
	}
	return c.actions.get(name)
}

// Actions returns a copy of the name-to-action mapping.
func (c *Context) Actions() map[string]*Action {
	return c.actions.snapshot()
}

// ActionNames returns the registered names in registration order.
func (c *Context) ActionNames() []string {
	return c.actions.names()
}

// RemoveAction destroys the action registered under name and its bindings.
// Removing an unknown name does nothing.
func (c *Context) RemoveAction(name string) error {
	if err := c.live("RemoveAction"); err != nil {
		return err
	}
	a, ok := c.actions.get(name)
	if !ok {
		return nil
	}
	return a.Destroy()
}

// Destroy destroys every action, then the context's subscriptions and
// native object. Calling Destroy again does nothing.
func (c *Context) Destroy() error {
	if c.destroyed {
		return nil
	}
	c.destroyed = true

	var errs []error
	for _, a := range c.actions.values() {
		errs = append(errs, a.Destroy())
	}
	errs = append(errs, c.release())
	Logger().Debug("context destroyed", zap.String("id", c.native.ID()))
	return errors.Join(errs...)
}
