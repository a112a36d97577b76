package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/dshills/inputkit/internal/host"
	"github.com/dshills/inputkit/internal/inputmap"
	"github.com/dshills/inputkit/internal/lifecycle"
)

// DefaultTimeout bounds a single DoString or DoFile call.
const DefaultTimeout = 5 * time.Second

// Runtime runs Lua scripts against an engine.
type Runtime struct {
	L *lua.LState

	mu       sync.Mutex
	engine   host.Host
	timeout  time.Duration
	out      io.Writer
	handles  map[any]*lua.LUserData
	contexts []*inputmap.Context
	objects  *lifecycle.Tracker
	closed   bool
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithTimeout sets the execution timeout for each script run.
// Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Runtime) {
		r.timeout = d
	}
}

// WithOutput redirects the Lua print function. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runtime) {
		r.out = w
	}
}

// NewRuntime creates a sandboxed Lua state bound to engine.
func NewRuntime(engine host.Host, opts ...Option) (*Runtime, error) {
	if engine == nil {
		return nil, fmt.Errorf("new runtime: %w: nil engine", ErrBadArgument)
	}
	r := &Runtime{
		engine:  engine,
		timeout: DefaultTimeout,
		out:     os.Stdout,
		handles: make(map[any]*lua.LUserData),
		objects: lifecycle.New(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(r.L)
	installSandbox(r.L, r.out)
	r.registerTypes()
	r.registerInput()
	return r, nil
}

// DoString runs a chunk of Lua code.
func (r *Runtime) DoString(ctx context.Context, code string) error {
	return r.run(ctx, "string", func() error { return r.L.DoString(code) })
}

// DoFile runs a Lua file.
func (r *Runtime) DoFile(ctx context.Context, path string) error {
	return r.run(ctx, path, func() error { return r.L.DoFile(path) })
}

func (r *Runtime) run(ctx context.Context, chunk string, fn func() error) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRuntimeClosed
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("run %s: lua panic: %v", chunk, p)
		}
	}()

	start := time.Now()
	defer r.prune()
	if err := fn(); err != nil {
		return fmt.Errorf("run %s: %w", chunk, unwrapLuaError(err))
	}
	Logger().Debug("script finished", zap.String("chunk", chunk), zap.Duration("elapsed", time.Since(start)))
	return nil
}

// Contexts returns the live contexts created or wrapped by scripts,
// in creation order.
func (r *Runtime) Contexts() []*inputmap.Context {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*inputmap.Context, 0, len(r.contexts))
	for _, c := range r.contexts {
		if !c.Destroyed() {
			out = append(out, c)
		}
	}
	return out
}

// Close destroys every context the scripts created, then any object made
// with Input.newObject that no handle adopted, and closes the Lua state.
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var errs []error
	for _, c := range r.contexts {
		errs = append(errs, c.Destroy())
	}
	r.contexts = nil
	errs = append(errs, r.objects.Clean())
	r.handles = nil
	r.L.Close()
	return errors.Join(errs...)
}

// track remembers a context for Contexts and Close.
func (r *Runtime) track(c *inputmap.Context) {
	r.contexts = append(r.contexts, c)
}

// prune drops cached userdata for destroyed handles and objects.
func (r *Runtime) prune() {
	for v := range r.handles {
		if d, ok := v.(interface{ Destroyed() bool }); ok && d.Destroyed() {
			delete(r.handles, v)
		}
	}
}

// callback adapts a Lua function to an event callback. Errors raised by
// the function are logged.
func (r *Runtime) callback(fn *lua.LFunction, event string) func(state any) {
	return func(state any) {
		if r.closed {
			return
		}
		err := r.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, r.toLua(r.L, state))
		if err != nil {
			Logger().Warn("input callback failed", zap.String("event", event), zap.Error(unwrapLuaError(err)))
		}
	}
}

// unwrapLuaError returns the Go error carried by a raised error value,
// or err itself.
func unwrapLuaError(err error) error {
	var apiErr *lua.ApiError
	if !errors.As(err, &apiErr) {
		return err
	}
	if ud, ok := apiErr.Object.(*lua.LUserData); ok {
		if cause, ok := ud.Value.(error); ok {
			return cause
		}
	}
	return err
}
