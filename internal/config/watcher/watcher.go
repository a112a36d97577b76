// Package watcher rebuilds an input map when its definition file changes.
//
// The watcher observes the file's directory with fsnotify, so editors that
// save by renaming a temporary file are handled. Bursts of events are
// debounced into one reload. A reload that fails to load, validate or apply
// leaves the current set in place and is reported through OnError.
//
// Reloads run on the watcher goroutine. Callers that also use the current
// set from another goroutine must coordinate through OnReload.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/dshills/inputkit/internal/config"
	"github.com/dshills/inputkit/internal/host"
)

// DefaultDebounce is the quiet period before a reload.
const DefaultDebounce = 100 * time.Millisecond

// ErrWatcherClosed is returned when using a closed watcher.
var ErrWatcherClosed = errors.New("watcher is closed")

// Watcher keeps a config.Set in sync with a definition file.
type Watcher struct {
	path     string
	engine   host.Host
	debounce time.Duration
	onError  func(error)
	onReload func(*config.Set)
	logger   *zap.Logger

	fsw *fsnotify.Watcher

	mu      sync.Mutex
	current *config.Set
	running bool
	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a reload.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// OnError sets the function that receives reload and watch errors.
func OnError(fn func(error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// OnReload sets the function called with each newly applied set, after
// the previous set has been destroyed.
func OnReload(fn func(*config.Set)) Option {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// WithLogger sets the logger. The default is config.Logger().
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) {
		w.logger = l
	}
}

// New loads and applies the definition at path and prepares to watch it.
// Call Start to begin watching.
func New(path string, engine host.Host, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		path:     filepath.Clean(abs),
		engine:   engine,
		debounce: DefaultDebounce,
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = config.Logger()
	}

	set, err := w.build()
	if err != nil {
		return nil, err
	}
	w.current = set

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		_ = set.Destroy()
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		_ = fsw.Close()
		_ = set.Destroy()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}
	w.fsw = fsw
	return w, nil
}

// Start begins watching until ctx is done or Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if w.running {
		return nil
	}
	w.running = true
	w.wg.Add(1)
	go w.loop(ctx)
	w.logger.Info("watching input config", zap.String("path", w.path))
	return nil
}

// Current returns the live set.
func (w *Watcher) Current() *config.Set {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Reload loads and applies the file now. On success the previous set is
// destroyed; on failure it stays current.
func (w *Watcher) Reload() error {
	set, err := w.build()
	if err != nil {
		return err
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		_ = set.Destroy()
		return ErrWatcherClosed
	}
	old := w.current
	w.current = set
	w.mu.Unlock()

	if old != nil {
		if err := old.Destroy(); err != nil {
			w.report(fmt.Errorf("destroying previous input map: %w", err))
		}
	}
	w.logger.Info("input config reloaded", zap.String("path", w.path), zap.Strings("contexts", set.Names()))
	if w.onReload != nil {
		w.onReload(set)
	}
	return nil
}

// Close stops watching and destroys the current set.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.wg.Wait()

	err := w.fsw.Close()

	w.mu.Lock()
	set := w.current
	w.current = nil
	w.mu.Unlock()
	if set != nil {
		err = errors.Join(err, set.Destroy())
	}
	return err
}

func (w *Watcher) build() (*config.Set, error) {
	def, err := config.Load(w.path)
	if err != nil {
		return nil, err
	}
	return config.Apply(w.engine, def)
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := w.Reload(); err != nil {
				w.report(err)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.report(err)
		}
	}
}

// relevant reports whether ev changed the watched file's content.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create)
}

func (w *Watcher) report(err error) {
	w.logger.Warn("input config reload failed", zap.String("path", w.path), zap.Error(err))
	if w.onError != nil {
		w.onError(err)
	}
}
