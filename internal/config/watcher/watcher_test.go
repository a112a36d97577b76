package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/inputkit/internal/config"
	"github.com/dshills/inputkit/internal/host/memhost"
)

const menuTOML = `
[[contexts]]
name = "Menu"

[[contexts.actions]]
name = "Select"

[[contexts.actions.bindings]]
name = "Enter"
key_code = "Return"
`

const gameplayTOML = `
[[contexts]]
name = "Gameplay"

[[contexts.actions]]
name = "Jump"

[[contexts.actions.bindings]]
name = "Keyboard"
key_code = "Space"
`

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestNewAppliesInitialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.toml")
	writeConfig(t, path, menuTOML)

	engine := memhost.New()
	w, err := New(path, engine)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, ok := w.Current().Context("Menu"); !ok {
		t.Error("Menu context not applied")
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if engine.Len() != 0 {
		t.Errorf("engine holds %d objects after Close", engine.Len())
	}
	if err := w.Start(context.Background()); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("Start after Close error = %v", err)
	}
}

func TestNewFailsOnInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.toml")
	writeConfig(t, path, "[[contexts]]\nname = \"\"\n")

	if _, err := New(path, memhost.New()); !errors.Is(err, config.ErrValidationFailed) {
		t.Errorf("New() error = %v, want ErrValidationFailed", err)
	}
}

func TestReloadOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.toml")
	writeConfig(t, path, menuTOML)

	engine := memhost.New()
	reloaded := make(chan *config.Set, 4)
	failed := make(chan error, 4)
	w, err := New(path, engine,
		WithDebounce(20*time.Millisecond),
		OnReload(func(s *config.Set) { reloaded <- s }),
		OnError(func(err error) { failed <- err }),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	first := w.Current()
	menu, _ := first.Context("Menu")

	writeConfig(t, path, gameplayTOML)
	select {
	case s := <-reloaded:
		if _, ok := s.Context("Gameplay"); !ok {
			t.Errorf("reloaded set has %v", s.Names())
		}
	case err := <-failed:
		t.Fatalf("reload failed: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
	if !menu.Destroyed() {
		t.Error("previous context not destroyed after reload")
	}
	if w.Current() == first {
		t.Error("Current() still returns the first set")
	}

	current := w.Current()
	writeConfig(t, path, "[[contexts]]\nname = 3 = 4\n")
	select {
	case err := <-failed:
		var perr *config.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("reported error = %v, want ParseError", err)
		}
	case <-reloaded:
		t.Fatal("invalid config was applied")
	case <-time.After(5 * time.Second):
		t.Fatal("no error reported for invalid config")
	}
	if w.Current() != current {
		t.Error("failed reload replaced the current set")
	}
	if _, ok := current.Context("Gameplay"); !ok {
		t.Error("current set damaged by failed reload")
	}
}

func TestReloadDirect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.yaml")
	writeConfig(t, path, "contexts:\n  - name: A\n")

	engine := memhost.New()
	w, err := New(path, engine)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	writeConfig(t, path, "contexts:\n  - name: B\n  - name: C\n")
	if err := w.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if names := w.Current().Names(); len(names) != 2 || names[0] != "B" {
		t.Errorf("Names() = %v", names)
	}
	if engine.Len() != 2 {
		t.Errorf("engine holds %d objects, want 2", engine.Len())
	}
}
