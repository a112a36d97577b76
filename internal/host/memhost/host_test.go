package memhost

import (
	"errors"
	"testing"

	"github.com/dshills/inputkit/internal/host"
	"github.com/dshills/inputkit/internal/input/key"
)

func mustNew(t *testing.T, h *Host, class host.Class) host.Object {
	t.Helper()
	o, err := h.New(class)
	if err != nil {
		t.Fatalf("New(%s) error = %v", class, err)
	}
	return o
}

func mustSet(t *testing.T, o host.Object, name string, v any) {
	t.Helper()
	if err := o.Set(name, v); err != nil {
		t.Fatalf("Set(%q, %v) error = %v", name, v, err)
	}
}

func TestNewDefaults(t *testing.T) {
	h := New()

	ctx := mustNew(t, h, host.ClassContext)
	tests := []struct {
		obj  host.Object
		prop string
		want any
	}{
		{ctx, "Name", "InputContext"},
		{ctx, "ClassName", "InputContext"},
		{ctx, "Enabled", true},
		{ctx, "Priority", 0},
		{ctx, "Sink", false},
		{ctx, "Parent", nil},
	}
	for _, tt := range tests {
		t.Run(tt.prop, func(t *testing.T) {
			got, err := tt.obj.Get(tt.prop)
			if err != nil {
				t.Fatalf("Get(%q) error = %v", tt.prop, err)
			}
			if got != tt.want {
				t.Errorf("Get(%q) = %v, want %v", tt.prop, got, tt.want)
			}
		})
	}

	act := mustNew(t, h, host.ClassAction)
	if _, ok := act.(host.ActionObject); !ok {
		t.Fatalf("action object does not implement host.ActionObject")
	}
	typ, _ := act.Get("Type")
	if typ != host.ActionBool {
		t.Errorf("action Type = %v, want Bool", typ)
	}
	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.Len())
	}
}

func TestNewUnknownClass(t *testing.T) {
	_, err := New().New("Part")
	if !errors.Is(err, host.ErrUnknownClass) {
		t.Errorf("New(Part) error = %v, want ErrUnknownClass", err)
	}
}

func TestSetValidation(t *testing.T) {
	h := New()
	ctx := mustNew(t, h, host.ClassContext)

	tests := []struct {
		name  string
		prop  string
		value any
		want  error
	}{
		{"unknown", "Volume", 1, host.ErrUnknownProperty},
		{"read-only", "ClassName", "X", host.ErrReadOnlyProperty},
		{"kind", "Priority", "high", host.ErrTypeMismatch},
		{"fractional int", "Priority", 1.5, host.ErrTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ctx.Set(tt.prop, tt.value); !errors.Is(err, tt.want) {
				t.Errorf("Set(%q) error = %v, want %v", tt.prop, err, tt.want)
			}
		})
	}

	mustSet(t, ctx, "Priority", 3.0)
	if got, _ := ctx.Get("Priority"); got != 3 {
		t.Errorf("Priority = %v (%T), want int 3", got, got)
	}
}

func TestBindingAvailabilityFollowsActionType(t *testing.T) {
	h := New()
	act := mustNew(t, h, host.ClassAction)
	b := mustNew(t, h, host.ClassBinding)

	if err := b.Set("KeyCode", key.Space); err != nil {
		t.Fatalf("KeyCode on unparented binding: %v", err)
	}
	if err := b.Set("Up", key.W); !errors.Is(err, host.ErrPropertyUnavailable) {
		t.Fatalf("Up on unparented binding error = %v, want ErrPropertyUnavailable", err)
	}

	mustSet(t, b, "Parent", act)

	if err := b.Set("Vector2Scale", host.Vector2{X: 2, Y: 2}); !errors.Is(err, host.ErrPropertyUnavailable) {
		t.Fatalf("Vector2Scale on Bool action error = %v, want ErrPropertyUnavailable", err)
	}
	if _, err := b.Get("Vector2Scale"); !errors.Is(err, host.ErrPropertyUnavailable) {
		t.Fatalf("Get Vector2Scale on Bool action error = %v", err)
	}

	mustSet(t, act, "Type", host.ActionDirection2D)
	mustSet(t, b, "Vector2Scale", host.Vector2{X: 2, Y: 2})
	got, err := b.Get("Vector2Scale")
	if err != nil || got != (host.Vector2{X: 2, Y: 2}) {
		t.Errorf("Vector2Scale = %v, %v", got, err)
	}

	if err := b.Set("PressedThreshold", 0.7); !errors.Is(err, host.ErrPropertyUnavailable) {
		t.Errorf("PressedThreshold on Direction2D error = %v", err)
	}
	if err := b.Set("Forward", key.W); !errors.Is(err, host.ErrPropertyUnavailable) {
		t.Errorf("Forward on Direction2D error = %v", err)
	}
	mustSet(t, b, "Left", "A")
	if got, _ := b.Get("Left"); got != key.A {
		t.Errorf("Left = %v, want A", got)
	}
}

func TestParenting(t *testing.T) {
	h := New()
	ctx := mustNew(t, h, host.ClassContext)
	act := mustNew(t, h, host.ClassAction)
	b := mustNew(t, h, host.ClassBinding)

	mustSet(t, act, "Parent", ctx)
	mustSet(t, b, "Parent", act)

	if got, _ := b.Get("Parent"); got != act {
		t.Errorf("binding Parent = %v, want action", got)
	}
	if kids := h.Children(ctx); len(kids) != 1 || kids[0] != act {
		t.Errorf("Children(ctx) = %v", kids)
	}

	if err := ctx.Set("Parent", b); !errors.Is(err, host.ErrInvalidParent) {
		t.Errorf("cycle error = %v, want ErrInvalidParent", err)
	}

	other := mustNew(t, New(), host.ClassContext)
	if err := act.Set("Parent", other); !errors.Is(err, host.ErrInvalidParent) {
		t.Errorf("foreign parent error = %v, want ErrInvalidParent", err)
	}

	mustSet(t, act, "Parent", nil)
	if kids := h.Children(ctx); len(kids) != 0 {
		t.Errorf("Children(ctx) after unparent = %v", kids)
	}
}

func TestDestroyCascades(t *testing.T) {
	h := New()
	ctx := mustNew(t, h, host.ClassContext)
	act := mustNew(t, h, host.ClassAction)
	b := mustNew(t, h, host.ClassBinding)
	mustSet(t, act, "Parent", ctx)
	mustSet(t, b, "Parent", act)

	sig, err := act.(host.ActionObject).Signal(host.SignalPressed)
	if err != nil {
		t.Fatal(err)
	}
	conn := sig.Connect(func(any) {})

	ctx.Destroy()
	ctx.Destroy()

	for _, o := range []host.Object{ctx, act, b} {
		if !o.Destroyed() {
			t.Errorf("%s not destroyed", o.Class())
		}
		if _, err := o.Get("Name"); !errors.Is(err, host.ErrObjectDestroyed) {
			t.Errorf("Get on destroyed %s error = %v", o.Class(), err)
		}
	}
	if conn.Connected() {
		t.Error("connection survived Destroy")
	}
	if h.Len() != 0 {
		t.Errorf("Len() = %d after destroy, want 0", h.Len())
	}
	if _, ok := h.Lookup(act.ID()); ok {
		t.Error("Lookup found destroyed object")
	}
}

func TestFireSignals(t *testing.T) {
	h := New()
	act := mustNew(t, h, host.ClassAction).(host.ActionObject)

	var log []string
	record := func(name string) host.Listener {
		return func(state any) { log = append(log, name) }
	}
	for _, name := range []host.SignalName{host.SignalPressed, host.SignalReleased, host.SignalStateChanged} {
		sig, err := act.Signal(name)
		if err != nil {
			t.Fatal(err)
		}
		sig.Connect(record(string(name)))
	}

	for _, s := range []bool{true, true, false} {
		if err := act.Fire(s); err != nil {
			t.Fatalf("Fire(%v) error = %v", s, err)
		}
	}

	want := []string{"Pressed", "StateChanged", "Released", "StateChanged"}
	if len(log) != len(want) {
		t.Fatalf("signals = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("signal[%d] = %s, want %s", i, log[i], want[i])
		}
	}

	if err := act.Fire(0.5); !errors.Is(err, host.ErrInvalidState) {
		t.Errorf("Fire(0.5) on Bool error = %v, want ErrInvalidState", err)
	}
}

func TestFireDirectional(t *testing.T) {
	h := New()
	act := mustNew(t, h, host.ClassAction).(host.ActionObject)
	mustSet(t, act, "Type", host.ActionDirection2D)

	state, _ := act.State()
	if state != (host.Vector2{}) {
		t.Fatalf("initial state = %v, want zero Vector2", state)
	}

	sig, _ := act.Signal(host.SignalPressed)
	var pressed []any
	sig.Connect(func(s any) { pressed = append(pressed, s) })

	if err := act.Fire(host.Vector2{X: 1}); err != nil {
		t.Fatal(err)
	}
	if err := act.Fire(host.Vector2{X: 1, Y: 1}); err != nil {
		t.Fatal(err)
	}
	if len(pressed) != 1 || pressed[0] != (host.Vector2{X: 1}) {
		t.Errorf("pressed = %v, want one {1 0}", pressed)
	}

	mustSet(t, act, "Type", host.ActionDirection1D)
	state, _ = act.State()
	if state != float64(0) {
		t.Errorf("state after type change = %v, want 0", state)
	}
	if err := act.Fire(1); err != nil {
		t.Errorf("Fire(int) on Direction1D error = %v", err)
	}
}

func TestDisconnect(t *testing.T) {
	h := New()
	act := mustNew(t, h, host.ClassAction).(host.ActionObject)
	sig, _ := act.Signal(host.SignalStateChanged)

	calls := 0
	conn := sig.Connect(func(any) { calls++ })
	_ = act.Fire(true)
	conn.Disconnect()
	conn.Disconnect()
	_ = act.Fire(false)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if conn.Connected() {
		t.Error("Connected() = true after Disconnect")
	}
}
