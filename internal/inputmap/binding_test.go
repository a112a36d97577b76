package inputmap

import (
	"errors"
	"testing"

	"github.com/dshills/inputkit/internal/host"
	"github.com/dshills/inputkit/internal/input/key"
)

func TestSetDirectionsIsPartial(t *testing.T) {
	_, c := newTestContext(t, "Flight")
	fly := mustAction(t, c, "Fly", host.ActionDirection3D)
	b := mustBinding(t, fly, "Keyboard")

	b.SetDirections(map[Direction]key.Code{
		Forward: key.W, Backward: key.S, Up: key.Space,
		Down: key.LeftControl, Left: key.A, Right: key.D,
	})
	if err := b.Err(); err != nil {
		t.Fatalf("SetDirections error = %v", err)
	}

	b.SetDirections(map[Direction]key.Code{Forward: key.Up})
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}

	want := map[Direction]key.Code{
		Forward: key.Up, Backward: key.S, Up: key.Space,
		Down: key.LeftControl, Left: key.A, Right: key.D,
	}
	for _, d := range Directions {
		got, err := b.Direction(d)
		if err != nil {
			t.Fatalf("Direction(%s) error = %v", d, err)
		}
		if got != want[d] {
			t.Errorf("Direction(%s) = %v, want %v", d, got, want[d])
		}
	}
}

func TestIndividualDirectionSetters(t *testing.T) {
	_, c := newTestContext(t, "Flight")
	fly := mustAction(t, c, "Fly", host.ActionDirection3D)
	b := mustBinding(t, fly, "Keyboard")

	b.SetForward(key.I).SetBackward(key.K).SetUp(key.U).SetDown(key.O).SetLeft(key.J).SetRight(key.L)
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}
	for d, want := range map[Direction]key.Code{Forward: key.I, Backward: key.K, Up: key.U, Down: key.O, Left: key.J, Right: key.L} {
		if got, _ := b.Direction(d); got != want {
			t.Errorf("Direction(%s) = %v, want %v", d, got, want)
		}
	}
}

func TestPropertyAvailabilityFollowsType(t *testing.T) {
	_, c := newTestContext(t, "Gameplay")
	move := mustAction(t, c, "Move")
	b := mustBinding(t, move, "Stick")

	b.SetVector2Scale(host.Vector2{X: 2, Y: 0.5})
	err := b.Err()
	if !errors.Is(err, ErrInvalidPropertyAccess) {
		t.Fatalf("Vector2Scale on Bool action error = %v, want ErrInvalidPropertyAccess", err)
	}
	if _, err := b.Vector2Scale(); !errors.Is(err, ErrInvalidPropertyAccess) {
		t.Errorf("reading Vector2Scale on Bool action error = %v", err)
	}

	move.SetType(host.ActionDirection2D)
	if err := move.Err(); err != nil {
		t.Fatal(err)
	}
	b.SetVector2Scale(host.Vector2{X: 2, Y: 0.5})
	if err := b.Err(); err != nil {
		t.Fatalf("Vector2Scale on Direction2D error = %v", err)
	}
	if v, _ := b.Vector2Scale(); v != (host.Vector2{X: 2, Y: 0.5}) {
		t.Errorf("Vector2Scale() = %v", v)
	}
}

func TestBindingSetters(t *testing.T) {
	_, c := newTestContext(t, "Gameplay")
	jump := mustAction(t, c, "Jump")
	b := mustBinding(t, jump, "Trigger")

	b.SetKeyCode(key.ButtonR2).SetPressedThreshold(0.8).SetReleasedThreshold(0.3).SetUIButton("Fire")
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}
	if code, _ := b.KeyCode(); code != key.ButtonR2 {
		t.Errorf("KeyCode() = %v", code)
	}
	if v, _ := b.PressedThreshold(); v != 0.8 {
		t.Errorf("PressedThreshold() = %v", v)
	}
	if v, _ := b.ReleasedThreshold(); v != 0.3 {
		t.Errorf("ReleasedThreshold() = %v", v)
	}

	b.SetScale(2)
	if err := b.Err(); !errors.Is(err, ErrInvalidPropertyAccess) {
		t.Errorf("SetScale on Bool error = %v", err)
	}

	jump.SetType(host.ActionDirection1D)
	b.SetScale(-1)
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}
	if v, _ := b.Scale(); v != -1 {
		t.Errorf("Scale() = %v, want -1", v)
	}
	if _, err := b.PressedThreshold(); !errors.Is(err, ErrInvalidPropertyAccess) {
		t.Errorf("PressedThreshold on Direction1D error = %v", err)
	}
}

func TestBindingGenericAccess(t *testing.T) {
	_, c := newTestContext(t, "Gameplay")
	jump := mustAction(t, c, "Jump")
	b := mustBinding(t, jump, "Keyboard")

	if err := b.Set("KeyCode", "Space"); err != nil {
		t.Fatalf("Set(KeyCode, Space) error = %v", err)
	}
	v, err := b.Get("KeyCode")
	if err != nil || v != key.Space {
		t.Errorf("Get(KeyCode) = %v, %v", v, err)
	}
	if p, _ := b.Get(KeyParent); p != jump {
		t.Error("Get(_parent) is not the action")
	}
	if ch, _ := b.Get(KeyChildren); ch != nil {
		t.Errorf("Get(_children) = %v, want nil", ch)
	}
	if err := b.Set("KeyCode", "Hyper"); !errors.Is(err, ErrInvalidPropertyAccess) {
		t.Errorf("Set(KeyCode, Hyper) error = %v", err)
	}
}

func TestBindingDestroy(t *testing.T) {
	_, c := newTestContext(t, "Gameplay")
	jump := mustAction(t, c, "Jump")
	b := mustBinding(t, jump, "Keyboard")

	if err := b.Destroy(); err != nil {
		t.Fatal(err)
	}
	if err := b.Destroy(); err != nil {
		t.Errorf("second Destroy() error = %v", err)
	}
	if _, ok := jump.Binding("Keyboard"); ok {
		t.Error("destroyed binding still registered")
	}
	if _, err := b.KeyCode(); !errors.Is(err, ErrUseAfterDestroy) {
		t.Errorf("KeyCode after Destroy error = %v", err)
	}
	b.SetKeyCode(key.E)
	if err := b.Err(); !errors.Is(err, ErrUseAfterDestroy) {
		t.Errorf("SetKeyCode after Destroy recorded %v", err)
	}
	if jump.Destroyed() {
		t.Error("action destroyed with its binding")
	}
}
