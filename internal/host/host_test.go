package host

import (
	"errors"
	"testing"

	"github.com/dshills/inputkit/internal/input/key"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		in      any
		want    any
		wantErr bool
	}{
		{"string", KindString, "Jump", "Jump", false},
		{"string from int", KindString, 3, nil, true},
		{"bool", KindBool, true, true, false},
		{"int", KindInt, 7, 7, false},
		{"int from integral float", KindInt, 2.0, 2, false},
		{"int from fraction", KindInt, 2.5, nil, true},
		{"float from int", KindFloat, 3, 3.0, false},
		{"float", KindFloat, 0.25, 0.25, false},
		{"keycode", KindKeyCode, key.W, key.W, false},
		{"keycode by name", KindKeyCode, "space", key.Space, false},
		{"keycode unknown name", KindKeyCode, "Hyper", nil, true},
		{"action type by name", KindActionType, "Direction2D", ActionDirection2D, false},
		{"action type invalid", KindActionType, ActionType(42), nil, true},
		{"vector2", KindVector2, Vector2{X: 1}, Vector2{X: 1}, false},
		{"nil object", KindObject, nil, nil, false},
		{"nil bool", KindBool, nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.kind, tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrTypeMismatch) {
					t.Fatalf("Coerce() error = %v, want ErrTypeMismatch", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Coerce() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Coerce() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestCoerceState(t *testing.T) {
	tests := []struct {
		typ     ActionType
		in      any
		want    any
		wantErr bool
	}{
		{ActionBool, true, true, false},
		{ActionBool, 1.0, nil, true},
		{ActionDirection1D, -1, -1.0, false},
		{ActionDirection1D, 0.5, 0.5, false},
		{ActionDirection2D, Vector2{Y: 1}, Vector2{Y: 1}, false},
		{ActionDirection2D, Vector3{}, nil, true},
		{ActionDirection3D, Vector3{Z: 1}, Vector3{Z: 1}, false},
	}
	for _, tt := range tests {
		got, err := CoerceState(tt.typ, tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidState) {
				t.Errorf("CoerceState(%s, %v) error = %v", tt.typ, tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("CoerceState(%s, %v) = %v, %v; want %v", tt.typ, tt.in, got, err, tt.want)
		}
	}
}

func TestActive(t *testing.T) {
	tests := []struct {
		state any
		want  bool
	}{
		{false, false},
		{true, true},
		{0.0, false},
		{-0.3, true},
		{Vector2{}, false},
		{Vector2{X: 0.1}, true},
		{Vector3{Z: -1}, true},
		{nil, false},
	}
	for _, tt := range tests {
		if got := Active(tt.state); got != tt.want {
			t.Errorf("Active(%v) = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestActionType(t *testing.T) {
	for _, typ := range []ActionType{ActionBool, ActionDirection1D, ActionDirection2D, ActionDirection3D} {
		parsed, err := ParseActionType(typ.String())
		if err != nil || parsed != typ {
			t.Errorf("ParseActionType(%q) = %v, %v", typ.String(), parsed, err)
		}
		if mustCoerceState(t, typ, typ.ZeroState()) != typ.ZeroState() {
			t.Errorf("%s zero state does not coerce to itself", typ)
		}
	}
	if _, err := ParseActionType("Direction4D"); err == nil {
		t.Error("ParseActionType(Direction4D) succeeded")
	}
	var typ ActionType
	if err := typ.UnmarshalText([]byte("direction3d")); err != nil || typ != ActionDirection3D {
		t.Errorf("UnmarshalText = %v, %v", typ, err)
	}
	if _, err := ActionType(9).MarshalText(); err == nil {
		t.Error("MarshalText of invalid type succeeded")
	}
}

func mustCoerceState(t *testing.T, typ ActionType, v any) any {
	t.Helper()
	got, err := CoerceState(typ, v)
	if err != nil {
		t.Fatalf("CoerceState(%s, %v) error = %v", typ, v, err)
	}
	return got
}

func TestSchemaAvailability(t *testing.T) {
	tests := []struct {
		property string
		typ      ActionType
		want     bool
	}{
		{"KeyCode", ActionBool, true},
		{"KeyCode", ActionDirection3D, true},
		{"UIButton", ActionBool, true},
		{"UIButton", ActionDirection1D, false},
		{"Scale", ActionDirection1D, true},
		{"Vector2Scale", ActionBool, false},
		{"Vector2Scale", ActionDirection2D, true},
		{"Up", ActionDirection1D, true},
		{"Left", ActionDirection1D, false},
		{"Left", ActionDirection3D, true},
		{"Forward", ActionDirection2D, false},
		{"Forward", ActionDirection3D, true},
	}
	for _, tt := range tests {
		spec, ok := Lookup(ClassBinding, tt.property)
		if !ok {
			t.Fatalf("Lookup(%s) not found", tt.property)
		}
		if got := spec.AvailableFor(tt.typ); got != tt.want {
			t.Errorf("%s.AvailableFor(%s) = %v, want %v", tt.property, tt.typ, got, tt.want)
		}
	}
}

func TestSchemaLookup(t *testing.T) {
	if spec, ok := Lookup(ClassContext, "ClassName"); !ok || !spec.ReadOnly {
		t.Errorf("ClassName spec = %+v, %v", spec, ok)
	}
	if _, ok := Lookup(ClassAction, "KeyCode"); ok {
		t.Error("InputAction has KeyCode")
	}
	if _, ok := Lookup(Class("Widget"), "Name"); ok {
		t.Error("unknown class has Name")
	}
	if !KnownClass(ClassBinding) || KnownClass("Widget") {
		t.Error("KnownClass mismatch")
	}
	if n := len(Properties(ClassBinding)); n != 15 {
		t.Errorf("len(Properties(InputBinding)) = %d, want 15", n)
	}
}
