package host

import (
	"fmt"
	"math"
	"strings"
)

// Class names an engine object class.
type Class string

// Object classes.
const (
	ClassContext Class = "InputContext"
	ClassAction  Class = "InputAction"
	ClassBinding Class = "InputBinding"
)

// ActionType classifies the state an action produces.
type ActionType int

const (
	// ActionBool produces a pressed/released boolean.
	ActionBool ActionType = iota

	// ActionDirection1D produces a scalar in [-1, 1].
	ActionDirection1D

	// ActionDirection2D produces a Vector2.
	ActionDirection2D

	// ActionDirection3D produces a Vector3.
	ActionDirection3D
)

var actionTypeNames = map[ActionType]string{
	ActionBool:        "Bool",
	ActionDirection1D: "Direction1D",
	ActionDirection2D: "Direction2D",
	ActionDirection3D: "Direction3D",
}

// String returns the engine name of the action type.
func (t ActionType) String() string {
	if name, ok := actionTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ActionType(%d)", int(t))
}

// Valid reports whether t is a known action type.
func (t ActionType) Valid() bool {
	_, ok := actionTypeNames[t]
	return ok
}

// ZeroState returns the resting state for actions of this type.
func (t ActionType) ZeroState() any {
	switch t {
	case ActionDirection1D:
		return float64(0)
	case ActionDirection2D:
		return Vector2{}
	case ActionDirection3D:
		return Vector3{}
	default:
		return false
	}
}

// ParseActionType returns the action type for an engine name (case-insensitive).
func ParseActionType(name string) (ActionType, error) {
	n := strings.TrimSpace(name)
	for t, tn := range actionTypeNames {
		if strings.EqualFold(tn, n) {
			return t, nil
		}
	}
	return ActionBool, fmt.Errorf("unknown action type %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (t ActionType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown action type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ActionType) UnmarshalText(text []byte) error {
	parsed, err := ParseActionType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Vector2 is a two-component value (directional state, scale).
type Vector2 struct {
	X, Y float64
}

// Magnitude returns the Euclidean length of v.
func (v Vector2) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

// String formats v as "x, y".
func (v Vector2) String() string {
	return fmt.Sprintf("%g, %g", v.X, v.Y)
}

// Vector3 is a three-component directional state.
type Vector3 struct {
	X, Y, Z float64
}

// Magnitude returns the Euclidean length of v.
func (v Vector3) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// String formats v as "x, y, z".
func (v Vector3) String() string {
	return fmt.Sprintf("%g, %g, %g", v.X, v.Y, v.Z)
}

// SignalName names an action signal.
type SignalName string

// Action signals.
const (
	SignalPressed      SignalName = "Pressed"
	SignalReleased     SignalName = "Released"
	SignalStateChanged SignalName = "StateChanged"
)
