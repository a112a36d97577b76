package host

import (
	"fmt"
	"math"

	"github.com/dshills/inputkit/internal/input/key"
)

// Coerce converts v to the canonical Go type for kind.
//
// Canonical types are string, bool, int, float64, key.Code, ActionType,
// Vector2 and Object. Integers widen to float64, integral floats narrow to
// int, and strings are parsed for KeyCode and ActionType. A nil Object is
// allowed; every other nil is a mismatch.
func Coerce(kind Kind, v any) (any, error) {
	switch kind {
	case KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case KindInt:
		switch n := v.(type) {
		case int:
			return n, nil
		case int32:
			return int(n), nil
		case int64:
			return int(n), nil
		case float64:
			if n == math.Trunc(n) {
				return int(n), nil
			}
		}
	case KindFloat:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}
	case KindKeyCode:
		switch c := v.(type) {
		case key.Code:
			if c.Valid() {
				return c, nil
			}
		case string:
			code, err := key.Parse(c)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
			}
			return code, nil
		}
	case KindActionType:
		switch t := v.(type) {
		case ActionType:
			if t.Valid() {
				return t, nil
			}
		case string:
			at, err := ParseActionType(t)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
			}
			return at, nil
		}
	case KindVector2:
		switch vec := v.(type) {
		case Vector2:
			return vec, nil
		case *Vector2:
			if vec != nil {
				return *vec, nil
			}
		}
	case KindObject:
		if v == nil {
			return nil, nil
		}
		if o, ok := v.(Object); ok {
			return o, nil
		}
	}
	return nil, fmt.Errorf("%w: want %s, got %T", ErrTypeMismatch, kind, v)
}

// CoerceState converts v to the state shape of action type t:
// bool, float64, Vector2 or Vector3.
func CoerceState(t ActionType, v any) (any, error) {
	switch t {
	case ActionBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case ActionDirection1D:
		if f, err := Coerce(KindFloat, v); err == nil {
			return f, nil
		}
	case ActionDirection2D:
		if vec, ok := v.(Vector2); ok {
			return vec, nil
		}
	case ActionDirection3D:
		if vec, ok := v.(Vector3); ok {
			return vec, nil
		}
	}
	return nil, fmt.Errorf("%w: %s action cannot hold %T", ErrInvalidState, t, v)
}

// Active reports whether a state counts as pressed.
func Active(state any) bool {
	switch s := state.(type) {
	case bool:
		return s
	case float64:
		return s != 0
	case Vector2:
		return s.Magnitude() > 0
	case Vector3:
		return s.Magnitude() > 0
	default:
		return false
	}
}
