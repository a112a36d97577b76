package inputmap

import (
	"go.uber.org/zap"

	"github.com/dshills/inputkit/internal/host"
	"github.com/dshills/inputkit/internal/input/key"
)

// Direction names a directional key property of a binding.
type Direction string

// Directional properties.
const (
	Forward  Direction = "Forward"
	Backward Direction = "Backward"
	Up       Direction = "Up"
	Down     Direction = "Down"
	Left     Direction = "Left"
	Right    Direction = "Right"
)

// Directions lists every Direction in assignment order.
var Directions = []Direction{Forward, Backward, Up, Down, Left, Right}

// Binding is an owning handle for an InputBinding object.
type Binding struct {
	handle
	action *Action
	slot   string
}

func newBinding(a *Action, name string, native host.Object) *Binding {
	return &Binding{
		handle: newHandle(native),
		action: a,
		slot:   name,
	}
}

// Action returns the owning action handle.
func (b *Binding) Action() *Action {
	return b.action
}

// Get reads a property of the native binding, or a reserved key:
// _instance, _tracker, _parent (*Action). _children is always nil.
func (b *Binding) Get(name string) (any, error) {
	return b.get(name, func(k string) any {
		switch k {
		case KeyInstance:
			return b.native
		case KeyTracker:
			return b.tracker
		case KeyParent:
			return b.action
		}
		return nil
	})
}

// Set writes a property of the native binding.
func (b *Binding) Set(name string, value any) error {
	return b.set(name, value)
}

// Name returns the native binding's name.
func (b *Binding) Name() (string, error) {
	return getAs[string](&b.handle, "Name")
}

// KeyCode returns the bound key code.
func (b *Binding) KeyCode() (key.Code, error) {
	return getAs[key.Code](&b.handle, "KeyCode")
}

// Direction returns the key code bound to a direction.
func (b *Binding) Direction(d Direction) (key.Code, error) {
	return getAs[key.Code](&b.handle, string(d))
}

// UIButton returns the name of the on-screen button driving the binding.
func (b *Binding) UIButton() (string, error) {
	return getAs[string](&b.handle, "UIButton")
}

// PressedThreshold returns the analog level at which the binding presses.
func (b *Binding) PressedThreshold() (float64, error) {
	return getAs[float64](&b.handle, "PressedThreshold")
}

// ReleasedThreshold returns the analog level at which the binding releases.
func (b *Binding) ReleasedThreshold() (float64, error) {
	return getAs[float64](&b.handle, "ReleasedThreshold")
}

// Scale returns the scalar multiplier for Direction1D actions.
func (b *Binding) Scale() (float64, error) {
	return getAs[float64](&b.handle, "Scale")
}

// Vector2Scale returns the per-axis multiplier for Direction2D actions.
func (b *Binding) Vector2Scale() (host.Vector2, error) {
	return getAs[host.Vector2](&b.handle, "Vector2Scale")
}

// SetForward binds the Forward direction.
func (b *Binding) SetForward(code key.Code) *Binding { return b.setDirection(Forward, code) }

// SetBackward binds the Backward direction.
func (b *Binding) SetBackward(code key.Code) *Binding { return b.setDirection(Backward, code) }

// SetUp binds the Up direction.
func (b *Binding) SetUp(code key.Code) *Binding { return b.setDirection(Up, code) }

// SetDown binds the Down direction.
func (b *Binding) SetDown(code key.Code) *Binding { return b.setDirection(Down, code) }

// SetLeft binds the Left direction.
func (b *Binding) SetLeft(code key.Code) *Binding { return b.setDirection(Left, code) }

// SetRight binds the Right direction.
func (b *Binding) SetRight(code key.Code) *Binding { return b.setDirection(Right, code) }

func (b *Binding) setDirection(d Direction, code key.Code) *Binding {
	b.apply(string(d), code)
	return b
}

// SetDirections assigns only the directions present in dirs; the others
// keep their current key codes.
func (b *Binding) SetDirections(dirs map[Direction]key.Code) *Binding {
	for _, d := range Directions {
		if code, ok := dirs[d]; ok {
			b.setDirection(d, code)
		}
	}
	return b
}

// SetWASD binds Up, Left, Down and Right to W, A, S and D.
func (b *Binding) SetWASD() *Binding {
	return b.SetUp(key.W).SetLeft(key.A).SetDown(key.S).SetRight(key.D)
}

// SetArrowKeys binds Up, Left, Down and Right to the arrow keys.
func (b *Binding) SetArrowKeys() *Binding {
	return b.SetUp(key.Up).SetLeft(key.Left).SetDown(key.Down).SetRight(key.Right)
}

// SetKeyCode sets the bound key code.
func (b *Binding) SetKeyCode(code key.Code) *Binding {
	b.apply("KeyCode", code)
	return b
}

// SetUIButton drives the binding from the named on-screen button.
func (b *Binding) SetUIButton(button string) *Binding {
	b.apply("UIButton", button)
	return b
}

// SetPressedThreshold sets the analog press level. Bool actions only.
func (b *Binding) SetPressedThreshold(v float64) *Binding {
	b.apply("PressedThreshold", v)
	return b
}

// SetReleasedThreshold sets the analog release level. Bool actions only.
func (b *Binding) SetReleasedThreshold(v float64) *Binding {
	b.apply("ReleasedThreshold", v)
	return b
}

// SetScale sets the scalar multiplier. Direction1D actions only.
func (b *Binding) SetScale(v float64) *Binding {
	b.apply("Scale", v)
	return b
}

// SetVector2Scale sets the per-axis multiplier. Direction2D actions only.
func (b *Binding) SetVector2Scale(v host.Vector2) *Binding {
	b.apply("Vector2Scale", v)
	return b
}

// Destroy destroys the native binding and unregisters it from its action.
// Calling Destroy again does nothing.
func (b *Binding) Destroy() error {
	if b.destroyed {
		return nil
	}
	err := b.release()
	b.action.bindings.remove(b.slot, b)
	Logger().Debug("binding destroyed", zap.String("binding", b.slot))
	return err
}
