package key

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCode is returned by Parse for names that are not key codes.
var ErrUnknownCode = errors.New("unknown key code")

// Code identifies a physical input on a keyboard, gamepad or mouse.
type Code uint16

const (
	// Unknown is the zero code; bindings start out with it.
	Unknown Code = iota

	// Letters
	A
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z

	// Digits
	Zero
	One
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine

	// Arrow keys
	Up
	Down
	Left
	Right

	// Special keys
	Space
	Return
	Escape
	Tab
	Backspace
	Delete
	Insert
	Home
	End
	PageUp
	PageDown

	// Modifiers
	LeftShift
	RightShift
	LeftControl
	RightControl
	LeftAlt
	RightAlt

	// Function keys
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12

	// Gamepad
	ButtonA
	ButtonB
	ButtonX
	ButtonY
	ButtonL1
	ButtonR1
	ButtonL2
	ButtonR2
	ButtonL3
	ButtonR3
	ButtonStart
	ButtonSelect
	DPadUp
	DPadDown
	DPadLeft
	DPadRight
	Thumbstick1
	Thumbstick2

	// Mouse
	MouseLeftButton
	MouseRightButton
	MouseMiddleButton

	codeCount
)

var codeNames = [codeCount]string{
	Unknown: "Unknown",
	A:       "A", B: "B", C: "C", D: "D", E: "E", F: "F", G: "G",
	H: "H", I: "I", J: "J", K: "K", L: "L", M: "M", N: "N",
	O: "O", P: "P", Q: "Q", R: "R", S: "S", T: "T", U: "U",
	V: "V", W: "W", X: "X", Y: "Y", Z: "Z",
	Zero: "Zero", One: "One", Two: "Two", Three: "Three", Four: "Four",
	Five: "Five", Six: "Six", Seven: "Seven", Eight: "Eight", Nine: "Nine",
	Up: "Up", Down: "Down", Left: "Left", Right: "Right",
	Space:        "Space",
	Return:       "Return",
	Escape:       "Escape",
	Tab:          "Tab",
	Backspace:    "Backspace",
	Delete:       "Delete",
	Insert:       "Insert",
	Home:         "Home",
	End:          "End",
	PageUp:       "PageUp",
	PageDown:     "PageDown",
	LeftShift:    "LeftShift",
	RightShift:   "RightShift",
	LeftControl:  "LeftControl",
	RightControl: "RightControl",
	LeftAlt:      "LeftAlt",
	RightAlt:     "RightAlt",
	F1:           "F1", F2: "F2", F3: "F3", F4: "F4", F5: "F5", F6: "F6",
	F7: "F7", F8: "F8", F9: "F9", F10: "F10", F11: "F11", F12: "F12",
	ButtonA:           "ButtonA",
	ButtonB:           "ButtonB",
	ButtonX:           "ButtonX",
	ButtonY:           "ButtonY",
	ButtonL1:          "ButtonL1",
	ButtonR1:          "ButtonR1",
	ButtonL2:          "ButtonL2",
	ButtonR2:          "ButtonR2",
	ButtonL3:          "ButtonL3",
	ButtonR3:          "ButtonR3",
	ButtonStart:       "ButtonStart",
	ButtonSelect:      "ButtonSelect",
	DPadUp:            "DPadUp",
	DPadDown:          "DPadDown",
	DPadLeft:          "DPadLeft",
	DPadRight:         "DPadRight",
	Thumbstick1:       "Thumbstick1",
	Thumbstick2:       "Thumbstick2",
	MouseLeftButton:   "MouseLeftButton",
	MouseRightButton:  "MouseRightButton",
	MouseMiddleButton: "MouseMiddleButton",
}

// aliases maps lowercase alternative spellings to codes.
var aliases = map[string]Code{
	"enter":      Return,
	"esc":        Escape,
	"bs":         Backspace,
	"del":        Delete,
	"ins":        Insert,
	"pgup":       PageUp,
	"pgdn":       PageDown,
	"arrowup":    Up,
	"arrowdown":  Down,
	"arrowleft":  Left,
	"arrowright": Right,
	"shift":      LeftShift,
	"ctrl":       LeftControl,
	"control":    LeftControl,
	"alt":        LeftAlt,
	"0":          Zero,
	"1":          One,
	"2":          Two,
	"3":          Three,
	"4":          Four,
	"5":          Five,
	"6":          Six,
	"7":          Seven,
	"8":          Eight,
	"9":          Nine,
	"none":       Unknown,
}

// codeByName maps lowercase canonical names and aliases to codes.
var codeByName = func() map[string]Code {
	m := make(map[string]Code, len(codeNames)+len(aliases))
	for c, name := range codeNames {
		m[strings.ToLower(name)] = Code(c)
	}
	for alias, c := range aliases {
		m[alias] = c
	}
	return m
}()

// String returns the canonical name of the code.
func (c Code) String() string {
	if c < codeCount {
		return codeNames[c]
	}
	return fmt.Sprintf("Code(%d)", c)
}

// Valid reports whether c is a known code.
func (c Code) Valid() bool {
	return c < codeCount
}

// IsArrow reports whether c is one of the four arrow keys.
func (c Code) IsArrow() bool {
	return c >= Up && c <= Right
}

// IsGamepad reports whether c is a gamepad button or thumbstick.
func (c Code) IsGamepad() bool {
	return c >= ButtonA && c <= Thumbstick2
}

// IsMouse reports whether c is a mouse button.
func (c Code) IsMouse() bool {
	return c >= MouseLeftButton && c <= MouseMiddleButton
}

// Codes returns every valid code except Unknown, in declaration order.
func Codes() []Code {
	out := make([]Code, 0, codeCount-1)
	for c := Unknown + 1; c < codeCount; c++ {
		out = append(out, c)
	}
	return out
}

// Parse returns the code for a name. Matching is case-insensitive.
func Parse(name string) (Code, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return Unknown, fmt.Errorf("%w: empty name", ErrUnknownCode)
	}
	if c, ok := codeByName[n]; ok {
		return c, nil
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownCode, name)
}

// MustParse is like Parse but panics on unknown names.
// It is intended for tables of constant names.
func MustParse(name string) Code {
	c, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return c
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCode, c)
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
