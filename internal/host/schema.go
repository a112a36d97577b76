package host

import "fmt"

// Kind is the value kind of a property.
type Kind int

// Property kinds.
const (
	KindString Kind = iota
	KindBool
	KindInt
	KindFloat
	KindKeyCode
	KindActionType
	KindVector2
	KindObject
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindKeyCode:
		return "KeyCode"
	case KindActionType:
		return "ActionType"
	case KindVector2:
		return "Vector2"
	case KindObject:
		return "Object"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// PropertySpec describes one entry of a class's property table.
type PropertySpec struct {
	Name     string
	Kind     Kind
	ReadOnly bool

	// ActionTypes restricts a binding property to the listed owning action
	// types. Empty means available for every type.
	ActionTypes []ActionType
}

// AvailableFor reports whether the property can be used when the owning
// action has type t.
func (p PropertySpec) AvailableFor(t ActionType) bool {
	if len(p.ActionTypes) == 0 {
		return true
	}
	for _, at := range p.ActionTypes {
		if at == t {
			return true
		}
	}
	return false
}

// TypeDependent reports whether availability depends on the action type.
func (p PropertySpec) TypeDependent() bool {
	return len(p.ActionTypes) > 0
}

var common = []PropertySpec{
	{Name: "ClassName", Kind: KindString, ReadOnly: true},
	{Name: "Name", Kind: KindString},
	{Name: "Parent", Kind: KindObject},
}

var (
	onlyBool  = []ActionType{ActionBool}
	only1D    = []ActionType{ActionDirection1D}
	only2D    = []ActionType{ActionDirection2D}
	only3D    = []ActionType{ActionDirection3D}
	vertical  = []ActionType{ActionDirection1D, ActionDirection2D, ActionDirection3D}
	planar    = []ActionType{ActionDirection2D, ActionDirection3D}
	schemaMap = map[Class][]PropertySpec{
		ClassContext: {
			{Name: "Enabled", Kind: KindBool},
			{Name: "Priority", Kind: KindInt},
			{Name: "Sink", Kind: KindBool},
		},
		ClassAction: {
			{Name: "Type", Kind: KindActionType},
			{Name: "Enabled", Kind: KindBool},
		},
		ClassBinding: {
			{Name: "KeyCode", Kind: KindKeyCode},
			{Name: "UIButton", Kind: KindString, ActionTypes: onlyBool},
			{Name: "PressedThreshold", Kind: KindFloat, ActionTypes: onlyBool},
			{Name: "ReleasedThreshold", Kind: KindFloat, ActionTypes: onlyBool},
			{Name: "Scale", Kind: KindFloat, ActionTypes: only1D},
			{Name: "Vector2Scale", Kind: KindVector2, ActionTypes: only2D},
			{Name: "Up", Kind: KindKeyCode, ActionTypes: vertical},
			{Name: "Down", Kind: KindKeyCode, ActionTypes: vertical},
			{Name: "Left", Kind: KindKeyCode, ActionTypes: planar},
			{Name: "Right", Kind: KindKeyCode, ActionTypes: planar},
			{Name: "Forward", Kind: KindKeyCode, ActionTypes: only3D},
			{Name: "Backward", Kind: KindKeyCode, ActionTypes: only3D},
		},
	}
)

// Properties returns the property table of a class, common properties first.
// It returns nil for unknown classes.
func Properties(class Class) []PropertySpec {
	own, ok := schemaMap[class]
	if !ok {
		return nil
	}
	out := make([]PropertySpec, 0, len(common)+len(own))
	out = append(out, common...)
	return append(out, own...)
}

// Lookup returns the spec for a property of a class.
func Lookup(class Class, name string) (PropertySpec, bool) {
	own, ok := schemaMap[class]
	if !ok {
		return PropertySpec{}, false
	}
	for _, p := range common {
		if p.Name == name {
			return p, true
		}
	}
	for _, p := range own {
		if p.Name == name {
			return p, true
		}
	}
	return PropertySpec{}, false
}

// KnownClass reports whether class is part of the object system.
func KnownClass(class Class) bool {
	_, ok := schemaMap[class]
	return ok
}
