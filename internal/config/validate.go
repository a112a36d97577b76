package config

import (
	"errors"
	"fmt"

	"github.com/dshills/inputkit/internal/host"
	"github.com/dshills/inputkit/internal/input/key"
	"github.com/dshills/inputkit/internal/inputmap"
)

// Validate checks names, action types, key codes, presets and directions.
// Whether a binding property suits its action's type is left to the engine.
// The returned error joins one ValidationError per problem.
func (d *Definition) Validate() error {
	var errs []error
	add := func(path, msg string, v any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v})
	}

	contexts := make(map[string]bool)
	for i, c := range d.Contexts {
		cp := fmt.Sprintf("contexts[%d]", i)
		checkName(cp, c.Name, contexts, add)

		actions := make(map[string]bool)
		for j, a := range c.Actions {
			ap := fmt.Sprintf("%s.actions[%d]", cp, j)
			checkName(ap, a.Name, actions, add)
			if a.Type != "" {
				if _, err := host.ParseActionType(a.Type); err != nil {
					add(ap+".type", "unknown action type", a.Type)
				}
			}

			bindings := make(map[string]bool)
			for k, b := range a.Bindings {
				bp := fmt.Sprintf("%s.bindings[%d]", ap, k)
				checkName(bp, b.Name, bindings, add)
				validateBinding(bp, b, add)
			}
		}
	}
	return errors.Join(errs...)
}

func checkName(path, name string, seen map[string]bool, add func(string, string, any)) {
	switch {
	case name == "":
		add(path+".name", "name is required", nil)
	case seen[name]:
		add(path+".name", "duplicate name", name)
	default:
		seen[name] = true
	}
}

func validateBinding(path string, b BindingDef, add func(string, string, any)) {
	switch b.Preset {
	case "", PresetWASD, PresetArrows:
	default:
		add(path+".preset", "unknown preset", b.Preset)
	}
	if b.KeyCode != "" {
		if _, err := key.Parse(b.KeyCode); err != nil {
			add(path+".key_code", "unknown key code", b.KeyCode)
		}
	}
	for dir, code := range b.Directions {
		if !knownDirection(dir) {
			add(path+".directions", "unknown direction", dir)
			continue
		}
		if _, err := key.Parse(code); err != nil {
			add(path+".directions."+dir, "unknown key code", code)
		}
	}
	if b.Vector2Scale != nil && len(b.Vector2Scale) != 2 {
		add(path+".vector2_scale", "want two components", b.Vector2Scale)
	}
	if b.PressedThreshold != nil && b.ReleasedThreshold != nil && *b.ReleasedThreshold > *b.PressedThreshold {
		add(path+".released_threshold", "must not exceed pressed_threshold", *b.ReleasedThreshold)
	}
}

func knownDirection(name string) bool {
	for _, d := range inputmap.Directions {
		if string(d) == name {
			return true
		}
	}
	return false
}
