package config

// Definition is a declarative input map.
type Definition struct {
	Contexts []ContextDef `toml:"contexts" yaml:"contexts"`
}

// ContextDef describes one input context.
type ContextDef struct {
	Name     string      `toml:"name" yaml:"name"`
	Priority int         `toml:"priority,omitempty" yaml:"priority,omitempty"`
	Sink     bool        `toml:"sink,omitempty" yaml:"sink,omitempty"`
	Enabled  *bool       `toml:"enabled,omitempty" yaml:"enabled,omitempty"`
	Actions  []ActionDef `toml:"actions,omitempty" yaml:"actions,omitempty"`
}

// ActionDef describes one action of a context.
type ActionDef struct {
	Name string `toml:"name" yaml:"name"`

	// Type is an action type name such as "Direction2D". Empty means the
	// engine default.
	Type string `toml:"type,omitempty" yaml:"type,omitempty"`

	Enabled  *bool        `toml:"enabled,omitempty" yaml:"enabled,omitempty"`
	Bindings []BindingDef `toml:"bindings,omitempty" yaml:"bindings,omitempty"`
}

// BindingDef describes one binding of an action. Only the fields that are
// set are written to the engine, in the order listed here.
type BindingDef struct {
	Name string `toml:"name" yaml:"name"`

	// Preset is "wasd" or "arrows". It is applied before Directions, so
	// Directions can override single keys of the preset.
	Preset string `toml:"preset,omitempty" yaml:"preset,omitempty"`

	// Directions maps direction names (Forward, Backward, Up, Down, Left,
	// Right) to key code names.
	Directions map[string]string `toml:"directions,omitempty" yaml:"directions,omitempty"`

	KeyCode           string    `toml:"key_code,omitempty" yaml:"key_code,omitempty"`
	UIButton          string    `toml:"ui_button,omitempty" yaml:"ui_button,omitempty"`
	PressedThreshold  *float64  `toml:"pressed_threshold,omitempty" yaml:"pressed_threshold,omitempty"`
	ReleasedThreshold *float64  `toml:"released_threshold,omitempty" yaml:"released_threshold,omitempty"`
	Scale             *float64  `toml:"scale,omitempty" yaml:"scale,omitempty"`
	Vector2Scale      []float64 `toml:"vector2_scale,omitempty" yaml:"vector2_scale,omitempty"`
}

// Presets accepted by BindingDef.Preset.
const (
	PresetWASD   = "wasd"
	PresetArrows = "arrows"
)
