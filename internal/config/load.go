package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Format is a configuration source format.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf returns the format for a file name's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load reads, decodes and validates the definition at path.
func Load(path string) (*Definition, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	def, err := decode(path, format, data)
	if err != nil {
		return nil, err
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Parse decodes an in-memory source. The result is not validated.
func Parse(format Format, data []byte) (*Definition, error) {
	return decode("<memory>", format, data)
}

func decode(source string, format Format, data []byte) (*Definition, error) {
	switch format {
	case FormatTOML:
		return decodeTOML(source, data)
	case FormatYAML:
		return decodeYAML(source, data)
	case FormatJSON:
		return decodeJSON(source, data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func decodeTOML(source string, data []byte) (*Definition, error) {
	var def Definition
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&def); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	return &def, nil
}

func decodeYAML(source string, data []byte) (*Definition, error) {
	var def Definition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil && !errors.Is(err, io.EOF) {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return &def, nil
}

// decodeJSON walks the document with gjson. Unknown keys are rejected, as
// the TOML and YAML decoders do.
func decodeJSON(source string, data []byte) (*Definition, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: source, Message: "invalid JSON", Err: errInvalidJSON}
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, &ParseError{Path: source, Message: "top level must be an object", Err: errInvalidJSON}
	}
	d := jsonDecoder{source: source, data: data}
	if err := d.known("", root, "contexts"); err != nil {
		return nil, err
	}

	var def Definition
	for i, c := range root.Get("contexts").Array() {
		cp := fmt.Sprintf("contexts[%d]", i)
		if err := d.known(cp, c, "name", "priority", "sink", "enabled", "actions"); err != nil {
			return nil, err
		}
		ctx := ContextDef{
			Name:     c.Get("name").String(),
			Priority: int(c.Get("priority").Int()),
			Sink:     c.Get("sink").Bool(),
			Enabled:  optBool(c.Get("enabled")),
		}
		for j, a := range c.Get("actions").Array() {
			ap := fmt.Sprintf("%s.actions[%d]", cp, j)
			if err := d.known(ap, a, "name", "type", "enabled", "bindings"); err != nil {
				return nil, err
			}
			act := ActionDef{
				Name:    a.Get("name").String(),
				Type:    a.Get("type").String(),
				Enabled: optBool(a.Get("enabled")),
			}
			for k, b := range a.Get("bindings").Array() {
				bp := fmt.Sprintf("%s.bindings[%d]", ap, k)
				if err := d.known(bp, b, bindingKeys...); err != nil {
					return nil, err
				}
				act.Bindings = append(act.Bindings, bindingFromJSON(b))
			}
			ctx.Actions = append(ctx.Actions, act)
		}
		def.Contexts = append(def.Contexts, ctx)
	}
	return &def, nil
}

var (
	errInvalidJSON  = errors.New("invalid JSON")
	errUnknownField = errors.New("unknown field")
)

var bindingKeys = []string{
	"name", "preset", "directions", "key_code", "ui_button",
	"pressed_threshold", "released_threshold", "scale", "vector2_scale",
}

type jsonDecoder struct {
	source string
	data   []byte
}

// known fails on the first key of obj that is not in keys.
func (d jsonDecoder) known(path string, obj gjson.Result, keys ...string) error {
	var (
		unknown string
		found   bool
	)
	obj.ForEach(func(k, _ gjson.Result) bool {
		if slices.Contains(keys, k.String()) {
			return true
		}
		unknown, found = k.String(), true
		return false
	})
	if !found {
		return nil
	}
	if path != "" {
		unknown = path + "." + unknown
	}
	perr := &ParseError{Path: d.source, Message: fmt.Sprintf("unknown field %q", unknown), Err: errUnknownField}
	if obj.Index > 0 && obj.Index <= len(d.data) {
		perr.Line = bytes.Count(d.data[:obj.Index], []byte("\n")) + 1
	}
	return perr
}

func bindingFromJSON(b gjson.Result) BindingDef {
	def := BindingDef{
		Name:              b.Get("name").String(),
		Preset:            b.Get("preset").String(),
		KeyCode:           b.Get("key_code").String(),
		UIButton:          b.Get("ui_button").String(),
		PressedThreshold:  optFloat(b.Get("pressed_threshold")),
		ReleasedThreshold: optFloat(b.Get("released_threshold")),
		Scale:             optFloat(b.Get("scale")),
	}
	if dirs := b.Get("directions"); dirs.IsObject() {
		def.Directions = make(map[string]string)
		dirs.ForEach(func(k, v gjson.Result) bool {
			def.Directions[k.String()] = v.String()
			return true
		})
	}
	for _, n := range b.Get("vector2_scale").Array() {
		def.Vector2Scale = append(def.Vector2Scale, n.Float())
	}
	return def
}

func optBool(r gjson.Result) *bool {
	if !r.Exists() {
		return nil
	}
	v := r.Bool()
	return &v
}

func optFloat(r gjson.Result) *float64 {
	if !r.Exists() {
		return nil
	}
	v := r.Float()
	return &v
}
