package inputmap

import (
	"fmt"

	"github.com/tidwall/sjson"

	"github.com/dshills/inputkit/internal/host"
	"github.com/dshills/inputkit/internal/input/key"
)

// Describe renders live contexts as a JSON document:
//
//	{"contexts":[{"name":"Gameplay","properties":{...},
//	  "actions":[{"name":"Jump","state":false,"properties":{...},
//	    "bindings":[{"name":"Keyboard","properties":{"KeyCode":"Space",...}}]}]}]}
//
// Only properties readable for the current configuration are included, so a
// binding lists exactly the properties its action type allows.
func Describe(contexts ...*Context) ([]byte, error) {
	doc := []byte(`{"contexts":[]}`)
	var err error

	n := 0
	for _, c := range contexts {
		if c == nil || c.Destroyed() {
			continue
		}
		base := fmt.Sprintf("contexts.%d", n)
		n++
		if doc, err = describeHandle(doc, base, c.slotName(), &c.handle); err != nil {
			return nil, err
		}
		if doc, err = sjson.SetRawBytes(doc, base+".actions", []byte("[]")); err != nil {
			return nil, err
		}
		for j, a := range c.actions.values() {
			abase := fmt.Sprintf("%s.actions.%d", base, j)
			if doc, err = describeHandle(doc, abase, a.slot, &a.handle); err != nil {
				return nil, err
			}
			state, serr := a.State()
			if serr == nil {
				if doc, err = sjson.SetBytes(doc, abase+".state", jsonValue(state)); err != nil {
					return nil, err
				}
			}
			if doc, err = sjson.SetRawBytes(doc, abase+".bindings", []byte("[]")); err != nil {
				return nil, err
			}
			for k, b := range a.bindings.values() {
				bbase := fmt.Sprintf("%s.bindings.%d", abase, k)
				if doc, err = describeHandle(doc, bbase, b.slot, &b.handle); err != nil {
					return nil, err
				}
			}
		}
	}
	return doc, nil
}

// slotName is the context's native name, or its class when unreadable.
func (c *Context) slotName() string {
	name, err := c.Name()
	if err != nil {
		return string(host.ClassContext)
	}
	return name
}

func describeHandle(doc []byte, base, name string, h *handle) ([]byte, error) {
	doc, err := sjson.SetBytes(doc, base+".name", name)
	if err != nil {
		return nil, err
	}
	doc, err = sjson.SetBytes(doc, base+".class", string(h.native.Class()))
	if err != nil {
		return nil, err
	}
	doc, err = sjson.SetRawBytes(doc, base+".properties", []byte("{}"))
	if err != nil {
		return nil, err
	}
	for _, p := range host.Properties(h.native.Class()) {
		if p.Kind == host.KindObject || p.Name == "ClassName" {
			continue
		}
		v, gerr := h.native.Get(p.Name)
		if gerr != nil {
			continue
		}
		doc, err = sjson.SetBytes(doc, base+".properties."+p.Name, jsonValue(v))
		if err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// jsonValue converts property and state values to JSON-friendly values.
func jsonValue(v any) any {
	switch x := v.(type) {
	case key.Code:
		return x.String()
	case host.ActionType:
		return x.String()
	case host.Vector2:
		return map[string]float64{"x": x.X, "y": x.Y}
	case host.Vector3:
		return map[string]float64{"x": x.X, "y": x.Y, "z": x.Z}
	default:
		return v
	}
}
