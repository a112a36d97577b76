package memhost

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/inputkit/internal/host"
	"github.com/dshills/inputkit/internal/input/key"
)

// Host is an in-memory object system. It is safe for concurrent use,
// but signal listeners always run on the goroutine that called Fire.
type Host struct {
	mu      sync.Mutex
	objects map[string]*object
}

// New creates an empty host.
func New() *Host {
	return &Host{objects: make(map[string]*object)}
}

// New creates an unparented object of the given class.
func (h *Host) New(class host.Class) (host.Object, error) {
	if !host.KnownClass(class) {
		return nil, fmt.Errorf("%w: %q", host.ErrUnknownClass, class)
	}

	o := &object{
		host:  h,
		id:    uuid.NewString(),
		class: class,
		props: defaults(class),
	}
	o.self = o
	if class == host.ClassAction {
		o.state = host.ActionBool.ZeroState()
		o.signals = map[host.SignalName]*signal{
			host.SignalPressed:      {},
			host.SignalReleased:     {},
			host.SignalStateChanged: {},
		}
		o.self = &actionObject{o}
	}

	h.mu.Lock()
	h.objects[o.id] = o
	h.mu.Unlock()

	return o.self, nil
}

// Lookup returns a live object by ID.
func (h *Host) Lookup(id string) (host.Object, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	o, ok := h.objects[id]
	if !ok {
		return nil, false
	}
	return o.self, true
}

// Len returns the number of live objects.
func (h *Host) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.objects)
}

// Children returns the live children of an object in insertion order.
func (h *Host) Children(parent host.Object) []host.Object {
	p, ok := h.own(parent)
	if !ok {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]host.Object, 0, len(p.children))
	for _, c := range p.children {
		out = append(out, c.self)
	}
	return out
}

// own resolves an Object created by this host to its record.
func (h *Host) own(v host.Object) (*object, bool) {
	var o *object
	switch x := v.(type) {
	case *object:
		o = x
	case *actionObject:
		o = x.object
	default:
		return nil, false
	}
	return o, o.host == h
}

func defaults(class host.Class) map[string]any {
	props := map[string]any{
		"Name":   string(class),
		"Parent": nil,
	}
	switch class {
	case host.ClassContext:
		props["Enabled"] = true
		props["Priority"] = 0
		props["Sink"] = false
	case host.ClassAction:
		props["Type"] = host.ActionBool
		props["Enabled"] = true
	case host.ClassBinding:
		props["KeyCode"] = key.Unknown
		props["UIButton"] = ""
		props["PressedThreshold"] = 0.5
		props["ReleasedThreshold"] = 0.2
		props["Scale"] = 1.0
		props["Vector2Scale"] = host.Vector2{X: 1, Y: 1}
		for _, dir := range []string{"Up", "Down", "Left", "Right", "Forward", "Backward"} {
			props[dir] = key.Unknown
		}
	}
	return props
}
