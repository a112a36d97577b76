package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/inputkit/internal/host"
	"github.com/dshills/inputkit/internal/inputmap"
)

// fireSpec is one -fire argument: Context.Action=value.
type fireSpec struct {
	Context string
	Action  string
	Value   string
}

// fireList collects repeated -fire flags.
type fireList []fireSpec

func (f *fireList) String() string {
	parts := make([]string, len(*f))
	for i, s := range *f {
		parts[i] = fmt.Sprintf("%s.%s=%s", s.Context, s.Action, s.Value)
	}
	return strings.Join(parts, " ")
}

func (f *fireList) Set(arg string) error {
	target, value, ok := strings.Cut(arg, "=")
	if !ok {
		return fmt.Errorf("want Context.Action=value, got %q", arg)
	}
	ctx, action, ok := strings.Cut(target, ".")
	if !ok || ctx == "" || action == "" {
		return fmt.Errorf("want Context.Action=value, got %q", arg)
	}
	*f = append(*f, fireSpec{Context: ctx, Action: action, Value: value})
	return nil
}

// parseState converts a command-line value to the state shape of t:
// true/false, a number, or comma-separated components.
func parseState(t host.ActionType, s string) (any, error) {
	s = strings.TrimSpace(s)
	switch t {
	case host.ActionBool:
		return strconv.ParseBool(s)
	case host.ActionDirection1D:
		return strconv.ParseFloat(s, 64)
	}

	fields := strings.Split(s, ",")
	want := 2
	if t == host.ActionDirection3D {
		want = 3
	}
	if len(fields) != want {
		return nil, fmt.Errorf("%s state needs %d components, got %q", t, want, s)
	}
	comps := make([]float64, want)
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		comps[i] = v
	}
	if t == host.ActionDirection3D {
		return host.Vector3{X: comps[0], Y: comps[1], Z: comps[2]}, nil
	}
	return host.Vector2{X: comps[0], Y: comps[1]}, nil
}

// fire applies one spec to the first context with a matching name.
func fire(contexts []*inputmap.Context, spec fireSpec) (any, error) {
	for _, c := range contexts {
		if name, _ := c.Name(); name != spec.Context {
			continue
		}
		a, ok := c.Action(spec.Action)
		if !ok {
			return nil, fmt.Errorf("context %q has no action %q", spec.Context, spec.Action)
		}
		typ, err := a.Type()
		if err != nil {
			return nil, err
		}
		state, err := parseState(typ, spec.Value)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", spec.Context, spec.Action, err)
		}
		if err := a.Fire(state); err != nil {
			return nil, err
		}
		return a.State()
	}
	return nil, fmt.Errorf("no context %q", spec.Context)
}
