package config

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/dshills/inputkit/internal/host"
	"github.com/dshills/inputkit/internal/input/key"
	"github.com/dshills/inputkit/internal/inputmap"
)

// Set is the group of contexts built from one definition.
type Set struct {
	contexts []*inputmap.Context
	byName   map[string]*inputmap.Context
}

// Apply builds every context of def on engine. If any step fails, the
// contexts built so far are destroyed and the error is returned.
// def should have passed Validate.
func Apply(engine host.Host, def *Definition) (*Set, error) {
	s := &Set{byName: make(map[string]*inputmap.Context)}
	for _, cd := range def.Contexts {
		c, err := applyContext(engine, cd)
		if err != nil {
			if derr := s.Destroy(); derr != nil {
				Logger().Warn("cleaning up partial config", zap.Error(derr))
			}
			return nil, err
		}
		s.contexts = append(s.contexts, c)
		s.byName[cd.Name] = c
	}
	Logger().Info("input config applied", zap.Int("contexts", len(s.contexts)))
	return s, nil
}

func applyContext(engine host.Host, cd ContextDef) (*inputmap.Context, error) {
	opts := []inputmap.Option{inputmap.WithPriority(cd.Priority), inputmap.WithSink(cd.Sink)}
	if cd.Enabled != nil {
		opts = append(opts, inputmap.WithEnabled(*cd.Enabled))
	}
	c, err := inputmap.Create(engine, cd.Name, opts...)
	if err != nil {
		return nil, &ApplyError{Context: cd.Name, Err: err}
	}
	for _, ad := range cd.Actions {
		if err := applyAction(c, ad); err != nil {
			_ = c.Destroy()
			return nil, &ApplyError{Context: cd.Name, Action: ad.Name, Err: err}
		}
	}
	return c, nil
}

func applyAction(c *inputmap.Context, ad ActionDef) error {
	var typ []host.ActionType
	if ad.Type != "" {
		t, err := host.ParseActionType(ad.Type)
		if err != nil {
			return err
		}
		typ = append(typ, t)
	}
	a, err := c.CreateAction(ad.Name, typ...)
	if err != nil {
		return err
	}
	if ad.Enabled != nil {
		if err := a.SetEnabled(*ad.Enabled).Err(); err != nil {
			return err
		}
	}
	for _, bd := range ad.Bindings {
		if err := applyBinding(a, bd); err != nil {
			return fmt.Errorf("binding %q: %w", bd.Name, err)
		}
	}
	return nil
}

func applyBinding(a *inputmap.Action, bd BindingDef) error {
	b, err := a.CreateBinding(bd.Name)
	if err != nil {
		return err
	}

	switch bd.Preset {
	case PresetWASD:
		b.SetWASD()
	case PresetArrows:
		b.SetArrowKeys()
	}
	if len(bd.Directions) > 0 {
		dirs := make(map[inputmap.Direction]key.Code, len(bd.Directions))
		for name, code := range bd.Directions {
			c, err := key.Parse(code)
			if err != nil {
				return err
			}
			dirs[inputmap.Direction(name)] = c
		}
		b.SetDirections(dirs)
	}
	if bd.KeyCode != "" {
		c, err := key.Parse(bd.KeyCode)
		if err != nil {
			return err
		}
		b.SetKeyCode(c)
	}
	if bd.UIButton != "" {
		b.SetUIButton(bd.UIButton)
	}
	if bd.PressedThreshold != nil {
		b.SetPressedThreshold(*bd.PressedThreshold)
	}
	if bd.ReleasedThreshold != nil {
		b.SetReleasedThreshold(*bd.ReleasedThreshold)
	}
	if bd.Scale != nil {
		b.SetScale(*bd.Scale)
	}
	if len(bd.Vector2Scale) == 2 {
		b.SetVector2Scale(host.Vector2{X: bd.Vector2Scale[0], Y: bd.Vector2Scale[1]})
	}
	return b.Err()
}

// Context returns the context built for the named definition.
func (s *Set) Context(name string) (*inputmap.Context, bool) {
	c, ok := s.byName[name]
	if !ok || c.Destroyed() {
		return nil, false
	}
	return c, true
}

// Contexts returns the live contexts in definition order.
func (s *Set) Contexts() []*inputmap.Context {
	out := make([]*inputmap.Context, 0, len(s.contexts))
	for _, c := range s.contexts {
		if !c.Destroyed() {
			out = append(out, c)
		}
	}
	return out
}

// Names returns the context names, sorted.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.byName))
	for name := range s.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Destroy destroys every context in the set. It is safe to call twice.
func (s *Set) Destroy() error {
	var errs []error
	for _, c := range s.contexts {
		errs = append(errs, c.Destroy())
	}
	return errors.Join(errs...)
}
