package inputmap

import (
	"testing"

	"github.com/dshills/inputkit/internal/host"
	"github.com/dshills/inputkit/internal/host/memhost"
)

func newTestContext(t *testing.T, name string) (*memhost.Host, *Context) {
	t.Helper()
	engine := memhost.New()
	c, err := Create(engine, name)
	if err != nil {
		t.Fatalf("Create(%q) error = %v", name, err)
	}
	return engine, c
}

func mustAction(t *testing.T, c *Context, name string, typ ...host.ActionType) *Action {
	t.Helper()
	a, err := c.CreateAction(name, typ...)
	if err != nil {
		t.Fatalf("CreateAction(%q) error = %v", name, err)
	}
	return a
}

func mustBinding(t *testing.T, a *Action, name string) *Binding {
	t.Helper()
	b, err := a.CreateBinding(name)
	if err != nil {
		t.Fatalf("CreateBinding(%q) error = %v", name, err)
	}
	return b
}

// countingObject counts property reads forwarded to the wrapped object.
type countingObject struct {
	host.Object
	gets map[string]int
}

func (c *countingObject) Get(name string) (any, error) {
	c.gets[name]++
	return c.Object.Get(name)
}
