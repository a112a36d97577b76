package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/inputkit/internal/config"
	"github.com/dshills/inputkit/internal/host/memhost"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func newTestSet(t *testing.T) *config.Set {
	t.Helper()
	def := &config.Definition{Contexts: []config.ContextDef{{Name: "Gameplay"}}}
	set, err := config.Apply(memhost.New(), def)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	t.Cleanup(func() { _ = set.Destroy() })
	return set
}

func TestDumpOnReload(t *testing.T) {
	set := newTestSet(t)

	var out, errOut bytes.Buffer
	dumpOnReload(true, &out, &errOut)(set)
	if !strings.Contains(out.String(), `"Gameplay"`) {
		t.Errorf("dump output = %q", out.String())
	}
	if errOut.Len() != 0 {
		t.Errorf("unexpected error output %q", errOut.String())
	}

	out.Reset()
	dumpOnReload(false, &out, &errOut)(set)
	if out.Len() != 0 {
		t.Errorf("dump disabled but wrote %q", out.String())
	}
}

func TestDumpOnReloadReportsWriteError(t *testing.T) {
	set := newTestSet(t)

	var errOut bytes.Buffer
	dumpOnReload(true, failingWriter{}, &errOut)(set)
	if got := errOut.String(); !strings.Contains(got, "Error: dump: disk full") {
		t.Errorf("error output = %q", got)
	}
}
