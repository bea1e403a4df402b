package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 2)

	p.Done("alpha")
	p.Done("beta")

	out := buf.String()
	if !strings.Contains(out, "[1/2]") || !strings.Contains(out, "alpha") {
		t.Errorf("missing first progress line in %q", out)
	}
	if !strings.Contains(out, "[2/2]") || !strings.Contains(out, "beta") {
		t.Errorf("missing second progress line in %q", out)
	}
}

func TestProgressWarn(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 1)

	p.Warn("failed to sync %s: %v", "dep", "timeout")

	out := buf.String()
	if !strings.Contains(out, "[1/1]") {
		t.Errorf("missing counter in %q", out)
	}
	if !strings.Contains(out, "failed to sync dep: timeout") {
		t.Errorf("missing warning text in %q", out)
	}
}

func TestProgressLog(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 1)

	p.Log("syncing %d dependencies", 3)

	if got := buf.String(); got != "syncing 3 dependencies\n" {
		t.Errorf("got %q", got)
	}
}
