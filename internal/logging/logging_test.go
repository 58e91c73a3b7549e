package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_Levels(t *testing.T) {
	t.Parallel()

	var quiet bytes.Buffer
	New(&quiet, false).Debug("hidden")
	if quiet.Len() != 0 {
		t.Errorf("debug output without verbose: %q", quiet.String())
	}

	var loud bytes.Buffer
	New(&loud, true).Debug("shown", "key", "value")
	out := loud.String()
	if !strings.Contains(out, "shown") || !strings.Contains(out, Prefix) || !strings.Contains(out, "key=value") {
		t.Errorf("verbose debug output = %q", out)
	}
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	// Must not panic or write anywhere.
	Discard().Error("dropped", "err", "boom")
}
