package debug

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogDisabled(t *testing.T) {
	Disable()
	if Enabled() {
		t.Fatal("logging enabled after Disable")
	}
	Log("scene", "dropped %d", 1) // must not panic
}

func TestLogWriter(t *testing.T) {
	var buf bytes.Buffer
	EnableWriter(&buf)
	defer Disable()

	Log("scene", "wrapped at slot %d", 7)
	out := buf.String()
	if !strings.Contains(out, "category=scene") || !strings.Contains(out, "wrapped at slot 7") {
		t.Errorf("log line = %q", out)
	}
}

func TestLogEvery(t *testing.T) {
	var buf bytes.Buffer
	EnableWriter(&buf)
	defer Disable()

	for i := 0; i < 7; i++ {
		LogEvery(3, "input", "queue full")
	}
	// calls 1, 4 and 7
	if n := strings.Count(buf.String(), "queue full"); n != 3 {
		t.Errorf("logged %d lines, want 3:\n%s", n, buf.String())
	}
}
