package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{"quiet", false, false},
		{"verbose", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			log := New(&buf, Options{Verbose: tt.verbose})
			log.Debug("compiled index", "skills", 6)
			log.Warn("cache stale")

			out := buf.String()
			if got := strings.Contains(out, "compiled index"); got != tt.wantDebug {
				t.Errorf("debug line present = %v, want %v (output %q)", got, tt.wantDebug, out)
			}
			if !strings.Contains(out, "cache stale") {
				t.Errorf("warn line missing from %q", out)
			}
		})
	}
}

func TestNew_NoColorOffTerminal(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	New(&buf, Options{}).Warn("plain", "key", "value")
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("non-terminal writer should not receive ANSI escapes: %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	// Must not panic and must accept any level.
	Discard().Error("ignored", "k", 1)
}
