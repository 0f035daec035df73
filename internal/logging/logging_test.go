package logging

import (
	"log/slog"
	"strings"
	"testing"
)

func TestNewTextRespectsLevel(t *testing.T) {
	var buf strings.Builder
	log := NewText(&buf, slog.LevelInfo)
	log.Debug("hidden")
	log.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line leaked: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "key=value") {
		t.Fatalf("warn line missing: %s", out)
	}
}

func TestNewJSON(t *testing.T) {
	var buf strings.Builder
	log := NewJSON(&buf, slog.LevelDebug)
	log.Info("hello", "n", 1)
	out := buf.String()
	if !strings.Contains(out, `"msg":"hello"`) || !strings.Contains(out, `"n":1`) {
		t.Fatalf("json line: %s", out)
	}
}

func TestNopDiscards(t *testing.T) {
	// Must not panic with no sink.
	log := Nop()
	log.Debug("a")
	log.Info("b", "k", "v")
	log.Warn("c")
	log.Error("d")
}
