package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/contre95/discogsmeta/src/features/config"
)

func TestNewLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, config.Logger{Enabled: true, Level: "warn", Format: "logfmt"})

	logger.Info("hidden message")
	logger.Warn("visible message", "album", "Discovery")

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(out, "visible message") {
		t.Errorf("expected warn message in output, got %q", out)
	}
}

func TestNewLogger_Disabled(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, config.Logger{Enabled: false, Level: "debug"})

	logger.Error("nothing to see")

	if buf.Len() != 0 {
		t.Errorf("expected no output when disabled, got %q", buf.String())
	}
}
