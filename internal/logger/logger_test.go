package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("%q: expected %s, got %s", in, want, got)
		}
	}
}

func TestNew_ReleaseModeWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(&buf, "info", gin.ReleaseMode)

	log.Debug("hidden")
	log.Info("booking confirmed", "booking_id", "b-1")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if line["msg"] != "booking confirmed" || line["booking_id"] != "b-1" {
		t.Fatalf("unexpected record %v", line)
	}
}

func TestNew_DebugModeWritesText(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(&buf, "debug", gin.DebugMode)

	log.Debug("seat toggled", "label", "A1")

	if !strings.Contains(buf.String(), "msg=\"seat toggled\"") || !strings.Contains(buf.String(), "label=A1") {
		t.Fatalf("unexpected text output %q", buf.String())
	}
}
