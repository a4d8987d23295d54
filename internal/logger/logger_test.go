package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_TextLevels(t *testing.T) {
	var buf bytes.Buffer

	log := New(Options{Writer: &buf, Level: "warn"})
	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message", "op", "list")
	log.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below warn were written:\n%s", out)
	}

	if !strings.Contains(out, "warn message") || !strings.Contains(out, "op=list") {
		t.Errorf("warn message missing:\n%s", out)
	}

	if !strings.Contains(out, "error message") {
		t.Errorf("error message missing:\n%s", out)
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer

	log := New(Options{Writer: &buf, Level: "info", Format: FormatJSON})
	log.With("component", "cms").Info("request done", "status", 200)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}

	if entry["component"] != "cms" || entry["msg"] != "request done" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestSetLevel_AppliesToChildren(t *testing.T) {
	var buf bytes.Buffer

	log := New(Options{Writer: &buf, Level: "error"})
	child := log.With("op", "get")

	child.Info("hidden")
	log.SetLevel("debug")
	child.Debug("shown")
	log.Log(context.Background(), slog.LevelInfo, "via log")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info written while level was error:\n%s", out)
	}

	if !strings.Contains(out, "shown") || !strings.Contains(out, "via log") {
		t.Errorf("expected messages after SetLevel:\n%s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}

	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
