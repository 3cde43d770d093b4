package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func captureLogger(t *testing.T, handler func(*bytes.Buffer) slog.Handler) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	original := Logger()
	ReplaceLogger(slog.New(handler(buf)))
	t.Cleanup(func() {
		ReplaceLogger(original)
		levelVar.Set(slog.LevelInfo)
	})
	return buf
}

func TestInfoProducesLogfmtWithTimestamp(t *testing.T) {
	buf := captureLogger(t, func(b *bytes.Buffer) slog.Handler { return newHandler(b) })

	Info(context.Background(), "hello", "user", "test")

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatalf("expected log output, got empty string")
	}
	for _, want := range []string{"ts=", "level=info", "msg=hello", "user=test"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in log line, got %q", want, line)
		}
	}
}

func TestJSONHandlerRenamesKeys(t *testing.T) {
	buf := captureLogger(t, func(b *bytes.Buffer) slog.Handler { return newJSONHandler(b) })

	Warn(context.Background(), "low stock", "ingredient", "flour")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode json log line: %v", err)
	}
	if entry["level"] != "warn" || entry["msg"] != "low stock" || entry["ingredient"] != "flour" {
		t.Fatalf("unexpected json entry: %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key in %v", entry)
	}
}

func TestSetLevelFiltersDebug(t *testing.T) {
	buf := captureLogger(t, func(b *bytes.Buffer) slog.Handler { return newHandler(b) })

	Debug(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug to be filtered at info level, got %q", buf.String())
	}

	if err := SetLevel("debug"); err != nil {
		t.Fatalf("SetLevel(debug) error = %v", err)
	}
	Debug(context.Background(), "shown")
	if !strings.Contains(buf.String(), "msg=shown") {
		t.Fatalf("expected debug line after level change, got %q", buf.String())
	}
}

func TestSetLevelAndFormatRejectUnknownValues(t *testing.T) {
	if err := SetLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if err := SetFormat("xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestWithAttachesAttributes(t *testing.T) {
	buf := captureLogger(t, func(b *bytes.Buffer) slog.Handler { return newHandler(b) })

	With("component", "inventory").Info("ready")
	if !strings.Contains(buf.String(), "component=inventory") {
		t.Fatalf("expected component attribute, got %q", buf.String())
	}
}
