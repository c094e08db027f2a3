package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger()
	if logger == nil || logger.Logger == nil {
		t.Fatal("NewLogger() returned an unusable logger")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{"debug", "DEBUG", slog.LevelDebug},
		{"info", "INFO", slog.LevelInfo},
		{"warn", "WARN", slog.LevelWarn},
		{"warning", "WARNING", slog.LevelWarn},
		{"error", "ERROR", slog.LevelError},
		{"lowercase", "debug", slog.LevelDebug},
		{"invalid", "LOUD", slog.LevelInfo},
		{"empty", "", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLogLevelFromEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	if got := getLogLevelFromEnv(); got != slog.LevelError {
		t.Errorf("getLogLevelFromEnv() = %v", got)
	}
}

func TestRunID(t *testing.T) {
	id1 := GenerateRunID()
	id2 := GenerateRunID()
	if len(id1) != 16 || id1 == id2 {
		t.Errorf("GenerateRunID() = %q, %q", id1, id2)
	}

	ctx := WithRunID(context.Background(), "run-42")
	if GetRunID(ctx) != "run-42" {
		t.Errorf("GetRunID() = %q", GetRunID(ctx))
	}
	if GetRunID(WithRunID(context.Background(), "")) == "" {
		t.Error("empty id should be replaced by a generated one")
	}
	if GetRunID(context.Background()) != "" {
		t.Error("plain context should have no run id")
	}
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse log JSON %q: %v", buf.String(), err)
	}
	return entry
}

func TestLoggerMethods_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, slog.LevelDebug, FormatJSON)
	ctx := WithRunID(context.Background(), "test-run")

	t.Run("info_carries_run_id", func(t *testing.T) {
		buf.Reset()
		logger.Info(ctx, "wave advanced", "wave", 2)
		entry := decode(t, &buf)
		if entry["msg"] != "wave advanced" || entry["level"] != "INFO" {
			t.Errorf("entry = %v", entry)
		}
		if entry["run_id"] != "test-run" {
			t.Errorf("run_id = %v", entry["run_id"])
		}
	})

	t.Run("error_includes_error_text", func(t *testing.T) {
		buf.Reset()
		logger.Error(ctx, "config rejected", errors.New("bad width"))
		entry := decode(t, &buf)
		if entry["level"] != "ERROR" || entry["error"] != "bad width" {
			t.Errorf("entry = %v", entry)
		}
	})

	t.Run("floats_rounded", func(t *testing.T) {
		buf.Reset()
		logger.Debug(ctx, "player", "x", 1234.56789, "bad", math.NaN())
		entry := decode(t, &buf)
		if entry["x"] != 1234.57 {
			t.Errorf("x = %v, expected 1234.57", entry["x"])
		}
		if entry["bad"] != "NaN" {
			t.Errorf("bad = %v, expected NaN string", entry["bad"])
		}
	})

	t.Run("level_filtering", func(t *testing.T) {
		var quiet bytes.Buffer
		l := NewLoggerWithWriter(&quiet, slog.LevelWarn, FormatJSON)
		l.Info(ctx, "hidden")
		if quiet.Len() != 0 {
			t.Errorf("info should be filtered at WARN, got %q", quiet.String())
		}
	})
}

func TestLoggerMethods_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, slog.LevelInfo, FormatText)

	logger.Warn(context.Background(), "shield depleted", "craft", "player")
	out := buf.String()
	if !strings.Contains(out, "shield depleted") || !strings.Contains(out, "player") {
		t.Errorf("text output missing content: %q", out)
	}

	buf.Reset()
	logger.Debug(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Errorf("debug should be filtered at INFO, got %q", buf.String())
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}

	original := errors.New("original error")
	wrapped := WrapError(original, "loading %s", "arena.json")
	if wrapped.Error() != "loading arena.json: original error" {
		t.Errorf("WrapError() = %q", wrapped.Error())
	}
	if !errors.Is(wrapped, original) {
		t.Error("WrapError() should preserve original error")
	}
}
