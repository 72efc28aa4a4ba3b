package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

// logEntry mirrors the slog JSON handler output shape
type logEntry struct {
	Level   string `json:"level"`
	Message string `json:"msg"`
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)

	t.Run("debug not logged at info level", func(t *testing.T) {
		buf.Reset()
		logger.Debug("debug message")
		if buf.Len() > 0 {
			t.Error("Debug message should not be logged at Info level")
		}
	})

	t.Run("info logged at info level", func(t *testing.T) {
		buf.Reset()
		logger.Info("info message")
		if buf.Len() == 0 {
			t.Fatal("Info message should be logged at Info level")
		}

		var entry logEntry
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("Failed to unmarshal log entry: %v", err)
		}

		if entry.Level != "INFO" {
			t.Errorf("Expected level INFO, got %s", entry.Level)
		}
		if entry.Message != "info message" {
			t.Errorf("Expected message 'info message', got %s", entry.Message)
		}
	})

	t.Run("warn logged at info level", func(t *testing.T) {
		buf.Reset()
		logger.Warn("warn message")
		if buf.Len() == 0 {
			t.Error("Warn message should be logged at Info level")
		}
	})

	t.Run("error logged at info level", func(t *testing.T) {
		buf.Reset()
		logger.Error("error message")
		if buf.Len() == 0 {
			t.Error("Error message should be logged at Info level")
		}
	})

	t.Run("debug logged at debug level", func(t *testing.T) {
		var debugBuf bytes.Buffer
		debugLogger := NewLogger(DebugLevel, &debugBuf)
		debugLogger.Debug("debug message")
		if debugBuf.Len() == 0 {
			t.Error("Debug message should be logged at Debug level")
		}
	})
}

func TestLogger_Formatted(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)

	logger.Infof("linted %d files", 3)

	var entry logEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal log entry: %v", err)
	}
	if entry.Message != "linted 3 files" {
		t.Errorf("Expected formatted message, got %q", entry.Message)
	}
}

func TestLogger_WithField(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)

	logger.WithField("file", "thing.proto").Info("linting")

	var raw map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("Failed to unmarshal log entry: %v", err)
	}
	if raw["file"] != "thing.proto" {
		t.Errorf("Expected field file=thing.proto, got %v", raw["file"])
	}
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)

	logger.WithFields(map[string]interface{}{
		"files":  float64(2),
		"errors": float64(1),
	}).Info("lint complete")

	var raw map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("Failed to unmarshal log entry: %v", err)
	}
	if raw["files"] != float64(2) {
		t.Errorf("Expected files=2, got %v", raw["files"])
	}
	if raw["errors"] != float64(1) {
		t.Errorf("Expected errors=1, got %v", raw["errors"])
	}
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)

	t.Run("nil error is a no-op", func(t *testing.T) {
		buf.Reset()
		logger.WithError(nil).Info("ok")

		var raw map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
			t.Fatalf("Failed to unmarshal log entry: %v", err)
		}
		if _, ok := raw["error"]; ok {
			t.Error("nil error should not add an error field")
		}
	})

	t.Run("non-nil error adds field", func(t *testing.T) {
		buf.Reset()
		logger.WithError(context.DeadlineExceeded).Error("lint failed")

		var raw map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
			t.Fatalf("Failed to unmarshal log entry: %v", err)
		}
		if raw["error"] != context.DeadlineExceeded.Error() {
			t.Errorf("Expected error field, got %v", raw["error"])
		}
	})
}

func TestLogger_Context(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)

	ctx := WithLogger(context.Background(), logger)
	ctx = WithRequestID(ctx, "req-123")

	if got := GetRequestID(ctx); got != "req-123" {
		t.Errorf("Expected request ID req-123, got %q", got)
	}

	FromContext(ctx).Info("handling request")

	var raw map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("Failed to unmarshal log entry: %v", err)
	}
	if raw["request_id"] != "req-123" {
		t.Errorf("Expected request_id field, got %v", raw["request_id"])
	}
}

func TestLogger_ContextDefaults(t *testing.T) {
	ctx := context.Background()

	if got := GetRequestID(ctx); got != "" {
		t.Errorf("Expected empty request ID, got %q", got)
	}
	if logger := GetLogger(ctx); logger == nil {
		t.Error("GetLogger should fall back to a default logger")
	}
	if logger := FromContext(ctx); logger == nil {
		t.Error("FromContext should never return nil")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"ERROR", ErrorLevel},
		{"bogus", InfoLevel},
		{"", InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestLogLevel_String(t *testing.T) {
	levels := map[LogLevel]string{
		DebugLevel: "DEBUG",
		InfoLevel:  "INFO",
		WarnLevel:  "WARN",
		ErrorLevel: "ERROR",
	}
	for level, want := range levels {
		if got := level.String(); got != want {
			t.Errorf("LogLevel(%d).String() = %q, want %q", level, got, want)
		}
	}
}
