package errors

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, false)

	logger.Error("error message")
	logger.Warn("warn message")
	logger.Info("info message")
	logger.Debug("debug message")

	output := buf.String()
	if !strings.Contains(output, "error message") {
		t.Error("error message not logged")
	}
	if strings.Contains(output, "warn message") ||
		strings.Contains(output, "info message") ||
		strings.Contains(output, "debug message") {
		t.Errorf("non-error messages logged without verbose: %q", output)
	}
}

func TestLogger_Verbose(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, true)

	logger.Error("error message")
	logger.Warn("warn message")
	logger.Info("info message")
	logger.Debug("debug message")

	output := buf.String()
	for _, want := range []string{"error message", "warn message", "info message", "debug message"} {
		if !strings.Contains(output, want) {
			t.Errorf("verbose logger missing %q", want)
		}
	}
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, false)

	logger.Error("count=%d", 42)

	output := buf.String()
	if !strings.Contains(output, "ERROR: count=42") {
		t.Errorf("output = %q, want level and formatted message", output)
	}
}

func TestSetVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	}()

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("IsVerbose = false after SetVerbose(true)")
	}

	Debug("debug via default logger")
	if !strings.Contains(buf.String(), "debug via default logger") {
		t.Error("debug message not logged in verbose mode")
	}

	SetVerbose(false)
	if IsVerbose() {
		t.Error("IsVerbose = true after SetVerbose(false)")
	}
}

func TestLogAPIRequestResponse(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, true)

	logger.LogAPIRequest("openai", "http://localhost:8080", "gpt-4o-mini", 128)
	logger.LogAPIResponse("openai", 200, 256, 150*time.Millisecond)

	output := buf.String()
	if !strings.Contains(output, "API Request") || !strings.Contains(output, "gpt-4o-mini") {
		t.Errorf("request log missing fields: %q", output)
	}
	if !strings.Contains(output, "API Response") || !strings.Contains(output, "status=200") {
		t.Errorf("response log missing fields: %q", output)
	}
}

func TestLogAPIRequest_SilentWithoutVerbose(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, false)

	logger.LogAPIRequest("openai", "", "gpt-4o-mini", 10)
	if buf.Len() != 0 {
		t.Errorf("API request logged without verbose: %q", buf.String())
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"long key", "sk-abcdefgh1234", "***********1234"},
		{"short key", "abc", "****"},
		{"empty", "", "****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskAPIKey(tt.input); got != tt.want {
				t.Errorf("MaskAPIKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
