package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorCode_ExitCode(t *testing.T) {
	tests := []struct {
		name     string
		code     ErrorCode
		expected int
	}{
		{"EmptySelection", ErrEmptySelection, 1},
		{"InvalidConfig", ErrInvalidConfig, 1},
		{"MissingAPIKey", ErrMissingAPIKey, 1},
		{"InvalidArguments", ErrInvalidArguments, 1},
		{"FileSystemError", ErrFileSystemError, 2},
		{"ConfigCorruption", ErrConfigCorruption, 2},
		{"AIProviderFailed", ErrAIProviderFailed, 3},
		{"NetworkError", ErrNetworkError, 3},
		{"Timeout", ErrTimeout, 3},
		{"MalformedResponse", ErrMalformedResponse, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.code.ExitCode(); got != tt.expected {
				t.Errorf("ExitCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name: "without cause",
			err: &AppError{
				Code:    ErrEmptySelection,
				Message: "nothing to comment",
			},
			expected: "nothing to comment",
		},
		{
			name: "with cause",
			err: &AppError{
				Code:    ErrFileSystemError,
				Message: "read failed",
				Cause:   errors.New("permission denied"),
			},
			expected: "read failed: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(cause, ErrNetworkError, "wrapped")

	if !errors.Is(err, cause) {
		t.Error("errors.Is failed to find the cause")
	}
}

func TestGetAppError(t *testing.T) {
	appErr := New(ErrTimeout, "timed out")
	wrapped := Wrap(appErr, ErrAIProviderFailed, "outer")

	got := GetAppError(wrapped)
	if got == nil {
		t.Fatal("GetAppError returned nil")
	}
	if got.Code != ErrAIProviderFailed {
		t.Errorf("Code = %v, want outermost ErrAIProviderFailed", got.Code)
	}

	if GetAppError(errors.New("plain")) != nil {
		t.Error("GetAppError on plain error should return nil")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"app error user", NewEmptySelectionError(), 1},
		{"app error system", NewFileSystemError(errors.New("io"), "/tmp/x"), 2},
		{"app error external", NewNetworkError(errors.New("refused")), 3},
		{"plain error", errors.New("plain"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.expected {
				t.Errorf("GetExitCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewEmptySelectionError(t *testing.T) {
	err := NewEmptySelectionError()
	if err.Code != ErrEmptySelection {
		t.Errorf("Code = %v, want ErrEmptySelection", err.Code)
	}
	if !strings.Contains(err.Message, "nothing to comment") {
		t.Errorf("Message = %q, want it to mention nothing to comment", err.Message)
	}
}

func TestNewMissingAPIKeyError(t *testing.T) {
	err := NewMissingAPIKeyError()
	if err.Code != ErrMissingAPIKey {
		t.Errorf("Code = %v, want ErrMissingAPIKey", err.Code)
	}
	if !strings.Contains(err.Suggestion, "codesage key set") {
		t.Errorf("Suggestion = %q, want it to name the key command", err.Suggestion)
	}
}

func TestFormatError(t *testing.T) {
	err := NewEmptySelectionError()
	formatted := FormatError(err)

	if !strings.Contains(formatted, "Error: ") {
		t.Errorf("formatted = %q, missing Error prefix", formatted)
	}
	if !strings.Contains(formatted, "Suggestion: ") {
		t.Errorf("formatted = %q, missing suggestion", formatted)
	}
}

func TestFormatError_MasksAPIKey(t *testing.T) {
	key := "sk-abcdefghijklmnopqrstuvwxyz123456"
	err := New(ErrAuthenticationFailed, "bad key "+key)

	formatted := FormatError(err)
	if strings.Contains(formatted, key) {
		t.Errorf("formatted error leaked the API key: %q", formatted)
	}
	if !strings.Contains(formatted, "3456") {
		t.Errorf("masking should keep the last 4 characters: %q", formatted)
	}
}

func TestFormatErrorVerbose(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, ErrNetworkError, "request failed").
		WithContext("endpoint", "http://localhost:8080").
		WithSuggestion("check the server")

	formatted := FormatErrorVerbose(err)
	for _, want := range []string{"NetworkError", "request failed", "connection refused", "endpoint", "check the server"} {
		if !strings.Contains(formatted, want) {
			t.Errorf("verbose format missing %q: %q", want, formatted)
		}
	}
}

func TestSanitizeErrorMessage(t *testing.T) {
	msg := "auth failed for sk-abcdefghijklmnopqrstuvwx"
	got := SanitizeErrorMessage(msg)
	if strings.Contains(got, "sk-abcdefghijklmnopqrstuvwx") {
		t.Errorf("key not masked: %q", got)
	}

	plain := "no secrets here"
	if SanitizeErrorMessage(plain) != plain {
		t.Errorf("plain message altered: %q", SanitizeErrorMessage(plain))
	}
}
