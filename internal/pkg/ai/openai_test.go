package ai

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/codesage/codesage/internal/pkg/errors"
	"github.com/codesage/codesage/internal/pkg/selection"
)

func TestNewOpenAIProvider_MissingAPIKey(t *testing.T) {
	_, err := NewOpenAIProvider(ProviderConfig{})
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
	appErr := apperrors.GetAppError(err)
	if appErr == nil || appErr.Code != apperrors.ErrMissingAPIKey {
		t.Errorf("error = %v, want ErrMissingAPIKey", err)
	}
}

func TestNewOpenAIProvider_Defaults(t *testing.T) {
	provider, err := NewOpenAIProvider(ProviderConfig{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewOpenAIProvider returned error: %v", err)
	}

	if provider.config.Model != DefaultModel {
		t.Errorf("Model = %q, want %q", provider.config.Model, DefaultModel)
	}
	if provider.config.Temperature != DefaultTemperature {
		t.Errorf("Temperature = %v, want %v", provider.config.Temperature, DefaultTemperature)
	}
	if provider.config.MaxTokens != DefaultMaxTokens {
		t.Errorf("MaxTokens = %d, want %d", provider.config.MaxTokens, DefaultMaxTokens)
	}
	if provider.config.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", provider.config.Timeout, DefaultTimeout)
	}
}

func TestNewOpenAIProvider_CustomConfig(t *testing.T) {
	cfg := ProviderConfig{
		APIKey:      "test-key",
		Model:       "gpt-4o",
		Endpoint:    "http://localhost:8080/v1",
		Temperature: 0.7,
		MaxTokens:   512,
		Timeout:     10 * time.Second,
	}

	provider, err := NewOpenAIProvider(cfg)
	if err != nil {
		t.Fatalf("NewOpenAIProvider returned error: %v", err)
	}

	if provider.config.Model != "gpt-4o" {
		t.Errorf("Model = %q, want %q", provider.config.Model, "gpt-4o")
	}
	if provider.config.Endpoint != "http://localhost:8080/v1" {
		t.Errorf("Endpoint = %q", provider.config.Endpoint)
	}
	if provider.config.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want 0.7", provider.config.Temperature)
	}
}

func TestOpenAIProvider_Name(t *testing.T) {
	provider, err := NewOpenAIProvider(ProviderConfig{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewOpenAIProvider returned error: %v", err)
	}
	if provider.Name() != "openai" {
		t.Errorf("Name = %q, want %q", provider.Name(), "openai")
	}
}

func TestGenerateComments_EmptyText(t *testing.T) {
	provider, err := NewOpenAIProvider(ProviderConfig{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewOpenAIProvider returned error: %v", err)
	}

	_, err = provider.GenerateComments(context.Background(), &GenerateRequest{
		Text: "   ",
		Mode: selection.ModeLine,
	})
	if err == nil {
		t.Fatal("expected error for empty text")
	}
	appErr := apperrors.GetAppError(err)
	if appErr == nil || appErr.Code != apperrors.ErrEmptySelection {
		t.Errorf("error = %v, want ErrEmptySelection", err)
	}
}

func TestGenerateComments_NilRequest(t *testing.T) {
	provider, err := NewOpenAIProvider(ProviderConfig{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewOpenAIProvider returned error: %v", err)
	}

	if _, err := provider.GenerateComments(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil request")
	}
}

func TestWrapAPIError_Timeout(t *testing.T) {
	err := wrapAPIError(context.DeadlineExceeded)
	appErr := apperrors.GetAppError(err)
	if appErr == nil || appErr.Code != apperrors.ErrTimeout {
		t.Errorf("error = %v, want ErrTimeout", err)
	}
}

func TestSetPromptTemplate(t *testing.T) {
	provider, err := NewOpenAIProvider(ProviderConfig{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewOpenAIProvider returned error: %v", err)
	}

	custom := &PromptTemplate{LinePrompt: "custom", BlockPrompt: "custom"}
	provider.SetPromptTemplate(custom)
	if provider.promptTemplate != custom {
		t.Error("custom template not applied")
	}

	provider.SetPromptTemplate(nil)
	if provider.promptTemplate != custom {
		t.Error("nil template replaced the existing one")
	}
}
