// Package ai provides the chat-completion provider and reply parsing
// for CodeSage.
package ai

import (
	"fmt"
	"time"

	"github.com/codesage/codesage/internal/pkg/config"
)

// NewProvider creates a provider from the configuration and credential.
// The API key is passed explicitly rather than read from ambient state;
// it is used for this one provider instance and not retained elsewhere.
func NewProvider(cfg *config.ProviderConfig, apiKey string) (Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("provider configuration is required")
	}

	providerConfig := ProviderConfig{
		APIKey:      apiKey,
		Model:       cfg.Model,
		Endpoint:    cfg.Endpoint,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
	}

	return NewOpenAIProvider(providerConfig)
}
