// Package ai provides the chat-completion provider and reply parsing
// for CodeSage.
package ai

import (
	"context"
	"time"

	"github.com/codesage/codesage/internal/pkg/selection"
)

// GenerateRequest contains the data needed to generate comments.
type GenerateRequest struct {
	// Text is the concatenated selection content: the whole block in
	// block mode, the newline-joined retained lines in line mode.
	Text string
	// Mode selects the instruction prompt and reply handling.
	Mode selection.Mode
	// LineCount is the number of retained source lines in line mode.
	LineCount int
}

// GenerateResponse contains the provider's reply.
type GenerateResponse struct {
	// Text is the first choice's message content, trimmed.
	Text string
}

// ProviderConfig contains configuration for the provider.
type ProviderConfig struct {
	APIKey      string
	Model       string
	Endpoint    string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// Provider defines the interface for comment generation providers.
type Provider interface {
	GenerateComments(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
	Name() string
}
