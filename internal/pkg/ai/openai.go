// Package ai provides the chat-completion provider and reply parsing
// for CodeSage.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/codesage/codesage/internal/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

const (
	// DefaultModel is the default chat-completion model.
	DefaultModel = "gpt-4o-mini"

	// DefaultTemperature is the default temperature for generation.
	DefaultTemperature = 0.2

	// DefaultMaxTokens is the default max tokens for generation.
	DefaultMaxTokens = 1024

	// DefaultTimeout is the default timeout for API calls.
	DefaultTimeout = 30 * time.Second
)

// OpenAIProvider implements the Provider interface against an OpenAI or
// OpenAI-compatible chat-completion endpoint.
//
// Each invocation issues exactly one request. There are no retries: a
// failed call aborts the invocation and no edit is attempted.
type OpenAIProvider struct {
	client         *openai.Client
	config         ProviderConfig
	promptTemplate *PromptTemplate
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(config ProviderConfig) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, apperrors.NewMissingAPIKeyError()
	}

	// Set defaults
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.Temperature == 0 {
		config.Temperature = DefaultTemperature
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = DefaultMaxTokens
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	clientConfig := openai.DefaultConfig(config.APIKey)

	// Support custom endpoints (for OpenAI-compatible APIs)
	if config.Endpoint != "" {
		clientConfig.BaseURL = config.Endpoint
	}

	clientConfig.HTTPClient = &http.Client{
		Timeout: config.Timeout,
	}

	client := openai.NewClientWithConfig(clientConfig)

	return &OpenAIProvider{
		client:         client,
		config:         config,
		promptTemplate: NewPromptTemplate(),
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// GenerateComments sends one chat-completion request and returns the
// first choice's message content, trimmed.
func (p *OpenAIProvider) GenerateComments(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, apperrors.NewEmptySelectionError()
	}

	userPrompt, err := p.promptTemplate.RenderUserPrompt(req)
	if err != nil {
		return nil, fmt.Errorf("failed to render prompt: %w", err)
	}

	chatReq := openai.ChatCompletionRequest{
		Model: p.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: p.promptTemplate.SystemPrompt(req.Mode),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		Temperature: p.config.Temperature,
		MaxTokens:   p.config.MaxTokens,
	}

	apperrors.LogAPIRequest("openai", p.config.Endpoint, p.config.Model, len(userPrompt))
	startTime := time.Now()

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, wrapAPIError(err)
	}

	duration := time.Since(startTime)
	responseLen := 0
	if len(resp.Choices) > 0 {
		responseLen = len(resp.Choices[0].Message.Content)
	}
	apperrors.LogAPIResponse("openai", http.StatusOK, responseLen, duration)

	if len(resp.Choices) == 0 {
		return nil, apperrors.NewMalformedResponseError("no choices in response")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return nil, apperrors.NewMalformedResponseError("empty message content")
	}

	return &GenerateResponse{Text: text}, nil
}

// wrapAPIError wraps an API error with a user-friendly message carrying
// the most specific upstream error text available.
func wrapAPIError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized:
			return apperrors.NewAuthenticationError("OpenAI")
		case http.StatusBadRequest:
			return apperrors.Wrap(err, apperrors.ErrAIProviderFailed, fmt.Sprintf("invalid request: %s", apiErr.Message))
		default:
			return apperrors.Wrap(err, apperrors.ErrAIProviderFailed, fmt.Sprintf("API error (status %d): %s", apiErr.HTTPStatusCode, apiErr.Message))
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewTimeoutError(err)
	}

	return apperrors.NewNetworkError(err)
}

// SetPromptTemplate sets a custom prompt template.
func (p *OpenAIProvider) SetPromptTemplate(pt *PromptTemplate) {
	if pt != nil {
		p.promptTemplate = pt
	}
}
