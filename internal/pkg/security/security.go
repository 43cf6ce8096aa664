// Package security provides security utilities for CodeSage.
package security

import (
	"regexp"
	"strings"
)

// MaskAPIKey masks an API key, showing only the last 4 characters.
// This should be used when logging or displaying API keys.
func MaskAPIKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

// SanitizeForLogging sanitizes a string for safe logging by masking potential secrets.
// It looks for common patterns like API keys, passwords, and tokens.
func SanitizeForLogging(s string) string {
	patterns := []struct {
		regex       *regexp.Regexp
		replacement string
	}{
		// API keys (sk-...)
		{regexp.MustCompile(`sk-[a-zA-Z0-9]{20,}`), "sk-****"},
		// Bearer tokens
		{regexp.MustCompile(`Bearer\s+[a-zA-Z0-9._-]+`), "Bearer ****"},
		// Generic API key patterns
		{regexp.MustCompile(`(?i)(api[_-]?key|apikey|api_secret|secret[_-]?key)\s*[:=]\s*["']?[a-zA-Z0-9._-]+["']?`), "$1=****"},
		// Password patterns
		{regexp.MustCompile(`(?i)(password|passwd|pwd)\s*[:=]\s*["']?[^\s"']+["']?`), "$1=****"},
	}

	result := s
	for _, p := range patterns {
		result = p.regex.ReplaceAllString(result, p.replacement)
	}

	return result
}

// FirstUseWarning is the warning message displayed on first use.
const FirstUseWarning = `
⚠️  IMPORTANT SECURITY NOTICE ⚠️

CodeSage sends the selected source code to an external AI service
to generate comments.

This means your code will be transmitted over the internet to third-party
servers. Please ensure you:

1. Do not annotate files containing sensitive information (API keys, passwords, secrets)
2. Review the selection before running CodeSage
3. Point the endpoint at a self-hosted OpenAI-compatible server for sensitive projects

`

// FirstUseAcknowledgment is the message shown after user acknowledges the warning.
const FirstUseAcknowledgment = "Thank you for acknowledging the security notice. This warning will not be shown again."
