// Package ui provides terminal UI components for CodeSage.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/codesage/codesage/internal/pkg/config"
	"github.com/codesage/codesage/internal/pkg/secrets"
)

// RunInteractiveSetup runs the first-run setup wizard.
//
// The model and endpoint go into the config file; the API key goes into
// the OS keychain, never onto disk.
func RunInteractiveSetup(cfgMgr *config.ViperManager, store secrets.Store) error {
	fmt.Println("No configuration found. Let's set up CodeSage!")
	fmt.Println()

	// Ensure the config file and its directory exist; an existing file is fine.
	_ = cfgMgr.Init()

	model := "gpt-4o-mini"
	endpoint := ""
	apiKey := ""

	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Model Name").
			Description("Chat-completion model to use").
			Value(&model).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("model name cannot be empty")
				}
				return nil
			}),
		huh.NewInput().
			Title("API Endpoint").
			Description("Optional OpenAI-compatible endpoint (empty for api.openai.com)").
			Value(&endpoint),
		huh.NewInput().
			Title("API Key").
			Description("Stored in your OS keychain, not in the config file").
			Value(&apiKey).
			Password(true).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("api key cannot be empty")
				}
				return nil
			}),
	)).Run()
	if err != nil {
		return err
	}

	if err := cfgMgr.Set("provider.model", strings.TrimSpace(model)); err != nil {
		return fmt.Errorf("failed to set model: %w", err)
	}

	if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
		if err := cfgMgr.Set("provider.endpoint", endpoint); err != nil {
			return fmt.Errorf("failed to set endpoint: %w", err)
		}
	}

	if err := store.Set(apiKey); err != nil {
		return fmt.Errorf("failed to store API key: %w", err)
	}

	fmt.Println()
	fmt.Println("Setup complete. Run 'codesage annotate <file>' to get started.")
	fmt.Println()

	return nil
}
