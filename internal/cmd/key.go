package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/codesage/codesage/internal/pkg/errors"
	"github.com/codesage/codesage/internal/pkg/secrets"
	"github.com/codesage/codesage/internal/pkg/security"
	"github.com/codesage/codesage/internal/pkg/ui"
)

// NewKeyCmd creates the key command with its subcommands.
func NewKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the API key",
		Long: `Manage the API key used for chat-completion requests.

The key is stored in the operating system keychain under the service
name "codesage", never in the config file.

Examples:
  codesage key set       # Prompt for and store a key
  codesage key show      # Show the stored key, masked
  codesage key delete    # Remove the stored key`,
	}

	cmd.AddCommand(newKeySetCmd())
	cmd.AddCommand(newKeyShowCmd())
	cmd.AddCommand(newKeyDeleteCmd())

	return cmd
}

// newKeySetCmd creates the key set subcommand.
func newKeySetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set",
		Short: "Store the API key in the OS keychain",
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			apperrors.SetVerbose(verbose)

			uiMgr := ui.NewDefaultManager(true)
			key, err := uiMgr.PromptSecret("API Key",
				"Stored in your OS keychain, not in the config file")
			if err != nil {
				return err
			}

			store := secrets.NewKeyringStore()
			if err := store.Set(key); err != nil {
				return apperrors.Wrap(err, apperrors.ErrFileSystemError, "failed to store API key")
			}

			fmt.Println("API key stored in the OS keychain")
			return nil
		},
	}
}

// newKeyShowCmd creates the key show subcommand.
func newKeyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored API key (masked)",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := secrets.NewKeyringStore()
			key, err := store.Get()
			if err != nil {
				if errors.Is(err, secrets.ErrNotFound) {
					return apperrors.NewMissingAPIKeyError()
				}
				return apperrors.Wrap(err, apperrors.ErrFileSystemError, "failed to read API key")
			}

			fmt.Printf("API key: %s\n", security.MaskAPIKey(key))
			return nil
		},
	}
}

// newKeyDeleteCmd creates the key delete subcommand.
func newKeyDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Remove the stored API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := secrets.NewKeyringStore()
			if err := store.Delete(); err != nil {
				return apperrors.Wrap(err, apperrors.ErrFileSystemError, "failed to delete API key")
			}

			fmt.Println("API key removed from the OS keychain")
			return nil
		},
	}
}
