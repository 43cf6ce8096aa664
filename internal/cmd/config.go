package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codesage/codesage/internal/pkg/config"
)

// NewConfigCmd creates the config command and its subcommands.
func NewConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CodeSage configuration",
		Long: `Manage CodeSage configuration settings.

Use subcommands to initialize, view, or modify configuration values.
Configuration is stored in ~/.codesage/config.yaml by default. The API
key is not part of the configuration; manage it with 'codesage key'.`,
	}

	configCmd.AddCommand(newConfigInitCmd())
	configCmd.AddCommand(newConfigSetCmd())
	configCmd.AddCommand(newConfigGetCmd())
	configCmd.AddCommand(newConfigListCmd())

	return configCmd
}

// newConfigInitCmd creates the 'config init' subcommand.
func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file",
		Long: `Create a new configuration file at ~/.codesage/config.yaml with
default values.

The configuration file is created with permissions 0600 (user read/write
only).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			mgr, err := config.NewManager(configPath)
			if err != nil {
				return fmt.Errorf("failed to create config manager: %w", err)
			}

			if err := mgr.Init(); err != nil {
				return err
			}

			fmt.Printf("Configuration file created at %s\n", mgr.GetConfigPath())
			fmt.Println("Run 'codesage key set' to store your API key.")
			return nil
		},
	}
}

// newConfigSetCmd creates the 'config set' subcommand.
func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value by key.

Supports nested keys using dot notation (e.g., "provider.model",
"annotate.mode").

Examples:
  codesage config set provider.model gpt-4o-mini
  codesage config set provider.endpoint https://api.example.com/v1
  codesage config set annotate.mode block
  codesage config set annotate.marker "#"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]

			configPath, _ := cmd.Flags().GetString("config")
			mgr, err := config.NewManager(configPath)
			if err != nil {
				return fmt.Errorf("failed to create config manager: %w", err)
			}

			// Check if config file exists
			if !mgr.ConfigExists() {
				return fmt.Errorf("config file not found. Run 'codesage config init' first")
			}

			if err := mgr.Set(key, value); err != nil {
				return err
			}

			fmt.Printf("Set %s = %s\n", key, value)
			return nil
		},
	}
}

// newConfigGetCmd creates the 'config get' subcommand.
func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			mgr, err := config.NewManager(configPath)
			if err != nil {
				return fmt.Errorf("failed to create config manager: %w", err)
			}

			value, err := mgr.Get(args[0])
			if err != nil {
				return err
			}

			fmt.Println(value)
			return nil
		},
	}
}

// newConfigListCmd creates the 'config list' subcommand.
func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			mgr, err := config.NewManager(configPath)
			if err != nil {
				return fmt.Errorf("failed to create config manager: %w", err)
			}

			settings := mgr.List()
			printSettings("", settings)
			return nil
		},
	}
}

// printSettings recursively prints configuration settings with proper formatting.
func printSettings(indent string, settings map[string]interface{}) {
	for key, value := range settings {
		switch v := value.(type) {
		case map[string]interface{}:
			fmt.Printf("%s%s:\n", indent, key)
			printSettings(indent+"  ", v)
		default:
			fmt.Printf("%s%s: %v\n", indent, key, value)
		}
	}
}
