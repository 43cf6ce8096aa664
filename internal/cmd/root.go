// Package cmd contains the CLI command definitions for CodeSage.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the CodeSage CLI.
func NewRootCmd(version, commitHash, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "codesage",
		Short: "AI-powered source code comment generator",
		Long: `CodeSage is an AI-powered command-line tool that annotates source
files with generated comments.

It sends the selected lines of a file to a chat-completion endpoint and
splices the reply back into the file, either as one comment per line or
as a single comment block above the selection.`,
		Version: version,
	}

	// Set version template
	rootCmd.SetVersionTemplate(`CodeSage {{.Version}}
Commit: ` + commitHash + `
Built:  ` + date + "\n")

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default: ~/.codesage/config.yaml)")
	rootCmd.PersistentFlags().String("model", "", "Chat-completion model to use")

	// Add subcommands
	rootCmd.AddCommand(NewAnnotateCmd())
	rootCmd.AddCommand(NewKeyCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewHistoryCmd())

	return rootCmd
}
