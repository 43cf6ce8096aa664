// Package main is the entry point for the CodeSage CLI application.
// CodeSage is an AI-powered command-line tool that annotates source
// files with generated comments.
package main

import (
	"fmt"
	"os"

	"github.com/codesage/codesage/internal/cmd"
	apperrors "github.com/codesage/codesage/internal/pkg/errors"
)

// Version information - set via ldflags during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cmd.NewRootCmd(version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, apperrors.FormatError(err))
		os.Exit(apperrors.GetExitCode(err))
	}
}
