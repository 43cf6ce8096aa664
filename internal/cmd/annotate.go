package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/codesage/codesage/internal/app"
	"github.com/codesage/codesage/internal/pkg/config"
	apperrors "github.com/codesage/codesage/internal/pkg/errors"
	"github.com/codesage/codesage/internal/pkg/history"
	"github.com/codesage/codesage/internal/pkg/secrets"
	"github.com/codesage/codesage/internal/pkg/security"
	"github.com/codesage/codesage/internal/pkg/selection"
	"github.com/codesage/codesage/internal/pkg/ui"
)

// AnnotateFlags holds the flags for the annotate command.
type AnnotateFlags struct {
	StartLine int
	EndLine   int
	Mode      string
	Marker    string
	DryRun    bool
	Yes       bool
}

// NewAnnotateCmd creates the annotate command.
func NewAnnotateCmd() *cobra.Command {
	flags := &AnnotateFlags{}

	cmd := &cobra.Command{
		Use:   "annotate <file>",
		Short: "Generate AI comments for a file or line range",
		Long: `Generate comments for a source file using AI and insert them
into the file.

Without --start/--end the whole file is annotated. In line mode each
non-empty line of the selection receives its own comment, inserted
directly above it. In block mode one summary comment block is inserted
above the selection.

Examples:
  codesage annotate main.go                   # Whole file, line mode
  codesage annotate main.go --start 3 --end 9 # Lines 3-9 only
  codesage annotate main.go --mode block      # One summary block
  codesage annotate main.go --dry-run         # Print result, don't write`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnotate(cmd, args[0], flags)
		},
	}

	// Add annotate-specific flags
	cmd.Flags().IntVar(&flags.StartLine, "start", 0, "First line of the selection (1-based)")
	cmd.Flags().IntVar(&flags.EndLine, "end", 0, "Last line of the selection (1-based)")
	cmd.Flags().StringVar(&flags.Mode, "mode", "", "Annotation mode: line or block (default from config)")
	cmd.Flags().StringVar(&flags.Marker, "marker", "", "Comment marker override (default: detect from extension)")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Print the annotated file without writing it")
	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Skip prompts; auto-acknowledge the security warning")

	return cmd
}

// runAnnotate executes the annotate command logic.
func runAnnotate(cmd *cobra.Command, filePath string, flags *AnnotateFlags) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Get global flags
	verbose, _ := cmd.Flags().GetBool("verbose")
	configPath, _ := cmd.Flags().GetString("config")
	modelOverride, _ := cmd.Flags().GetString("model")

	// Enable verbose logging if flag is set
	apperrors.SetVerbose(verbose)

	cfgMgr, err := config.NewManager(configPath)
	if err != nil {
		apperrors.Error("Failed to create config manager: %v", err)
		return apperrors.Wrap(err, apperrors.ErrInvalidConfig, "failed to create config manager")
	}

	if configPath != "" {
		apperrors.Debug("Using custom config path: %s", configPath)
	}

	secretStore := secrets.NewKeyringStore()

	// Launch interactive setup on first run
	if !cfgMgr.ConfigExists() && !flags.Yes {
		if err := ui.RunInteractiveSetup(cfgMgr, secretStore); err != nil {
			return fmt.Errorf("setup failed: %w", err)
		}
	}

	// Apply command-line flag overrides BEFORE loading config
	// (flags > env > file > defaults). Overrides don't persist.
	if modelOverride != "" {
		cfgMgr.SetOverride("provider.model", modelOverride)
		apperrors.Debug("Model overridden via flag: %s", modelOverride)
	}

	cfg, err := cfgMgr.Load()
	if err != nil {
		apperrors.Error("Failed to load config: %v", err)
		return apperrors.Wrap(err, apperrors.ErrInvalidConfig, "failed to load config")
	}

	// Check and show first-use security warning
	if !cfg.Security.WarningAcknowledged {
		if err := showSecurityWarning(cfgMgr, flags.Yes); err != nil {
			return err
		}
	}

	opts, err := buildAnnotateOptions(filePath, flags, cfg)
	if err != nil {
		return err
	}

	// Verbose logging
	if verbose {
		apperrors.Info("Using model: %s", cfg.Provider.Model)
		apperrors.Info("Annotation mode: %s", opts.Mode.String())
		if flags.DryRun {
			apperrors.Info("Dry-run mode enabled")
		}
	}

	// Create UI manager based on --yes flag
	var uiMgr ui.Manager
	if flags.Yes {
		uiMgr = ui.NewNonInteractiveManager(cfg.UI.ColorEnabled)
	} else {
		uiMgr = ui.NewDefaultManager(cfg.UI.ColorEnabled)
	}

	// Create history manager
	var historyMgr history.Manager
	if cfg.History.Enabled {
		historyMgr = history.NewFileManager(cfg.History.FilePath, cfg.History.MaxEntries)
	}

	service := app.NewAnnotateService(
		secretStore,
		nil,
		uiMgr,
		historyMgr,
		cfg,
	)

	return service.Annotate(ctx, opts)
}

// buildAnnotateOptions converts the 1-based flag values into zero-based
// annotation options and resolves the mode.
func buildAnnotateOptions(filePath string, flags *AnnotateFlags, cfg *config.Config) (*app.AnnotateOptions, error) {
	modeStr := flags.Mode
	if modeStr == "" {
		modeStr = cfg.Annotate.Mode
	}
	mode, err := selection.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}

	opts := &app.AnnotateOptions{
		FilePath: filePath,
		Mode:     mode,
		Marker:   flags.Marker,
		DryRun:   flags.DryRun,
	}

	if flags.StartLine == 0 && flags.EndLine == 0 {
		opts.WholeDocument = true
		return opts, nil
	}

	if flags.StartLine < 1 {
		return nil, apperrors.New(apperrors.ErrInvalidArguments, "--start must be at least 1")
	}
	if flags.EndLine < flags.StartLine {
		return nil, apperrors.New(apperrors.ErrInvalidArguments, "--end must not be before --start")
	}

	opts.StartLine = flags.StartLine - 1
	opts.EndLine = flags.EndLine - 1
	return opts, nil
}

// showSecurityWarning displays the first-use security warning and prompts for acknowledgment.
func showSecurityWarning(cfgMgr *config.ViperManager, autoAccept bool) error {
	fmt.Print(security.FirstUseWarning)

	if autoAccept {
		// In non-interactive mode, auto-acknowledge
		fmt.Println("Auto-acknowledging security warning (--yes flag)")
	} else {
		// Prompt for acknowledgment
		fmt.Print("Do you understand and wish to continue? [y/N]: ")
		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			return fmt.Errorf("security warning not acknowledged - operation cancelled")
		}
	}

	// Save acknowledgment to config
	if err := cfgMgr.AcknowledgeSecurityWarning(); err != nil {
		apperrors.Warn("Failed to save security acknowledgment: %v", err)
		// Don't fail the operation, just warn
	}

	fmt.Println(security.FirstUseAcknowledgment)
	fmt.Println()

	return nil
}
