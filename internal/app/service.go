// Package app contains the application layer with business orchestration logic.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/codesage/codesage/internal/pkg/ai"
	"github.com/codesage/codesage/internal/pkg/comment"
	"github.com/codesage/codesage/internal/pkg/config"
	"github.com/codesage/codesage/internal/pkg/editor"
	apperrors "github.com/codesage/codesage/internal/pkg/errors"
	"github.com/codesage/codesage/internal/pkg/history"
	"github.com/codesage/codesage/internal/pkg/secrets"
	"github.com/codesage/codesage/internal/pkg/selection"
	"github.com/codesage/codesage/internal/pkg/ui"
)

// ProviderFactory builds a provider from configuration and a credential.
// Injected so tests can verify that no provider is ever constructed on
// the abort paths.
type ProviderFactory func(cfg *config.ProviderConfig, apiKey string) (ai.Provider, error)

// AnnotateOptions contains options for one annotation invocation.
type AnnotateOptions struct {
	FilePath string
	// StartLine and EndLine are zero-based document lines. Ignored when
	// WholeDocument is set.
	StartLine     int
	EndLine       int
	WholeDocument bool
	Mode          selection.Mode
	// Marker overrides the canonical comment marker. Empty means use
	// the config override or detect from the file extension.
	Marker string
	DryRun bool
}

// AnnotateService orchestrates the annotation workflow.
//
// One invocation runs: collect selection → (abort if empty) → read
// credential → (abort if missing) → call remote → (abort on error) →
// parse reply → apply edit. No state persists across invocations;
// concurrent invocations run independently.
type AnnotateService struct {
	secretStore     secrets.Store
	providerFactory ProviderFactory
	uiManager       ui.Manager
	historyMgr      history.Manager
	config          *config.Config
}

// NewAnnotateService creates a new AnnotateService with the given dependencies.
// The credential store is passed explicitly; the generation routine never
// reads ambient globals for it.
func NewAnnotateService(
	secretStore secrets.Store,
	providerFactory ProviderFactory,
	uiManager ui.Manager,
	historyMgr history.Manager,
	cfg *config.Config,
) *AnnotateService {
	if providerFactory == nil {
		providerFactory = ai.NewProvider
	}
	return &AnnotateService{
		secretStore:     secretStore,
		providerFactory: providerFactory,
		uiManager:       uiManager,
		historyMgr:      historyMgr,
		config:          cfg,
	}
}

// Annotate runs the complete annotation workflow for one invocation.
func (s *AnnotateService) Annotate(ctx context.Context, opts *AnnotateOptions) error {
	if opts == nil {
		return apperrors.New(apperrors.ErrInvalidArguments, "options cannot be nil")
	}

	// Step 1: Collect the selection
	doc, err := editor.LoadFile(opts.FilePath)
	if err != nil {
		return err
	}

	sel, err := s.resolveRange(doc, opts)
	if err != nil {
		return err
	}

	extracted, err := selection.Extract(doc.SelectionText(sel), sel, opts.Mode)
	if err != nil {
		return err
	}

	// Step 2: Read the credential. Aborting here guarantees no network
	// call is attempted without a key.
	apiKey, err := s.secretStore.Get()
	if err != nil {
		if errors.Is(err, secrets.ErrNotFound) {
			return apperrors.NewMissingAPIKeyError()
		}
		return apperrors.Wrap(err, apperrors.ErrFileSystemError, "failed to read API key")
	}

	provider, err := s.providerFactory(&s.config.Provider, apiKey)
	if err != nil {
		return err
	}

	// Step 3: Call the remote endpoint. One request per invocation,
	// even in line mode: the retained lines go in a single batch.
	req := &ai.GenerateRequest{
		Text:      extracted.Text,
		Mode:      extracted.Mode,
		LineCount: len(extracted.Lines),
	}

	spinner := s.uiManager.ShowSpinner("Generating comments...")
	spinner.Start()
	resp, err := provider.GenerateComments(ctx, req)
	spinner.Stop()

	if err != nil {
		return err
	}

	// Step 4: Parse the reply and build the edit batch.
	marker := s.resolveMarker(opts)

	edits, inserted := buildEdits(resp.Text, extracted, sel, marker)
	if len(edits) == 0 {
		s.uiManager.ShowInfo("The model returned no usable comments; document left untouched.")
		return nil
	}

	// Step 5: Apply the batch atomically and write once.
	if err := doc.Apply(edits); err != nil {
		return err
	}

	if opts.DryRun {
		fmt.Println(doc.Content())
	} else {
		if err := doc.WriteFile(opts.FilePath); err != nil {
			return err
		}
	}

	s.saveHistory(opts, inserted)

	if opts.DryRun {
		s.uiManager.ShowSuccess(fmt.Sprintf("Dry-run complete - %d comment(s) generated but not written", inserted))
	} else {
		s.uiManager.ShowSuccess(fmt.Sprintf("Inserted %d comment(s) into %s", inserted, opts.FilePath))
	}

	return nil
}

// resolveRange validates the requested line range against the document.
func (s *AnnotateService) resolveRange(doc *editor.Document, opts *AnnotateOptions) (selection.Range, error) {
	if opts.WholeDocument {
		return selection.NewRange(0, doc.LastLine()), nil
	}

	start, end := opts.StartLine, opts.EndLine
	if start < 0 || start > doc.LastLine() {
		return selection.Range{}, apperrors.New(apperrors.ErrInvalidArguments,
			fmt.Sprintf("start line %d is outside the document (1-%d)", start+1, doc.LineCount()))
	}
	if end < start {
		return selection.Range{}, apperrors.New(apperrors.ErrInvalidArguments,
			"end line must not be before start line")
	}
	if end > doc.LastLine() {
		end = doc.LastLine()
	}
	return selection.NewRange(start, end), nil
}

// resolveMarker picks the canonical comment marker: flag override, then
// config override, then file-extension detection.
func (s *AnnotateService) resolveMarker(opts *AnnotateOptions) string {
	if opts.Marker != "" {
		return opts.Marker
	}
	if s.config != nil && s.config.Annotate.Marker != "" {
		return s.config.Annotate.Marker
	}
	return comment.MarkerForFile(opts.FilePath)
}

// buildEdits turns the provider reply into an insertion batch.
//
// In line mode each comment is inserted at column 0 of its target line;
// the editor applies the batch in descending line order so earlier
// insertions never shift later targets. In block mode the whole reply
// goes in at the selection's start position.
func buildEdits(reply string, extracted *selection.Extracted, sel selection.Range, marker string) ([]editor.Insertion, int) {
	if extracted.Mode == selection.ModeBlock {
		block := ai.ParseBlockReply(reply, marker)
		if block == "" {
			return nil, 0
		}
		return []editor.Insertion{{
			Pos:  sel.Start,
			Text: block,
		}}, 1
	}

	comments := ai.ParseLineReply(reply, extracted.Lines, marker)
	edits := make([]editor.Insertion, 0, len(comments))
	for _, c := range comments {
		edits = append(edits, editor.Insertion{
			Pos:  selection.Position{Line: c.Line, Column: 0},
			Text: c.Text,
		})
	}
	return edits, len(edits)
}

// saveHistory records the run if history is enabled. Failures are
// reported but never fail the annotation.
func (s *AnnotateService) saveHistory(opts *AnnotateOptions, inserted int) {
	if s.historyMgr == nil || s.config == nil || !s.config.History.Enabled {
		return
	}

	entry := &history.Entry{
		FilePath:       opts.FilePath,
		Mode:           opts.Mode.String(),
		LinesAnnotated: inserted,
		Provider:       "openai",
		Model:          s.config.Provider.Model,
		DryRun:         opts.DryRun,
	}
	if err := s.historyMgr.Save(entry); err != nil {
		s.uiManager.ShowError(fmt.Errorf("warning: failed to save to history: %w", err))
	}
}
