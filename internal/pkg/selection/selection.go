// Package selection provides line extraction and offset mapping for CodeSage.
//
// A selection is a start/end position pair in a document; an empty
// selection means the whole document. In per-line mode only non-empty
// lines are retained, each annotated with its original document line
// number so generated comments can be spliced back at the right place.
package selection

import (
	"strings"

	apperrors "github.com/codesage/codesage/internal/pkg/errors"
)

// Mode determines how the selection is prepared for the provider.
type Mode int

const (
	// ModeLine retains non-empty lines individually, one comment per line.
	ModeLine Mode = iota
	// ModeBlock sends the selection as one block and inserts one reply.
	ModeBlock
)

// String returns the string representation of a Mode.
func (m Mode) String() string {
	switch m {
	case ModeLine:
		return "line"
	case ModeBlock:
		return "block"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode name. Empty defaults to ModeLine.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "line", "":
		return ModeLine, nil
	case "block":
		return ModeBlock, nil
	default:
		return ModeLine, apperrors.New(apperrors.ErrInvalidArguments,
			"invalid mode: "+s).WithSuggestion("Use --mode line or --mode block")
	}
}

// Position is a zero-based (line, column) position in a document.
type Position struct {
	Line   int
	Column int
}

// Range is a start/end position pair in a document.
type Range struct {
	Start Position
	End   Position
}

// NewRange creates a Range covering the given zero-based line span,
// starting at column 0.
func NewRange(startLine, endLine int) Range {
	return Range{
		Start: Position{Line: startLine},
		End:   Position{Line: endLine},
	}
}

// SourceLine is one retained line of the selection, annotated with its
// zero-based original document line number.
type SourceLine struct {
	Text   string
	Number int
}

// Extracted is the result of preparing a selection for the provider.
type Extracted struct {
	Mode Mode
	// Text is the content sent to the provider: the raw selection in
	// block mode, the newline-joined retained lines in line mode.
	Text string
	// Lines holds the retained lines in line mode, in document order.
	// The line numbers are strictly increasing and never exceed the
	// selection's end line.
	Lines []SourceLine
}

// Extract prepares the selection text for the provider.
//
// The text is split on line breaks. In line mode, a line is retained
// only if its trimmed content is non-empty; the k-th retained line
// records document line number = selection start line + index within
// the unfiltered split. Recording stops once the running line counter
// exceeds the selection's end line, which bounds the scan to the
// selection even when the split carries trailing content.
//
// An entirely blank selection aborts with an empty-selection error in
// either mode, before any network call can happen.
func Extract(text string, r Range, mode Mode) (*Extracted, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewEmptySelectionError()
	}

	if mode == ModeBlock {
		return &Extracted{
			Mode: ModeBlock,
			Text: text,
		}, nil
	}

	rawLines := splitLines(text)
	var retained []SourceLine

	for i, line := range rawLines {
		number := r.Start.Line + i
		if number > r.End.Line {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		retained = append(retained, SourceLine{
			Text:   line,
			Number: number,
		})
	}

	if len(retained) == 0 {
		return nil, apperrors.NewEmptySelectionError()
	}

	texts := make([]string, len(retained))
	for i, l := range retained {
		texts[i] = l.Text
	}

	return &Extracted{
		Mode:  ModeLine,
		Text:  strings.Join(texts, "\n"),
		Lines: retained,
	}, nil
}

// splitLines splits text on line breaks, normalizing CRLF endings.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}
