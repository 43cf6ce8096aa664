// Package editor provides in-memory document editing for CodeSage.
//
// A document is a slice of lines. Edits are collected into a batch and
// applied in descending line order against a copy, so inserting a
// comment above one line never shifts the stored target of a
// not-yet-processed insertion below it. The batch commits or fails as
// a whole; the file on disk is written once, after every insertion
// succeeded.
package editor

import (
	"fmt"
	"os"
	"sort"
	"strings"

	apperrors "github.com/codesage/codesage/internal/pkg/errors"
	"github.com/codesage/codesage/internal/pkg/selection"
)

// Insertion is a single pending edit: Text plus a trailing line break
// spliced in at Pos.
type Insertion struct {
	Pos  selection.Position
	Text string
}

// Document is an editable text document.
type Document struct {
	lines []string
}

// NewDocument creates a Document from raw content. CRLF line endings
// are normalized to LF.
func NewDocument(content string) *Document {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return &Document{lines: strings.Split(content, "\n")}
}

// LoadFile reads a file into a Document.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewFileSystemError(err, path)
	}
	return NewDocument(string(data)), nil
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns the content of the zero-based line n.
func (d *Document) Line(n int) string {
	return d.lines[n]
}

// LastLine returns the zero-based index of the last line.
func (d *Document) LastLine() int {
	return len(d.lines) - 1
}

// SelectionText returns the text of the given line range, joined with
// line breaks. The range is clamped to the document.
func (d *Document) SelectionText(r selection.Range) string {
	start := r.Start.Line
	end := r.End.Line
	if start < 0 {
		start = 0
	}
	if end > d.LastLine() {
		end = d.LastLine()
	}
	if start > end {
		return ""
	}
	return strings.Join(d.lines[start:end+1], "\n")
}

// Content returns the full document content.
func (d *Document) Content() string {
	return strings.Join(d.lines, "\n")
}

// Apply applies a batch of insertions atomically. Insertions are
// ordered by descending position before application; any out-of-bounds
// insertion fails the entire batch and leaves the document untouched.
func (d *Document) Apply(edits []Insertion) error {
	if len(edits) == 0 {
		return nil
	}

	for _, e := range edits {
		if e.Pos.Line < 0 || e.Pos.Line >= len(d.lines) {
			return apperrors.New(apperrors.ErrInvalidArguments,
				fmt.Sprintf("insertion target line %d is outside the document (0-%d)",
					e.Pos.Line, d.LastLine()))
		}
	}

	// Descending order keeps earlier insertions from shifting the
	// targets of later ones.
	sorted := make([]Insertion, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Pos.Line != sorted[j].Pos.Line {
			return sorted[i].Pos.Line > sorted[j].Pos.Line
		}
		return sorted[i].Pos.Column > sorted[j].Pos.Column
	})

	lines := make([]string, len(d.lines))
	copy(lines, d.lines)

	for _, e := range sorted {
		lines = insertAt(lines, e.Pos, e.Text)
	}

	d.lines = lines
	return nil
}

// insertAt splices text plus a trailing line break into lines at pos.
// The column is clamped to the target line length.
func insertAt(lines []string, pos selection.Position, text string) []string {
	target := lines[pos.Line]
	col := pos.Column
	if col < 0 {
		col = 0
	}
	if col > len(target) {
		col = len(target)
	}

	merged := target[:col] + text + "\n" + target[col:]
	inserted := strings.Split(merged, "\n")

	result := make([]string, 0, len(lines)+len(inserted)-1)
	result = append(result, lines[:pos.Line]...)
	result = append(result, inserted...)
	result = append(result, lines[pos.Line+1:]...)
	return result
}

// WriteFile writes the document content to path in a single write.
func (d *Document) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(d.Content()), 0644); err != nil {
		return apperrors.NewFileSystemError(err, path)
	}
	return nil
}
