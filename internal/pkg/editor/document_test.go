package editor

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/codesage/codesage/internal/pkg/errors"
	"github.com/codesage/codesage/internal/pkg/selection"
)

func TestNewDocument(t *testing.T) {
	doc := NewDocument("one\ntwo\nthree")
	if doc.LineCount() != 3 {
		t.Errorf("LineCount = %d, want 3", doc.LineCount())
	}
	if doc.Line(1) != "two" {
		t.Errorf("Line(1) = %q, want %q", doc.Line(1), "two")
	}
	if doc.LastLine() != 2 {
		t.Errorf("LastLine = %d, want 2", doc.LastLine())
	}
}

func TestNewDocument_CRLF(t *testing.T) {
	doc := NewDocument("one\r\ntwo\r\n")
	if doc.LineCount() != 3 {
		t.Errorf("LineCount = %d, want 3", doc.LineCount())
	}
	if doc.Line(0) != "one" {
		t.Errorf("Line(0) = %q, want %q", doc.Line(0), "one")
	}
}

func TestSelectionText(t *testing.T) {
	doc := NewDocument("a\nb\nc\nd")

	tests := []struct {
		name  string
		start int
		end   int
		want  string
	}{
		{name: "middle range", start: 1, end: 2, want: "b\nc"},
		{name: "whole document", start: 0, end: 3, want: "a\nb\nc\nd"},
		{name: "end clamped", start: 2, end: 99, want: "c\nd"},
		{name: "single line", start: 0, end: 0, want: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := doc.SelectionText(selection.NewRange(tt.start, tt.end))
			if got != tt.want {
				t.Errorf("SelectionText(%d, %d) = %q, want %q", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestApply_DescendingOrder(t *testing.T) {
	// Targets 3, 5 and 9 with three comments. Applied in descending
	// order, each comment lands directly above its original line even
	// though every insertion shifts everything below it.
	lines := make([]string, 12)
	for i := range lines {
		lines[i] = "line"
	}
	lines[3] = "alpha"
	lines[5] = "beta"
	lines[9] = "gamma"

	doc := NewDocument(joinLines(lines))

	edits := []Insertion{
		{Pos: selection.Position{Line: 3}, Text: "// first"},
		{Pos: selection.Position{Line: 5}, Text: "// second"},
		{Pos: selection.Position{Line: 9}, Text: "// third"},
	}

	if err := doc.Apply(edits); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	if doc.LineCount() != 15 {
		t.Fatalf("LineCount = %d, want 15", doc.LineCount())
	}

	// Each comment sits directly above its target, now shifted by the
	// number of comments inserted above it.
	checks := []struct {
		commentLine int
		comment     string
		target      string
	}{
		{commentLine: 3, comment: "// first", target: "alpha"},
		{commentLine: 6, comment: "// second", target: "beta"},
		{commentLine: 11, comment: "// third", target: "gamma"},
	}
	for _, c := range checks {
		if doc.Line(c.commentLine) != c.comment {
			t.Errorf("Line(%d) = %q, want %q", c.commentLine, doc.Line(c.commentLine), c.comment)
		}
		if doc.Line(c.commentLine+1) != c.target {
			t.Errorf("Line(%d) = %q, want %q", c.commentLine+1, doc.Line(c.commentLine+1), c.target)
		}
	}
}

func TestApply_OrderIndependent(t *testing.T) {
	// The batch result must not depend on the order edits were collected.
	edits := []Insertion{
		{Pos: selection.Position{Line: 0}, Text: "// a"},
		{Pos: selection.Position{Line: 2}, Text: "// c"},
		{Pos: selection.Position{Line: 1}, Text: "// b"},
	}
	reversed := []Insertion{edits[1], edits[2], edits[0]}

	doc1 := NewDocument("x\ny\nz")
	doc2 := NewDocument("x\ny\nz")

	if err := doc1.Apply(edits); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if err := doc2.Apply(reversed); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	if doc1.Content() != doc2.Content() {
		t.Errorf("results differ:\n%q\n%q", doc1.Content(), doc2.Content())
	}
	if doc1.Content() != "// a\nx\n// b\ny\n// c\nz" {
		t.Errorf("Content = %q", doc1.Content())
	}
}

func TestApply_OutOfBoundsFailsWholeBatch(t *testing.T) {
	doc := NewDocument("x\ny\nz")
	original := doc.Content()

	edits := []Insertion{
		{Pos: selection.Position{Line: 1}, Text: "// ok"},
		{Pos: selection.Position{Line: 10}, Text: "// out of bounds"},
	}

	err := doc.Apply(edits)
	if err == nil {
		t.Fatal("expected error for out-of-bounds insertion")
	}
	appErr := apperrors.GetAppError(err)
	if appErr == nil || appErr.Code != apperrors.ErrInvalidArguments {
		t.Errorf("error = %v, want ErrInvalidArguments", err)
	}

	// Atomicity: nothing was inserted.
	if doc.Content() != original {
		t.Errorf("document modified despite failed batch: %q", doc.Content())
	}
}

func TestApply_EmptyBatch(t *testing.T) {
	doc := NewDocument("x\ny")
	if err := doc.Apply(nil); err != nil {
		t.Fatalf("Apply(nil) returned error: %v", err)
	}
	if doc.Content() != "x\ny" {
		t.Errorf("Content = %q, want unchanged", doc.Content())
	}
}

func TestApply_ColumnInsertion(t *testing.T) {
	doc := NewDocument("hello world")
	edits := []Insertion{
		{Pos: selection.Position{Line: 0, Column: 5}, Text: " there"},
	}
	if err := doc.Apply(edits); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if doc.Content() != "hello there\n world" {
		t.Errorf("Content = %q", doc.Content())
	}
}

func TestLoadAndWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.go")

	content := "package main\n\nfunc main() {}\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	doc, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if doc.Content() != content {
		t.Errorf("Content = %q, want %q", doc.Content(), content)
	}

	edits := []Insertion{
		{Pos: selection.Position{Line: 2}, Text: "// entry point"},
	}
	if err := doc.Apply(edits); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	outPath := filepath.Join(dir, "out.go")
	if err := doc.WriteFile(outPath); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	want := "package main\n\n// entry point\nfunc main() {}\n"
	if string(data) != want {
		t.Errorf("written content = %q, want %q", string(data), want)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.go"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	appErr := apperrors.GetAppError(err)
	if appErr == nil || appErr.Code != apperrors.ErrFileSystemError {
		t.Errorf("error = %v, want ErrFileSystemError", err)
	}
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}
