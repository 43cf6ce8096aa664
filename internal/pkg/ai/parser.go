// Package ai provides the chat-completion provider and reply parsing
// for CodeSage.
package ai

import (
	"strings"

	"github.com/codesage/codesage/internal/pkg/comment"
	"github.com/codesage/codesage/internal/pkg/selection"
)

// GeneratedComment is one comment ready for insertion, paired with its
// zero-based target document line.
type GeneratedComment struct {
	Line int
	Text string
}

// ParseLineReply pairs the reply with the retained source lines.
//
// The reply is split on line breaks and blank entries are discarded.
// The i-th non-blank reply line is paired with the i-th retained source
// line by position. The model is expected, but not guaranteed, to
// return exactly one comment per input line: if it omits, merges, or
// reorders lines, comments attach to the wrong source line. That is a
// known gap in the contract; requiring the model to echo line numbers
// would change it.
//
// If the reply has fewer lines than the input, only the first K pairs
// are used; extra reply lines are ignored. Each paired line is stripped
// of echoed comment markers and re-prefixed with the canonical marker;
// comments empty after stripping are discarded.
func ParseLineReply(reply string, lines []selection.SourceLine, marker string) []GeneratedComment {
	replyLines := nonBlankLines(reply)

	n := len(replyLines)
	if len(lines) < n {
		n = len(lines)
	}

	comments := make([]GeneratedComment, 0, n)
	for i := 0; i < n; i++ {
		text := comment.Normalize(replyLines[i], marker)
		if text == "" {
			continue
		}
		comments = append(comments, GeneratedComment{
			Line: lines[i].Number,
			Text: text,
		})
	}

	return comments
}

// ParseBlockReply prepares a whole-block reply for insertion: the
// trimmed reply with each line prefixed by the canonical marker.
func ParseBlockReply(reply string, marker string) string {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return ""
	}

	lines := strings.Split(reply, "\n")
	normalized := make([]string, 0, len(lines))
	for _, line := range lines {
		text := comment.Normalize(line, marker)
		if text == "" {
			continue
		}
		normalized = append(normalized, text)
	}

	return strings.Join(normalized, "\n")
}

// nonBlankLines splits text on line breaks and discards blank entries.
func nonBlankLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
