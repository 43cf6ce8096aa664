// Package ai provides the chat-completion provider and reply parsing
// for CodeSage.
package ai

import (
	"bytes"
	"text/template"

	"github.com/codesage/codesage/internal/pkg/selection"
)

// LineSystemPrompt is the instruction prompt for per-line mode.
const LineSystemPrompt = `You are an expert at writing concise code comments.

You will receive source code with one statement per line. For each input
line, write exactly one short comment describing what that line does.

Rules:
1. Output exactly one comment line per input line, in the same order
2. Do not number the lines and do not repeat the code
3. Do not prefix the comments with comment markers such as // or #
4. Keep each comment under 80 characters
5. Output only the comment lines, no explanations`

// BlockSystemPrompt is the instruction prompt for block mode.
const BlockSystemPrompt = `You are an expert at writing concise code comments.

Summarize what the given code does in a short comment block of at most
five lines. Do not prefix the lines with comment markers such as // or #.
Output only the comment text, no explanations and no code.`

// userPromptTemplate is the template for the user message.
const userPromptTemplate = `{{if .PerLine}}Write one comment per line for these {{.LineCount}} lines of code:
{{else}}Write a summary comment for this code:
{{end}}
{{.Text}}`

// PromptData contains the data used to render the user prompt template.
type PromptData struct {
	PerLine   bool
	LineCount int
	Text      string
}

// PromptTemplate handles prompt generation for the provider.
type PromptTemplate struct {
	LinePrompt  string
	BlockPrompt string
	tmpl        *template.Template
}

// NewPromptTemplate creates a PromptTemplate with the default prompts.
func NewPromptTemplate() *PromptTemplate {
	return &PromptTemplate{
		LinePrompt:  LineSystemPrompt,
		BlockPrompt: BlockSystemPrompt,
	}
}

// SystemPrompt returns the instruction prompt for the given mode.
func (pt *PromptTemplate) SystemPrompt(mode selection.Mode) string {
	if mode == selection.ModeBlock {
		return pt.BlockPrompt
	}
	return pt.LinePrompt
}

// RenderUserPrompt renders the user prompt for the given request.
func (pt *PromptTemplate) RenderUserPrompt(req *GenerateRequest) (string, error) {
	if pt.tmpl == nil {
		tmpl, err := template.New("userPrompt").Parse(userPromptTemplate)
		if err != nil {
			return "", err
		}
		pt.tmpl = tmpl
	}

	data := &PromptData{
		PerLine:   req.Mode == selection.ModeLine,
		LineCount: req.LineCount,
		Text:      req.Text,
	}

	var buf bytes.Buffer
	if err := pt.tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
