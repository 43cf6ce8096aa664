package selection

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: for any selection text, the retained line numbers are
// strictly increasing, start at or after the selection's start line,
// and never exceed the selection's end line.

// genSourceLines generates a slice of lines, some of which are blank.
func genSourceLines() gopter.Gen {
	return gen.SliceOfN(12, gen.OneConstOf(
		"x := compute()",
		"return err",
		"",
		"   ",
		"\t",
		"for i := range items {",
		"}",
	)).Map(func(lines []string) string {
		return strings.Join(lines, "\n")
	})
}

func TestExtractProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("retained line numbers are strictly increasing and bounded", prop.ForAll(
		func(text string, startLine int) bool {
			endLine := startLine + strings.Count(text, "\n")
			r := NewRange(startLine, endLine)

			extracted, err := Extract(text, r, ModeLine)
			if err != nil {
				// Blank selections abort; that is the expected outcome
				// for all-blank generated input.
				return strings.TrimSpace(text) == ""
			}

			prev := startLine - 1
			for _, line := range extracted.Lines {
				if line.Number <= prev {
					return false
				}
				if line.Number < startLine || line.Number > endLine {
					return false
				}
				if strings.TrimSpace(line.Text) == "" {
					return false
				}
				prev = line.Number
			}
			return len(extracted.Lines) > 0
		},
		genSourceLines(),
		gen.IntRange(0, 50),
	))

	properties.Property("extracted text matches retained lines exactly", prop.ForAll(
		func(text string) bool {
			extracted, err := Extract(text, NewRange(0, strings.Count(text, "\n")), ModeLine)
			if err != nil {
				return strings.TrimSpace(text) == ""
			}

			texts := make([]string, len(extracted.Lines))
			for i, l := range extracted.Lines {
				texts[i] = l.Text
			}
			return extracted.Text == strings.Join(texts, "\n")
		},
		genSourceLines(),
	))

	properties.TestingRun(t)
}
