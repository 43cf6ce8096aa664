// Package comment provides comment marker detection and normalization
// for CodeSage.
//
// Every inserted comment is normalized to exactly one canonical marker:
// whatever marker characters the model echoed back are stripped first,
// then the canonical marker for the target language is prefixed.
package comment

import (
	"path/filepath"
	"strings"
)

// DefaultMarker is the canonical marker used when the file extension
// is unknown and no override is configured.
const DefaultMarker = "//"

// markersByExtension maps file extensions to line comment markers.
var markersByExtension = map[string]string{
	".go":    "//",
	".c":     "//",
	".h":     "//",
	".cpp":   "//",
	".cc":    "//",
	".hpp":   "//",
	".cs":    "//",
	".java":  "//",
	".js":    "//",
	".jsx":   "//",
	".ts":    "//",
	".tsx":   "//",
	".rs":    "//",
	".swift": "//",
	".kt":    "//",
	".scala": "//",
	".php":   "//",
	".dart":  "//",
	".py":    "#",
	".rb":    "#",
	".sh":    "#",
	".bash":  "#",
	".zsh":   "#",
	".pl":    "#",
	".r":     "#",
	".yaml":  "#",
	".yml":   "#",
	".toml":  "#",
	".mk":    "#",
	".sql":   "--",
	".lua":   "--",
	".hs":    "--",
	".elm":   "--",
	".lisp":  ";",
	".clj":   ";",
	".el":    ";",
	".scm":   ";",
	".vb":    "'",
	".bas":   "'",
}

// markerChars are the characters stripped from the front of a model
// reply line before the canonical marker is applied. Covers the line
// comment leaders of every language in markersByExtension.
const markerChars = "/#-;'!%*"

// MarkerForFile returns the canonical comment marker for the given
// file path, based on its extension. Unknown extensions fall back to
// DefaultMarker.
func MarkerForFile(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if marker, ok := markersByExtension[ext]; ok {
		return marker
	}
	return DefaultMarker
}

// StripMarkers removes any leading comment-marker characters (and
// surrounding whitespace) from a reply line.
func StripMarkers(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, markerChars)
	return strings.TrimSpace(line)
}

// Normalize strips echoed markers from a reply line and prefixes the
// single canonical marker. Returns the empty string if nothing is left
// after stripping; such comments are discarded, not inserted.
func Normalize(line, marker string) string {
	text := StripMarkers(line)
	if text == "" {
		return ""
	}
	return marker + " " + text
}
