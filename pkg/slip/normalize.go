package slip

import (
	"regexp"
	"strings"
)

var (
	blankLineRuns    = regexp.MustCompile(`\n(?:[ \t]*\n)+`)
	spaceBeforeColon = regexp.MustCompile(`[ \t]+:`)
)

// Normalize cleans raw OCR output into the canonical line format the parser
// expects: carriage returns become newlines, runs of blank lines collapse to
// a single newline, stray whitespace before colons is removed and the outer
// whitespace is trimmed. Normalizing already-normalized text is a no-op.
func Normalize(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = blankLineRuns.ReplaceAllString(text, "\n")
	text = spaceBeforeColon.ReplaceAllString(text, ":")
	return strings.TrimSpace(text)
}
