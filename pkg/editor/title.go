package editor

import (
	"regexp"
	"strings"
)

// titlePattern matches a leading "TITLE: ..." marker line, case-insensitive.
// The marker may arrive split across several deltas, so extraction re-runs on
// every accumulation step and must be idempotent.
var titlePattern = regexp.MustCompile(`(?i)^TITLE:[ \t]*(.*)`)

// ExtractTitle inspects markdown for a leading title marker line. When found
// it returns the captured title and the body with the marker line removed.
// Running it again on the stripped body is a no-op.
func ExtractTitle(markdown string) (title string, body string) {
	body = markdown

	firstLine := markdown
	rest := ""
	if idx := strings.IndexByte(markdown, '\n'); idx >= 0 {
		firstLine = markdown[:idx]
		rest = markdown[idx+1:]
	}

	m := titlePattern.FindStringSubmatch(firstLine)
	if m == nil {
		return "", body
	}

	return strings.TrimSpace(m[1]), strings.TrimLeft(rest, "\n")
}
