package transcript

import (
	"regexp"
	"strings"
)

var (
	// Timestamp cue lines in two accepted forms:
	//   00:01:02,500 --> 00:01:05,000   (SRT, with hours)
	//   01:02.500 --> 01:05.000         (VTT, hours optional)
	timestampLine = regexp.MustCompile(`^\s*(?:\d{1,2}:)?\d{1,2}:\d{2}[.,]\d{1,3}\s*-->\s*(?:\d{1,2}:)?\d{1,2}:\d{2}[.,]\d{1,3}`)

	// Numeric cue index line (SRT).
	cueIndexLine = regexp.MustCompile(`^\s*\d+\s*$`)

	// Inline markup like <b>, </i>, <c.colorE5E5E5>, {\an8}.
	inlineMarkup = regexp.MustCompile(`<[^>]+>|\{[^}]+\}`)

	multiSpace = regexp.MustCompile(`\s+`)
)

// NormalizeSubtitles converts raw SRT or VTT caption data into plain text:
// header and sentinel lines stripped, cue indices stripped, timestamp ranges
// stripped, inline markup removed, remaining lines joined with single spaces
// and repeated whitespace collapsed.
func NormalizeSubtitles(raw string) string {
	var parts []string

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "WEBVTT") ||
			strings.HasPrefix(trimmed, "Kind:") ||
			strings.HasPrefix(trimmed, "Language:") ||
			strings.HasPrefix(trimmed, "NOTE") ||
			strings.HasPrefix(trimmed, "STYLE") {
			continue
		}
		if cueIndexLine.MatchString(trimmed) || timestampLine.MatchString(trimmed) {
			continue
		}

		text := inlineMarkup.ReplaceAllString(trimmed, "")
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}

	joined := strings.Join(parts, " ")
	return strings.TrimSpace(multiSpace.ReplaceAllString(joined, " "))
}
