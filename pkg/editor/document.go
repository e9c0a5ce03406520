package editor

import "fmt"

// SelectionRange captures a substring and its position bounds in the editable
// document at the moment an enhancement was invoked.
type SelectionRange struct {
	Text string `json:"text"`
	From int    `json:"from"`
	To   int    `json:"to"`
}

// Validate checks the From <= To invariant and non-negative bounds.
func (s SelectionRange) Validate() error {
	if s.From < 0 || s.To < 0 {
		return fmt.Errorf("selection bounds must be non-negative, got [%d,%d)", s.From, s.To)
	}
	if s.From > s.To {
		return fmt.Errorf("selection from %d exceeds to %d", s.From, s.To)
	}
	return nil
}

// Document is a minimal editable surface: read the content, read a selection,
// replace a range or the whole document. It deliberately knows nothing else
// about the editor behind it.
type Document struct {
	content []rune
}

func NewDocument(content string) *Document {
	return &Document{content: []rune(content)}
}

// Content returns the current document text.
func (d *Document) Content() string {
	return string(d.content)
}

// Len returns the document length in runes.
func (d *Document) Len() int {
	return len(d.content)
}

// Selection reads the [from, to) span as a SelectionRange, clamped to the
// document bounds.
func (d *Document) Selection(from, to int) SelectionRange {
	from, to = d.clamp(from, to)
	return SelectionRange{
		Text: string(d.content[from:to]),
		From: from,
		To:   to,
	}
}

// ReplaceRange replaces exactly the [from, to) span with content and returns
// the range now occupied by the replacement. Bounds are clamped to the current
// document length: a range captured before concurrent edits may be stale, and
// clamping keeps the write inside the document rather than corrupting it.
func (d *Document) ReplaceRange(from, to int, content string) SelectionRange {
	from, to = d.clamp(from, to)
	replacement := []rune(content)

	next := make([]rune, 0, len(d.content)-(to-from)+len(replacement))
	next = append(next, d.content[:from]...)
	next = append(next, replacement...)
	next = append(next, d.content[to:]...)
	d.content = next

	return SelectionRange{Text: content, From: from, To: from + len(replacement)}
}

// ReplaceAll replaces the entire document content.
func (d *Document) ReplaceAll(content string) {
	d.content = []rune(content)
}

func (d *Document) clamp(from, to int) (int, int) {
	if from < 0 {
		from = 0
	}
	if to > len(d.content) {
		to = len(d.content)
	}
	if from > to {
		from = to
	}
	return from, to
}
