package streaming

import "strings"

// Mode controls edge-case policy while accumulating deltas.
type Mode int

const (
	// ModeGenerate accumulates every delta as-is.
	ModeGenerate Mode = iota
	// ModeEdit drops an initial delta that is only a newline while the buffer
	// is still empty, so an edited selection never gains a leading blank line.
	ModeEdit
)

// Accumulator folds incremental deltas into a running markdown buffer.
// It is owned by a single in-flight enhancement and is not safe for
// concurrent use.
type Accumulator struct {
	mode Mode
	buf  strings.Builder
}

func NewAccumulator(mode Mode) *Accumulator {
	return &Accumulator{mode: mode}
}

// Append folds one delta into the buffer. Empty deltas are ignored.
func (a *Accumulator) Append(delta string) {
	if delta == "" {
		return
	}
	if a.mode == ModeEdit && a.buf.Len() == 0 && strings.TrimRight(delta, "\n") == "" {
		return
	}
	a.buf.WriteString(delta)
}

// Markdown returns the accumulated raw text.
func (a *Accumulator) Markdown() string {
	return a.buf.String()
}

// Len reports the accumulated byte length.
func (a *Accumulator) Len() int {
	return a.buf.Len()
}
