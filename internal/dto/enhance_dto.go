package dto

// SelectionRange mirrors the editor's character-offset selection.
type SelectionRange struct {
	Text string `json:"text" validate:"required"`
	From int    `json:"from" validate:"gte=0"`
	To   int    `json:"to" validate:"gtefield=From"`
}

type EnhanceNoteRequest struct {
	Prompt    string          `json:"prompt" validate:"required"`
	Selection *SelectionRange `json:"selection,omitempty"`
	// VideoURLs are YouTube links whose transcripts should be offered to the
	// model as additional context.
	VideoURLs []string `json:"video_urls,omitempty"`
}

// EnhanceStreamEvent is one SSE frame pushed to the client while the
// enhancement runs.
type EnhanceStreamEvent struct {
	Type    string `json:"type"` // "delta", "title", "done", "error"
	Delta   string `json:"delta,omitempty"`
	Title   string `json:"title,omitempty"`
	HTML    string `json:"html,omitempty"`
	Message string `json:"message,omitempty"`
}

const (
	EnhanceEventDelta = "delta"
	EnhanceEventTitle = "title"
	EnhanceEventDone  = "done"
	EnhanceEventError = "error"
)
