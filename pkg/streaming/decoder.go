package streaming

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	dataPrefix   = "data: "
	doneSentinel = "[DONE]"
)

// StreamEvent is one decoded record from a chat-completion stream.
// Done marks the terminal sentinel; payload records carry an optional text
// delta and an optional finish reason.
type StreamEvent struct {
	Done         bool
	Delta        string
	FinishReason string
}

// chunkPayload mirrors the wire shape of one streamed completion record.
type chunkPayload struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason *string `json:"finish_reason"`
	} `json:"choices"`
}

// DecodeLine parses a single protocol line into a StreamEvent.
// Lines without the event prefix (keep-alives, blank lines) yield (nil, nil)
// and should be skipped. A malformed JSON payload yields an error; callers are
// expected to log it and continue with the next line.
func DecodeLine(line string) (*StreamEvent, error) {
	line = strings.TrimRight(line, "\r")
	if !strings.HasPrefix(line, dataPrefix) {
		return nil, nil
	}
	payload := strings.TrimSpace(line[len(dataPrefix):])

	if payload == doneSentinel {
		return &StreamEvent{Done: true}, nil
	}

	var chunk chunkPayload
	if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
		return nil, fmt.Errorf("decode stream record: %w", err)
	}

	evt := &StreamEvent{}
	if len(chunk.Choices) > 0 {
		evt.Delta = chunk.Choices[0].Delta.Content
		if fr := chunk.Choices[0].FinishReason; fr != nil {
			evt.FinishReason = *fr
		}
	}
	return evt, nil
}
