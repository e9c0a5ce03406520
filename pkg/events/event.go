package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is the contract for all system events published on the bus.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used across services.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes.
const (
	TypeNoteCreated     = "NOTE_CREATED"
	TypeNoteEnhanced    = "NOTE_ENHANCED"
	TypeChatMessageSent = "CHAT_MESSAGE_SENT"
)

// NoteEnhanced builds the event emitted when an AI enhancement finishes and
// the reconciled note has been persisted.
func NoteEnhanced(userID, noteID uuid.UUID, title string, wordCount int) BaseEvent {
	return BaseEvent{
		Type: TypeNoteEnhanced,
		Data: map[string]interface{}{
			"user_id":    userID,
			"note_id":    noteID,
			"title":      title,
			"word_count": wordCount,
		},
		OccurredAt: time.Now(),
	}
}

// NoteCreated builds the event emitted on note creation.
func NoteCreated(userID, noteID uuid.UUID, title string) BaseEvent {
	return BaseEvent{
		Type: TypeNoteCreated,
		Data: map[string]interface{}{
			"user_id": userID,
			"note_id": noteID,
			"title":   title,
		},
		OccurredAt: time.Now(),
	}
}
