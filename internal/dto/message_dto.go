package dto

import "github.com/google/uuid"

// PublishEmbedNoteMessage asks the consumer to (re)embed one note.
type PublishEmbedNoteMessage struct {
	NoteId uuid.UUID `json:"note_id"`
}
