package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateAttachmentRequest struct {
	NoteId   uuid.UUID              `json:"note_id" validate:"required"`
	FileName string                 `json:"file_name" validate:"required"`
	MimeType string                 `json:"mime_type"`
	Content  string                 `json:"content" validate:"required"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type AttachmentResponse struct {
	Id        uuid.UUID              `json:"id"`
	NoteId    uuid.UUID              `json:"note_id"`
	FileName  string                 `json:"file_name"`
	MimeType  string                 `json:"mime_type"`
	SizeBytes int64                  `json:"size_bytes"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
