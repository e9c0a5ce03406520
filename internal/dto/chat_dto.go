package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateChatSessionRequest struct {
	Title  string     `json:"title"`
	NoteId *uuid.UUID `json:"note_id,omitempty"`
}

type ChatSessionResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	NoteId    *uuid.UUID `json:"note_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type SendChatMessageRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	Content   string    `json:"content" validate:"required"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	SessionId uuid.UUID `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
