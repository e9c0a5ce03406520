package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	NoteId    *uuid.UUID // optional: session pinned to one note
	Title     string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

type ChatMessage struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Role      string // "user" or "assistant"
	Content   string
	CreatedAt time.Time
}

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)
