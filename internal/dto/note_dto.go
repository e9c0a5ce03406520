package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title      string    `json:"title" validate:"required"`
	Content    string    `json:"content"`
	NotebookId uuid.UUID `json:"notebook_id" validate:"required"`
}

type CreateNoteResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowNoteResponse struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	WordCount   int        `json:"word_count"`
	ReadingTime int        `json:"reading_time"`
	NotebookId  uuid.UUID  `json:"notebook_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

type UpdateNoteRequest struct {
	Id      uuid.UUID
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}

type UpdateNoteResponse struct {
	Id uuid.UUID `json:"id"`
}

type SemanticSearchRequest struct {
	Query string `json:"query" validate:"required"`
	Limit int    `json:"limit"`
}

type SemanticSearchResponse struct {
	NoteId     uuid.UUID `json:"note_id"`
	Title      string    `json:"title"`
	Snippet    string    `json:"snippet"`
	ChunkIndex int       `json:"chunk_index"`
	Distance   float64   `json:"distance"`
}
