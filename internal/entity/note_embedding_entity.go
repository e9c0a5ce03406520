package entity

import (
	"time"

	"github.com/google/uuid"
)

type NoteEmbedding struct {
	Id             uuid.UUID
	Document       string
	EmbeddingValue []float32
	NoteId         uuid.UUID
	ChunkIndex     int
	CreatedAt      time.Time
}

// NoteSearchResult is a semantic search hit with its cosine distance.
type NoteSearchResult struct {
	NoteId     uuid.UUID
	Document   string
	ChunkIndex int
	Distance   float64
}
