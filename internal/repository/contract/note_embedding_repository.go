package contract

import (
	"context"

	"ai-noteflow-be/internal/entity"
	"ai-noteflow-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NoteEmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []*entity.NoteEmbedding) error
	DeleteByNoteId(ctx context.Context, noteId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NoteEmbedding, error)
	// SearchSimilar orders by cosine distance to the query vector, scoped to
	// one user's live notes.
	SearchSimilar(ctx context.Context, embedding []float32, limit int, userId uuid.UUID) ([]*entity.NoteSearchResult, error)
}
