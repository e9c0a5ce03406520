package mapper

import (
	"ai-noteflow-be/internal/entity"
	"ai-noteflow-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type NoteEmbeddingMapper struct{}

func NewNoteEmbeddingMapper() *NoteEmbeddingMapper {
	return &NoteEmbeddingMapper{}
}

func (m *NoteEmbeddingMapper) ToEntity(e *model.NoteEmbedding) *entity.NoteEmbedding {
	if e == nil {
		return nil
	}
	return &entity.NoteEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		NoteId:         e.NoteId,
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *NoteEmbeddingMapper) ToModel(e *entity.NoteEmbedding) *model.NoteEmbedding {
	if e == nil {
		return nil
	}
	return &model.NoteEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		NoteId:         e.NoteId,
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *NoteEmbeddingMapper) ToModels(embeddings []*entity.NoteEmbedding) []*model.NoteEmbedding {
	models := make([]*model.NoteEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = m.ToModel(e)
	}
	return models
}
