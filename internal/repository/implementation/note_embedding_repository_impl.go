package implementation

import (
	"context"

	"ai-noteflow-be/internal/entity"
	"ai-noteflow-be/internal/mapper"
	"ai-noteflow-be/internal/model"
	"ai-noteflow-be/internal/repository/contract"
	"ai-noteflow-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type NoteEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteEmbeddingMapper
}

func NewNoteEmbeddingRepository(db *gorm.DB) contract.NoteEmbeddingRepository {
	return &NoteEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteEmbeddingMapper(),
	}
}

func (r *NoteEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NoteEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.NoteEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := r.mapper.ToModels(embeddings)
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *NoteEmbeddingRepositoryImpl) DeleteByNoteId(ctx context.Context, noteId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("note_id = ?", noteId).Delete(&model.NoteEmbedding{}).Error
}

func (r *NoteEmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NoteEmbedding, error) {
	var models []*model.NoteEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.NoteEmbedding, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *NoteEmbeddingRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int, userId uuid.UUID) ([]*entity.NoteSearchResult, error) {
	if limit <= 0 {
		limit = 5
	}

	type row struct {
		NoteId     uuid.UUID
		Document   string
		ChunkIndex int
		Distance   float64
	}
	var rows []row

	queryVector := pgvector.NewVector(embedding)

	// Cosine distance via pgvector's <=> operator. The join scopes results to
	// the caller's live notes.
	err := r.db.WithContext(ctx).
		Table("note_embeddings").
		Select("note_embeddings.note_id, note_embeddings.document, note_embeddings.chunk_index, embedding_value <=> ? as distance", queryVector).
		Joins("JOIN notes ON notes.id = note_embeddings.note_id").
		Where("notes.user_id = ?", userId).
		Where("note_embeddings.deleted_at IS NULL").
		Where("notes.deleted_at IS NULL").
		Order("distance ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]*entity.NoteSearchResult, len(rows))
	for i, rw := range rows {
		results[i] = &entity.NoteSearchResult{
			NoteId:     rw.NoteId,
			Document:   rw.Document,
			ChunkIndex: rw.ChunkIndex,
			Distance:   rw.Distance,
		}
	}
	return results, nil
}
