package implementation

import (
	"context"
	"errors"

	"ai-noteflow-be/internal/entity"
	"ai-noteflow-be/internal/mapper"
	"ai-noteflow-be/internal/model"
	"ai-noteflow-be/internal/repository/contract"
	"ai-noteflow-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatSessionRepository(db *gorm.DB) contract.ChatSessionRepository {
	return &ChatSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatSessionRepositoryImpl) Create(ctx context.Context, session *entity.ChatSession) error {
	m := r.mapper.SessionToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.SessionToEntity(m)
	return nil
}

func (r *ChatSessionRepositoryImpl) Update(ctx context.Context, session *entity.ChatSession) error {
	m := r.mapper.SessionToModel(session)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.SessionToEntity(m)
	return nil
}

func (r *ChatSessionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ChatSession{}, id).Error
}

func (r *ChatSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	var m model.ChatSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SessionToEntity(&m), nil
}

func (r *ChatSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	var models []*model.ChatSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.SessionsToEntities(models), nil
}
