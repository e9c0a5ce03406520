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

type AttachmentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AttachmentMapper
}

func NewAttachmentRepository(db *gorm.DB) contract.AttachmentRepository {
	return &AttachmentRepositoryImpl{
		db:     db,
		mapper: mapper.NewAttachmentMapper(),
	}
}

func (r *AttachmentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AttachmentRepositoryImpl) Create(ctx context.Context, attachment *entity.Attachment) error {
	m := r.mapper.ToModel(attachment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*attachment = *r.mapper.ToEntity(m)
	return nil
}

func (r *AttachmentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Attachment{}, id).Error
}

func (r *AttachmentRepositoryImpl) DeleteByNoteId(ctx context.Context, noteId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("note_id = ?", noteId).Delete(&model.Attachment{}).Error
}

func (r *AttachmentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Attachment, error) {
	var m model.Attachment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AttachmentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Attachment, error) {
	var models []*model.Attachment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
