package implementation

import (
	"context"
	"errors"

	"ai-noteflow-be/internal/entity"
	"ai-noteflow-be/internal/mapper"
	"ai-noteflow-be/internal/model"
	"ai-noteflow-be/internal/repository/contract"
	"ai-noteflow-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AiConfigRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AiConfigMapper
}

func NewAiConfigRepository(db *gorm.DB) contract.AiConfigRepository {
	return &AiConfigRepositoryImpl{
		db:     db,
		mapper: mapper.NewAiConfigMapper(),
	}
}

func (r *AiConfigRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AiConfigRepositoryImpl) Upsert(ctx context.Context, config *entity.AiConfiguration) error {
	m := r.mapper.ToModel(config)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "value_type", "description", "category", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*config = *r.mapper.ToEntity(m)
	return nil
}

func (r *AiConfigRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AiConfiguration, error) {
	var m model.AiConfiguration
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AiConfigRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AiConfiguration, error) {
	var models []*model.AiConfiguration
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
