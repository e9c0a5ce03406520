package mapper

import (
	"ai-noteflow-be/internal/entity"
	"ai-noteflow-be/internal/model"
)

type AiConfigMapper struct{}

func NewAiConfigMapper() *AiConfigMapper {
	return &AiConfigMapper{}
}

func (m *AiConfigMapper) ToEntity(c *model.AiConfiguration) *entity.AiConfiguration {
	if c == nil {
		return nil
	}
	return &entity.AiConfiguration{
		Id:          c.Id,
		Key:         c.Key,
		Value:       c.Value,
		ValueType:   c.ValueType,
		Description: c.Description,
		Category:    c.Category,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (m *AiConfigMapper) ToModel(c *entity.AiConfiguration) *model.AiConfiguration {
	if c == nil {
		return nil
	}
	return &model.AiConfiguration{
		Id:          c.Id,
		Key:         c.Key,
		Value:       c.Value,
		ValueType:   c.ValueType,
		Description: c.Description,
		Category:    c.Category,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (m *AiConfigMapper) ToEntities(configs []*model.AiConfiguration) []*entity.AiConfiguration {
	entities := make([]*entity.AiConfiguration, len(configs))
	for i, c := range configs {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
