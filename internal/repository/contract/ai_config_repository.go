package contract

import (
	"context"

	"ai-noteflow-be/internal/entity"
	"ai-noteflow-be/internal/repository/specification"
)

type AiConfigRepository interface {
	Upsert(ctx context.Context, config *entity.AiConfiguration) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AiConfiguration, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AiConfiguration, error)
}
