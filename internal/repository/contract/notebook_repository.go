package contract

import (
	"context"

	"ai-noteflow-be/internal/entity"
	"ai-noteflow-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NotebookRepository interface {
	Create(ctx context.Context, notebook *entity.Notebook) error
	Update(ctx context.Context, notebook *entity.Notebook) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Notebook, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notebook, error)
}
