package contract

import (
	"context"

	"ai-noteflow-be/internal/entity"
	"ai-noteflow-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AttachmentRepository interface {
	Create(ctx context.Context, attachment *entity.Attachment) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByNoteId(ctx context.Context, noteId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Attachment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Attachment, error)
}
