package mapper

import (
	"encoding/json"
	"time"

	"ai-noteflow-be/internal/entity"
	"ai-noteflow-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AttachmentMapper struct{}

func NewAttachmentMapper() *AttachmentMapper {
	return &AttachmentMapper{}
}

func (m *AttachmentMapper) ToEntity(a *model.Attachment) *entity.Attachment {
	if a == nil {
		return nil
	}

	var deletedAt *time.Time
	if a.DeletedAt.Valid {
		t := a.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !a.UpdatedAt.IsZero() {
		t := a.UpdatedAt
		updatedAt = &t
	}

	var metadata map[string]interface{}
	if len(a.Metadata) > 0 {
		// Malformed rows degrade to nil metadata rather than failing the read.
		_ = json.Unmarshal(a.Metadata, &metadata)
	}

	return &entity.Attachment{
		Id:        a.Id,
		NoteId:    a.NoteId,
		UserId:    a.UserId,
		FileName:  a.FileName,
		MimeType:  a.MimeType,
		SizeBytes: a.SizeBytes,
		Content:   a.Content,
		Metadata:  metadata,
		CreatedAt: a.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: a.DeletedAt.Valid,
	}
}

func (m *AttachmentMapper) ToModel(a *entity.Attachment) *model.Attachment {
	if a == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if a.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *a.DeletedAt, Valid: true}
	}

	var updatedAt time.Time
	if a.UpdatedAt != nil {
		updatedAt = *a.UpdatedAt
	}

	var metadata datatypes.JSON
	if a.Metadata != nil {
		if raw, err := json.Marshal(a.Metadata); err == nil {
			metadata = raw
		}
	}

	return &model.Attachment{
		Id:        a.Id,
		NoteId:    a.NoteId,
		UserId:    a.UserId,
		FileName:  a.FileName,
		MimeType:  a.MimeType,
		SizeBytes: a.SizeBytes,
		Content:   a.Content,
		Metadata:  metadata,
		CreatedAt: a.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *AttachmentMapper) ToEntities(attachments []*model.Attachment) []*entity.Attachment {
	entities := make([]*entity.Attachment, len(attachments))
	for i, a := range attachments {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
