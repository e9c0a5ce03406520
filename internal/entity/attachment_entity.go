package entity

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is extracted text from a file the user attached to a note,
// kept so the enhance pipeline can feed it back as prompt context.
type Attachment struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	NoteId    uuid.UUID `gorm:"type:uuid;index"`
	UserId    uuid.UUID `gorm:"type:uuid;index"`
	FileName  string
	MimeType  string
	SizeBytes int64
	Content   string                 // extracted text
	Metadata  map[string]interface{} // source-specific extras (page count, duration, ...)
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
