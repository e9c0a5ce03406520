package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Attachment struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NoteId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	FileName  string         `gorm:"type:varchar(255);not null"`
	MimeType  string         `gorm:"type:varchar(100)"`
	SizeBytes int64          `gorm:"default:0"`
	Content   string         `gorm:"type:text"`
	Metadata  datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Attachment) TableName() string {
	return "attachments"
}
