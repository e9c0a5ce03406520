package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatSession struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	NoteId    *uuid.UUID     `gorm:"type:uuid;index"`
	Title     string         `gorm:"type:varchar(255)"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
