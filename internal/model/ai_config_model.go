package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AiConfiguration struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Key         string         `gorm:"type:varchar(100);uniqueIndex;not null"`
	Value       string         `gorm:"type:text;not null"`
	ValueType   string         `gorm:"type:varchar(20);not null;default:'string'"`
	Description string         `gorm:"type:text"`
	Category    string         `gorm:"type:varchar(50);not null;default:'general';index"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (AiConfiguration) TableName() string {
	return "ai_configurations"
}
