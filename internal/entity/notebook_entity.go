package entity

import (
	"time"

	"github.com/google/uuid"
)

type Notebook struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	UserId    uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
