package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type NoteEmbedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Document       string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(1536)"` // text-embedding-3-small is 1536-dimensional
	NoteId         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ChunkIndex     int             `gorm:"default:0"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt  `gorm:"index"`
}

func (NoteEmbedding) TableName() string {
	return "note_embeddings"
}
