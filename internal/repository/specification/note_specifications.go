package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByNotebookID struct {
	NotebookID uuid.UUID
}

func (s ByNotebookID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notebook_id = ?", s.NotebookID)
}

type NoteOwnedByUser struct {
	UserID uuid.UUID
}

func (s NoteOwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.user_id = ?", s.UserID)
}

// NoteSearchQuery filters notes by title or content (case-insensitive)
type NoteSearchQuery struct {
	Query string
}

func (s NoteSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
}
