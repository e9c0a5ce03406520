package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

type ByNoteID struct {
	NoteID uuid.UUID
}

func (s ByNoteID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("note_id = ?", s.NoteID)
}
