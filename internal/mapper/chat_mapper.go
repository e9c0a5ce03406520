package mapper

import (
	"time"

	"ai-noteflow-be/internal/entity"
	"ai-noteflow-be/internal/model"

	"gorm.io/gorm"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) SessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		NoteId:    s.NoteId,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: s.DeletedAt.Valid,
	}
}

func (m *ChatMapper) SessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		NoteId:    s.NoteId,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *ChatMapper) SessionsToEntities(sessions []*model.ChatSession) []*entity.ChatSession {
	entities := make([]*entity.ChatSession, len(sessions))
	for i, s := range sessions {
		entities[i] = m.SessionToEntity(s)
	}
	return entities
}

func (m *ChatMapper) MessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:        msg.Id,
		SessionId: msg.SessionId,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:        msg.Id,
		SessionId: msg.SessionId,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMapper) MessagesToEntities(messages []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(messages))
	for i, msg := range messages {
		entities[i] = m.MessageToEntity(msg)
	}
	return entities
}
