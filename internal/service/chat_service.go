package service

import (
	"context"
	"fmt"
	"time"

	"ai-noteflow-be/internal/dto"
	"ai-noteflow-be/internal/entity"
	"ai-noteflow-be/internal/pkg/logger"
	"ai-noteflow-be/internal/repository/specification"
	"ai-noteflow-be/internal/repository/unitofwork"
	"ai-noteflow-be/pkg/completion"
	"ai-noteflow-be/pkg/events"
	"ai-noteflow-be/pkg/lexical"
	pkgNats "ai-noteflow-be/pkg/nats"
	"ai-noteflow-be/pkg/prompt"

	"github.com/google/uuid"
)

// chatHistoryLimit caps how many stored messages are replayed into the model.
const chatHistoryLimit = 20

const chatSystemPrompt = "You are a helpful note-taking assistant. Answer using the provided note content when it is relevant, and say so when it is not."

type IChatService interface {
	CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateChatSessionRequest) (*dto.ChatSessionResponse, error)
	ListSessions(ctx context.Context, userId uuid.UUID) ([]*dto.ChatSessionResponse, error)
	ListMessages(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.ChatMessageResponse, error)
	SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendChatMessageRequest) (*dto.ChatMessageResponse, error)
}

type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	ai             *completion.Client
	eventPublisher *pkgNats.Publisher
	log            logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	ai *completion.Client,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:     uowFactory,
		ai:             ai,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *chatService) CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateChatSessionRequest) (*dto.ChatSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	title := req.Title
	if title == "" {
		title = "New chat"
	}

	session := entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		NoteId:    req.NoteId,
		Title:     title,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}
	return sessionToResponse(&session), nil
}

func (s *chatService) ListSessions(ctx context.Context, userId uuid.UUID) ([]*dto.ChatSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ChatSessionResponse, len(sessions))
	for i, sess := range sessions {
		res[i] = sessionToResponse(sess)
	}
	return res, nil
}

func (s *chatService) ListMessages(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.ChatMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.ownedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: session.Id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ChatMessageResponse, len(messages))
	for i, m := range messages {
		res[i] = messageToResponse(m)
	}
	return res, nil
}

func (s *chatService) SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendChatMessageRequest) (*dto.ChatMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.ownedSession(ctx, uow, userId, req.SessionId)
	if err != nil {
		return nil, err
	}

	userMsg := entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: session.Id,
		Role:      entity.ChatRoleUser,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &userMsg); err != nil {
		return nil, err
	}

	messages, err := s.buildConversation(ctx, uow, session)
	if err != nil {
		return nil, err
	}

	answer, err := s.ai.Chat(ctx, messages)
	if err != nil {
		return nil, err
	}

	assistantMsg := entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: session.Id,
		Role:      entity.ChatRoleAssistant,
		Content:   answer,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &assistantMsg); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeChatMessageSent,
			Data: map[string]interface{}{
				"user_id":    userId,
				"session_id": session.Id,
				"message_id": assistantMsg.Id,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("chat", "Failed to publish chat event", map[string]interface{}{"error": err.Error()})
		}
	}

	return messageToResponse(&assistantMsg), nil
}

// buildConversation assembles the model input: system prompt, pinned note
// content when the session has one, then recent history oldest-first.
func (s *chatService) buildConversation(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.ChatSession) ([]completion.Message, error) {
	messages := []completion.Message{
		{Role: "system", Content: chatSystemPrompt},
	}

	if session.NoteId != nil {
		note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: *session.NoteId})
		if err != nil {
			return nil, err
		}
		if note != nil {
			notePrompt := prompt.NewAssembler(lexical.ToMarkdown(note.Content)).Assemble()
			if notePrompt != "" {
				messages = append(messages, completion.Message{Role: "system", Content: notePrompt})
			}
		}
	}

	history, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: session.Id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}
	if len(history) > chatHistoryLimit {
		history = history[len(history)-chatHistoryLimit:]
	}
	for _, m := range history {
		messages = append(messages, completion.Message{Role: m.Role, Content: m.Content})
	}

	return messages, nil
}

func (s *chatService) ownedSession(ctx context.Context, uow unitofwork.UnitOfWork, userId, sessionId uuid.UUID) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("chat session %s not found", sessionId)
	}
	return session, nil
}

func sessionToResponse(s *entity.ChatSession) *dto.ChatSessionResponse {
	return &dto.ChatSessionResponse{
		Id:        s.Id,
		Title:     s.Title,
		NoteId:    s.NoteId,
		CreatedAt: s.CreatedAt,
	}
}

func messageToResponse(m *entity.ChatMessage) *dto.ChatMessageResponse {
	return &dto.ChatMessageResponse{
		Id:        m.Id,
		SessionId: m.SessionId,
		Role:      m.Role,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
