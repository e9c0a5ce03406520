package service

import (
	"context"

	"ai-noteflow-be/internal/pkg/logger"
	"ai-noteflow-be/internal/websocket"
	"ai-noteflow-be/pkg/events"
	pkgNats "ai-noteflow-be/pkg/nats"

	"github.com/google/uuid"
)

// INotifierService fans bus events out to connected websocket clients.
type INotifierService interface {
	Start() error
}

type notifierService struct {
	subscriber *pkgNats.Subscriber
	hub        *websocket.Hub
	log        logger.ILogger
}

func NewNotifierService(subscriber *pkgNats.Subscriber, hub *websocket.Hub, log logger.ILogger) INotifierService {
	return &notifierService{
		subscriber: subscriber,
		hub:        hub,
		log:        log,
	}
}

func (s *notifierService) Start() error {
	if s.subscriber == nil {
		s.log.Warn("notifier", "NATS subscriber unavailable, realtime push disabled", nil)
		return nil
	}
	return s.subscriber.Subscribe("events.>", "noteflow-realtime", s.handle)
}

func (s *notifierService) handle(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	rawUser, ok := payload["user_id"].(string)
	if !ok {
		// Events without a target user are not pushed to clients.
		return nil
	}
	userID, err := uuid.Parse(rawUser)
	if err != nil {
		return nil
	}

	var envelopeType string
	switch event.EventType() {
	case "events." + events.TypeNoteEnhanced:
		envelopeType = websocket.EnvelopeNoteEnhanced
	case "events." + events.TypeChatMessageSent:
		envelopeType = websocket.EnvelopeChatMessage
	default:
		return nil
	}

	s.hub.Send(userID, websocket.Envelope{Type: envelopeType, Data: payload})
	return nil
}
