package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"ai-noteflow-be/internal/dto"
	"ai-noteflow-be/internal/entity"
	"ai-noteflow-be/internal/pkg/logger"
	"ai-noteflow-be/internal/repository/specification"
	"ai-noteflow-be/internal/repository/unitofwork"
	"ai-noteflow-be/pkg/completion"
	"ai-noteflow-be/pkg/lexical"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// embedChunkSize caps how much text one embedding covers, in runes.
const embedChunkSize = 1200

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	ai             *completion.Client
	embeddingModel string
	log            logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	ai *completion.Client,
	embeddingModel string,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		ai:             ai,
		embeddingModel: embeddingModel,
		log:            log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedNoteMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer", "Failed to unmarshal embed message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // invalid payloads would retry forever otherwise
		return
	}

	if err := cs.embedNote(ctx, payload.NoteId); err != nil {
		cs.log.Error("consumer", "Failed to embed note", map[string]interface{}{
			"note_id": payload.NoteId.String(),
			"error":   err.Error(),
		})
		msg.Nack()
		return
	}
	msg.Ack()
}

func (cs *consumerService) embedNote(ctx context.Context, noteId uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: noteId})
	if err != nil {
		return err
	}
	if note == nil {
		// Note deleted between publish and consume; nothing to embed.
		return nil
	}

	text := lexical.ToMarkdown(note.Content)
	if note.Title != "" {
		text = note.Title + "\n\n" + text
	}

	chunks := chunkDocument(text, embedChunkSize)
	if len(chunks) == 0 {
		return nil
	}

	embeddings := make([]*entity.NoteEmbedding, 0, len(chunks))
	for i, chunk := range chunks {
		vector, err := cs.ai.Embed(ctx, cs.embeddingModel, chunk)
		if err != nil {
			return err
		}
		embeddings = append(embeddings, &entity.NoteEmbedding{
			Id:             uuid.New(),
			Document:       chunk,
			EmbeddingValue: vector,
			NoteId:         note.Id,
			ChunkIndex:     i,
			CreatedAt:      time.Now(),
		})
	}

	if err := uow.NoteEmbeddingRepository().DeleteByNoteId(ctx, note.Id); err != nil {
		return err
	}
	return uow.NoteEmbeddingRepository().CreateBulk(ctx, embeddings)
}

// chunkDocument splits text on paragraph boundaries, packing paragraphs
// together until the size cap, so one embedding never straddles unrelated
// sections more than necessary.
func chunkDocument(text string, size int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		// Oversized paragraphs are split hard at the cap.
		for len([]rune(para)) > size {
			runes := []rune(para)
			flush()
			chunks = append(chunks, string(runes[:size]))
			para = string(runes[size:])
		}

		if current.Len() > 0 && len([]rune(current.String()))+len([]rune(para))+2 > size {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	flush()

	return chunks
}
