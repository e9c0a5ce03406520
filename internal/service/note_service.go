package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-noteflow-be/internal/dto"
	"ai-noteflow-be/internal/entity"
	"ai-noteflow-be/internal/pkg/logger"
	"ai-noteflow-be/internal/repository/specification"
	"ai-noteflow-be/internal/repository/unitofwork"
	"ai-noteflow-be/pkg/completion"
	"ai-noteflow-be/pkg/events"
	pkgNats "ai-noteflow-be/pkg/nats"

	"github.com/google/uuid"
)

type INoteService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowNoteResponse, error)
	List(ctx context.Context, userId uuid.UUID, notebookId *uuid.UUID) ([]*dto.ShowNoteResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	SemanticSearch(ctx context.Context, userId uuid.UUID, req *dto.SemanticSearchRequest) ([]*dto.SemanticSearchResponse, error)
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	ai               *completion.Client
	embeddingModel   string
	eventPublisher   *pkgNats.Publisher
	log              logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	ai *completion.Client,
	embeddingModel string,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		ai:               ai,
		embeddingModel:   embeddingModel,
		eventPublisher:   eventPublisher,
		log:              log,
	}
}

func (s *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx,
		specification.ByID{ID: req.NotebookId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, fmt.Errorf("notebook %s not found", req.NotebookId)
	}

	note := entity.Note{
		Id:         uuid.New(),
		Title:      req.Title,
		Content:    req.Content,
		NotebookId: req.NotebookId,
		UserId:     userId,
		CreatedAt:  time.Now(),
	}
	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, err
	}

	s.requestEmbedding(ctx, note.Id)

	if s.eventPublisher != nil {
		evt := events.NoteCreated(userId, note.Id, note.Title)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("note", "Failed to publish note created event", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.CreateNoteResponse{Id: note.Id}, nil
}

func (s *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowNoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, fmt.Errorf("note %s not found", id)
	}

	return noteToResponse(note), nil
}

func (s *noteService) List(ctx context.Context, userId uuid.UUID, notebookId *uuid.UUID) ([]*dto.ShowNoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	}
	if notebookId != nil {
		specs = append(specs, specification.ByNotebookID{NotebookID: *notebookId})
	}

	notes, err := uow.NoteRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ShowNoteResponse, len(notes))
	for i, n := range notes {
		res[i] = noteToResponse(n)
	}
	return res, nil
}

func (s *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, fmt.Errorf("note %s not found", req.Id)
	}

	note.Title = req.Title
	note.Content = req.Content
	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	s.requestEmbedding(ctx, note.Id)

	return &dto.UpdateNoteResponse{Id: note.Id}, nil
}

func (s *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return fmt.Errorf("note %s not found", id)
	}

	if err := uow.NoteEmbeddingRepository().DeleteByNoteId(ctx, id); err != nil {
		return err
	}
	if err := uow.AttachmentRepository().DeleteByNoteId(ctx, id); err != nil {
		return err
	}
	return uow.NoteRepository().Delete(ctx, id)
}

func (s *noteService) SemanticSearch(ctx context.Context, userId uuid.UUID, req *dto.SemanticSearchRequest) ([]*dto.SemanticSearchResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	vector, err := s.ai.Embed(ctx, s.embeddingModel, req.Query)
	if err != nil {
		return nil, err
	}

	hits, err := uow.NoteEmbeddingRepository().SearchSimilar(ctx, vector, req.Limit, userId)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return []*dto.SemanticSearchResponse{}, nil
	}

	noteIds := make([]uuid.UUID, 0, len(hits))
	seen := map[uuid.UUID]bool{}
	for _, h := range hits {
		if !seen[h.NoteId] {
			seen[h.NoteId] = true
			noteIds = append(noteIds, h.NoteId)
		}
	}

	notes, err := uow.NoteRepository().FindAll(ctx, specification.ByIDs{IDs: noteIds})
	if err != nil {
		return nil, err
	}
	titles := make(map[uuid.UUID]string, len(notes))
	for _, n := range notes {
		titles[n.Id] = n.Title
	}

	res := make([]*dto.SemanticSearchResponse, len(hits))
	for i, h := range hits {
		res[i] = &dto.SemanticSearchResponse{
			NoteId:     h.NoteId,
			Title:      titles[h.NoteId],
			Snippet:    h.Document,
			ChunkIndex: h.ChunkIndex,
			Distance:   h.Distance,
		}
	}
	return res, nil
}

// requestEmbedding enqueues a background re-embed; failures are logged, never
// surfaced, because the note write itself already succeeded.
func (s *noteService) requestEmbedding(ctx context.Context, noteId uuid.UUID) {
	payload, err := json.Marshal(dto.PublishEmbedNoteMessage{NoteId: noteId})
	if err != nil {
		s.log.Error("note", "Failed to marshal embed message", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Error("note", "Failed to publish embed message", map[string]interface{}{
			"note_id": noteId.String(),
			"error":   err.Error(),
		})
	}
}

func noteToResponse(n *entity.Note) *dto.ShowNoteResponse {
	return &dto.ShowNoteResponse{
		Id:          n.Id,
		Title:       n.Title,
		Content:     n.Content,
		WordCount:   n.WordCount,
		ReadingTime: n.ReadingTime,
		NotebookId:  n.NotebookId,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}
