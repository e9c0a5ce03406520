package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"ai-noteflow-be/internal/dto"
	"ai-noteflow-be/internal/entity"
	"ai-noteflow-be/internal/pkg/logger"
	"ai-noteflow-be/internal/repository/specification"
	"ai-noteflow-be/internal/repository/unitofwork"
	"ai-noteflow-be/pkg/completion"
	"ai-noteflow-be/pkg/editor"
	"ai-noteflow-be/pkg/events"
	"ai-noteflow-be/pkg/featureflag"
	"ai-noteflow-be/pkg/lexical"
	"ai-noteflow-be/pkg/markdown"
	pkgNats "ai-noteflow-be/pkg/nats"
	"ai-noteflow-be/pkg/prompt"
	"ai-noteflow-be/pkg/streaming"
	"ai-noteflow-be/pkg/transcript"

	"github.com/google/uuid"
)

// ErrEnhanceBusy is returned when an enhancement is already running for the
// same note.
var ErrEnhanceBusy = errors.New("an enhancement is already running for this note")

// readingWordsPerMinute feeds the persisted reading-time estimate.
const readingWordsPerMinute = 200

const generateSystemPrompt = `You are an expert note-taking assistant. Improve the user's note according to their instruction.
Respond in markdown. Start your response with a single line "TITLE: <short note title>" followed by the enhanced note body.
Never repeat the TITLE line inside the body.`

const editSystemPrompt = `You are an expert note-taking assistant. The user selected a part of their note; rewrite only that selection according to their instruction.
Respond in markdown with the replacement text only. Do not wrap the answer in explanations.`

// EmitFunc pushes one stream event to the connected client. A non-nil return
// aborts the pipeline; the client is gone.
type EmitFunc func(event dto.EnhanceStreamEvent) error

type IEnhanceService interface {
	Enhance(ctx context.Context, userId, noteId uuid.UUID, req *dto.EnhanceNoteRequest, emit EmitFunc) error
}

type enhanceService struct {
	uowFactory       unitofwork.RepositoryFactory
	ai               *completion.Client
	renderer         *markdown.Renderer
	flags            *featureflag.Cache
	extractor        *transcript.Extractor
	publisherService IPublisherService
	eventPublisher   *pkgNats.Publisher
	log              logger.ILogger

	// noteLocks serializes enhancements per note. Concurrent streams would
	// interleave writes into the same document.
	mu        sync.Mutex
	noteLocks map[uuid.UUID]*sync.Mutex
}

func NewEnhanceService(
	uowFactory unitofwork.RepositoryFactory,
	ai *completion.Client,
	flags *featureflag.Cache,
	extractor *transcript.Extractor,
	publisherService IPublisherService,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) IEnhanceService {
	return &enhanceService{
		uowFactory:       uowFactory,
		ai:               ai,
		renderer:         markdown.NewRenderer(),
		flags:            flags,
		extractor:        extractor,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
		noteLocks:        make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *enhanceService) Enhance(ctx context.Context, userId, noteId uuid.UUID, req *dto.EnhanceNoteRequest, emit EmitFunc) error {
	if s.flags.Get(ctx, entity.AiConfigKeyEnhanceEnabled) == "false" {
		return ErrFeatureDisabled
	}

	lock := s.lockFor(noteId)
	if !lock.TryLock() {
		return ErrEnhanceBusy
	}
	defer lock.Unlock()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: noteId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return fmt.Errorf("note %s not found", noteId)
	}

	doc := editor.NewDocument(lexical.ToMarkdown(note.Content))

	var selection *editor.SelectionRange
	if req.Selection != nil {
		sel := editor.SelectionRange{Text: req.Selection.Text, From: req.Selection.From, To: req.Selection.To}
		if err := sel.Validate(); err != nil {
			return err
		}
		// Re-read against the live document; the client's range may be stale.
		clamped := doc.Selection(sel.From, sel.To)
		selection = &clamped
	}

	messages, mode := s.buildMessages(ctx, uow, note, selection, req)

	stream, err := s.ai.StreamChat(ctx, messages)
	if err != nil {
		return err
	}
	defer stream.Close()

	reconciler := editor.NewReconciler(doc, selection)
	acc := streaming.NewAccumulator(mode)
	splitter := streaming.NewLineSplitter(stream)

	var title string

	for {
		line, err := splitter.Next()
		if errors.Is(err, streaming.ErrDone) {
			break
		}
		if err != nil {
			return fmt.Errorf("stream read failed: %w", err)
		}

		event, err := streaming.DecodeLine(line)
		if err != nil {
			s.log.Warn("enhance", "Skipping malformed stream record", map[string]interface{}{
				"note_id": noteId.String(),
				"error":   err.Error(),
			})
			continue
		}
		if event == nil {
			continue
		}
		if event.Done {
			break
		}
		if event.Delta == "" {
			continue
		}

		acc.Append(event.Delta)

		extracted, body := editor.ExtractTitle(acc.Markdown())
		if extracted != "" && extracted != title {
			title = extracted
			if err := emit(dto.EnhanceStreamEvent{Type: dto.EnhanceEventTitle, Title: title}); err != nil {
				return err
			}
		}

		// The document tracks markdown; HTML only travels to the client.
		reconciler.Write(body)
		html := s.renderer.Render(body)

		if err := emit(dto.EnhanceStreamEvent{Type: dto.EnhanceEventDelta, Delta: event.Delta, HTML: html}); err != nil {
			return err
		}
	}

	finalTitle, finalBody := editor.ExtractTitle(acc.Markdown())
	if finalTitle == "" {
		finalTitle = note.Title
	}
	reconciler.Write(finalBody)
	finalHTML := s.renderer.Render(finalBody)

	if err := s.persist(ctx, uow, note, finalTitle, finalBody, selection, doc); err != nil {
		return err
	}

	if err := emit(dto.EnhanceStreamEvent{Type: dto.EnhanceEventDone, Title: finalTitle, HTML: finalHTML}); err != nil {
		return err
	}

	s.notifyEnhanced(ctx, note)
	return nil
}

func (s *enhanceService) buildMessages(ctx context.Context, uow unitofwork.UnitOfWork, note *entity.Note, selection *editor.SelectionRange, req *dto.EnhanceNoteRequest) ([]completion.Message, streaming.Mode) {
	assembler := prompt.NewAssembler(lexical.ToMarkdown(note.Content))

	attachments, err := uow.AttachmentRepository().FindAll(ctx,
		specification.ByNoteID{NoteID: note.Id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		// Context enrichment is best-effort; the note body alone still makes a
		// valid prompt.
		s.log.Warn("enhance", "Failed to load attachments for prompt", map[string]interface{}{
			"note_id": note.Id.String(),
			"error":   err.Error(),
		})
	} else if len(attachments) > 0 {
		promptAttachments := make([]prompt.Attachment, len(attachments))
		for i, a := range attachments {
			promptAttachments[i] = prompt.Attachment{Name: a.FileName, Content: a.Content}
		}
		assembler.WithAttachments(promptAttachments)
	}

	if s.extractor != nil && len(req.VideoURLs) > 0 {
		var transcripts []prompt.Transcript
		for _, url := range req.VideoURLs {
			res, err := s.extractor.Extract(ctx, url)
			if err != nil {
				s.log.Warn("enhance", "Skipping video transcript", map[string]interface{}{
					"url":   url,
					"error": err.Error(),
				})
				continue
			}
			transcripts = append(transcripts, prompt.Transcript{VideoID: res.VideoID, Text: res.Text})
		}
		assembler.WithTranscripts(transcripts)
	}

	systemPrompt := generateSystemPrompt
	mode := streaming.ModeGenerate
	if selection != nil {
		assembler.WithSelection(selection)
		systemPrompt = editSystemPrompt
		mode = streaming.ModeEdit
	}

	var sb strings.Builder
	if assembled := assembler.Assemble(); assembled != "" {
		sb.WriteString(assembled)
		sb.WriteString("\n\n")
	}
	sb.WriteString(req.Prompt)

	return []completion.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: sb.String()},
	}, mode
}

// persist writes the reconciled document back. The extracted title goes to the
// title column only; the body never contains the marker line.
func (s *enhanceService) persist(ctx context.Context, uow unitofwork.UnitOfWork, note *entity.Note, title, body string, selection *editor.SelectionRange, doc *editor.Document) error {
	if selection != nil {
		note.Content = doc.Content()
	} else {
		note.Content = body
	}
	if title != "" {
		note.Title = title
	}

	words := len(strings.Fields(lexical.ToMarkdown(note.Content)))
	note.WordCount = words
	note.ReadingTime = (words + readingWordsPerMinute - 1) / readingWordsPerMinute

	return uow.NoteRepository().Update(ctx, note)
}

func (s *enhanceService) notifyEnhanced(ctx context.Context, note *entity.Note) {
	payload, err := json.Marshal(dto.PublishEmbedNoteMessage{NoteId: note.Id})
	if err != nil {
		s.log.Error("enhance", "Failed to marshal embed message", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Error("enhance", "Failed to publish embed message", map[string]interface{}{
			"note_id": note.Id.String(),
			"error":   err.Error(),
		})
	}

	if s.eventPublisher != nil {
		evt := events.NoteEnhanced(note.UserId, note.Id, note.Title, note.WordCount)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("enhance", "Failed to publish enhanced event", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (s *enhanceService) lockFor(noteId uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.noteLocks[noteId]
	if !ok {
		lock = &sync.Mutex{}
		s.noteLocks[noteId] = lock
	}
	return lock
}
