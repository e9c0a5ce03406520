package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ai-noteflow-be/internal/dto"
	"ai-noteflow-be/internal/entity"
	"ai-noteflow-be/internal/repository/contract"
	"ai-noteflow-be/internal/repository/specification"
	"ai-noteflow-be/internal/repository/unitofwork"
	"ai-noteflow-be/pkg/completion"
	"ai-noteflow-be/pkg/featureflag"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fakes ---

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type staticFlagSource struct {
	values map[string]string
}

func (s *staticFlagSource) Lookup(_ context.Context, key string) (string, error) {
	return s.values[key], nil
}

type fakeNoteRepo struct {
	note    *entity.Note
	updated *entity.Note
}

func (r *fakeNoteRepo) Create(context.Context, *entity.Note) error { return nil }
func (r *fakeNoteRepo) Update(_ context.Context, note *entity.Note) error {
	r.updated = note
	return nil
}
func (r *fakeNoteRepo) Delete(context.Context, uuid.UUID) error { return nil }
func (r *fakeNoteRepo) FindOne(context.Context, ...specification.Specification) (*entity.Note, error) {
	return r.note, nil
}
func (r *fakeNoteRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Note, error) {
	return nil, nil
}
func (r *fakeNoteRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeAttachmentRepo struct {
	attachments []*entity.Attachment
}

func (r *fakeAttachmentRepo) Create(context.Context, *entity.Attachment) error     { return nil }
func (r *fakeAttachmentRepo) Delete(context.Context, uuid.UUID) error              { return nil }
func (r *fakeAttachmentRepo) DeleteByNoteId(context.Context, uuid.UUID) error      { return nil }
func (r *fakeAttachmentRepo) FindOne(context.Context, ...specification.Specification) (*entity.Attachment, error) {
	return nil, nil
}
func (r *fakeAttachmentRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Attachment, error) {
	return r.attachments, nil
}

type fakeUnitOfWork struct {
	notes       *fakeNoteRepo
	attachments *fakeAttachmentRepo
}

func (u *fakeUnitOfWork) Begin(context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error               { return nil }
func (u *fakeUnitOfWork) Rollback() error             { return nil }

func (u *fakeUnitOfWork) NotebookRepository() contract.NotebookRepository           { return nil }
func (u *fakeUnitOfWork) NoteRepository() contract.NoteRepository                   { return u.notes }
func (u *fakeUnitOfWork) NoteEmbeddingRepository() contract.NoteEmbeddingRepository { return nil }
func (u *fakeUnitOfWork) AttachmentRepository() contract.AttachmentRepository       { return u.attachments }
func (u *fakeUnitOfWork) ChatSessionRepository() contract.ChatSessionRepository     { return nil }
func (u *fakeUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository     { return nil }
func (u *fakeUnitOfWork) AiConfigRepository() contract.AiConfigRepository           { return nil }

type fakeUowFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeUowFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

type recordingPublisher struct {
	payloads [][]byte
}

func (p *recordingPublisher) Publish(_ context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

// fakeCompletionServer streams the given deltas as SSE chunks.
func fakeCompletionServer(t *testing.T, deltas []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		for _, d := range deltas {
			chunk := `{"choices":[{"delta":{"content":` + jsonString(d) + `}}]}`
			_, _ = w.Write([]byte("data: " + chunk + "\n\n"))
		}
		_, _ = w.Write([]byte("data: [DONE]\n\n"))
	}))
}

func jsonString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}

func newTestEnhanceService(srvURL string, uow *fakeUnitOfWork, pub IPublisherService, flagValues map[string]string) IEnhanceService {
	flags := featureflag.NewCache(&staticFlagSource{values: flagValues}, time.Minute, FlagFallbacks())
	return NewEnhanceService(
		&fakeUowFactory{uow: uow},
		completion.NewClient(srvURL, "", "test-model"),
		flags,
		nil,
		pub,
		nil,
		noopLogger{},
	)
}

// --- Tests ---

func TestEnhanceGenerateMode(t *testing.T) {
	noteId := uuid.New()
	userId := uuid.New()
	notes := &fakeNoteRepo{note: &entity.Note{
		Id:      noteId,
		Title:   "Old Title",
		Content: "old draft text",
		UserId:  userId,
	}}
	uow := &fakeUnitOfWork{notes: notes, attachments: &fakeAttachmentRepo{}}
	pub := &recordingPublisher{}

	srv := fakeCompletionServer(t, []string{
		"TITLE: Meeting",
		" Notes\n",
		"# Agenda\n\n",
		"Discuss **roadmap**",
	})
	defer srv.Close()

	svc := newTestEnhanceService(srv.URL, uow, pub, nil)

	var emitted []dto.EnhanceStreamEvent
	err := svc.Enhance(context.Background(), userId, noteId, &dto.EnhanceNoteRequest{
		Prompt: "Summarize the meeting",
	}, func(event dto.EnhanceStreamEvent) error {
		emitted = append(emitted, event)
		return nil
	})
	require.NoError(t, err)

	// Title events fire as soon as the marker line resolves, and again when it
	// grows.
	var titles []string
	for _, e := range emitted {
		if e.Type == dto.EnhanceEventTitle {
			titles = append(titles, e.Title)
		}
	}
	assert.Equal(t, []string{"Meeting", "Meeting Notes"}, titles)

	last := emitted[len(emitted)-1]
	assert.Equal(t, dto.EnhanceEventDone, last.Type)
	assert.Equal(t, "Meeting Notes", last.Title)
	assert.Contains(t, last.HTML, "<h1>Agenda</h1>")
	assert.Contains(t, last.HTML, "<strong>roadmap</strong>")

	require.NotNil(t, notes.updated)
	assert.Equal(t, "Meeting Notes", notes.updated.Title)
	assert.Equal(t, "# Agenda\n\nDiscuss **roadmap**", notes.updated.Content)
	assert.NotContains(t, notes.updated.Content, "TITLE:")
	assert.Equal(t, 4, notes.updated.WordCount)
	assert.Equal(t, 1, notes.updated.ReadingTime)

	// A re-embed job is queued for the changed note.
	require.Len(t, pub.payloads, 1)
	assert.Contains(t, string(pub.payloads[0]), noteId.String())
}

func TestEnhanceEditModeReplacesSelectionOnly(t *testing.T) {
	noteId := uuid.New()
	userId := uuid.New()
	notes := &fakeNoteRepo{note: &entity.Note{
		Id:      noteId,
		Title:   "Greetings",
		Content: "Hello cruel world",
		UserId:  userId,
	}}
	uow := &fakeUnitOfWork{notes: notes, attachments: &fakeAttachmentRepo{}}
	pub := &recordingPublisher{}

	srv := fakeCompletionServer(t, []string{"kind"})
	defer srv.Close()

	svc := newTestEnhanceService(srv.URL, uow, pub, nil)

	err := svc.Enhance(context.Background(), userId, noteId, &dto.EnhanceNoteRequest{
		Prompt:    "Make it nicer",
		Selection: &dto.SelectionRange{Text: "cruel", From: 6, To: 11},
	}, func(dto.EnhanceStreamEvent) error { return nil })
	require.NoError(t, err)

	require.NotNil(t, notes.updated)
	assert.Equal(t, "Hello kind world", notes.updated.Content)
	// No title marker in edit mode; the existing title stays.
	assert.Equal(t, "Greetings", notes.updated.Title)
}

func TestEnhanceFeatureDisabled(t *testing.T) {
	uow := &fakeUnitOfWork{notes: &fakeNoteRepo{}, attachments: &fakeAttachmentRepo{}}
	svc := newTestEnhanceService("http://unused", uow, &recordingPublisher{}, map[string]string{
		entity.AiConfigKeyEnhanceEnabled: "false",
	})

	err := svc.Enhance(context.Background(), uuid.New(), uuid.New(), &dto.EnhanceNoteRequest{
		Prompt: "anything",
	}, func(dto.EnhanceStreamEvent) error { return nil })
	assert.ErrorIs(t, err, ErrFeatureDisabled)
}

func TestEnhanceBusyNote(t *testing.T) {
	noteId := uuid.New()
	uow := &fakeUnitOfWork{notes: &fakeNoteRepo{}, attachments: &fakeAttachmentRepo{}}
	svc := newTestEnhanceService("http://unused", uow, &recordingPublisher{}, nil)

	impl := svc.(*enhanceService)
	impl.lockFor(noteId).Lock()
	defer impl.lockFor(noteId).Unlock()

	err := svc.Enhance(context.Background(), uuid.New(), noteId, &dto.EnhanceNoteRequest{
		Prompt: "anything",
	}, func(dto.EnhanceStreamEvent) error { return nil })
	assert.ErrorIs(t, err, ErrEnhanceBusy)
}
