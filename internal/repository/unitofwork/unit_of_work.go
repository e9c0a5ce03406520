package unitofwork

import (
	"context"

	"ai-noteflow-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	NotebookRepository() contract.NotebookRepository
	NoteRepository() contract.NoteRepository
	NoteEmbeddingRepository() contract.NoteEmbeddingRepository
	AttachmentRepository() contract.AttachmentRepository

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	AiConfigRepository() contract.AiConfigRepository
}
