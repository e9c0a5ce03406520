package service

import (
	"context"
	"fmt"
	"time"

	"ai-noteflow-be/internal/dto"
	"ai-noteflow-be/internal/entity"
	"ai-noteflow-be/internal/repository/specification"
	"ai-noteflow-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IAttachmentService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateAttachmentRequest) (*dto.AttachmentResponse, error)
	ListByNote(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) ([]*dto.AttachmentResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type attachmentService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewAttachmentService(uowFactory unitofwork.RepositoryFactory) IAttachmentService {
	return &attachmentService{uowFactory: uowFactory}
}

func (s *attachmentService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateAttachmentRequest) (*dto.AttachmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: req.NoteId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, fmt.Errorf("note %s not found", req.NoteId)
	}

	attachment := entity.Attachment{
		Id:        uuid.New(),
		NoteId:    req.NoteId,
		UserId:    userId,
		FileName:  req.FileName,
		MimeType:  req.MimeType,
		SizeBytes: int64(len(req.Content)),
		Content:   req.Content,
		Metadata:  req.Metadata,
		CreatedAt: time.Now(),
	}
	if err := uow.AttachmentRepository().Create(ctx, &attachment); err != nil {
		return nil, err
	}
	return attachmentToResponse(&attachment), nil
}

func (s *attachmentService) ListByNote(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) ([]*dto.AttachmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	attachments, err := uow.AttachmentRepository().FindAll(ctx,
		specification.ByNoteID{NoteID: noteId},
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.AttachmentResponse, len(attachments))
	for i, a := range attachments {
		res[i] = attachmentToResponse(a)
	}
	return res, nil
}

func (s *attachmentService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	attachment, err := uow.AttachmentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return err
	}
	if attachment == nil {
		return fmt.Errorf("attachment %s not found", id)
	}
	return uow.AttachmentRepository().Delete(ctx, id)
}

func attachmentToResponse(a *entity.Attachment) *dto.AttachmentResponse {
	return &dto.AttachmentResponse{
		Id:        a.Id,
		NoteId:    a.NoteId,
		FileName:  a.FileName,
		MimeType:  a.MimeType,
		SizeBytes: a.SizeBytes,
		Metadata:  a.Metadata,
		CreatedAt: a.CreatedAt,
	}
}
