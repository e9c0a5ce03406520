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

type INotebookService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNotebookRequest) (*dto.CreateNotebookResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.ShowNotebookResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNotebookRequest) error
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type notebookService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewNotebookService(uowFactory unitofwork.RepositoryFactory) INotebookService {
	return &notebookService{uowFactory: uowFactory}
}

func (s *notebookService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNotebookRequest) (*dto.CreateNotebookResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notebook := entity.Notebook{
		Id:        uuid.New(),
		Name:      req.Name,
		UserId:    userId,
		CreatedAt: time.Now(),
	}
	if err := uow.NotebookRepository().Create(ctx, &notebook); err != nil {
		return nil, err
	}
	return &dto.CreateNotebookResponse{Id: notebook.Id}, nil
}

func (s *notebookService) List(ctx context.Context, userId uuid.UUID) ([]*dto.ShowNotebookResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notebooks, err := uow.NotebookRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ShowNotebookResponse, len(notebooks))
	for i, nb := range notebooks {
		res[i] = &dto.ShowNotebookResponse{
			Id:        nb.Id,
			Name:      nb.Name,
			CreatedAt: nb.CreatedAt,
			UpdatedAt: nb.UpdatedAt,
		}
	}
	return res, nil
}

func (s *notebookService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNotebookRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return err
	}
	if notebook == nil {
		return fmt.Errorf("notebook %s not found", req.Id)
	}

	notebook.Name = req.Name
	return uow.NotebookRepository().Update(ctx, notebook)
}

func (s *notebookService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return err
	}
	if notebook == nil {
		return fmt.Errorf("notebook %s not found", id)
	}

	// Notes in the notebook survive; they keep their notebook id so a restore
	// of the notebook restores the grouping.
	return uow.NotebookRepository().Delete(ctx, id)
}
