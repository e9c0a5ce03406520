package service

import (
	"context"
	"time"

	"ai-noteflow-be/internal/entity"
	"ai-noteflow-be/internal/repository/specification"
	"ai-noteflow-be/internal/repository/unitofwork"
	"ai-noteflow-be/pkg/featureflag"

	"github.com/google/uuid"
)

// aiConfigSource adapts the configuration table to the feature-flag cache.
type aiConfigSource struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewAiConfigSource(uowFactory unitofwork.RepositoryFactory) featureflag.Source {
	return &aiConfigSource{uowFactory: uowFactory}
}

func (s *aiConfigSource) Lookup(ctx context.Context, key string) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	config, err := uow.AiConfigRepository().FindOne(ctx, specification.ByConfigKey{Key: key})
	if err != nil {
		return "", err
	}
	if config == nil {
		return "", nil
	}
	return config.Value, nil
}

// FlagFallbacks are the compiled-in defaults used when the database has no
// value for a flag. Every pipeline feature defaults to enabled.
func FlagFallbacks() map[string]string {
	return map[string]string{
		entity.AiConfigKeyEnhanceEnabled:    "true",
		entity.AiConfigKeyTranscriptEnabled: "true",
		entity.AiConfigKeyTranscribeEnabled: "true",
	}
}

type IAiConfigService interface {
	ListByCategory(ctx context.Context, category string) ([]*entity.AiConfiguration, error)
	Set(ctx context.Context, key, value, valueType, category string) error
}

type aiConfigService struct {
	uowFactory unitofwork.RepositoryFactory
	flags      *featureflag.Cache
}

func NewAiConfigService(uowFactory unitofwork.RepositoryFactory, flags *featureflag.Cache) IAiConfigService {
	return &aiConfigService{
		uowFactory: uowFactory,
		flags:      flags,
	}
}

func (s *aiConfigService) ListByCategory(ctx context.Context, category string) ([]*entity.AiConfiguration, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.AiConfigRepository().FindAll(ctx, specification.ByCategory{Category: category})
}

func (s *aiConfigService) Set(ctx context.Context, key, value, valueType, category string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	config := entity.AiConfiguration{
		Id:        uuid.New(),
		Key:       key,
		Value:     value,
		ValueType: valueType,
		Category:  category,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := uow.AiConfigRepository().Upsert(ctx, &config); err != nil {
		return err
	}
	// Cached values would serve stale flags until TTL expiry otherwise.
	s.flags.Invalidate()
	return nil
}
