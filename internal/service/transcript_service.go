package service

import (
	"context"
	"errors"

	"ai-noteflow-be/internal/dto"
	"ai-noteflow-be/internal/entity"
	"ai-noteflow-be/internal/pkg/logger"
	"ai-noteflow-be/pkg/featureflag"
	"ai-noteflow-be/pkg/transcript"
)

// ErrFeatureDisabled is returned when a feature flag turns an operation off.
var ErrFeatureDisabled = errors.New("feature is disabled")

type ITranscriptService interface {
	Extract(ctx context.Context, req *dto.ExtractTranscriptRequest) (*dto.ExtractTranscriptResponse, error)
}

type transcriptService struct {
	extractor *transcript.Extractor
	flags     *featureflag.Cache
	log       logger.ILogger
}

func NewTranscriptService(extractor *transcript.Extractor, flags *featureflag.Cache, log logger.ILogger) ITranscriptService {
	return &transcriptService{
		extractor: extractor,
		flags:     flags,
		log:       log,
	}
}

func (s *transcriptService) Extract(ctx context.Context, req *dto.ExtractTranscriptRequest) (*dto.ExtractTranscriptResponse, error) {
	if s.flags.Get(ctx, entity.AiConfigKeyTranscriptEnabled) == "false" {
		return nil, ErrFeatureDisabled
	}

	res, err := s.extractor.Extract(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	if res.Method == transcript.MethodMetadata {
		s.log.Info("transcript", "No captions found, served metadata summary", map[string]interface{}{
			"video_id": res.VideoID,
		})
	}

	return &dto.ExtractTranscriptResponse{
		VideoId:    res.VideoID,
		Transcript: res.Text,
		Method:     res.Method,
	}, nil
}
