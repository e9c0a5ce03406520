package service

import (
	"context"
	"io"

	"ai-noteflow-be/internal/dto"
	"ai-noteflow-be/internal/entity"
	"ai-noteflow-be/pkg/featureflag"
	"ai-noteflow-be/pkg/transcription"
)

type ITranscribeService interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader, language string) (*dto.TranscribeAudioResponse, error)
}

type transcribeService struct {
	client *transcription.Client
	flags  *featureflag.Cache
}

func NewTranscribeService(client *transcription.Client, flags *featureflag.Cache) ITranscribeService {
	return &transcribeService{
		client: client,
		flags:  flags,
	}
}

func (s *transcribeService) Transcribe(ctx context.Context, filename string, audio io.Reader, language string) (*dto.TranscribeAudioResponse, error) {
	if s.flags.Get(ctx, entity.AiConfigKeyTranscribeEnabled) == "false" {
		return nil, ErrFeatureDisabled
	}

	res, err := s.client.Transcribe(ctx, filename, audio, language)
	if err != nil {
		return nil, err
	}
	return &dto.TranscribeAudioResponse{
		Text:     res.Text,
		Language: res.Language,
	}, nil
}
