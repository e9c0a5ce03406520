package entity

import (
	"time"

	"github.com/google/uuid"
)

// AiConfiguration stores AI behavior settings as key-value pairs. Feature
// flags for the enhance pipeline live here under the "feature" category.
type AiConfiguration struct {
	Id          uuid.UUID
	Key         string
	Value       string
	ValueType   string // "string", "number", "boolean", "json"
	Description string
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const (
	AiConfigCategoryFeature = "feature"
	AiConfigCategoryLLM     = "llm"
	AiConfigCategoryGeneral = "general"
)

const (
	AiConfigValueTypeString  = "string"
	AiConfigValueTypeNumber  = "number"
	AiConfigValueTypeBoolean = "boolean"
	AiConfigValueTypeJSON    = "json"
)

const (
	AiConfigKeyEnhanceEnabled    = "feature_enhance_enabled"
	AiConfigKeyTranscriptEnabled = "feature_transcript_enabled"
	AiConfigKeyTranscribeEnabled = "feature_transcribe_enabled"
	AiConfigKeyLLMTemperature    = "llm_temperature"
)
