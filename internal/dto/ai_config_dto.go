package dto

import "time"

type SetAiConfigRequest struct {
	Key       string `json:"key" validate:"required"`
	Value     string `json:"value" validate:"required"`
	ValueType string `json:"value_type" validate:"required,oneof=string number boolean json"`
	Category  string `json:"category" validate:"required,oneof=feature llm general"`
}

type AiConfigResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	ValueType string    `json:"value_type"`
	Category  string    `json:"category"`
	UpdatedAt time.Time `json:"updated_at"`
}
