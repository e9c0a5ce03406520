package dto

type ExtractTranscriptRequest struct {
	URL string `json:"url" validate:"required"`
}

type ExtractTranscriptResponse struct {
	VideoId    string `json:"video_id"`
	Transcript string `json:"transcript"`
	Method     string `json:"method"`
}

type TranscribeAudioResponse struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}
