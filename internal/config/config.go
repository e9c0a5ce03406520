package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Ai         AIConfig
	Transcript TranscriptConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JWTSecret          string
	BodyLimitMB        int
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	BaseURL            string // OpenAI-compatible API base
	APIKey             string
	CompletionModel    string
	EmbeddingModel     string
	TranscriptionModel string
}

type TranscriptConfig struct {
	Languages []string // caption language preference order
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
			BodyLimitMB:        getEnvAsInt("BODY_LIMIT_MB", 25),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			BaseURL:            getEnv("AI_BASE_URL", "https://api.openai.com"),
			APIKey:             getEnv("AI_API_KEY", ""),
			CompletionModel:    getEnv("AI_COMPLETION_MODEL", "gpt-4o-mini"),
			EmbeddingModel:     getEnv("AI_EMBEDDING_MODEL", "text-embedding-3-small"),
			TranscriptionModel: getEnv("AI_TRANSCRIPTION_MODEL", "whisper-1"),
		},
		Transcript: TranscriptConfig{
			Languages: getEnvAsList("TRANSCRIPT_LANGUAGES", "en,en-US,en-GB"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
