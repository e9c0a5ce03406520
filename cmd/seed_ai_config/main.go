package main

import (
	"log"
	"os"
	"time"

	"ai-noteflow-be/internal/entity"
	"ai-noteflow-be/internal/model"
	"ai-noteflow-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Starting AI Configuration Seeder...")

	seedConfigurations(db)

	color.Green("✅ Success: AI Configuration seeding completed.")
}

func seedConfigurations(db *gorm.DB) {
	configurations := []model.AiConfiguration{
		{
			Id:          uuid.New(),
			Key:         entity.AiConfigKeyEnhanceEnabled,
			Value:       "true",
			ValueType:   entity.AiConfigValueTypeBoolean,
			Description: "Enable the note enhancement streaming pipeline",
			Category:    entity.AiConfigCategoryFeature,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
		{
			Id:          uuid.New(),
			Key:         entity.AiConfigKeyTranscriptEnabled,
			Value:       "true",
			ValueType:   entity.AiConfigValueTypeBoolean,
			Description: "Enable YouTube transcript extraction",
			Category:    entity.AiConfigCategoryFeature,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
		{
			Id:          uuid.New(),
			Key:         entity.AiConfigKeyTranscribeEnabled,
			Value:       "true",
			ValueType:   entity.AiConfigValueTypeBoolean,
			Description: "Enable audio transcription uploads",
			Category:    entity.AiConfigCategoryFeature,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
		{
			Id:          uuid.New(),
			Key:         entity.AiConfigKeyLLMTemperature,
			Value:       "0.7",
			ValueType:   entity.AiConfigValueTypeNumber,
			Description: "LLM temperature setting for response creativity (0.0 to 1.0)",
			Category:    entity.AiConfigCategoryLLM,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
	}

	for _, config := range configurations {
		// Insert if not exists, skip if exists. Operator overrides survive reseeds.
		result := db.Where("key = ?", config.Key).FirstOrCreate(&config)
		if result.Error != nil {
			color.Red("Warn: Failed to seed config '%s': %v", config.Key, result.Error)
			continue
		}
		if result.RowsAffected > 0 {
			color.Green("Seeded: %s = %s", config.Key, config.Value)
		} else {
			color.Yellow("Exists: %s (skipped)", config.Key)
		}
	}
}
