package main

import (
	"log"
	"os"

	"ai-noteflow-be/internal/model"
	"ai-noteflow-be/pkg/database"

	"github.com/joho/godotenv"
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

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions (Things GORM AutoMigrate doesn't do)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.Notebook{},
		&model.Note{},
		&model.NoteEmbedding{},
		&model.Attachment{},
		&model.ChatSession{},
		&model.ChatMessage{},
		&model.AiConfiguration{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: Views
	log.Println("Step 3: Creating Views...")

	postMigrationSQL := []string{
		`CREATE OR REPLACE VIEW semantic_searchable_notes AS
		 SELECT n.id AS note_id, n.title, n.content, ne.embedding_value AS embedding, n.user_id
		 FROM notes n JOIN note_embeddings ne ON n.id = ne.note_id
		 WHERE n.deleted_at IS NULL;`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
