package main

import (
	"log"
	"os"

	"github.com/besmartbusiness/lawyer-app/internal/model"
	"github.com/besmartbusiness/lawyer-app/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Starting GORM migration...")

	// Extensions first; AutoMigrate cannot create them.
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Yellow("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	color.Cyan("Running AutoMigrate...")

	models := []interface{}{
		&model.RetrievalEntry{},
		&model.Document{},
		&model.DocumentEmbedding{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		color.Red("Error: AutoMigrate failed: %v", err)
		os.Exit(1)
	}

	// Searchable view joining documents with their embedding chunks.
	postMigrationSQL := []string{
		`CREATE OR REPLACE VIEW semantic_searchable_documents AS
		 SELECT d.id AS document_id, d.title, d.content, de.embedding_value AS embedding, d.owner_id
		 FROM documents d JOIN document_embeddings de ON d.id = de.document_id
		 WHERE d.deleted_at IS NULL;`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Yellow("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	color.Green("Success: Database migration completed.")
}
