// Seeds the medical knowledge base from a directory of markdown files.
// Each file becomes one document, embedded at insert time.
//
// Usage: go run ./cmd/seed [directory]
package main

import (
	"context"
	"log"
	"os"

	"healthlync-be/internal/config"
	"healthlync-be/pkg/database"
	"healthlync-be/pkg/embedding"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()

	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	provider, err := embedding.NewOpenAIProvider(
		cfg.Keys.OpenAI,
		"",
		cfg.Ai.EmbeddingModel,
		cfg.Ai.EmbeddingDimensions,
	)
	if err != nil {
		log.Fatalf("Error: Failed to initialize embedding provider: %v", err)
	}

	directory := "./knowledge"
	if len(os.Args) > 1 {
		directory = os.Args[1]
	}

	seeder := NewKnowledgeSeeder(db, provider)

	color.Cyan("Seeding medical knowledge base from %s...", directory)

	added, skipped, err := seeder.LoadDirectory(context.Background(), directory)
	if err != nil {
		color.Red("Seeding failed: %v", err)
		os.Exit(1)
	}

	color.Green("✅ Done: %d documents added, %d skipped", added, skipped)
}
