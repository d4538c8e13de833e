package main

import (
	"context"
	"log"
	"os"
	"strings"

	"rezoom/feedback-api/internal/config"
	"rezoom/feedback-api/internal/repositories"
	"rezoom/feedback-api/internal/services"
)

// Rebuilds the similar-feedback index from every stored feedback. Run after
// switching embedding models or wiping the Qdrant collection.
func main() {
	log.Println("🚀 Starting feedback reindex...")

	cfg := config.Load()
	if cfg.Qdrant.URL == "" {
		log.Fatal("❌ QDRANT_URL is not set, nothing to index into")
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	feedbackRepo := repositories.NewFeedbackRepository(db)

	geminiService, err := services.NewGeminiService(
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Gemini.EmbedModel,
		nil,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	index, err := services.NewFeedbackIndex(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		cfg.Qdrant.VectorSize,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	ctx := context.Background()
	if err := index.InitCollection(ctx); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	ids, err := feedbackRepo.FindAllIDs()
	if err != nil {
		log.Fatalf("❌ Failed to list feedbacks: %v", err)
	}
	log.Printf("📋 Found %d feedbacks", len(ids))

	indexer := services.NewIndexer(feedbackRepo, geminiService, index)

	successCount := 0
	failCount := 0
	for i, id := range ids {
		if err := indexer.Index(ctx, id); err != nil {
			log.Printf("   ❌ %s: %v", id, err)
			failCount++
			continue
		}
		successCount++

		if (i+1)%20 == 0 || i == len(ids)-1 {
			log.Printf("   📊 Progress: %d/%d feedbacks", i+1, len(ids))
		}
	}

	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Reindex Summary:")
	log.Printf("   ✅ Indexed: %d feedbacks", successCount)
	log.Printf("   ❌ Failed: %d feedbacks", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some feedbacks failed to index. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All feedbacks indexed successfully!")
}
