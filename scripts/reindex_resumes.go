package main

import (
	"context"
	"log"

	"careerforge/resume-parser/internal/config"
	"careerforge/resume-parser/internal/repositories"
	"careerforge/resume-parser/internal/services"
)

func main() {
	log.Println("🚀 Starting resume reindex...")

	// Load configuration
	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	resumeRepo := repositories.NewResumeRepository(db)

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Parser.RequestTimeout)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	indexService, err := services.NewResumeIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := indexService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	ctx := context.Background()

	resumes, err := resumeRepo.All(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to list resumes: %v", err)
	}

	log.Printf("📋 Found %d resumes to reindex\n", len(resumes))

	indexed := 0
	for _, resume := range resumes {
		summary := services.IndexText(resume.ToResumeData())
		if summary == "" {
			log.Printf("⚠️  Skipping user %d: nothing to index\n", resume.UserID)
			continue
		}

		embedding, err := geminiService.GenerateEmbedding(ctx, summary)
		if err != nil {
			log.Printf("❌ Failed to embed resume for user %d: %v\n", resume.UserID, err)
			continue
		}

		if err := indexService.UpsertResume(ctx, resume.UserID, resume.FileName, summary, embedding); err != nil {
			log.Printf("❌ Failed to upsert resume for user %d: %v\n", resume.UserID, err)
			continue
		}

		indexed++
	}

	log.Printf("✅ Reindex completed: %d/%d resumes indexed\n", indexed, len(resumes))
}
