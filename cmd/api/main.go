package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"vetfile-api/internal/adapter/gemini"
	"vetfile-api/internal/adapter/mockai"
	"vetfile-api/internal/adapter/openai"
	memoryrepo "vetfile-api/internal/adapter/repository/memory"
	postgresrepo "vetfile-api/internal/adapter/repository/postgres"
	"vetfile-api/internal/delivery/http/handler"
	"vetfile-api/internal/domain/repository"
	"vetfile-api/internal/usecase/claims"
	"vetfile-api/pkg/config"
	"vetfile-api/pkg/database"

	"github.com/gofiber/fiber/v2"

	// log
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.Load()

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("failed to create upload directory: %v", err)
	}

	// initialize repositories
	var uploadRepo repository.UploadRepository
	var analysisRepo repository.AnalysisRepository

	switch cfg.StorageBackend {
	case "postgres":
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()
		log.Println("connected to database")
		uploadRepo = postgresrepo.NewUploadRepository(db)
		analysisRepo = postgresrepo.NewAnalysisRepository(db)
	default:
		uploadRepo = memoryrepo.NewUploadRepository()
		analysisRepo = memoryrepo.NewAnalysisRepository()
	}

	// initialize analysis provider
	var analyzer claims.Analyzer
	switch {
	case cfg.UseMockAnalysis:
		log.Println("using mock analysis data")
		analyzer = mockai.NewAnalyzer()
	case cfg.Provider == "gemini":
		ga, err := gemini.NewAnalyzer(context.Background(), cfg.GeminiKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("failed to initialize gemini analyzer: %v", err)
		}
		defer ga.Close()
		analyzer = ga
	default:
		analyzer = openai.NewAnalyzer(cfg.OpenAIKey, cfg.OpenAIChatModel)
	}

	// initialize usecase
	tracker := claims.NewTracker(uploadRepo, analysisRepo, analyzer, cfg.AnalysisTimeout)

	// initialize handler
	docHandler := handler.NewDocumentHandler(tracker, cfg.UploadDir, cfg.MaxUploadFiles, cfg.MaxFileSize)

	// initialize fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.MaxFileSize)*cfg.MaxUploadFiles + 1024*1024,
	})

	// middleware for log request and response in terminal
	app.Use(logger.New())

	app.Get("/health", docHandler.Health)

	// document routes
	docs := app.Group("/api/documents")
	docs.Post("/upload", docHandler.Upload)
	docs.Post("/analyze/:uploadId", docHandler.Analyze)
	docs.Get("/analysis/:uploadId", docHandler.GetAnalysis)
	docs.Post("/generate-form/:uploadId", docHandler.GenerateForm)

	// Start server
	log.Printf("🚀 Server starting on port %d", cfg.Port)
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
