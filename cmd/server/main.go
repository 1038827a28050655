package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/chunkr"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/config"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/email/noop"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/email/ses"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/handler"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/port"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/repository/postgres"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/router"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/service"
	s3storage "github.com/codebuster009/chunkr-pdf-extraction/internal/storage/s3"
)

// @title Airfreight Rate Extraction API
// @version 0.1.0
// @description Backend service that extracts structured airfreight rate data from PDF documents via the Chunkr legacy API.
// @BasePath /api/v1
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	jobRepo := postgres.NewExtractionJobRepo(db)
	sheetRepo := postgres.NewRateSheetRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	var sender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		sender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		sender = noop.NewNoopSender()
	}

	// Initialize services
	extractor := chunkr.NewClient(&cfg.Chunkr)
	authSvc := service.NewAuthService(cfg.Auth)
	extSvc := service.NewExtractionService(jobRepo, sheetRepo, extractor, s3Client, sender, &cfg.S3, &cfg.Email, nil)
	sheetSvc := service.NewSheetService(sheetRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	processH := handler.NewProcessHandler(extSvc)
	jobH := handler.NewJobHandler(extSvc)
	sheetH := handler.NewSheetHandler(sheetSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, authSvc, authH, processH, jobH, sheetH, healthH)

	// Start the extraction queue worker in the background. It drains
	// in-flight jobs on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker := service.NewExtractQueueWorker(jobRepo, extSvc, service.ExtractQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		MaxRetries:   cfg.Queue.MaxRetries,
		Concurrency:  cfg.Queue.Concurrency,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	stop()
	<-workerDone
	return nil
}
