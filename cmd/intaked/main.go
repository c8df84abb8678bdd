package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/hireai/resume-intake/internal/async"
	"github.com/hireai/resume-intake/internal/common"
	"github.com/hireai/resume-intake/internal/export"
	"github.com/hireai/resume-intake/internal/extract"
	"github.com/hireai/resume-intake/internal/heuristic"
	"github.com/hireai/resume-intake/internal/ingest"
	"github.com/hireai/resume-intake/internal/llm/openai"
	"github.com/hireai/resume-intake/internal/pipeline"
	"github.com/hireai/resume-intake/internal/repository"
	"github.com/hireai/resume-intake/internal/server"
	"github.com/hireai/resume-intake/internal/storage"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	if err := godotenv.Load(); err == nil {
		log.Info("loaded .env file")
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := repository.Open(ctx, repository.Config{
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, log)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer repository.Close(pool, log)

	if err := repository.HealthCheck(ctx, pool, 3*time.Second, log); err != nil {
		log.Error("database health check failed", "error", err)
		os.Exit(1)
	}

	uploads, err := repository.NewUploadRepository(ctx, pool, log)
	if err != nil {
		log.Error("upload repository init failed", "error", err)
		os.Exit(1)
	}
	candidates, err := repository.NewCandidateRepository(ctx, pool, log)
	if err != nil {
		log.Error("candidate repository init failed", "error", err)
		os.Exit(1)
	}

	store := storage.NewFSStorage(cfg.Ingest.BucketDir)
	fields := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, log)

	pipe := pipeline.New(pipeline.Config{
		MaxTextLen:       cfg.Pipeline.MaxTextLen,
		MinTextLen:       cfg.Pipeline.MinTextLen,
		TruncateLookback: cfg.Pipeline.TruncateLookback,
	}, log, uploads, candidates, store, extract.NewExtractor(), fields, heuristic.NewExtractor())

	queue := async.NewProcessorQueue(pipe, log,
		async.WithWorkers(cfg.Ingest.Workers),
		async.WithQueueSize(cfg.Ingest.QueueSize),
		async.WithRunTimeout(cfg.Ingest.RunTimeout),
	)

	if cfg.Ingest.WatchDir != "" {
		watchUser, err := uuid.Parse(cfg.Ingest.WatchUserID)
		if err != nil {
			log.Error("WATCH_USER_ID must be a UUID when WATCH_DIR is set", "error", err)
			os.Exit(1)
		}
		paths, watchErrs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Roots:       []string{cfg.Ingest.WatchDir},
			InitialScan: true,
			Debounce:    cfg.Ingest.Debounce,
		})
		if err != nil {
			log.Error("watcher start failed", "error", err)
			os.Exit(1)
		}
		svc := ingest.NewService(uploads, queue, cfg.Ingest.BucketDir, watchUser, log)
		go svc.Consume(ctx, paths)
		go func() {
			for werr := range watchErrs {
				log.Error("watcher error", "error", werr)
			}
		}()
		log.Info("watching drop directory", "dir", cfg.Ingest.WatchDir)
	}

	exporter := export.NewService(candidates, log)
	srv := server.New(pipe, candidates, exporter, log)

	go func() {
		if err := srv.Listen(cfg.Server.HTTPAddr); err != nil {
			log.Error("http server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	if err := srv.Shutdown(); err != nil {
		log.Error("http shutdown failed", "error", err)
	}
	drainCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	queue.Shutdown(drainCtx)
	log.Info("stopped")
}
