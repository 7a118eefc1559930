package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/mjtoys/docgen/internal/app"
	"github.com/mjtoys/docgen/internal/documents"
	"github.com/mjtoys/docgen/internal/platform/db"
	"github.com/mjtoys/docgen/jobs"
	"github.com/mjtoys/docgen/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	renderPDF := &jobs.RenderPDFHandler{
		Repo:      documents.NewRepository(pool),
		Converter: report.NewClient(cfg.GotenbergURL),
		Logger:    logger,
	}

	worker := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		RenderPDF: renderPDF,
	})

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
