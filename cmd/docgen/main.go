package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/mjtoys/docgen/internal/app"
	"github.com/mjtoys/docgen/internal/documents"
	"github.com/mjtoys/docgen/internal/observability"
	"github.com/mjtoys/docgen/internal/platform/blob"
	"github.com/mjtoys/docgen/internal/platform/cache"
	"github.com/mjtoys/docgen/internal/platform/db"
	"github.com/mjtoys/docgen/internal/render"
	"github.com/mjtoys/docgen/internal/settings"
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

	settingsRepo := settings.NewRepository(pool)
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, settings cache disabled", slog.Any("error", err))
	} else {
		settingsRepo = settings.NewCachedRepository(settingsRepo, redisClient)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	var blobs blob.Store = blob.NewMemoryStore()
	if cfg.LogoBucket != "" {
		gcs, err := blob.NewGCSStore(ctx, cfg.LogoBucket)
		if err != nil {
			logger.Error("connect bucket", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := gcs.Close(); err != nil {
				logger.Warn("bucket close", slog.Any("error", err))
			}
		}()
		blobs = gcs
	}

	settingsService := settings.NewService(settingsRepo, blobs)
	settingsHandler := settings.NewHandler(logger, settingsService)

	engine, err := render.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	pdfClient := report.NewClient(cfg.GotenbergURL)
	if err := pdfClient.Ping(ctx); err != nil {
		logger.Warn("gotenberg ping", slog.Any("error", err))
	}

	var queue *asynq.Client
	if redisClient != nil {
		queue = asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		defer func() {
			if err := queue.Close(); err != nil {
				logger.Warn("queue close", slog.Any("error", err))
			}
		}()
	}

	metrics := observability.NewMetrics()

	documentsRepo := documents.NewRepository(pool)
	documentsService := documents.NewService(documentsRepo, settingsService, engine, pdfClient, queue, logger)
	documentsHandler := documents.NewHandler(logger, documentsService, metrics)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		DocumentsHandler: documentsHandler,
		SettingsHandler:  settingsHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
