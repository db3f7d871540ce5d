package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"actlog/internal/amqp"
	"actlog/internal/config"
	applog "actlog/internal/log"
	gsheet "actlog/internal/sheets/google"
	"actlog/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Component: applog.ComponentWorker,
	})
	applog.SetDefault(logger)

	logger.Info("Starting actlog-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the mirror worker")
		os.Exit(1)
	}

	// Initialize Google Sheets client for mirror writes (optional)
	var mirrorWorker *worker.MirrorWorker
	if cfg.GoogleSpreadsheetID != "" {
		sheetsClient, err := gsheet.New(context.Background(), cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		mirrorWorker = worker.NewMirrorWorker(sheetsClient)
		logger.Info("Google Sheets client initialized",
			"spreadsheet_id", cfg.GoogleSpreadsheetID,
			"sheet", cfg.GoogleSheetName)
	} else {
		mirrorWorker = worker.NewMirrorWorker(nil)
		logger.Warn("Google Sheets disabled - messages will be consumed and dropped")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	if err := amqpClient.SetPrefetch(cfg.MirrorBatchSize); err != nil {
		logger.Warn("Failed to set prefetch, continuing with broker default", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	// Consume mirror messages, reconnecting with backoff on broker failures.
	g.Go(func() error {
		for {
			err := amqpClient.ConsumeRecordMirror(ctx, func(msg *amqp.RecordMirrorMessage) error {
				return mirrorWorker.HandleMirrorMessage(ctx, msg)
			})
			if errors.Is(err, context.Canceled) {
				return err
			}
			logger.Error("Message consumption failed, reconnecting", "error", err)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(cfg.MirrorInterval):
			}
			if err := amqpClient.Reconnect(ctx); err != nil {
				return err
			}
			if err := amqpClient.SetPrefetch(cfg.MirrorBatchSize); err != nil {
				logger.Warn("Failed to set prefetch after reconnect", "error", err)
			}
		}
	})

	// Stop on shutdown signals.
	g.Go(func() error {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker shutdown complete")
}
