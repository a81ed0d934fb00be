package main

import (
	"context"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hexagonal-users/config"
	"github.com/oksasatya/go-hexagonal-users/internal/application"
	"github.com/oksasatya/go-hexagonal-users/internal/bootstrap"
	"github.com/oksasatya/go-hexagonal-users/internal/infrastructure/export"
	"github.com/oksasatya/go-hexagonal-users/pkg/helpers"
)

// export_users writes the full user list as NDJSON to GCS_BUCKET.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-export", cfg.Env, cfg.LogLevel)
	if cfg.GCSBucket == "" {
		logger.Fatal("GCS_BUCKET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStorage(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to open user storage")
	}
	defer store.Close()

	gcs, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
	if err != nil {
		logger.WithError(err).Fatal("failed to init GCS client")
	}
	defer func() { _ = gcs.Close() }()

	object := strings.TrimSuffix(cfg.GCSExportPrefix, "/") + "/users-" + time.Now().UTC().Format("20060102T150405Z") + ".ndjson"
	// Cancelling the writer context discards a partial upload.
	wctx, abort := context.WithCancel(ctx)
	defer abort()
	w := helpers.NewObjectWriter(wctx, gcs, cfg.GCSBucket, object, "application/x-ndjson")

	exporter := export.NewUserExporter(application.NewListUsers(store.Users), export.DefaultPageSize)
	n, err := exporter.Export(ctx, w)
	if err != nil {
		abort()
		_ = w.Close()
		logger.WithError(err).Fatal("export failed")
	}
	if err := w.Close(); err != nil {
		logger.WithError(err).Fatal("finalize export object")
	}
	logger.WithFields(logrus.Fields{"users": n, "object": helpers.ObjectURI(cfg.GCSBucket, object)}).Info("export complete")
}
