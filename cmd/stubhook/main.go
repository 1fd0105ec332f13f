// Package main starts the stub document webhook, a local stand-in for the
// external generation service: it accepts submissions, archives them when a
// database is configured, and answers with a document URL.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/bigprints/docgen/internal/config"
	"github.com/bigprints/docgen/internal/db"
	"github.com/bigprints/docgen/internal/logger"
	"github.com/bigprints/docgen/internal/repository"
	"github.com/bigprints/docgen/internal/server/handler/http"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()
	addr := options.Port
	dsn := options.DatabaseDSN

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	handler := &http.WebhookHandler{
		BaseDocumentURL: "https://docs.bigprints.local/generated",
		Log:             zapLogger,
	}

	// Archive submissions only when a database is configured.
	if dsn != "" {
		postgresDB, err := db.InitPostgres(dsn)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}

		db.StartArchiveCleaner(context.Background(), postgresDB,
			time.Hour,       // interval
			30*24*time.Hour, // retention: 30 days
			zapLogger,
		)

		handler.Archive = repository.NewPostgresArchiveRepository(postgresDB)
	}

	// Build the router with middleware and routes.
	router := http.NewRouter(handler, zapLogger)

	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	zapLogger.Info("starting stub webhook", zap.String("addr", addr), zap.Bool("archive", handler.Archive != nil))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
