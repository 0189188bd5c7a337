package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/config"
	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/db"
	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/filestore"
	httpapi "github.com/Ghhost99/Recovery-Guard-BACKEND/internal/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "recovery-guard-backend").Logger()

	ctx := context.Background()
	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect db")
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate schema")
	}

	var files filestore.Store
	if cfg.FileStore == "memory" {
		files = filestore.NewMemoryStore()
		logger.Info().Msg("using in-memory file store")
	} else {
		files = filestore.DiskStore{Root: cfg.UploadDir, BaseURL: cfg.UploadBaseURL}
	}

	router := httpapi.Router(cfg, store, files, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
