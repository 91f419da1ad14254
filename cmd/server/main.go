package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/notegen/internal/api"
	"github.com/dgallion1/notegen/internal/config"
	"github.com/dgallion1/notegen/internal/convert"
	"github.com/dgallion1/notegen/internal/docstore"
	"github.com/dgallion1/notegen/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := docstore.Open(cfg.DataDir)
	if err != nil {
		log.Error("open document store", "error", err)
		os.Exit(1)
	}
	conv := convert.New(cfg.SofficePath, cfg.ConvertTimeout, log)

	// Initialize pipeline.
	gen := pipeline.NewGenerator(cfg, store, conv, log)
	gen.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(gen, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.ConvertTimeout*pipeline.MaxRetries + 60*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		gen.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting notegen", "port", cfg.Port, "data_dir", cfg.DataDir, "auth", cfg.APIKey != "")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
