package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/easeaico/aura/internal/analysis"
	"github.com/easeaico/aura/internal/audio"
	"github.com/easeaico/aura/internal/config"
	"github.com/easeaico/aura/internal/journal"
	"github.com/easeaico/aura/internal/metrics"
	"github.com/easeaico/aura/internal/models"
	"github.com/easeaico/aura/internal/mood"
	"github.com/easeaico/aura/internal/server"
	"github.com/easeaico/aura/internal/storage"
	"github.com/easeaico/aura/internal/vision"
)

const shutdownTimeout = 10 * time.Second

func serveCommand(load loadFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().String("listen", "", "listen address, e.g. :8000")
	cmd.Flags().String("static-dir", "", "directory of frontend files served with an index.html fallback")
	return cmd
}

func serve(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for _, problem := range cfg.Validate() {
		slog.Warn("configuration problem", "problem", problem)
	}

	store, err := storage.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer store.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	met, err := metrics.NewMetrics(registry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	errLog, errLogCloser, err := analysis.OpenErrorLog(cfg.AIErrorLog)
	if err != nil {
		return err
	}
	defer errLogCloser.Close()

	pipeline := analysis.NewPipeline(analysis.PipelineConfig{
		Augmenter: analysis.NewAugmenter(newGenerator(ctx, cfg), analysis.AugmenterConfig{
			Attempts: cfg.GenerativeAttempts,
			Backoff:  cfg.GenerativeBackoff,
			Timeout:  cfg.GenerativeTimeout,
			ErrorLog: errLog,
		}),
		LockCrisisFields: cfg.CrisisFields == config.CrisisFieldsLocked,
		Recorder:         met,
	})
	slog.Info("analysis pipeline ready", "stages", pipeline.StageNames(), "crisis_fields", cfg.CrisisFields)

	faces, err := vision.New(ctx, cfg)
	if err != nil {
		slog.Warn("visual engine unavailable", "provider", cfg.VisionProvider, "error", err.Error())
		faces = nil
	}
	engine := mood.NewEngine(faces, audio.NewAnalyzer(), mood.DefaultQuoteBank())

	srv := server.New(server.Config{
		Addr:        cfg.ListenAddr,
		StaticDir:   cfg.StaticDir,
		CORSOrigins: cfg.CORSOrigins,
		BodyLimit:   cfg.MaxBody,
		Version:     version,
	}, journal.NewService(store.Journal, pipeline, cfg.StatsCacheTTL), engine, met, store)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	slog.Info("shutdown complete")
	return nil
}

// newGenerator returns nil when no generative provider is usable.
func newGenerator(ctx context.Context, cfg config.Config) analysis.Generator {
	llm, err := models.NewLLM(ctx, cfg)
	if err != nil {
		if !errors.Is(err, models.ErrNotConfigured) {
			slog.Error("failed to create generative model", "provider", cfg.LLMProvider, "error", err.Error())
		}
		return nil
	}
	slog.Info("generative augmentation enabled", "provider", cfg.LLMProvider, "model", llm.Name())
	return models.NewGenerator(llm)
}
