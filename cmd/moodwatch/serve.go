package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/moodwatch/internal/api"
	"github.com/MikeSquared-Agency/moodwatch/internal/hermes"
	"github.com/MikeSquared-Agency/moodwatch/internal/processor"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and, when NATS_URL is set, the summary processor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	setupLogging(os.Stdout, cfg.LogLevel)

	slog.Info("moodwatch starting", "port", cfg.Port, "oracle", cfg.Oracle)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	oracle, err := newOracle(cfg)
	if err != nil {
		return err
	}
	c := newClassifier(cfg, oracle, slog.Default())
	slog.Info("oracle client ready", "oracle", cfg.Oracle, "model", modelName(cfg), "emotion_confidence", cfg.EmotionConfidence)

	// NATS is optional; without it only the HTTP API is served.
	if cfg.NatsURL != "" {
		bus, err := hermes.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			return err
		}
		defer bus.Close()
		slog.Info("NATS connected", "url", cfg.NatsURL)

		proc := processor.New(c, bus, slog.Default())
		if err := bus.Subscribe(hermes.SubjectSummarySubmitted, proc.HandleSummarySubmitted); err != nil {
			return err
		}

		if err := bus.Publish(hermes.SubjectRegistered, map[string]any{
			"timestamp":          time.Now().UTC().Format(time.RFC3339),
			"port":               cfg.Port,
			"oracle":             cfg.Oracle,
			"model":              modelName(cfg),
			"emotion_confidence": cfg.EmotionConfidence,
		}); err != nil {
			slog.Warn("failed to publish registration", "error", err)
		}

		defer func() {
			if err := bus.Drain(); err != nil {
				slog.Warn("nats drain failed", "error", err)
			}
		}()
	} else {
		slog.Warn("NATS_URL not set, running without the summary processor")
	}

	srv := api.NewServer(cfg.Port, cfg.APIToken, cfg.Oracle, c, slog.Default())
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	slog.Info("moodwatch ready", "port", cfg.Port)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		slog.Error("HTTP server error", "error", err)
		return err
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP shutdown failed", "error", err)
	}
	slog.Info("moodwatch stopped")
	return nil
}
