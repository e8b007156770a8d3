package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/moodwatch/internal/anthropic"
	"github.com/MikeSquared-Agency/moodwatch/internal/classifier"
	"github.com/MikeSquared-Agency/moodwatch/internal/config"
	"github.com/MikeSquared-Agency/moodwatch/internal/groq"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "moodwatch",
	Short: "Screen conversation summaries for depression signs and prevailing emotion",
	Long: `moodwatch drives a text-generation model to classify a conversation summary.

It reports whether depression signs were detected (with the depression likelihood as a
percentage) and the prevailing emotion. Model output is treated as untrusted text and
normalized into bounded verdicts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		return cfg.Validate()
	},
}

func main() {
	rootCmd.AddCommand(serveCmd, classifyCmd, chatCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(w io.Writer, level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}

// newOracle builds the oracle client selected by the configuration.
func newOracle(cfg config.Config) (classifier.Oracle, error) {
	switch cfg.Oracle {
	case config.OracleGroq:
		return groq.NewClient(groq.Config{
			APIKey:      cfg.GroqAPIKey,
			BaseURL:     cfg.GroqBaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			MaxRetries:  cfg.OracleRetries,
			Timeout:     cfg.OracleTimeout,
		}), nil
	case config.OracleAnthropic:
		return anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel).
			WithMaxTokens(cfg.MaxTokens).
			WithTemperature(cfg.Temperature), nil
	default:
		return nil, fmt.Errorf("unknown oracle %q", cfg.Oracle)
	}
}

func newClassifier(cfg config.Config, oracle classifier.Oracle, logger *slog.Logger) *classifier.Classifier {
	return classifier.New(oracle, classifier.Options{
		ConfidenceEnabled: cfg.EmotionConfidence,
		Timeout:           cfg.OracleTimeout,
	}, logger)
}

func modelName(cfg config.Config) string {
	if cfg.Oracle == config.OracleAnthropic {
		return cfg.AnthropicModel
	}
	return cfg.Model
}
