package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/moodwatch/internal/classifier"
	"github.com/MikeSquared-Agency/moodwatch/internal/display"
)

var (
	classifySummary string
	classifyEmotion bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify one summary, given with --summary or on stdin",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(os.Stderr, cfg.LogLevel)

		summary, err := readSummary(classifySummary, cmd.InOrStdin())
		if err != nil {
			return err
		}

		oracle, err := newOracle(cfg)
		if err != nil {
			return err
		}
		c := newClassifier(cfg, oracle, slog.Default())
		return runClassify(cmd.Context(), c, display.NewPrinter(cmd.OutOrStdout()), summary, classifyEmotion)
	},
}

func init() {
	classifyCmd.Flags().StringVarP(&classifySummary, "summary", "s", "", "summary text (read from stdin when empty)")
	classifyCmd.Flags().BoolVarP(&classifyEmotion, "emotion", "e", false, "also report the prevailing emotion")
}

func readSummary(flag string, stdin io.Reader) (string, error) {
	summary := flag
	if summary == "" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		summary = string(b)
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", errors.New("summary is empty")
	}
	return summary, nil
}

func runClassify(ctx context.Context, c *classifier.Classifier, p *display.Printer, summary string, emotion bool) error {
	if !emotion {
		v, err := c.ClassifyDepression(ctx, summary)
		if err != nil {
			p.Error(err)
			return err
		}
		p.Depression(v)
		return nil
	}

	a, err := c.Assess(ctx, summary)
	if err != nil {
		p.Error(err)
		return err
	}
	p.Depression(a.Depression)
	p.Emotion(a.Emotion)
	return nil
}
