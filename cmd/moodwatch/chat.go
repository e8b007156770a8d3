package main

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/moodwatch/internal/classifier"
	"github.com/MikeSquared-Agency/moodwatch/internal/display"
	"github.com/MikeSquared-Agency/moodwatch/internal/session"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the model and screen the conversation on demand",
	Long: `Type a message to chat. Commands:
  summary   paste a summary and classify it
  analyze   summarize the conversation so far and classify it
  exit      quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(os.Stderr, cfg.LogLevel)

		oracle, err := newOracle(cfg)
		if err != nil {
			return err
		}
		c := newClassifier(cfg, oracle, slog.Default())
		conv := session.New(oracle, c, cfg.OracleTimeout, slog.Default())
		return runChat(cmd.Context(), cmd.InOrStdin(), display.NewPrinter(cmd.OutOrStdout()), conv, c)
	},
}

// runChat reads lines from in until "exit" or EOF. Oracle failures are printed and the loop continues.
func runChat(ctx context.Context, in io.Reader, p *display.Printer, conv *session.Conversation, c *classifier.Classifier) error {
	p.Title("moodwatch chat (summary, analyze, exit)")
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for {
		p.Line("You:")
		if !scanner.Scan() {
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(input) {
		case "":
			continue
		case "exit":
			return nil
		case "summary":
			p.Line("Enter summary:")
			if !scanner.Scan() {
				return scanner.Err()
			}
			summary := strings.TrimSpace(scanner.Text())
			if summary == "" {
				p.Error(errors.New("summary is empty"))
				continue
			}
			v, err := c.ClassifyDepression(ctx, summary)
			if err != nil {
				p.Error(err)
				continue
			}
			p.Depression(v)
		case "analyze":
			v, err := conv.Analyze(ctx)
			if err != nil {
				p.Error(err)
				continue
			}
			p.Depression(v)
		default:
			reply, err := conv.Chat(ctx, input)
			if err != nil {
				p.Error(err)
				continue
			}
			p.Agent(reply)
		}
	}
}
