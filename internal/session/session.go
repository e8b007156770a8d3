// Package session keeps an in-memory chat with the oracle so a conversation can be
// summarized and screened. Nothing here is persisted.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/MikeSquared-Agency/moodwatch/internal/classifier"
)

// ErrEmptyConversation is returned when summarizing before anything was said.
var ErrEmptyConversation = errors.New("conversation is empty")

var SummaryTemplate = classifier.Template{
	Name:     "summary",
	Variable: "conversation",
	Text:     "Summarize the following chat:\n{conversation}\nSummary:",
}

// Depression is the slice of the classifier a conversation needs.
type Depression interface {
	ClassifyDepression(ctx context.Context, summary string) (classifier.DepressionVerdict, error)
}

type Conversation struct {
	oracle     classifier.Oracle
	classifier Depression
	timeout    time.Duration
	logger     *slog.Logger

	mu      sync.Mutex
	history []string
}

// New starts an empty conversation. A positive timeout bounds each chat and summary call.
func New(oracle classifier.Oracle, c Depression, timeout time.Duration, logger *slog.Logger) *Conversation {
	return &Conversation{oracle: oracle, classifier: c, timeout: timeout, logger: logger}
}

// Chat sends input to the oracle on its own and records both turns.
// A failed call leaves the history unchanged.
func (c *Conversation) Chat(ctx context.Context, input string) (string, error) {
	reply, err := c.complete(ctx, input)
	if err != nil {
		return "", fmt.Errorf("%w: chat: %w", classifier.ErrOracleUnavailable, err)
	}

	c.mu.Lock()
	c.history = append(c.history, "User: "+input, "Agent: "+reply)
	turns := len(c.history)
	c.mu.Unlock()

	c.logger.Debug("chat turn recorded", "turns", turns)
	return reply, nil
}

// Summarize asks the oracle to summarize the conversation so far.
func (c *Conversation) Summarize(ctx context.Context) (string, error) {
	history := c.History()
	if len(history) == 0 {
		return "", ErrEmptyConversation
	}

	summary, err := c.complete(ctx, SummaryTemplate.Render(strings.Join(history, "\n")))
	if err != nil {
		return "", fmt.Errorf("%w: summarize: %w", classifier.ErrOracleUnavailable, err)
	}
	summary = strings.TrimSpace(summary)

	c.logger.Info("conversation summarized", "turns", len(history), "summary_len", len(summary))
	return summary, nil
}

// Analyze summarizes the conversation and screens the summary for depression signs.
func (c *Conversation) Analyze(ctx context.Context) (classifier.DepressionVerdict, error) {
	summary, err := c.Summarize(ctx)
	if err != nil {
		return classifier.DepressionVerdict{}, err
	}
	return c.classifier.ClassifyDepression(ctx, summary)
}

// History returns a copy of the recorded turns.
func (c *Conversation) History() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.history))
	copy(out, c.history)
	return out
}

func (c *Conversation) Reset() {
	c.mu.Lock()
	c.history = nil
	c.mu.Unlock()
}

func (c *Conversation) complete(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.oracle.Complete(ctx, prompt)
}
