package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrOracleUnavailable marks a failed oracle call. It is the only error the
// classification entry points return.
var ErrOracleUnavailable = errors.New("oracle unavailable")

// Oracle turns a rendered prompt into a free-text completion.
type Oracle interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Options configures a Classifier.
type Options struct {
	// ConfidenceEnabled selects the label+confidence emotion profile. When false the
	// emotion task asks for and returns the label only.
	ConfidenceEnabled bool

	// Timeout bounds each oracle call. Zero means no bound beyond the caller's context.
	Timeout time.Duration
}

type Classifier struct {
	oracle Oracle
	opts   Options
	logger *slog.Logger
}

func New(oracle Oracle, opts Options, logger *slog.Logger) *Classifier {
	return &Classifier{oracle: oracle, opts: opts, logger: logger}
}

// ConfidenceEnabled reports which emotion profile the classifier runs.
func (c *Classifier) ConfidenceEnabled() bool {
	return c.opts.ConfidenceEnabled
}

// ClassifyDepression asks the oracle whether the summary shows signs of depression.
func (c *Classifier) ClassifyDepression(ctx context.Context, summary string) (DepressionVerdict, error) {
	raw, err := c.complete(ctx, DepressionTemplate, summary)
	if err != nil {
		return DepressionVerdict{}, err
	}

	v := NormalizeDepression(summary, raw)
	if !v.Classified || !v.ConfidenceFound {
		c.logger.Debug("depression response off-format",
			"classified", v.Classified,
			"confidence_found", v.ConfidenceFound,
			"raw", raw,
		)
	}
	c.logger.Info("depression classified",
		"detected", v.Detected,
		"classified", v.Classified,
		"confidence", v.ConfidencePercent,
	)
	return v, nil
}

// ClassifyEmotion asks the oracle for the summary's prevailing emotion.
func (c *Classifier) ClassifyEmotion(ctx context.Context, summary string) (EmotionVerdict, error) {
	tmpl := EmotionLabelTemplate
	if c.opts.ConfidenceEnabled {
		tmpl = EmotionTemplate
	}

	raw, err := c.complete(ctx, tmpl, summary)
	if err != nil {
		return EmotionVerdict{}, err
	}

	v := NormalizeEmotion(raw, c.opts.ConfidenceEnabled)
	attrs := []any{"emotion", v.Emotion}
	if v.ConfidencePercent != nil {
		attrs = append(attrs, "confidence", *v.ConfidencePercent)
	}
	c.logger.Info("emotion classified", attrs...)
	return v, nil
}

// Assess runs both classifications for the same summary concurrently.
func (c *Classifier) Assess(ctx context.Context, summary string) (Assessment, error) {
	var a Assessment
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := c.ClassifyDepression(gctx, summary)
		if err != nil {
			return fmt.Errorf("depression: %w", err)
		}
		a.Depression = v
		return nil
	})
	g.Go(func() error {
		v, err := c.ClassifyEmotion(gctx, summary)
		if err != nil {
			return fmt.Errorf("emotion: %w", err)
		}
		a.Emotion = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return Assessment{}, err
	}
	return a, nil
}

func (c *Classifier) complete(ctx context.Context, tmpl Template, summary string) (string, error) {
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	c.logger.Debug("calling oracle", "template", tmpl.Name, "summary_len", len(summary))

	start := time.Now()
	raw, err := c.oracle.Complete(ctx, tmpl.Render(summary))
	if err != nil {
		c.logger.Error("oracle call failed",
			"template", tmpl.Name,
			"elapsed", time.Since(start),
			"error", err,
		)
		return "", fmt.Errorf("%w: %s: %w", ErrOracleUnavailable, tmpl.Name, err)
	}
	return raw, nil
}
