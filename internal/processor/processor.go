package processor

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/moodwatch/internal/classifier"
	"github.com/MikeSquared-Agency/moodwatch/internal/hermes"
)

// Assessor runs both classifications for a summary.
type Assessor interface {
	Assess(ctx context.Context, summary string) (classifier.Assessment, error)
}

// Processor answers summary submissions arriving over NATS.
type Processor struct {
	assessor Assessor
	bus      hermes.Publisher
	logger   *slog.Logger
	now      func() time.Time
}

func New(a Assessor, bus hermes.Publisher, logger *slog.Logger) *Processor {
	return &Processor{
		assessor: a,
		bus:      bus,
		logger:   logger,
		now:      time.Now,
	}
}

// HandleSummarySubmitted is the NATS handler for swarm.moodwatch.summary.submitted.
func (p *Processor) HandleSummarySubmitted(subject string, data []byte) {
	ctx := context.Background()

	var evt hermes.SummarySubmitted
	if err := json.Unmarshal(data, &evt); err != nil {
		p.logger.Error("failed to parse summary event", "subject", subject, "error", err)
		return
	}
	if evt.RequestID == "" {
		evt.RequestID = uuid.NewString()
	}
	if strings.TrimSpace(evt.Summary) == "" {
		p.logger.Warn("dropping empty summary", "request_id", evt.RequestID)
		return
	}

	p.logger.Info("assessing summary",
		"request_id", evt.RequestID,
		"summary_len", len(evt.Summary),
	)

	a, err := p.assessor.Assess(ctx, evt.Summary)
	if err != nil {
		p.logger.Error("assessment failed", "request_id", evt.RequestID, "error", err)
		if err := p.bus.Publish(hermes.SubjectVerdictFailed, hermes.VerdictFailed{
			RequestID: evt.RequestID,
			Error:     err.Error(),
			FailedAt:  p.now().UTC().Format(time.RFC3339),
		}); err != nil {
			p.logger.Error("failed to publish verdict failure", "error", err)
		}
		return
	}

	out := hermes.VerdictAssessed{
		RequestID:  evt.RequestID,
		VerdictID:  uuid.NewString(),
		Depression: a.Depression,
		Emotion:    a.Emotion,
		Display:    a.Depression.Render(),
		AssessedAt: p.now().UTC().Format(time.RFC3339),
	}
	if err := p.bus.Publish(hermes.SubjectVerdictAssessed, out); err != nil {
		p.logger.Error("failed to publish verdict", "request_id", evt.RequestID, "error", err)
		return
	}

	p.logger.Info("summary assessed",
		"request_id", evt.RequestID,
		"verdict_id", out.VerdictID,
		"detected", a.Depression.Detected,
		"emotion", a.Emotion.Emotion,
	)
}
