package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/moodwatch/internal/classifier"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newConversation(oracle *classifier.FakeOracle) *Conversation {
	c := classifier.New(oracle, classifier.Options{ConfidenceEnabled: true}, discardLogger())
	return New(oracle, c, 0, discardLogger())
}

func TestChat_RecordsTurns(t *testing.T) {
	oracle := &classifier.FakeOracle{Default: "I'm here for you."}
	conv := newConversation(oracle)

	reply, err := conv.Chat(context.Background(), "I can't sleep lately")
	require.NoError(t, err)
	assert.Equal(t, "I'm here for you.", reply)
	assert.Equal(t, []string{"User: I can't sleep lately", "Agent: I'm here for you."}, conv.History())

	// The chat turn goes to the oracle on its own, without history.
	assert.Equal(t, []string{"I can't sleep lately"}, oracle.Prompts())
}

func TestChat_FailureLeavesHistoryUntouched(t *testing.T) {
	conv := newConversation(&classifier.FakeOracle{Err: errors.New("boom")})

	_, err := conv.Chat(context.Background(), "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, classifier.ErrOracleUnavailable)
	assert.Empty(t, conv.History())
}

func TestSummarize(t *testing.T) {
	oracle := &classifier.FakeOracle{Default: "  Reply.  "}
	conv := newConversation(oracle)

	_, err := conv.Summarize(context.Background())
	assert.ErrorIs(t, err, ErrEmptyConversation)

	_, err = conv.Chat(context.Background(), "first")
	require.NoError(t, err)

	summary, err := conv.Summarize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Reply.", summary)

	prompts := oracle.Prompts()
	require.Len(t, prompts, 2)
	assert.Equal(t, "Summarize the following chat:\nUser: first\nAgent:   Reply.  \nSummary:", prompts[1])
}

func TestAnalyze(t *testing.T) {
	oracle := &classifier.FakeOracle{
		Default:    "The user reports feeling hopeless.",
		Depression: "Depression Signs Detected (Confidence: 81%)",
	}
	conv := newConversation(oracle)

	_, err := conv.Chat(context.Background(), "nothing matters anymore")
	require.NoError(t, err)

	v, err := conv.Analyze(context.Background())
	require.NoError(t, err)
	assert.True(t, v.Detected)
	assert.Equal(t, 81, v.ConfidencePercent)
	assert.Equal(t, "The user reports feeling hopeless.", v.Summary)
	assert.Len(t, oracle.Prompts(), 3)
}

func TestReset(t *testing.T) {
	conv := newConversation(&classifier.FakeOracle{Default: "ok"})
	_, err := conv.Chat(context.Background(), "hi")
	require.NoError(t, err)

	conv.Reset()
	assert.Empty(t, conv.History())
}

// blockingOracle never answers until the context is done.
type blockingOracle struct{}

func (blockingOracle) Complete(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestChat_TimesOut(t *testing.T) {
	c := classifier.New(blockingOracle{}, classifier.Options{Timeout: 20 * time.Millisecond}, discardLogger())
	conv := New(blockingOracle{}, c, 20*time.Millisecond, discardLogger())

	start := time.Now()
	_, err := conv.Chat(context.Background(), "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, classifier.ErrOracleUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Empty(t, conv.History())
}

func TestAnalyze_SummaryTimesOut(t *testing.T) {
	conv := New(blockingOracle{}, nil, 20*time.Millisecond, discardLogger())
	conv.history = []string{"User: hi", "Agent: hello"}

	start := time.Now()
	_, err := conv.Analyze(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}
