package hermes

import "github.com/MikeSquared-Agency/moodwatch/internal/classifier"

// SummarySubmitted asks moodwatch to assess a conversation summary.
type SummarySubmitted struct {
	RequestID string `json:"request_id"`
	Summary   string `json:"summary"`
}

// VerdictAssessed carries both verdicts for a submitted summary.
type VerdictAssessed struct {
	RequestID  string                       `json:"request_id"`
	VerdictID  string                       `json:"verdict_id"`
	Depression classifier.DepressionVerdict `json:"depression"`
	Emotion    classifier.EmotionVerdict    `json:"emotion"`
	Display    string                       `json:"display"`
	AssessedAt string                       `json:"assessed_at"`
}

// VerdictFailed is published when the oracle could not be reached for a request.
type VerdictFailed struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
	FailedAt  string `json:"failed_at"`
}
