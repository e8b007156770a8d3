package classifier

import "fmt"

// Emotion is the prevailing-emotion label of a summary.
type Emotion string

const (
	EmotionSad     Emotion = "sad"
	EmotionHappy   Emotion = "happy"
	EmotionNeutral Emotion = "neutral"
	EmotionAngry   Emotion = "angry"
	EmotionFearful Emotion = "fearful"
)

// Emotions lists every label the emotion task may return.
var Emotions = []Emotion{EmotionSad, EmotionHappy, EmotionNeutral, EmotionAngry, EmotionFearful}

// ParseEmotion maps a label to an Emotion, reporting whether it is one of the known five.
func ParseEmotion(label string) (Emotion, bool) {
	for _, e := range Emotions {
		if string(e) == label {
			return e, true
		}
	}
	return EmotionNeutral, false
}

// DefaultConfidence is used when the oracle omits confidence or reports something unparsable.
const DefaultConfidence = 50

// DepressionVerdict is the result of one depression classification.
type DepressionVerdict struct {
	Detected   bool `json:"detected"`
	Classified bool `json:"classified"` // false when the response contained neither verdict phrase

	// ConfidencePercent is the depression likelihood in [0,100]. Zero when ConfidenceFound is false.
	ConfidencePercent int  `json:"confidence_percent"`
	ConfidenceFound   bool `json:"confidence_found"`

	Summary     string `json:"summary"`
	RawText     string `json:"raw_text"`     // oracle response, verbatim
	DisplayText string `json:"display_text"` // RawText with the confidence rewritten in place
}

// Render produces the display form shown to users.
func (v DepressionVerdict) Render() string {
	return fmt.Sprintf("Summary:\n%s\n\nDetection Result: %s", v.Summary, v.DisplayText)
}

// EmotionVerdict is the result of one emotion classification.
// ConfidencePercent is nil when the classifier runs the label-only profile.
type EmotionVerdict struct {
	Emotion           Emotion `json:"emotion"`
	ConfidencePercent *int    `json:"confidence,omitempty"`
}

// Assessment pairs both verdicts for the same summary.
type Assessment struct {
	Depression DepressionVerdict `json:"depression"`
	Emotion    EmotionVerdict    `json:"emotion"`
}
