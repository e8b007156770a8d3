package classifier

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	negativePhraseRe = regexp.MustCompile(`(?i)\bno\s+depression\s+signs\s+detected\b`)
	positivePhraseRe = regexp.MustCompile(`(?i)\bdepression\s+signs\s+detected\b`)
	confidenceRe     = regexp.MustCompile(`(?i)confidence[:\s]*(\d{1,3})%`)
	braceSpanRe      = regexp.MustCompile(`(?s)\{.*\}`)
)

// NormalizeDepression turns a depression-template response into a verdict.
//
// The returned confidence is always a depression likelihood: when the oracle says
// "No Depression Signs Detected (Confidence: 80%)" the verdict carries 20, and the
// number inside the display text is rewritten to match.
func NormalizeDepression(summary, raw string) DepressionVerdict {
	v := DepressionVerdict{
		Summary:     summary,
		RawText:     raw,
		DisplayText: raw,
	}

	negative := negativePhraseRe.MatchString(raw)
	switch {
	case negative:
		v.Classified = true
	case positivePhraseRe.MatchString(raw):
		v.Classified = true
		v.Detected = true
	}

	loc := confidenceRe.FindStringSubmatchIndex(raw)
	if loc == nil {
		return v
	}
	digits := raw[loc[2]:loc[3]]
	n, err := strconv.Atoi(digits)
	if err != nil {
		return v
	}

	n = clampPercent(n)
	if negative {
		n = 100 - n
	}
	v.ConfidenceFound = true
	v.ConfidencePercent = n

	if rendered := strconv.Itoa(n); rendered != digits {
		v.DisplayText = raw[:loc[2]] + rendered + raw[loc[3]:]
	}
	return v
}

// NormalizeEmotion turns an emotion-template response into a verdict. With
// confidenceEnabled false the verdict carries the label only.
func NormalizeEmotion(raw string, confidenceEnabled bool) EmotionVerdict {
	payload := decodeEmotionPayload(raw)

	v := EmotionVerdict{Emotion: EmotionNeutral}
	if label, ok := payload["emotion"].(string); ok {
		if e, known := ParseEmotion(strings.ToLower(strings.TrimSpace(label))); known {
			v.Emotion = e
		}
	}

	if confidenceEnabled {
		c := DefaultConfidence
		if rawConf, ok := payload["confidence"]; ok {
			c = coerceConfidence(rawConf)
		}
		v.ConfidencePercent = &c
	}
	return v
}

// decodeEmotionPayload parses the response strictly, then falls back to the span
// between the first '{' and the last '}'. Anything unparsable yields an empty payload.
// Numbers stay json.Number so an out-of-range confidence cannot sink the label.
func decodeEmotionPayload(raw string) map[string]any {
	if payload, ok := decodeObject(strings.TrimSpace(raw)); ok {
		return payload
	}
	if span := braceSpanRe.FindString(raw); span != "" {
		if payload, ok := decodeObject(span); ok {
			return payload
		}
	}
	return map[string]any{}
}

// decodeObject accepts s only when it is exactly one JSON object.
func decodeObject(s string) (map[string]any, bool) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil || payload == nil {
		return nil, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}
	return payload, true
}

// coerceConfidence maps a reported confidence into [0,100]. Overflowing numbers clamp;
// anything non-numeric falls back to DefaultConfidence.
func coerceConfidence(v any) int {
	switch x := v.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(x.String(), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return DefaultConfidence
		}
		return clampFloat(f)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return DefaultConfidence
		}
		return clampPercent(n)
	default:
		return DefaultConfidence
	}
}

func clampFloat(f float64) int {
	if math.IsNaN(f) {
		return DefaultConfidence
	}
	if f >= 100 {
		return 100
	}
	if f <= 0 {
		return 0
	}
	return int(f)
}

func clampPercent(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
