package classifier

import "strings"

// Template is a prompt with a single named substitution point, written as {name}.
type Template struct {
	Name     string
	Variable string
	Text     string
}

// Render substitutes value for the template's variable.
func (t Template) Render(value string) string {
	return strings.Replace(t.Text, "{"+t.Variable+"}", value, 1)
}

var DepressionTemplate = Template{
	Name:     "depression",
	Variable: "summary",
	Text: `You are a mental health AI assistant. Based on this chat summary, determine if the user shows signs of depression.
Respond with EXACTLY one of:
- 'Depression Signs Detected (Confidence: XX%)' or
- 'No Depression Signs Detected (Confidence: XX%)'
where XX is an integer percentage.

Summary:
{summary}`,
}

var EmotionTemplate = Template{
	Name:     "emotion",
	Variable: "summary",
	Text: `You are an emotion classification assistant. Read the chat summary and decide the user's prevailing emotion.

Respond with strict JSON matching this schema:
{"emotion": "sad|happy|neutral|angry|fearful", "confidence": 0-100}

"confidence" is an integer percentage. Return ONLY the JSON object, no markdown fences or other text.

Summary:
{summary}`,
}

var EmotionLabelTemplate = Template{
	Name:     "emotion_label",
	Variable: "summary",
	Text: `You are an emotion classification assistant. Read the chat summary and decide the user's prevailing emotion.

Respond with strict JSON matching this schema:
{"emotion": "sad|happy|neutral|angry|fearful"}

Return ONLY the JSON object, no markdown fences or other text.

Summary:
{summary}`,
}
