package classifier

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// emotionPayload is the wire contract of the label+confidence profile.
type emotionPayload struct {
	Emotion    string `json:"emotion" jsonschema:"required,enum=sad,enum=happy,enum=neutral,enum=angry,enum=fearful"`
	Confidence int    `json:"confidence" jsonschema:"required,minimum=0,maximum=100"`
}

// emotionLabelPayload is the wire contract of the label-only profile.
type emotionLabelPayload struct {
	Emotion string `json:"emotion" jsonschema:"required,enum=sad,enum=happy,enum=neutral,enum=angry,enum=fearful"`
}

// EmotionSchema returns the JSON Schema the oracle is asked to satisfy for the given profile.
func EmotionSchema(confidenceEnabled bool) (map[string]any, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}

	var schema *jsonschema.Schema
	if confidenceEnabled {
		schema = reflector.Reflect(emotionPayload{})
	} else {
		schema = reflector.Reflect(emotionLabelPayload{})
	}

	b, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}
	return m, nil
}
