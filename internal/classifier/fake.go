package classifier

import (
	"context"
	"strings"
	"sync"
)

// FakeOracle is an in-memory Oracle for tests and dry runs. Responses are chosen by
// the template the prompt was rendered from; Default answers anything else.
type FakeOracle struct {
	Depression string
	Emotion    string
	Default    string
	Err        error

	mu      sync.Mutex
	prompts []string
}

func (f *FakeOracle) Complete(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.Err != nil {
		return "", f.Err
	}

	switch {
	case isRenderedFrom(prompt, DepressionTemplate):
		return f.Depression, nil
	case isRenderedFrom(prompt, EmotionTemplate), isRenderedFrom(prompt, EmotionLabelTemplate):
		return f.Emotion, nil
	default:
		return f.Default, nil
	}
}

// Prompts returns every prompt received so far.
func (f *FakeOracle) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.prompts))
	copy(out, f.prompts)
	return out
}

func isRenderedFrom(prompt string, t Template) bool {
	head, _, _ := strings.Cut(t.Text, "{"+t.Variable+"}")
	return strings.HasPrefix(prompt, head)
}
