// Package display renders verdicts for a terminal.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MikeSquared-Agency/moodwatch/internal/classifier"
)

var (
	Warning = lipgloss.Color("#FFC107")
	Success = lipgloss.Color("#8BC34A")
	Info    = lipgloss.Color("#2196F3")
	Error   = lipgloss.Color("#e53935")
)

// Printer writes styled verdicts to w. Colors are dropped when w is not a terminal.
type Printer struct {
	w        io.Writer
	detected lipgloss.Style
	clear    lipgloss.Style
	title    lipgloss.Style
	agent    lipgloss.Style
	failure  lipgloss.Style
}

func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:        w,
		detected: r.NewStyle().Foreground(Warning),
		clear:    r.NewStyle().Foreground(Success),
		title:    r.NewStyle().Foreground(Info).Bold(true),
		agent:    r.NewStyle().Foreground(Info),
		failure:  r.NewStyle().Foreground(Error),
	}
}

// Depression prints the rendered verdict: yellow when signs were detected, green
// when the oracle said none were, uncolored when the response was unclassified.
func (p *Printer) Depression(v classifier.DepressionVerdict) {
	text := v.Render()
	switch {
	case v.Detected:
		text = paint(p.detected, text)
	case v.Classified:
		text = paint(p.clear, text)
	}
	fmt.Fprintln(p.w, text)
}

func (p *Printer) Emotion(v classifier.EmotionVerdict) {
	line := fmt.Sprintf("Prevailing Emotion: %s", v.Emotion)
	if v.ConfidencePercent != nil {
		line += fmt.Sprintf(" (Confidence: %d%%)", *v.ConfidencePercent)
	}
	fmt.Fprintln(p.w, line)
}

func (p *Printer) Title(s string) {
	fmt.Fprintln(p.w, p.title.Render(s))
}

func (p *Printer) Agent(reply string) {
	fmt.Fprintln(p.w, p.agent.Render("Agent:")+" "+reply)
}

func (p *Printer) Error(err error) {
	fmt.Fprintln(p.w, p.failure.Render("error: "+err.Error()))
}

func (p *Printer) Line(s string) {
	fmt.Fprintln(p.w, s)
}

// paint styles each line on its own so lipgloss does not pad lines to a common width.
func paint(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = style.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}
