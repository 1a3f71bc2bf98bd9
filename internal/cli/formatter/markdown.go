package formatter

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown renders assistant replies, which carry markdown tables, bold
// status markers and letter layouts, for the terminal.
type Markdown struct {
	renderer *glamour.TermRenderer
}

// NewMarkdown builds a renderer wrapped to the given width. Width 0 uses 80.
func NewMarkdown(width int) *Markdown {
	if width <= 0 {
		width = 80
	}
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	return &Markdown{renderer: r}
}

// Render returns the terminal rendering of md, or the raw text when the
// renderer is unavailable or fails.
func (m *Markdown) Render(md string) string {
	if m == nil || m.renderer == nil {
		return md
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
