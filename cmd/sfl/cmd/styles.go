package cmd

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorOK    = lipgloss.Color("#10B981")
	colorError = lipgloss.Color("#EF4444")
	colorMuted = lipgloss.Color("#6B7280")
	colorTitle = lipgloss.Color("#7C3AED")
)

// styles renders verdict lines. The renderer is bound to the command
// output, so colors are dropped when it is not a terminal.
type styles struct {
	ok    lipgloss.Style
	err   lipgloss.Style
	muted lipgloss.Style
	title lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		ok:    r.NewStyle().Foreground(colorOK).Bold(true),
		err:   r.NewStyle().Foreground(colorError).Bold(true),
		muted: r.NewStyle().Foreground(colorMuted),
		title: r.NewStyle().Foreground(colorTitle).Bold(true),
	}
}

// verdict renders a styled ok/error word
func (s styles) verdict(ok bool) string {
	if ok {
		return s.ok.Render(verdict(true))
	}
	return s.err.Render(verdict(false))
}
