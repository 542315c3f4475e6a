package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// Painter styles text for a writer, leaving it plain unless the writer is a
// terminal.
type Painter struct {
	enabled bool
}

// NewPainter returns a Painter for out.
func NewPainter(out io.Writer) Painter {
	f, ok := out.(*os.File)
	return Painter{enabled: ok && IsTerminal(f)}
}

// Title renders s in bold.
func (p Painter) Title(s string) string { return p.render(titleStyle, s) }

// OK renders s in green.
func (p Painter) OK(s string) string { return p.render(okStyle, s) }

// Error renders s in red.
func (p Painter) Error(s string) string { return p.render(errStyle, s) }

func (p Painter) render(style lipgloss.Style, s string) string {
	if !p.enabled {
		return s
	}
	return style.Render(s)
}
