package cli

import (
	"io"

	"github.com/bastiangx/pgalyzer/pkg/concordance"
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles of REPL output. They are bound to the
// output writer, so a non terminal writer gets plain text.
type Styles struct {
	Word   lipgloss.Style
	Count  lipgloss.Style
	Marker lipgloss.Style
	Header lipgloss.Style
}

// NewStyles creates Styles rendering for w.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Word:   r.NewStyle().Foreground(lipgloss.Color("75")),
		Count:  r.NewStyle().Faint(true),
		Marker: r.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Header: r.NewStyle().Bold(true),
	}
}

// Concordance returns a concordance style that highlights the target word.
func (s Styles) Concordance() concordance.Style {
	return concordance.Style{Mark: func(w string) string { return s.Marker.Render(w) }}
}

// concordanceText renders windows with the target word highlighted.
func concordanceText(windows []concordance.Window, word string, s Styles) string {
	return concordance.Display(windows, word, s.Concordance())
}
