package driver

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorSuccess = lipgloss.Color("#10B981") // Emerald
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
)

var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)
)

// Report writes the lexical diagnostics of res and then err, one per line.
// It returns the number of lines written.
func Report(w io.Writer, res *Result, err error) int {
	n := 0
	if res != nil {
		for _, e := range res.Diagnostics {
			fmt.Fprintln(w, WarningStyle.Render("warning: "+e.Error()))
			n++
		}
	}
	if err != nil {
		fmt.Fprintln(w, ErrorStyle.Render("error: "+err.Error()))
		n++
	}
	return n
}
