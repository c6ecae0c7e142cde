package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles are keyed by what the text means, so commands never pick hues.
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#b8bb26"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fb4934"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#83a598"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))
	strongStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ebdbb2")).Bold(true)
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#fe8019")).Bold(true)
)

// DisableColor switches every style to plain text. main calls it when stdout
// is not a terminal.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func Success(s string) string { return successStyle.Render(s) }
func Failure(s string) string { return failureStyle.Render(s) }
func Muted(s string) string   { return mutedStyle.Render(s) }
func Strong(s string) string  { return strongStyle.Render(s) }

// Title upper-cases s and underlines it with a muted rule of the same width.
func Title(s string) string {
	s = strings.ToUpper(s)
	return titleStyle.Render(s) + "\n" + mutedStyle.Render(strings.Repeat("─", lipgloss.Width(s)))
}

// Visibility renders the is_active flag.
func Visibility(active bool) string {
	if active {
		return successStyle.Render("● active")
	}
	return mutedStyle.Render("○ hidden")
}
