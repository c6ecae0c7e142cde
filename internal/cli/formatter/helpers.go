package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#928374")).
	Padding(1, 2)

// RenderCard frames body in a rounded border, with the name of the item on
// top when one is given.
func RenderCard(name, body string) string {
	if name == "" {
		return cardStyle.Render(body)
	}
	return cardStyle.Render(titleStyle.Render(strings.ToUpper(name)) + "\n\n" + body)
}

// Age describes how long ago t was, relative to now.
func Age(t time.Time) string {
	return AgeAt(t, time.Now())
}

// AgeAt is Age with an explicit clock. Anything older than a day, or in the
// future, prints as a date.
func AgeAt(t, now time.Time) string {
	switch d := now.Sub(t); {
	case d < 0 || d >= 24*time.Hour:
		return t.Format("Jan 2, 2006")
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}

// ShortID keeps the first 8 characters of a uuid, muted.
func ShortID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return mutedStyle.Render(id)
}

func optional(s *string) string {
	if s == nil || *s == "" {
		return mutedStyle.Render("--")
	}
	return *s
}
