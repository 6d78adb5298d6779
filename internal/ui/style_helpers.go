package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// barStyle renders segments of a full-width bar so that the spaces between
// styled words keep the bar's background. lipgloss resets the background
// after every rendered segment otherwise.
type barStyle struct {
	bg    lipgloss.Color
	space string
}

func newBarStyle(bgColor string) barStyle {
	bg := lipgloss.Color(bgColor)
	return barStyle{
		bg:    bg,
		space: lipgloss.NewStyle().Background(bg).Render(" "),
	}
}

// Render applies style on the bar background, word by word.
func (b barStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	wordStyle := style.Background(b.bg)
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = wordStyle.Render(w)
		}
	}
	return strings.Join(words, b.space)
}

// Space returns a single styled space.
func (b barStyle) Space() string {
	return b.space
}

// Join joins parts with a separator on the bar background.
func (b barStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, lipgloss.NewStyle().Background(b.bg).Render(sep))
}

// FillLine pads rendered content to width with the bar background.
func (b barStyle) FillLine(content string, width int) string {
	return lipgloss.NewStyle().Background(b.bg).Width(width).Render(content)
}
