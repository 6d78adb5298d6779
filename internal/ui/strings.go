package ui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// truncate fits value into limit terminal cells, ending with "…" when it had
// to be cut. A non-positive limit only trims surrounding space.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || ansi.StringWidth(value) <= limit {
		return value
	}
	cut := strings.TrimRightFunc(ansi.Truncate(value, limit-1, ""), unicode.IsSpace)
	return cut + "…"
}

// padRight pads s with spaces up to width cells. Longer strings are returned
// unchanged.
func padRight(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
