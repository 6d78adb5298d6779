package ui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
)

// newInput builds a text input with the sizing used by every form. The cursor
// does not blink, so focus changes never schedule timer commands.
func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = FormInputWidth
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// renderLabel renders a fixed-width field label, highlighted when focused.
func (m Model) renderLabel(label string, focused bool) string {
	styles := m.theme.Styles()
	label = padRight(label, FormLabelWidth)
	if focused {
		return styles.AccentText.Bold(true).Render(label)
	}
	return styles.MutedText.Render(label)
}
