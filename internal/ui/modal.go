package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/garenne/internal/api"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// confirmDeleteMsg reports the answer to a delete confirmation.
type confirmDeleteMsg struct {
	fiche     api.Fiche
	confirmed bool
}

// confirmDeleteModal asks before a record is deleted.
type confirmDeleteModal struct {
	fiche api.Fiche
}

var _ Modal = confirmDeleteModal{}

func newConfirmDeleteModal(f api.Fiche) confirmDeleteModal {
	return confirmDeleteModal{fiche: f}
}

func (c confirmDeleteModal) Update(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Yes):
		return c, c.answer(true), true
	case key.Matches(msg, keys.No):
		return c, c.answer(false), true
	}
	return c, nil, false
}

func (c confirmDeleteModal) answer(ok bool) tea.Cmd {
	fiche := c.fiche
	return func() tea.Msg {
		return confirmDeleteMsg{fiche: fiche, confirmed: ok}
	}
}

func (c confirmDeleteModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.DangerText.Render("Supprimer la fiche"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 36)))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render("Êtes-vous sûr de vouloir supprimer cette fiche ?"))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Bold(true).Render(c.fiche.Nom))
	b.WriteString(styles.MutedText.Render("  #" + c.fiche.ArrivalNumber()))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("y/o: Oui  •  n/Esc: Non"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Danger)).
		Padding(1, 2).
		Width(60).
		Render(b.String())

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}

// ficheDeletedMsg carries the outcome of a delete call.
type ficheDeletedMsg struct {
	id  string
	err error
}

func (m Model) handleConfirmDelete(msg confirmDeleteMsg) (tea.Model, tea.Cmd) {
	if !msg.confirmed {
		return m, nil
	}
	m.errMsg = ""
	client, ctx, id := m.client, m.ctx, msg.fiche.ID
	return m, func() tea.Msg {
		return ficheDeletedMsg{id: id, err: client.DeleteFiche(ctx, id)}
	}
}

func (m Model) handleFicheDeleted(msg ficheDeletedMsg) (tea.Model, tea.Cmd) {
	if m.view == ViewLogin {
		return m, nil
	}
	if msg.err != nil {
		if api.IsUnauthorized(msg.err) {
			m.logout()
			return m, nil
		}
		m.setError(msg.err, "Erreur lors de la suppression")
		return m, nil
	}
	m.log.Info().Str("fiche_id", msg.id).Msg("fiche deleted")
	return m, m.startReload()
}
