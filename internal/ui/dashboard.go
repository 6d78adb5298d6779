package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/garenne/internal/api"
	"github.com/five82/garenne/internal/prefs"
)

// visibleFiches returns the fetched list narrowed by the search term.
func (m Model) visibleFiches() []api.Fiche {
	return FilterFiches(m.fiches, m.search.Value())
}

func (m Model) selectedFiche() (api.Fiche, bool) {
	items := m.visibleFiches()
	if m.selected < 0 || m.selected >= len(items) {
		return api.Fiche{}, false
	}
	return items[m.selected], true
}

func (m *Model) clampSelection() {
	count := len(m.visibleFiches())
	if m.selected >= count {
		m.selected = count - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// handleDashboardKey processes keyboard input for the dashboard view.
func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancelReload()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		theme := m.theme.Name
		m.updatePrefs(func(p *prefs.Prefs) { p.Theme = theme })
		m.refreshDetail()
		return m, nil

	case key.Matches(msg, m.keys.NewFiche):
		m.view = ViewCreate
		m.create.focus(m.create.focused)
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if f, ok := m.selectedFiche(); ok {
			m.modal = newConfirmDeleteModal(f)
		}
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m, m.startReload()

	case key.Matches(msg, m.keys.Logout):
		m.logout()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Escape):
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.clampSelection()
			m.refreshDetail()
		}
		return m, nil

	case key.Matches(msg, m.keys.HalfPageDown):
		m.detail.HalfPageDown()
		return m, nil

	case key.Matches(msg, m.keys.HalfPageUp):
		m.detail.HalfPageUp()
		return m, nil
	}

	count := len(m.visibleFiches())
	if count == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selected < count-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = count - 1
	default:
		return m, nil
	}
	m.refreshDetail()
	return m, nil
}

// handleSearchInput edits the search term. The list narrows as the user types.
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.searching = false
		m.search.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.clampSelection()
		m.refreshDetail()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.clampSelection()
	m.refreshDetail()
	return m, cmd
}

// refreshDetail re-renders the detail pane for the current selection.
func (m *Model) refreshDetail() {
	f, ok := m.selectedFiche()
	if !ok {
		m.detail.SetContent(m.theme.Styles().MutedText.Render("Aucune fiche sélectionnée"))
		m.detail.GotoTop()
		return
	}
	if m.detailFor != f.ID {
		m.detail.GotoTop()
	}
	m.detailFor = f.ID
	m.detail.SetContent(m.detailContent(f))
}

func (m Model) detailContent(f api.Fiche) string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(f.Nom))
	b.WriteString("  ")
	b.WriteString(styles.SexBadge(f.Sexe).Render(f.Sexe.Label()))
	b.WriteString("\n\n")

	row := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		b.WriteString(styles.MutedText.Render(padRight(label, DetailLabelWidth)))
		b.WriteString(styles.Text.Render(value))
		b.WriteString("\n")
	}

	row("N° d'arrivée", "#"+f.ArrivalNumber())
	row("Poids actuel", formatGrams(f.PoidsActuel))
	row("Arrivée", formatDate(f.DateArriveeAssociation))
	row("Fiche créée", formatDateTime(f.DateCreationFiche))
	row("Auteur", f.AuthorName())
	row("Photo", m.client.PhotoURL(f.Photo))

	extra := []struct{ label, value string }{
		{"Identification", f.NumeroIdentification},
		{"Naissance", formatDate(f.DateNaissance)},
		{"Poids idéal", optionalGrams(f.PoidsIdeal)},
		{"Vétérinaire", f.NomVeterinaire},
		{"Santé", f.ProblemesSante},
		{"Caractère", f.Caractere},
	}
	header := false
	for _, e := range extra {
		if strings.TrimSpace(e.value) == "" {
			continue
		}
		if !header {
			b.WriteString("\n")
			b.WriteString(styles.InfoText.Render("Suivi"))
			b.WriteString("\n")
			header = true
		}
		row(e.label, e.value)
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("id " + f.ID))
	return b.String()
}

// renderDashboard renders the record list and, when wide enough, the detail
// pane beside it.
func (m Model) renderDashboard(height int) string {
	styles := m.theme.Styles()
	items := m.visibleFiches()

	listWidth := m.width
	showDetail := m.width >= LayoutCompactWidth
	if showDetail {
		listWidth = m.width * ListPanePercent / 100
	}
	inner := max(listWidth-2, 10)
	rows := max(height-2, 1)

	var b strings.Builder
	switch {
	case len(items) == 0 && len(m.fiches) == 0 && m.loading:
		b.WriteString(styles.MutedText.Render("Chargement des fiches..."))
	case len(items) == 0 && len(m.fiches) == 0:
		b.WriteString(styles.MutedText.Render("Aucune fiche. Appuyez sur n pour en créer une."))
	case len(items) == 0:
		b.WriteString(styles.MutedText.Render("Aucune fiche ne correspond à la recherche."))
	default:
		start := 0
		if m.selected >= rows {
			start = m.selected - rows + 1
		}
		end := min(start+rows, len(items))
		for i := start; i < end; i++ {
			line := m.renderRow(items[i], inner)
			if i == m.selected {
				line = styles.Selected.Width(inner).Render(line)
			}
			b.WriteString(line)
			if i < end-1 {
				b.WriteString("\n")
			}
		}
	}

	list := styles.FocusPane.
		Width(inner).
		Height(rows).
		Render(b.String())
	if !showDetail {
		return list
	}

	detail := styles.Pane.
		Width(max(m.width-listWidth-2, 10)).
		Height(rows).
		Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
}

func (m Model) renderRow(f api.Fiche, width int) string {
	num := padRight("#"+f.ArrivalNumber(), 7)
	sex := "?"
	switch f.Sexe {
	case api.SexMale:
		sex = "♂"
	case api.SexFemale:
		sex = "♀"
	}
	weight := formatGrams(f.PoidsActuel)
	nameWidth := max(width-lipgloss.Width(num)-lipgloss.Width(weight)-4, 4)
	name := padRight(truncate(f.Nom, nameWidth), nameWidth)
	return fmt.Sprintf("%s%s %s %s", num, name, sex, weight)
}

func formatGrams(g *int) string {
	if g == nil {
		return "—"
	}
	return fmt.Sprintf("%d g", *g)
}

func optionalGrams(g *int) string {
	if g == nil {
		return ""
	}
	return formatGrams(g)
}

func formatDate(ts *api.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return ""
	}
	return ts.Format("02/01/2006")
}

func formatDateTime(ts *api.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return ""
	}
	return ts.Local().Format("02/01/2006 15:04")
}
