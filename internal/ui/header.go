package ui

import (
	"fmt"
	"strings"
)

// renderMain renders the header, command bar, optional banner and the active
// view body.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	if banner := m.renderBanner(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}

	switch m.view {
	case ViewCreate:
		b.WriteString(m.renderCreate())
	default:
		b.WriteString(m.renderSearchLine())
		b.WriteString("\n")
		b.WriteString(m.renderDashboard(m.contentHeight()))
	}
	return b.String()
}

// contentHeight is the height left for the dashboard panes.
func (m Model) contentHeight() int {
	used := HeaderLines + 1 // search line
	if m.errMsg != "" {
		used += BannerLines
	}
	return max(m.height-used, 3)
}

// renderHeader renders the logo, record counts and session status on a
// single full-width bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bar := newBarStyle(m.theme.Surface)

	parts := []string{bar.Render(appTitle, styles.Logo)}

	total := len(m.fiches)
	shown := len(m.visibleFiches())
	count := fmt.Sprintf("%d fiches", total)
	if shown != total {
		count = fmt.Sprintf("%d/%d fiches", shown, total)
	}
	parts = append(parts, bar.Render(count, styles.Text))

	if m.loading {
		parts = append(parts, bar.Render("chargement…", styles.InfoText))
	}

	if label := m.sessionLabel(); label != "" {
		style := styles.MutedText
		if m.hasClaims && m.claims.Expired(m.now()) {
			style = styles.DangerText
		}
		parts = append(parts, bar.Render(label, style))
	}

	return bar.FillLine(bar.Join(parts, " │ "), m.width)
}

func (m Model) sessionLabel() string {
	var parts []string
	if m.username != "" {
		parts = append(parts, m.username)
	}
	if m.hasClaims {
		if m.claims.Role != "" {
			parts = append(parts, m.claims.Role)
		}
		if !m.claims.ExpiresAt.IsZero() {
			if m.claims.Expired(m.now()) {
				parts = append(parts, "session expirée")
			} else {
				parts = append(parts, "expire "+m.claims.ExpiresAt.Local().Format("15:04"))
			}
		}
	}
	return strings.Join(parts, " · ")
}

// renderCommandBar lists the keys available in the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	bar := newBarStyle(m.theme.SurfaceAlt)

	var items []string
	if m.view == ViewCreate {
		items = []string{"enter Créer", "tab Champ suivant", "esc Annuler", "ctrl+l Déconnexion"}
	} else {
		for _, binding := range m.keys.ShortHelp() {
			h := binding.Help()
			items = append(items, h.Key+" "+h.Desc)
		}
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		k, desc, _ := strings.Cut(item, " ")
		parts = append(parts, bar.Render(k, styles.WarningText)+bar.Space()+bar.Render(desc, styles.MutedText))
	}
	return bar.FillLine(bar.Join(parts, "  "), m.width)
}

// renderBanner renders the single error banner, if any.
func (m Model) renderBanner() string {
	if m.errMsg == "" {
		return ""
	}
	styles := m.theme.Styles()
	return styles.Banner.Width(max(m.width-4, 10)).Render(truncate(m.errMsg, max(m.width-6, 10)))
}

func (m Model) renderSearchLine() string {
	styles := m.theme.Styles()
	if m.searching {
		return styles.AccentText.Render("/ ") + m.search.View()
	}
	if term := m.search.Value(); term != "" {
		return styles.MutedText.Render("recherche: ") + styles.AccentText.Render(term) +
			styles.FaintText.Render("  (esc pour effacer)")
	}
	return styles.FaintText.Render("/ pour rechercher par nom ou numéro")
}
