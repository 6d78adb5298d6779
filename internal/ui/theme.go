package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/garenne/internal/api"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Main content panels
	SurfaceAlt string // Secondary surfaces
	FocusBg    string // Focus/active states

	// List colors
	SelectionBg   string
	SelectionText string

	// Border colors
	Border      string
	BorderMuted string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Badge colors keyed by sex
	SexColors map[api.Sex]string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Background: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)),

		Surface: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Banner: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Danger)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)),

		FocusPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)),

		sexColors:  t.SexColors,
		muted:      t.Muted,
		background: t.Background,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Background lipgloss.Style
	Surface    lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header    lipgloss.Style
	Banner    lipgloss.Style
	Logo      lipgloss.Style
	Selected  lipgloss.Style
	Pane      lipgloss.Style
	FocusPane lipgloss.Style

	sexColors  map[api.Sex]string
	muted      string
	background string
}

// SexBadge returns a badge style for the given sex.
func (s Styles) SexBadge(sex api.Sex) lipgloss.Style {
	color := s.sexColors[sex]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// Theme definitions

var themes = map[string]Theme{
	"Prairie": prairieTheme(),
	"Terrier": terrierTheme(),
}

var themeOrder = []string{"Prairie", "Terrier"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return prairieTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func prairieTheme() Theme {
	// Tailwind emerald/green palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Prairie",

		Background: "#022c22", // emerald-950
		Surface:    "#064e3b", // emerald-900
		SurfaceAlt: "#065f46", // emerald-800
		FocusBg:    "#047857", // emerald-700

		SelectionBg:   "#059669", // emerald-600
		SelectionText: "#ecfdf5", // emerald-50

		Border:      "#047857", // emerald-700
		BorderMuted: "#065f46", // emerald-800
		BorderFocus: "#34d399", // emerald-400

		Text:    "#ecfdf5", // emerald-50
		Muted:   "#a7f3d0", // emerald-200
		Faint:   "#6ee7b7", // emerald-300
		Accent:  "#34d399", // emerald-400
		Success: "#4ade80", // green-400
		Warning: "#fb923c", // orange-400 (carrot)
		Danger:  "#f87171", // red-400
		Info:    "#2dd4bf", // teal-400

		SexColors: map[api.Sex]string{
			api.SexMale:   "#60a5fa", // blue-400
			api.SexFemale: "#f472b6", // pink-400
		},
	}
}

func terrierTheme() Theme {
	// Tailwind stone/amber palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Terrier",

		Background: "#0c0a09", // stone-950
		Surface:    "#1c1917", // stone-900
		SurfaceAlt: "#292524", // stone-800
		FocusBg:    "#44403c", // stone-700

		SelectionBg:   "#b45309", // amber-700
		SelectionText: "#fafaf9", // stone-50

		Border:      "#44403c", // stone-700
		BorderMuted: "#292524", // stone-800
		BorderFocus: "#fbbf24", // amber-400

		Text:    "#f5f5f4", // stone-100
		Muted:   "#a8a29e", // stone-400
		Faint:   "#78716c", // stone-500
		Accent:  "#fbbf24", // amber-400
		Success: "#84cc16", // lime-500
		Warning: "#f97316", // orange-500
		Danger:  "#ef4444", // red-500
		Info:    "#38bdf8", // sky-400

		SexColors: map[api.Sex]string{
			api.SexMale:   "#0ea5e9", // sky-500
			api.SexFemale: "#e879f9", // fuchsia-400
		},
	}
}
