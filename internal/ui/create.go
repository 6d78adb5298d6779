package ui

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/garenne/internal/api"
)

// placeholderAuthorID is sent as auteur_id on create. The server assigns the
// real author from the bearer token.
const placeholderAuthorID = "dummy"

// ficheDraft is the unvalidated form content. Coercion happens only in build.
type ficheDraft struct {
	Nom           string
	NumeroArrivee string
	Sexe          api.Sex
	PoidsActuel   string
	DateArrivee   string // YYYY-MM-DD
}

func newDraft(now time.Time) ficheDraft {
	return ficheDraft{
		Sexe:        api.SexMale,
		DateArrivee: now.UTC().Format(time.DateOnly),
	}
}

// build coerces the draft into a create payload. now becomes the creation
// timestamp.
func (d ficheDraft) build(now time.Time) (api.FicheCreate, error) {
	nom := strings.TrimSpace(d.Nom)
	if nom == "" {
		return api.FicheCreate{}, errors.New("Le nom est obligatoire")
	}

	numero, err := strconv.Atoi(strings.TrimSpace(d.NumeroArrivee))
	if err != nil {
		return api.FicheCreate{}, errors.New("Le numéro d'arrivée doit être un nombre entier")
	}

	var poids *int
	if raw := strings.TrimSpace(d.PoidsActuel); raw != "" {
		grams, err := strconv.Atoi(raw)
		if err != nil || grams < 0 {
			return api.FicheCreate{}, errors.New("Le poids doit être un nombre entier positif (grammes)")
		}
		poids = &grams
	}

	arrival, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(d.DateArrivee), time.UTC)
	if err != nil {
		return api.FicheCreate{}, errors.New("Date d'arrivée invalide (AAAA-MM-JJ)")
	}

	sexe := d.Sexe
	if sexe != api.SexFemale {
		sexe = api.SexMale
	}

	return api.FicheCreate{
		Nom:                    nom,
		NumeroArrivee:          numero,
		Sexe:                   sexe,
		PoidsActuel:            poids,
		DateCreationFiche:      now.UTC(),
		DateArriveeAssociation: arrival,
		AuteurID:               placeholderAuthorID,
	}, nil
}

type formField int

const (
	fieldNom formField = iota
	fieldNumero
	fieldSexe
	fieldPoids
	fieldDate
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldNom:    "Nom",
	fieldNumero: "N° d'arrivée",
	fieldSexe:   "Sexe",
	fieldPoids:  "Poids (g)",
	fieldDate:   "Arrivée",
}

// createForm backs the create view. inputs[fieldSexe] is unused; the sex is
// a toggle.
type createForm struct {
	inputs  [fieldCount]textinput.Model
	sexe    api.Sex
	focused formField
}

func newCreateForm(now time.Time) createForm {
	f := createForm{}
	f.inputs[fieldNom] = newInput("Pompon", 80)
	f.inputs[fieldNumero] = newInput("123", 10)
	f.inputs[fieldPoids] = newInput("optionnel", 6)
	f.inputs[fieldDate] = newInput("AAAA-MM-JJ", 10)
	f.reset(now)
	return f
}

// reset restores the defaults and focuses the name field.
func (f *createForm) reset(now time.Time) {
	d := newDraft(now)
	f.inputs[fieldNom].SetValue(d.Nom)
	f.inputs[fieldNumero].SetValue(d.NumeroArrivee)
	f.inputs[fieldPoids].SetValue(d.PoidsActuel)
	f.inputs[fieldDate].SetValue(d.DateArrivee)
	f.sexe = d.Sexe
	f.focus(fieldNom)
}

func (f createForm) draft() ficheDraft {
	return ficheDraft{
		Nom:           f.inputs[fieldNom].Value(),
		NumeroArrivee: f.inputs[fieldNumero].Value(),
		Sexe:          f.sexe,
		PoidsActuel:   f.inputs[fieldPoids].Value(),
		DateArrivee:   f.inputs[fieldDate].Value(),
	}
}

func (f *createForm) focus(field formField) {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.focused = field
	if field != fieldSexe {
		f.inputs[field].Focus()
	}
}

func (f *createForm) next() { f.focus((f.focused + 1) % fieldCount) }
func (f *createForm) prev() { f.focus((f.focused + fieldCount - 1) % fieldCount) }

func (f *createForm) toggleSex() {
	if f.sexe == api.SexMale {
		f.sexe = api.SexFemale
	} else {
		f.sexe = api.SexMale
	}
}

// ficheCreatedMsg carries the outcome of a create call.
type ficheCreatedMsg struct {
	fiche api.Fiche
	err   error
}

func createFicheCmd(ctx context.Context, client api.Service, payload api.FicheCreate) tea.Cmd {
	return func() tea.Msg {
		fiche, err := client.CreateFiche(ctx, payload)
		return ficheCreatedMsg{fiche: fiche, err: err}
	}
}

// handleCreateKey processes keyboard input for the create view.
func (m Model) handleCreateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.create.reset(m.now())
		m.view = ViewDashboard
		return m, nil
	case key.Matches(msg, m.keys.FormLogout):
		m.create.reset(m.now())
		m.logout()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		return m.submitCreate()
	case key.Matches(msg, m.keys.NextField):
		m.create.next()
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		m.create.prev()
		return m, nil
	}

	if m.create.focused == fieldSexe {
		if key.Matches(msg, m.keys.Toggle) {
			m.create.toggleSex()
		}
		return m, nil
	}

	var cmd tea.Cmd
	field := m.create.focused
	m.create.inputs[field], cmd = m.create.inputs[field].Update(msg)
	return m, cmd
}

// submitCreate checks required fields and sends the record. A draft that
// fails the checks sets the banner and sends nothing.
func (m Model) submitCreate() (tea.Model, tea.Cmd) {
	m.errMsg = ""
	payload, err := m.create.draft().build(m.now())
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	m.loading = true
	return m, createFicheCmd(m.ctx, m.client, payload)
}

func (m Model) handleFicheCreated(msg ficheCreatedMsg) (tea.Model, tea.Cmd) {
	// A result that outlived its session must not touch a pending login.
	if m.view == ViewLogin {
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		if api.IsUnauthorized(msg.err) {
			m.logout()
			return m, nil
		}
		m.setError(msg.err, "Erreur lors de la création")
		return m, nil
	}

	m.log.Info().Str("fiche_id", msg.fiche.ID).Msg("fiche created")
	m.create.reset(m.now())
	m.view = ViewDashboard
	return m, m.startReload()
}

// renderCreate renders the new-record form.
func (m Model) renderCreate() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Nouvelle fiche lapin"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", FormBoxWidth-6)))
	b.WriteString("\n\n")

	for field := formField(0); field < fieldCount; field++ {
		focused := m.create.focused == field
		b.WriteString(m.renderLabel(fieldLabels[field], focused))
		if field == fieldSexe {
			b.WriteString(m.renderSexToggle(focused))
		} else {
			b.WriteString(m.create.inputs[field].View())
		}
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString(styles.InfoText.Render("Création..."))
		b.WriteString("\n\n")
	}
	b.WriteString(styles.FaintText.Render("Enter: Créer  •  Tab: Champ suivant  •  Esc: Annuler"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 2).
		Width(FormBoxWidth).
		Render(b.String())

	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box)
}

func (m Model) renderSexToggle(focused bool) string {
	styles := m.theme.Styles()
	parts := make([]string, 0, 2)
	for _, sex := range []api.Sex{api.SexMale, api.SexFemale} {
		if sex == m.create.sexe {
			parts = append(parts, styles.SexBadge(sex).Render(sex.Label()))
			continue
		}
		parts = append(parts, styles.FaintText.Render(" "+sex.Label()+" "))
	}
	out := strings.Join(parts, " ")
	if focused {
		out += styles.FaintText.Render("  (espace)")
	}
	return out
}
