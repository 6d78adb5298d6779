package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/garenne/internal/api"
	"github.com/five82/garenne/internal/prefs"
	"github.com/five82/garenne/internal/session"
)

// loginForm holds the credential inputs. Index 0 is the username.
type loginForm struct {
	inputs   [2]textinput.Model
	focusIdx int
}

func newLoginForm(username string) loginForm {
	user := newInput("admin", 64)
	user.SetValue(username)

	pass := newInput("••••••••", 128)
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	f := loginForm{inputs: [2]textinput.Model{user, pass}}
	if strings.TrimSpace(username) != "" {
		f.focusIdx = 1
	}
	f.inputs[f.focusIdx].Focus()
	return f
}

func (f loginForm) username() string { return strings.TrimSpace(f.inputs[0].Value()) }
func (f loginForm) password() string { return f.inputs[1].Value() }

func (f *loginForm) cycleFocus() {
	f.inputs[f.focusIdx].Blur()
	f.focusIdx = (f.focusIdx + 1) % len(f.inputs)
	f.inputs[f.focusIdx].Focus()
}

// loginResultMsg carries the outcome of a login attempt.
type loginResultMsg struct {
	username string
	token    api.AuthToken
	err      error
}

func loginCmd(ctx context.Context, client api.Service, username, password string) tea.Cmd {
	return func() tea.Msg {
		token, err := client.Login(ctx, username, password)
		return loginResultMsg{username: username, token: token, err: err}
	}
}

// handleLoginKey processes keyboard input for the login view.
func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		return m.submitLogin()
	case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.PrevField):
		m.login.cycleFocus()
		return m, nil
	}

	var cmd tea.Cmd
	idx := m.login.focusIdx
	m.login.inputs[idx], cmd = m.login.inputs[idx].Update(msg)
	return m, cmd
}

// submitLogin starts a login attempt. Submissions while a request is in
// flight are ignored.
func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	m.loading = true
	m.errMsg = ""
	return m, loginCmd(m.ctx, m.client, m.login.username(), m.login.password())
}

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.setError(msg.err, "Erreur de connexion")
		return m, nil
	}

	m.log.Info().Str("username", msg.username).Msg("logged in")
	m.username = msg.username
	m.login.inputs[1].SetValue("")
	m.setClaims(msg.token.AccessToken)
	username := m.username
	m.updatePrefs(func(p *prefs.Prefs) { p.Username = username })

	m.view = ViewDashboard
	return m, m.startReload()
}

func (m *Model) setClaims(token string) {
	claims, err := session.Inspect(token)
	if err != nil {
		m.claims, m.hasClaims = session.Claims{}, false
		return
	}
	m.claims, m.hasClaims = claims, true
}

func (m Model) updatePrefs(fn func(*prefs.Prefs)) {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Update(m.prefsPath, fn); err != nil {
		m.log.Warn().Err(err).Msg("save prefs")
	}
}

// renderLogin renders the centered login box.
func (m Model) renderLogin() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Logo.Render(appTitle))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Console d'administration"))
	b.WriteString("\n\n")

	if m.errMsg != "" {
		b.WriteString(styles.Banner.Width(FormBoxWidth - 8).Render(m.errMsg))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderLabel("Utilisateur", m.login.focusIdx == 0))
	b.WriteString(m.login.inputs[0].View())
	b.WriteString("\n\n")
	b.WriteString(m.renderLabel("Mot de passe", m.login.focusIdx == 1))
	b.WriteString(m.login.inputs[1].View())
	b.WriteString("\n\n")

	button := "[ Se connecter ]"
	if m.loading {
		button = "[ Connexion... ]"
	}
	b.WriteString(styles.AccentText.Bold(true).Render(button))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("Enter: Valider  •  Tab: Champ suivant  •  Ctrl+C: Quitter"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(FormBoxWidth).
		Render(b.String())

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
