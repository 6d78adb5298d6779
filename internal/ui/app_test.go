package ui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/garenne/internal/api"
	"github.com/five82/garenne/internal/prefs"
)

func unauthorized() error {
	return &api.Error{Status: 401, Kind: api.KindUnauthorized, Message: "Could not validate credentials"}
}

func loggedIn(t *testing.T, fiches ...api.Fiche) (Model, *fakeService) {
	t.Helper()
	svc := newFakeService("tok", fiches...)
	m := newTestModel(t, svc)
	m = drain(t, m, m.Init())
	require.Equal(t, ViewDashboard, m.CurrentView())
	svc.ResetCalls()
	return m, svc
}

func TestNew_StartsOnLoginWithoutToken(t *testing.T) {
	svc := newFakeService("")
	m := newTestModel(t, svc)

	assert.Equal(t, ViewLogin, m.CurrentView())
	assert.Nil(t, m.Init())
	assert.Empty(t, svc.Calls())
}

func TestNew_StartsOnDashboardWithTokenAndFetches(t *testing.T) {
	svc := newFakeService("stale-but-present", sampleFiches()...)
	m := newTestModel(t, svc)
	require.Equal(t, ViewDashboard, m.CurrentView())

	m = drain(t, m, m.Init())
	assert.Equal(t, []string{"list"}, svc.Calls())
	assert.Len(t, m.fiches, 3)
	assert.False(t, m.loading)
}

func TestLogin_SuccessStoresTokenAndFetches(t *testing.T) {
	svc := newFakeService("", sampleFiches()...)
	m := newTestModel(t, svc)

	// Username is prefilled, so the password field has focus.
	m = send(t, m, keyRunes("adminpass"))

	next, cmd := m.Update(enterKey)
	m = next.(Model)
	assert.True(t, m.loading, "loading is set before login resolves")
	m = drain(t, m, cmd)

	assert.Equal(t, ViewDashboard, m.CurrentView())
	token, ok := svc.Token()
	assert.True(t, ok)
	assert.NotEmpty(t, token)
	assert.Equal(t, []string{"login", "list"}, svc.Calls())
	assert.Len(t, m.fiches, 3)
	assert.False(t, m.loading)
	assert.Empty(t, m.login.password(), "password is cleared after login")

	saved := prefs.Load(m.prefsPath)
	assert.Equal(t, "admin", saved.Username)
}

func TestLogin_FailureKeepsViewAndToken(t *testing.T) {
	svc := newFakeService("")
	svc.loginErr = &api.Error{Status: 404, Kind: api.KindNotFound, Message: "User not found"}
	m := newTestModel(t, svc)

	m = send(t, m, keyRunes("wrong"))
	m = send(t, m, enterKey)

	assert.Equal(t, ViewLogin, m.CurrentView())
	_, ok := svc.Token()
	assert.False(t, ok)
	assert.Equal(t, "User not found", m.errMsg)
	assert.False(t, m.loading)
	assert.Equal(t, []string{"login"}, svc.Calls())
}

func TestLogin_FailureKeepsExistingToken(t *testing.T) {
	m, svc := loggedIn(t, sampleFiches()...)
	m = send(t, m, keyRunes("L"))
	require.Equal(t, ViewLogin, m.CurrentView())

	// Another client on the same session file logs in meanwhile.
	require.NoError(t, svc.store.SetToken("other-session"))
	svc.loginErr = &api.Error{Status: 401, Kind: api.KindUnauthorized, Message: "Incorrect password"}

	m = send(t, m, keyRunes("wrong"))
	m = send(t, m, enterKey)

	assert.Equal(t, ViewLogin, m.CurrentView())
	assert.Equal(t, "Incorrect password", m.errMsg)
	token, ok := svc.Token()
	assert.True(t, ok)
	assert.Equal(t, "other-session", token)
	assert.Equal(t, []string{"login"}, svc.Calls())
}

func TestLogin_IgnoredWhileLoading(t *testing.T) {
	svc := newFakeService("")
	m := newTestModel(t, svc)
	m.loading = true

	next, cmd := m.Update(enterKey)
	assert.Nil(t, cmd)
	assert.Equal(t, ViewLogin, next.(Model).CurrentView())
}

func TestLogin_StartResetsBanner(t *testing.T) {
	svc := newFakeService("")
	m := newTestModel(t, svc)
	m.errMsg = "previous failure"

	next, _ := m.Update(enterKey)
	assert.Empty(t, next.(Model).errMsg)
}

func TestLogout_ClearsSessionAndList(t *testing.T) {
	m, svc := loggedIn(t, sampleFiches()...)
	require.NotEmpty(t, m.fiches)

	m = send(t, m, keyRunes("L"))

	assert.Equal(t, ViewLogin, m.CurrentView())
	_, ok := svc.Token()
	assert.False(t, ok)
	assert.Empty(t, m.fiches)
	assert.Empty(t, svc.Calls(), "logout is local")

	// Repeating is a no-op.
	m.logout()
	assert.Equal(t, ViewLogin, m.CurrentView())
	_, ok = svc.Token()
	assert.False(t, ok)
	assert.Empty(t, m.fiches)
}

func TestLogout_FromCreateView(t *testing.T) {
	m, svc := loggedIn(t, sampleFiches()...)
	m = send(t, m, keyRunes("n"))
	require.Equal(t, ViewCreate, m.CurrentView())

	// L is an ordinary letter while a field has focus.
	m = send(t, m, keyRunes("L"))
	require.Equal(t, ViewCreate, m.CurrentView())
	assert.Equal(t, "L", m.create.draft().Nom)
	_, ok := svc.Token()
	require.True(t, ok)

	m = send(t, m, ctrlLKey)
	assert.Equal(t, ViewLogin, m.CurrentView())
	_, ok = svc.Token()
	assert.False(t, ok)
	assert.Equal(t, newDraft(fixedNow), m.create.draft(), "draft is discarded")
	assert.Empty(t, svc.Calls(), "logout is local")
}

func TestCreate_LateResultKeepsLoginPending(t *testing.T) {
	m, svc := loggedIn(t, sampleFiches()...)
	m = send(t, m, keyRunes("n"))
	m = send(t, m, keyRunes("Pompon"))
	m = send(t, m, tabKey)
	m = send(t, m, keyRunes("7"))

	next, createCmd := m.Update(enterKey)
	m = next.(Model)
	require.NotNil(t, createCmd)

	m = send(t, m, ctrlLKey)
	require.Equal(t, ViewLogin, m.CurrentView())
	m = send(t, m, keyRunes("adminpass"))

	next, loginCmd := m.Update(enterKey)
	m = next.(Model)
	require.True(t, m.loading)

	// The create request finishes while the login is still in flight.
	m = send(t, m, createCmd())
	assert.True(t, m.loading)
	assert.Equal(t, ViewLogin, m.CurrentView())

	next, cmd := m.Update(enterKey)
	m = next.(Model)
	assert.Nil(t, cmd, "second submit is ignored")

	m = drain(t, m, loginCmd)
	assert.Equal(t, ViewDashboard, m.CurrentView())
	logins := 0
	for _, call := range svc.Calls() {
		if call == "login" {
			logins++
		}
	}
	assert.Equal(t, 1, logins)
}

func TestCreate_SubmitsCoercedPayloadThenReloads(t *testing.T) {
	m, svc := loggedIn(t, sampleFiches()...)

	m = send(t, m, keyRunes("n"))
	require.Equal(t, ViewCreate, m.CurrentView())

	m = send(t, m, keyRunes("Pompon"))
	m = send(t, m, tabKey)
	m = send(t, m, keyRunes("123"))

	next, cmd := m.Update(enterKey)
	m = next.(Model)
	assert.True(t, m.loading)
	m = drain(t, m, cmd)

	assert.Equal(t, []string{"create", "list"}, svc.Calls())
	require.Len(t, svc.created, 1)
	got := svc.created[0]
	assert.Equal(t, "Pompon", got.Nom)
	assert.Equal(t, 123, got.NumeroArrivee)
	assert.Equal(t, api.SexMale, got.Sexe)
	assert.Nil(t, got.PoidsActuel)
	assert.Equal(t, "dummy", got.AuteurID)
	assert.True(t, got.DateCreationFiche.Equal(fixedNow))
	assert.True(t, got.DateArriveeAssociation.Equal(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)))

	assert.Equal(t, ViewDashboard, m.CurrentView())
	assert.Equal(t, newDraft(fixedNow), m.create.draft())
	assert.False(t, m.loading)
}

func TestCreate_ToggleSexAndWeight(t *testing.T) {
	m, svc := loggedIn(t)

	m = send(t, m, keyRunes("n"))
	m = send(t, m, keyRunes("Noisette"))
	m = send(t, m, tabKey)
	m = send(t, m, keyRunes("7"))
	m = send(t, m, tabKey)
	m = send(t, m, keyRunes(" "))
	m = send(t, m, tabKey)
	m = send(t, m, keyRunes("950"))
	m = send(t, m, enterKey)

	require.Len(t, svc.created, 1)
	assert.Equal(t, api.SexFemale, svc.created[0].Sexe)
	require.NotNil(t, svc.created[0].PoidsActuel)
	assert.Equal(t, 950, *svc.created[0].PoidsActuel)
	assert.Equal(t, ViewDashboard, m.CurrentView())
}

func TestCreate_InvalidDraftMakesNoCall(t *testing.T) {
	m, svc := loggedIn(t)

	m = send(t, m, keyRunes("n"))
	m = send(t, m, keyRunes("Pompon"))
	m = send(t, m, tabKey)
	m = send(t, m, keyRunes("douze"))
	m = send(t, m, enterKey)

	assert.Empty(t, svc.Calls())
	assert.Equal(t, ViewCreate, m.CurrentView())
	assert.Contains(t, m.errMsg, "numéro d'arrivée")
	assert.False(t, m.loading)
}

func TestCreate_ServerErrorKeepsForm(t *testing.T) {
	m, svc := loggedIn(t)
	svc.createErr = &api.Error{Status: 422, Kind: api.KindValidation, Message: "nom: field required"}

	m = send(t, m, keyRunes("n"))
	m = send(t, m, keyRunes("Pompon"))
	m = send(t, m, tabKey)
	m = send(t, m, keyRunes("5"))
	m = send(t, m, enterKey)

	assert.Equal(t, []string{"create"}, svc.Calls())
	assert.Equal(t, ViewCreate, m.CurrentView())
	assert.Equal(t, "nom: field required", m.errMsg)
	assert.Equal(t, "Pompon", m.create.draft().Nom)
	assert.False(t, m.loading)
}

func TestCreate_CancelResetsDraft(t *testing.T) {
	m, svc := loggedIn(t)

	m = send(t, m, keyRunes("n"))
	m = send(t, m, keyRunes("Pom"))
	m = send(t, m, escKey)

	assert.Equal(t, ViewDashboard, m.CurrentView())
	assert.Equal(t, newDraft(fixedNow), m.create.draft())
	assert.Empty(t, svc.Calls())
}

func TestDelete_ConfirmedDeletesThenReloads(t *testing.T) {
	m, svc := loggedIn(t, sampleFiches()...)
	m.errMsg = "old failure"

	m = send(t, m, keyRunes("j"))
	m = send(t, m, keyRunes("d"))
	require.NotNil(t, m.modal)
	assert.Empty(t, svc.Calls(), "nothing is sent before confirmation")

	m = send(t, m, keyRunes("y"))

	assert.Nil(t, m.modal)
	assert.Equal(t, []string{"delete b2", "list"}, svc.Calls())
	assert.Empty(t, m.errMsg)
}

func TestDelete_DeclinedChangesNothing(t *testing.T) {
	m, svc := loggedIn(t, sampleFiches()...)
	before := append([]api.Fiche(nil), m.fiches...)

	m = send(t, m, keyRunes("d"))
	require.NotNil(t, m.modal)
	m = send(t, m, keyRunes("n"))

	assert.Nil(t, m.modal)
	assert.Empty(t, svc.Calls())
	assert.Equal(t, before, m.fiches)
	assert.Equal(t, ViewDashboard, m.CurrentView())
}

func TestDelete_NothingSelected(t *testing.T) {
	m, _ := loggedIn(t)
	m = send(t, m, keyRunes("d"))
	assert.Nil(t, m.modal)
}

func TestUnauthorized_LogsOutFromEveryAction(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*fakeService)
		act   func(*testing.T, Model) Model
	}{
		{
			name:  "fetch",
			setup: func(f *fakeService) { f.listErr = unauthorized() },
			act: func(t *testing.T, m Model) Model {
				return send(t, m, keyRunes("r"))
			},
		},
		{
			name:  "create",
			setup: func(f *fakeService) { f.createErr = unauthorized() },
			act: func(t *testing.T, m Model) Model {
				m = send(t, m, keyRunes("n"))
				m = send(t, m, keyRunes("Pompon"))
				m = send(t, m, tabKey)
				m = send(t, m, keyRunes("1"))
				return send(t, m, enterKey)
			},
		},
		{
			name:  "delete",
			setup: func(f *fakeService) { f.deleteErr = unauthorized() },
			act: func(t *testing.T, m Model) Model {
				m = send(t, m, keyRunes("d"))
				return send(t, m, keyRunes("y"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, svc := loggedIn(t, sampleFiches()...)
			tt.setup(svc)

			m = tt.act(t, m)

			assert.Equal(t, ViewLogin, m.CurrentView())
			_, ok := svc.Token()
			assert.False(t, ok)
			assert.Empty(t, m.fiches)
			assert.False(t, m.loading)
		})
	}
}

func TestFetchError_SetsBannerAndKeepsList(t *testing.T) {
	m, svc := loggedIn(t, sampleFiches()...)
	svc.listErr = &api.Error{Kind: api.KindTransport, Message: "network error: connection refused"}

	m = send(t, m, keyRunes("r"))

	assert.Equal(t, ViewDashboard, m.CurrentView())
	assert.Equal(t, "network error: connection refused", m.errMsg)
	assert.Len(t, m.fiches, 3)
	assert.False(t, m.loading)
}

func TestReload_NewerReloadSupersedesInFlight(t *testing.T) {
	svc := newFakeService("tok", sampleFiches()...)
	m := newTestModel(t, svc)

	first := m.startReload()
	second := m.startReload()

	// The first request runs after being superseded; its context is gone.
	staleMsg := first()
	svc.fiches = sampleFiches()[:1]
	freshMsg := second()

	require.Len(t, svc.listCtxs, 2)
	assert.ErrorIs(t, svc.listCtxs[0].Err(), context.Canceled)

	next, _ := m.Update(freshMsg)
	m = next.(Model)
	next, _ = m.Update(staleMsg)
	m = next.(Model)

	assert.Empty(t, m.errMsg, "superseded failures are not reported")
	require.Len(t, m.fiches, 1)
	assert.Equal(t, "Caramel", m.fiches[0].Nom)
	assert.False(t, m.loading)
}

func TestReload_LateStaleResultDoesNotOverwrite(t *testing.T) {
	svc := newFakeService("tok")
	m := newTestModel(t, svc)

	_ = m.startReload()
	staleSeq := m.reload.seq
	fresh := m.startReload()
	m = drain(t, m, fresh)
	require.Empty(t, m.fiches)

	next, _ := m.Update(fichesLoadedMsg{seq: staleSeq, fiches: sampleFiches()})
	assert.Empty(t, next.(Model).fiches)
}

func TestReload_LogoutDropsInFlightResult(t *testing.T) {
	svc := newFakeService("tok", sampleFiches()...)
	m := newTestModel(t, svc)

	pending := m.startReload()
	m.logout()
	m = drain(t, m, pending)

	assert.Equal(t, ViewLogin, m.CurrentView())
	assert.Empty(t, m.fiches)
	assert.False(t, m.loading)
}

func TestSearch_FiltersWithoutRefetch(t *testing.T) {
	m, svc := loggedIn(t, sampleFiches()...)

	m = send(t, m, keyRunes("/"))
	require.True(t, m.searching)
	m = send(t, m, keyRunes("42"))
	m = send(t, m, enterKey)

	visible := m.visibleFiches()
	require.Len(t, visible, 2)
	assert.Equal(t, "Caramel", visible[0].Nom)
	assert.Equal(t, "Noisette", visible[1].Nom)
	assert.Len(t, m.fiches, 3, "the fetched list is untouched")
	assert.Empty(t, svc.Calls())

	m = send(t, m, escKey)
	assert.Len(t, m.visibleFiches(), 3)
}

func TestSelection_StaysInBounds(t *testing.T) {
	m, _ := loggedIn(t, sampleFiches()...)

	m = send(t, m, keyRunes("G"))
	assert.Equal(t, 2, m.selected)
	m = send(t, m, keyRunes("j"))
	assert.Equal(t, 2, m.selected)
	m = send(t, m, keyRunes("g"))
	assert.Equal(t, 0, m.selected)
	m = send(t, m, keyRunes("k"))
	assert.Equal(t, 0, m.selected)

	m = send(t, m, keyRunes("G"))
	m = send(t, m, keyRunes("/"))
	m = send(t, m, keyRunes("pompon"))
	assert.Equal(t, 0, m.selected)
	f, ok := m.selectedFiche()
	require.True(t, ok)
	assert.Equal(t, "b2", f.ID)
}

func TestThemeCyclePersists(t *testing.T) {
	m, _ := loggedIn(t)
	m = send(t, m, keyRunes("T"))

	assert.Equal(t, "Terrier", m.theme.Name)
	assert.Equal(t, "Terrier", prefs.Load(m.prefsPath).Theme)
}

func TestHelpOverlayClosesOnAnyKey(t *testing.T) {
	m, svc := loggedIn(t)
	m = send(t, m, keyRunes("?"))
	require.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Raccourcis clavier")

	m = send(t, m, keyRunes("r"))
	assert.False(t, m.showHelp)
	assert.Empty(t, svc.Calls(), "the closing key is swallowed")
}

func TestView_RendersEachScreen(t *testing.T) {
	svc := newFakeService("")
	m := newTestModel(t, svc)
	assert.Contains(t, m.View(), "SPI LOEN")

	m, _ = loggedIn(t, sampleFiches()...)
	out := m.View()
	assert.Contains(t, out, "Caramel")
	assert.Contains(t, out, "3 fiches")

	m = send(t, m, keyRunes("n"))
	assert.Contains(t, m.View(), "Nouvelle fiche lapin")

	m = send(t, m, escKey)
	m = send(t, m, keyRunes("d"))
	assert.Contains(t, m.View(), "supprimer cette fiche")
}

func TestView_NotReadyBeforeWindowSize(t *testing.T) {
	m := New(Options{
		Client:    newFakeService(""),
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	assert.Equal(t, "Chargement...", m.View())
}

func TestForceQuitCancelsReload(t *testing.T) {
	svc := newFakeService("tok")
	m := newTestModel(t, svc)
	pending := m.startReload()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_ = pending()
	require.Len(t, svc.listCtxs, 1)
	assert.ErrorIs(t, svc.listCtxs[0].Err(), context.Canceled)
}
