package ui

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/garenne/internal/api"
	"github.com/five82/garenne/internal/session"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// fakeService records network calls and serves canned results.
type fakeService struct {
	store *session.MemoryStore

	mu        sync.Mutex
	calls     []string
	fiches    []api.Fiche
	listErr   error
	loginErr  error
	createErr error
	deleteErr error
	created   []api.FicheCreate
	deleted   []string
	listCtxs  []context.Context
}

var _ api.Service = (*fakeService)(nil)

func newFakeService(token string, fiches ...api.Fiche) *fakeService {
	return &fakeService{store: session.NewMemoryStore(token), fiches: fiches}
}

func (f *fakeService) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeService) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeService) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *fakeService) Token() (string, bool) { return f.store.Token() }

func (f *fakeService) Login(_ context.Context, username, password string) (api.AuthToken, error) {
	f.record("login")
	if f.loginErr != nil {
		return api.AuthToken{}, f.loginErr
	}
	token := "token-for-" + username
	_ = f.store.SetToken(token)
	return api.AuthToken{AccessToken: token}, nil
}

func (f *fakeService) Logout() error {
	return f.store.ClearToken()
}

func (f *fakeService) ListFiches(ctx context.Context) ([]api.Fiche, error) {
	f.record("list")
	f.mu.Lock()
	f.listCtxs = append(f.listCtxs, ctx)
	out := append([]api.Fiche(nil), f.fiches...)
	err := f.listErr
	f.mu.Unlock()
	if ctx.Err() != nil {
		return nil, &api.Error{Kind: api.KindTransport, Message: "network error: " + ctx.Err().Error(), Err: ctx.Err()}
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (f *fakeService) CreateFiche(_ context.Context, fiche api.FicheCreate) (api.Fiche, error) {
	f.record("create")
	if f.createErr != nil {
		return api.Fiche{}, f.createErr
	}
	f.mu.Lock()
	f.created = append(f.created, fiche)
	f.mu.Unlock()
	return api.Fiche{ID: "new", Nom: fiche.Nom, NumeroArrivee: fiche.NumeroArrivee}, nil
}

func (f *fakeService) DeleteFiche(_ context.Context, id string) error {
	f.record("delete " + id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	f.deleted = append(f.deleted, id)
	f.mu.Unlock()
	return nil
}

func (f *fakeService) PhotoURL(ref string) string {
	if ref == "" {
		ref = "default-rabbit.jpg"
	}
	return "http://localhost:5001/photos/" + ref
}

// newTestModel builds a sized model over svc with a fixed clock.
func newTestModel(t *testing.T, svc *fakeService) Model {
	t.Helper()
	m := New(Options{
		Client:    svc,
		Logger:    zerolog.Nop(),
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
		Username:  "admin",
		Now:       func() time.Time { return fixedNow },
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

// send delivers msg and then runs every resulting command to completion,
// feeding the produced messages back into the model.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	return drain(t, next.(Model), cmd)
}

func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatalf("command queue did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			updated, more := m.Update(msg)
			m = updated.(Model)
			queue = append(queue, more)
		}
	}
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	tabKey   = tea.KeyMsg{Type: tea.KeyTab}
	ctrlLKey = tea.KeyMsg{Type: tea.KeyCtrlL}
)

func sampleFiches() []api.Fiche {
	grams := 1800
	return []api.Fiche{
		{ID: "a1", Nom: "Caramel", NumeroArrivee: 42, Sexe: api.SexFemale, PoidsActuel: &grams},
		{ID: "b2", Nom: "Pompon", NumeroArrivee: 123, Sexe: api.SexMale},
		{ID: "c3", Nom: "Noisette", NumeroArrivee: 1042, Sexe: api.SexFemale},
	}
}
