package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/garenne/internal/api"
)

// reloadState coalesces list reloads. Every reload takes the next sequence
// number and cancels the one in flight; only a result carrying the current
// sequence is applied.
type reloadState struct {
	seq    uint64
	cancel context.CancelFunc
}

// reloadRequestMsg asks the model to start a reload. Init uses it because
// Init cannot record reload state on the model.
type reloadRequestMsg struct{}

// fichesLoadedMsg carries the outcome of one reload.
type fichesLoadedMsg struct {
	seq    uint64
	fiches []api.Fiche
	err    error
}

func requestReload() tea.Msg { return reloadRequestMsg{} }

// startReload supersedes any reload in flight and fetches the full list.
func (m *Model) startReload() tea.Cmd {
	m.cancelReload()
	ctx, cancel := context.WithCancel(m.ctx)
	m.reload.cancel = cancel
	seq := m.reload.seq
	m.loading = true

	client := m.client
	return func() tea.Msg {
		defer cancel()
		fiches, err := client.ListFiches(ctx)
		return fichesLoadedMsg{seq: seq, fiches: fiches, err: err}
	}
}

// cancelReload aborts the reload in flight, if any, and invalidates its
// result.
func (m *Model) cancelReload() {
	if m.reload.cancel != nil {
		m.reload.cancel()
		m.reload.cancel = nil
	}
	m.reload.seq++
}

func (m Model) handleFichesLoaded(msg fichesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.reload.seq {
		m.log.Debug().Uint64("seq", msg.seq).Uint64("current", m.reload.seq).Msg("dropping superseded reload")
		return m, nil
	}
	m.reload.cancel = nil
	m.loading = false

	if msg.err != nil {
		if api.IsUnauthorized(msg.err) {
			m.log.Info().Msg("session rejected, logging out")
			m.logout()
			return m, nil
		}
		m.setError(msg.err, "Erreur lors du chargement des fiches")
		return m, nil
	}

	m.fiches = msg.fiches
	m.clampSelection()
	m.refreshDetail()
	return m, nil
}
