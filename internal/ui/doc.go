// Package ui provides the terminal user interface for garenne.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea model (Model) that drives one of three
// mutually exclusive views:
//
//   - Login: username and password form. A successful login stores the token
//     through the API client and moves to the dashboard.
//   - Dashboard: the fetched list of fiches, a search line and a detail pane
//     for the selected record.
//   - Create: the new-record form.
//
// The model never talks to the network directly. Every API call runs inside a
// tea.Cmd against the api.Service it was given, and its outcome comes back as
// a message handled in Update.
//
// # Package Structure
//
//   - app.go: Model, Options, Update routing, logout and Run
//   - login.go, create.go: form state, submission commands and rendering
//   - dashboard.go: selection, search input and the list/detail panes
//   - filter.go: the client-side search filter
//   - reload.go: coalesced list reloads
//   - modal.go: the delete confirmation dialog
//   - header.go, help.go: chrome and the help overlay
//   - theme.go, keys.go: colors and key bindings
//
// # Reloads
//
// The list is never patched locally. Logging in, creating a record and
// deleting one each end in a full reload. Reloads are coalesced: starting a
// reload cancels the request in flight and bumps a sequence number, and a
// result whose sequence is no longer current is dropped.
//
// # Session Expiry
//
// Any fetch, create or delete that fails with api.KindUnauthorized clears the
// token and returns to the login view. Login failures only set the banner.
//
// # Errors
//
// A single banner shows the latest failure. It is replaced, never stacked,
// and cleared when login, create or delete starts a new attempt.
package ui
