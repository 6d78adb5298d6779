// Package app provides the orchestration layer for the garenne application.
//
// # Overview
//
// This package wires together configuration, logging, the session store, the
// API client and the UI. It is the composition root: every dependency is
// built here and handed down explicitly.
//
// # Initialization
//
// Setup performs the steps shared by the TUI and the command line:
//
//  1. Load configuration from ~/.config/garenne/config.toml (or the given path)
//  2. Apply the API URL override from Options
//  3. Open the zerolog log file
//  4. Create the session.FileStore that holds the bearer token
//  5. Build the api.Client over that store
//  6. Load user preferences (theme, last username)
//
// Run then starts the Bubble Tea UI and blocks until the user quits.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read garenne config
//	       ├─────> logging.Open()       Log file
//	       ├─────> session.NewFileStore Token storage
//	       ├─────> api.NewClient()      HTTP client over the store
//	       ├─────> prefs.Load()         Theme and username
//	       └─────> ui.Run()             Start TUI (blocks)
//
// # Error Handling
//
// Only setup failures are fatal: an unreadable or invalid config file, an
// unwritable log directory or a malformed API URL. Everything that happens
// against the API afterwards is reported inside the UI.
package app
