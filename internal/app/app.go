package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/five82/garenne/internal/api"
	"github.com/five82/garenne/internal/config"
	"github.com/five82/garenne/internal/logging"
	"github.com/five82/garenne/internal/prefs"
	"github.com/five82/garenne/internal/session"
	"github.com/five82/garenne/internal/ui"
)

// Options configure the garenne application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/garenne/prefs.toml
	APIURL     string // wins over the config file and GARENNE_API_URL
}

// Env holds the wired dependencies shared by the TUI and the CLI commands.
type Env struct {
	Config  config.Config
	Log     zerolog.Logger
	Session *session.FileStore
	Client  *api.Client
	Prefs   prefs.Prefs

	prefsPath string
	closeLog  func() error
}

// Setup loads configuration and builds the logger, session store and API
// client. Callers must Close the returned Env.
func Setup(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.APIURL); v != "" {
		cfg.APIURL = v
	}

	logger, closeLog, err := logging.Open(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	store := session.NewFileStore(cfg.SessionPath)
	client, err := api.NewClient(cfg.APIURL, store,
		api.WithLogger(logger.With().Str("component", "api").Logger()),
		api.WithTimeout(cfg.RequestTimeout),
		api.WithPhotos(cfg.PhotoPrefix, cfg.PlaceholderPhoto),
	)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("init api client: %w", err)
	}

	prefsPath := opts.PrefsPath
	if strings.TrimSpace(prefsPath) == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger.Info().
		Str("api_url", client.BaseURL()).
		Str("session", store.Path()).
		Msg("garenne starting")

	return &Env{
		Config:    cfg,
		Log:       logger,
		Session:   store,
		Client:    client,
		Prefs:     prefs.Load(prefsPath),
		prefsPath: prefsPath,
		closeLog:  closeLog,
	}, nil
}

// PrefsPath returns the preferences file in use.
func (e *Env) PrefsPath() string {
	return e.prefsPath
}

// Close releases the log file.
func (e *Env) Close() error {
	if e == nil || e.closeLog == nil {
		return nil
	}
	return e.closeLog()
}

// Run boots the garenne TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    env.Client,
		Logger:    env.Log.With().Str("component", "ui").Logger(),
		ThemeName: env.Prefs.Theme,
		PrefsPath: env.prefsPath,
		Username:  env.Prefs.Username,
	}
	if err := ui.Run(uiOpts); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
