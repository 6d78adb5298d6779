package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/sethvargo/go-envconfig"
)

// Config captures everything garenne needs to reach the shelter API and keep
// its local state.
type Config struct {
	APIURL           string
	PhotoPrefix      string
	PlaceholderPhoto string
	SessionPath      string
	LogPath          string
	LogLevel         string
	RequestTimeout   time.Duration
}

// EnvAPIURL overrides api_url when set.
const EnvAPIURL = "GARENNE_API_URL"

// envOverrides are read after the file. Empty values leave the file or
// default in place.
type envOverrides struct {
	APIURL         string        `env:"GARENNE_API_URL"`
	SessionPath    string        `env:"GARENNE_SESSION_PATH"`
	LogPath        string        `env:"GARENNE_LOG_PATH"`
	LogLevel       string        `env:"GARENNE_LOG_LEVEL"`
	RequestTimeout time.Duration `env:"GARENNE_REQUEST_TIMEOUT"`
}

const (
	defaultConfigPath       = "~/.config/garenne/config.toml"
	defaultAPIURL           = "http://localhost:5001"
	defaultPhotoPrefix      = "/photos/"
	defaultPlaceholderPhoto = "default-rabbit.jpg"
	defaultSessionPath      = "~/.config/garenne/session.toml"
	defaultLogPath          = "~/.local/state/garenne/garenne.log"
	defaultLogLevel         = "info"
	defaultRequestTimeout   = 10 * time.Second
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:           defaultAPIURL,
		PhotoPrefix:      defaultPhotoPrefix,
		PlaceholderPhoto: defaultPlaceholderPhoto,
		SessionPath:      mustExpand(defaultSessionPath),
		LogPath:          mustExpand(defaultLogPath),
		LogLevel:         defaultLogLevel,
		RequestTimeout:   defaultRequestTimeout,
	}
}

// Load locates and parses the garenne config, falling back to defaults when
// missing. GARENNE_API_URL wins over the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := applyEnv(&cfg); err != nil {
				return Config{}, err
			}
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL           string `toml:"api_url"`
		PhotoPrefix      string `toml:"photo_prefix"`
		PlaceholderPhoto string `toml:"placeholder_photo"`
		SessionPath      string `toml:"session_path"`
		LogPath          string `toml:"log_path"`
		LogLevel         string `toml:"log_level"`
		RequestTimeout   int    `toml:"request_timeout_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.PhotoPrefix); v != "" {
		cfg.PhotoPrefix = v
	}
	if v := strings.TrimSpace(raw.PlaceholderPhoto); v != "" {
		cfg.PlaceholderPhoto = v
	}
	if v := strings.TrimSpace(raw.SessionPath); v != "" {
		cfg.SessionPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		cfg.LogPath = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if raw.RequestTimeout > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeout) * time.Second
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process(context.Background(), &env); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	if v := strings.TrimSpace(env.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(env.SessionPath); v != "" {
		cfg.SessionPath = mustExpand(v)
	}
	if v := strings.TrimSpace(env.LogPath); v != "" {
		cfg.LogPath = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(env.LogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if env.RequestTimeout > 0 {
		cfg.RequestTimeout = env.RequestTimeout
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ to the home directory and returns an
// absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
