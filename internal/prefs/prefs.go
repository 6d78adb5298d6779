// Package prefs keeps the small amount of per-user state garenne remembers
// between runs: the colour theme and the last username that logged in.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/garenne/internal/config"
)

// Prefs is the content of prefs.toml.
type Prefs struct {
	Theme    string `toml:"theme"`
	Username string `toml:"username,omitempty"`
}

const (
	defaultPrefsPath = "~/.config/garenne/prefs.toml"
	defaultTheme     = "Prairie"
)

func DefaultPath() string {
	return defaultPrefsPath
}

// Load never fails: a missing, unreadable or malformed file yields defaults.
func Load(path string) Prefs {
	out := Prefs{Theme: defaultTheme}

	resolved, err := resolvePath(path)
	if err != nil {
		return out
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return out
	}

	var stored Prefs
	if err := toml.Unmarshal(data, &stored); err != nil {
		return out
	}
	if theme := strings.TrimSpace(stored.Theme); theme != "" {
		out.Theme = theme
	}
	out.Username = strings.TrimSpace(stored.Username)
	return out
}

// Save replaces the file at path. The write goes through a temporary file in
// the same directory so a concurrent reader never sees a partial file.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve prefs path: %w", err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("create temp prefs: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), resolved); err != nil {
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

// Update loads the current preferences, applies fn and saves the result, so
// callers only touch the fields they own.
func Update(path string, fn func(*Prefs)) error {
	p := Load(path)
	fn(&p)
	return Save(path, p)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	return config.ExpandPath(path)
}
