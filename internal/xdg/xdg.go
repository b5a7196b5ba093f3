// Package xdg resolves XDG Base Directory paths for fieldkit.
// Configuration lives under the config dir; the persistent session cache
// (SQLite file, encrypted keyring files) lives under the state dir.
package xdg

import (
	"os"
	"path/filepath"
)

// appDir is the per-application subdirectory under each XDG base.
const appDir = "fieldkit"

// ConfigDir returns the XDG config directory for fieldkit.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/fieldkit when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	return resolve("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the XDG state directory for fieldkit.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.local/state/fieldkit when XDG_STATE_HOME is unset.
func StateDir() (string, error) {
	return resolve("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func resolve(envVar, homeFallback string) (string, error) {
	base := os.Getenv(envVar)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, homeFallback)
	}
	dir := filepath.Join(base, appDir)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
