// Copyright (c) 2025 Field Kit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package storage

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"fieldkit/cli/internal/xdg"

	"github.com/99designs/keyring"
)

// KeyringPasswordEnv supplies the passphrase for the encrypted file keyring
// so non-interactive runs never block on a prompt.
const KeyringPasswordEnv = "FIELDKIT_KEYRING_PASSWORD"

// Keyring stores every key as one item in the OS credential store.
// This backend is thread-safe.
type Keyring struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// NewKeyring wraps an already opened keyring.
func NewKeyring(ring keyring.Keyring) *Keyring {
	return &Keyring{ring: ring}
}

// OpenKeyring opens the platform credential store under serviceName.
// fileDir overrides where the encrypted file fallback keeps its items.
func OpenKeyring(serviceName, fileDir string) (*Keyring, error) {
	if fileDir == "" {
		dir, err := xdg.StateDir()
		if err != nil {
			return nil, err
		}
		fileDir = filepath.Join(dir, "keyring")
	}

	cfg := keyring.Config{
		ServiceName:     serviceName,
		AllowedBackends: allowedBackends(),
		PassPrefix:      serviceName,
		FileDir:         fileDir,
	}
	if pw := os.Getenv(KeyringPasswordEnv); pw != "" {
		cfg.FilePasswordFunc = keyring.FixedStringPrompt(pw)
	} else {
		cfg.FilePasswordFunc = keyring.TerminalPrompt
	}
	// Hint prefixes where supported to minimize namespace collisions
	if runtime.GOOS == "windows" {
		cfg.WinCredPrefix = serviceName
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		if runtime.GOOS == "darwin" {
			return nil, errors.New("macOS Keychain unavailable. Install 'pass' (brew install pass gnupg) or set storage.backend to sqlite")
		}
		return nil, err
	}
	return NewKeyring(ring), nil
}

// allowedBackends prefers the native store and falls back to an encrypted file.
func allowedBackends() []keyring.BackendType {
	switch runtime.GOOS {
	case "darwin":
		return []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend, keyring.FileBackend}
	case "windows":
		return []keyring.BackendType{keyring.WinCredBackend, keyring.FileBackend}
	default:
		return []keyring.BackendType{keyring.SecretServiceBackend, keyring.KWalletBackend, keyring.PassBackend, keyring.FileBackend}
	}
}

func (k *Keyring) Get(key string) (string, bool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	it, err := k.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(it.Data), true, nil
}

func (k *Keyring) Set(key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.ring.Set(keyring.Item{Key: key, Data: []byte(value)})
}

func (k *Keyring) Remove(key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.remove(key)
}

func (k *Keyring) remove(key string) error {
	if err := k.ring.Remove(key); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}

// Clear removes every item under the service name, not only the known keys.
func (k *Keyring) Clear() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	keys, err := k.ring.Keys()
	if err != nil {
		return err
	}
	var errs []error
	for _, key := range keys {
		if err := k.remove(key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (k *Keyring) Close() error { return nil }
