// Copyright (c) 2025 Field Kit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package storage provides the persistent key-value area that holds session
// credentials and the cached profile/site snapshot.
//
// Every backend implements Port. Values are plain strings; structured values
// (log type catalog, flags) are serialized by the caller. Clear always wipes
// the whole namespace, including keys this package does not know about.
package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"fieldkit/cli/internal/config"
	apperrors "fieldkit/cli/internal/errors"
	"fieldkit/cli/internal/xdg"

	"go.uber.org/zap"
)

// Port is the storage abstraction the auth actions depend on.
type Port interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
	// Clear removes every key in the storage area.
	Clear() error
}

// Backend is a Port that owns resources which must be released.
type Backend interface {
	Port
	Close() error
}

// Keys used for the session and profile cache.
const (
	KeyHost                = "host"
	KeyUsername            = "username"
	KeyPassword            = "password"
	KeyToken               = "token"
	KeyFarmName            = "farmName"
	KeyEmail               = "email"
	KeyUID                 = "uid"
	KeyMapboxAPIKey        = "mapboxAPIKey"
	KeySystemOfMeasurement = "systemOfMeasurement"
	KeyLogTypes            = "logTypes"
	KeyIsLoggedIn          = "isLoggedIn"
	KeyUseGeolocation      = "useGeolocation"
)

// opTimeout bounds a single network round trip for remote backends.
const opTimeout = 5 * time.Second

// SetOrRemove writes value under key, or removes key when value is empty.
func SetOrRemove(p Port, key, value string) error {
	if value == "" {
		return p.Remove(key)
	}
	return p.Set(key, value)
}

// Open builds the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (Backend, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Debug("opening session storage", zap.String("backend", cfg.Backend), zap.String("namespace", cfg.Namespace))

	var (
		b   Backend
		err error
	)
	switch cfg.Backend {
	case config.BackendMemory:
		b = NewMemory()
	case config.BackendSQLite, "":
		path := cfg.Path
		if path == "" {
			dir, derr := xdg.StateDir()
			if derr != nil {
				return nil, apperrors.Wrap(apperrors.StorageUnavailable, "resolve state dir", derr)
			}
			path = filepath.Join(dir, "session.db")
		}
		b, err = OpenSQLite(ctx, path, cfg.Namespace)
	case config.BackendPostgres:
		b, err = OpenPostgres(ctx, cfg.DSN, cfg.Namespace)
	case config.BackendKeyring:
		b, err = OpenKeyring(cfg.Namespace, cfg.Path)
	case config.BackendRedis:
		b, err = OpenRedis(ctx, cfg)
	default:
		return nil, apperrors.New(apperrors.ConfigInvalid, fmt.Sprintf("unknown storage backend %q", cfg.Backend))
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StorageUnavailable, "open "+cfg.Backend+" storage", err)
	}
	return b, nil
}
