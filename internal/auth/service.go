// Copyright (c) 2025 Field Kit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth provides the session actions for the Field Kit CLI.
// It logs a user into a farmOS server, mirrors the session and the
// profile/site snapshot into the reactive store and persistent storage,
// and rehydrates or wipes that cache on later runs. Credential checks and
// token issuance belong to the farmOS client; this package only sequences
// calls and formats what the user sees.
package auth

import (
	"fieldkit/cli/internal/farmos"
	"fieldkit/cli/internal/storage"
	"fieldkit/cli/internal/store"

	"go.uber.org/zap"
)

// Store is the subset of the reactive store the actions write to.
type Store interface {
	SetFarmName(string)
	SetFarmURL(string)
	SetUsername(string)
	SetEmail(string)
	SetUID(string)
	SetMapboxAPIKey(string)
	SetSystemOfMeasurement(string)
	SetLogTypes([]store.LogType)
	SetLoginStatus(bool)
	SetUseGeolocation(bool)
	SetSessionStatus(store.SessionStatus)
	LogError(store.ErrorRecord)
	Snapshot() store.State
}

// Options configures a Service.
type Options struct {
	Storage storage.Port
	Store   Store
	Connect farmos.ConnectFunc
	// DevMode makes the first login candidate the same-origin development server.
	DevMode bool
	Logger  *zap.Logger
}

// Service centralizes session operations against the farmOS server,
// persistent storage and the reactive store.
type Service struct {
	storage storage.Port
	store   Store
	connect farmos.ConnectFunc
	devMode bool
	log     *zap.Logger
}

// New constructs a Service. A nil Logger discards output.
func New(opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		storage: opts.Storage,
		store:   opts.Store,
		connect: opts.Connect,
		devMode: opts.DevMode,
		log:     log.Named("auth"),
	}
}

// Status returns the session status held by the store.
func (s *Service) Status() store.SessionStatus {
	return s.store.Snapshot().Status
}

// lazyClient rebuilds a client from the persisted host and credentials.
// The stored token is not reused; the client logs in again when it needs to.
func (s *Service) lazyClient() farmos.Client {
	host := s.get(storage.KeyHost)
	username := s.get(storage.KeyUsername)
	password := s.get(storage.KeyPassword)
	return s.connect(host, username, password)
}
