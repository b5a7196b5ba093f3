// Copyright (c) 2025 Field Kit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"strconv"

	"fieldkit/cli/internal/storage"
	"fieldkit/cli/internal/store"

	"go.uber.org/zap"
)

// Logout ends the server-side session (best effort).
// The outcome is discarded and local state is left alone; callers that also
// want the cache gone run ClearCachedProfileAndSiteInfo afterwards.
func (s *Service) Logout(ctx context.Context) {
	if err := s.lazyClient().Logout(ctx); err != nil {
		s.log.Debug("remote logout failed", zap.Error(err))
	}
}

// RefreshProfileAndSiteInfo fetches farm.json and mirrors it into the store
// and persistent storage. It does nothing when no username is cached.
// A fetch failure is returned as is and leaves the store untouched.
func (s *Service) RefreshProfileAndSiteInfo(ctx context.Context) error {
	if s.get(storage.KeyUsername) == "" {
		return nil
	}

	info, err := s.lazyClient().Info(ctx)
	if err != nil {
		return err
	}

	logTypes := toStoreLogTypes(info.LogTypes())
	uid := info.User.UID.String()

	s.store.SetFarmName(info.Name)
	s.store.SetFarmURL(info.URL)
	s.store.SetUsername(info.User.Name)
	s.store.SetEmail(info.User.Mail)
	s.store.SetUID(uid)
	s.store.SetMapboxAPIKey(info.MapboxAPIKey)
	s.store.SetSystemOfMeasurement(info.SystemOfMeasurement)
	s.store.SetLogTypes(logTypes)
	s.store.SetLoginStatus(true)

	s.set(storage.KeyFarmName, info.Name)
	s.set(storage.KeyUsername, info.User.Name)
	s.set(storage.KeyEmail, info.User.Mail)
	s.set(storage.KeyUID, uid)
	if err := storage.SetOrRemove(s.storage, storage.KeyMapboxAPIKey, info.MapboxAPIKey); err != nil {
		s.log.Warn("storage write failed", zap.String("key", storage.KeyMapboxAPIKey), zap.Error(err))
	}
	s.set(storage.KeySystemOfMeasurement, info.SystemOfMeasurement)
	s.setJSON(storage.KeyLogTypes, logTypes)
	s.set(storage.KeyIsLoggedIn, strconv.FormatBool(true))
	return nil
}

// LoadCachedProfileAndSiteInfo rehydrates the store from persistent storage.
// Each key is read on its own; missing or unreadable values become zero
// values. The session status is recomputed from the stored credentials.
func (s *Service) LoadCachedProfileAndSiteInfo() {
	s.store.SetUsername(s.get(storage.KeyUsername))
	s.store.SetEmail(s.get(storage.KeyEmail))
	s.store.SetUID(s.get(storage.KeyUID))
	s.store.SetMapboxAPIKey(s.get(storage.KeyMapboxAPIKey))

	unit := s.get(storage.KeySystemOfMeasurement)
	if unit == "" {
		unit = store.DefaultSystemOfMeasurement
	}
	s.store.SetSystemOfMeasurement(unit)

	s.store.SetLoginStatus(s.getBool(storage.KeyIsLoggedIn))
	s.store.SetFarmName(s.get(storage.KeyFarmName))
	s.store.SetFarmURL(s.get(storage.KeyHost))
	s.store.SetLogTypes(s.getLogTypes())
	s.store.SetUseGeolocation(s.getBool(storage.KeyUseGeolocation))
	s.store.SetSessionStatus(s.deriveStatus())
}

// ClearCachedProfileAndSiteInfo resets the profile fields in the store and
// wipes the whole storage area, including keys this package never wrote.
func (s *Service) ClearCachedProfileAndSiteInfo() error {
	s.store.SetFarmName("")
	s.store.SetFarmURL("")
	s.store.SetUsername("")
	s.store.SetEmail("")
	s.store.SetUID("")
	s.store.SetMapboxAPIKey("")
	s.store.SetSystemOfMeasurement(store.DefaultSystemOfMeasurement)
	s.store.SetLoginStatus(false)
	s.store.SetSessionStatus(store.LoggedOut)

	return s.storage.Clear()
}

// SetUseGeolocation persists the geolocation preference and mirrors it into the store.
func (s *Service) SetUseGeolocation(on bool) error {
	if err := s.storage.Set(storage.KeyUseGeolocation, strconv.FormatBool(on)); err != nil {
		return err
	}
	s.store.SetUseGeolocation(on)
	return nil
}

// deriveStatus reports LoggedIn when the credentials a client needs are all
// stored. The host may be empty in development mode but must be present.
func (s *Service) deriveStatus() store.SessionStatus {
	if _, ok, err := s.storage.Get(storage.KeyHost); err != nil || !ok {
		return store.LoggedOut
	}
	for _, key := range []string{storage.KeyUsername, storage.KeyPassword, storage.KeyToken} {
		if s.get(key) == "" {
			return store.LoggedOut
		}
	}
	return store.LoggedIn
}
