// Copyright (c) 2025 Field Kit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"encoding/json"

	"fieldkit/cli/internal/farmos"
	"fieldkit/cli/internal/storage"
	"fieldkit/cli/internal/store"

	"go.uber.org/zap"
)

// get reads key, treating read errors like a missing value.
func (s *Service) get(key string) string {
	v, ok, err := s.storage.Get(key)
	if err != nil {
		s.log.Debug("storage read failed", zap.String("key", key), zap.Error(err))
		return ""
	}
	if !ok {
		return ""
	}
	return v
}

// set writes key. Failures are logged and do not stop the caller.
func (s *Service) set(key, value string) {
	if err := s.storage.Set(key, value); err != nil {
		s.log.Warn("storage write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *Service) setJSON(key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		s.log.Warn("encode cached value", zap.String("key", key), zap.Error(err))
		return
	}
	s.set(key, string(b))
}

// getBool parses a stored JSON boolean; anything else is false.
func (s *Service) getBool(key string) bool {
	raw := s.get(key)
	if raw == "" {
		return false
	}
	var b bool
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		s.log.Debug("malformed cached value", zap.String("key", key), zap.Error(err))
		return false
	}
	return b
}

// getLogTypes decodes the cached catalog. Both the array form written by
// this package and the server's object form are accepted.
func (s *Service) getLogTypes() []store.LogType {
	raw := s.get(storage.KeyLogTypes)
	if raw == "" {
		return nil
	}
	var lt farmos.LogTypes
	if err := json.Unmarshal([]byte(raw), &lt); err != nil {
		s.log.Debug("malformed cached value", zap.String("key", storage.KeyLogTypes), zap.Error(err))
		return nil
	}
	return toStoreLogTypes(lt)
}

// toStoreLogTypes never returns nil so the cached catalog is always a JSON array.
func toStoreLogTypes(in []farmos.LogType) []store.LogType {
	out := make([]store.LogType, 0, len(in))
	for _, t := range in {
		out = append(out, store.LogType{Name: t.Name, Label: t.Label, LabelPlural: t.LabelPlural})
	}
	return out
}
