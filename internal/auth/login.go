// Copyright (c) 2025 Field Kit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"fmt"
	"net/http"

	apperrors "fieldkit/cli/internal/errors"
	"fieldkit/cli/internal/farmos"
	"fieldkit/cli/internal/navigation"
	"fieldkit/cli/internal/storage"
	"fieldkit/cli/internal/store"

	"go.uber.org/zap"
)

// Credentials is what the login form collects. ServerURL has no scheme.
type Credentials struct {
	ServerURL string
	Username  string
	Password  string
}

// LoginResult reports how a login attempt ended.
// Exactly one of Host (with OK true) or Err is meaningful.
type LoginResult struct {
	// Host is the base URL that accepted the credentials.
	Host string
	// Err is set when every candidate failed; Err.Err is the last failure.
	Err *apperrors.E
}

// OK reports whether the login succeeded.
func (r LoginResult) OK() bool { return r.Err == nil }

// levelWarning is the only level the login flow emits.
const levelWarning = "warning"

// Candidates lists the base URLs tried for serverURL, in order.
// Development mode tries the same-origin server (empty base) first.
func Candidates(serverURL string, devMode bool) []string {
	if devMode {
		return []string{"", "http://" + serverURL}
	}
	return []string{"https://" + serverURL, "http://" + serverURL}
}

// SubmitCredentials tries each candidate base URL until one authenticates.
// On success it persists host, username, password and token, marks the
// session logged in and navigates back (or home when there is no history).
// On failure it logs a warning record to the store. Remote failures never
// escape as Go errors; branch on the result instead.
func (s *Service) SubmitCredentials(ctx context.Context, creds Credentials, nav navigation.Navigator) LoginResult {
	candidates := Candidates(creds.ServerURL, s.devMode)

	var lastErr error
	for _, base := range candidates {
		client := s.connect(base, creds.Username, creds.Password)
		token, err := client.Authenticate(ctx)
		if err != nil {
			s.log.Debug("login candidate failed", zap.String("base", base), zap.Error(err))
			lastErr = err
			continue
		}

		s.set(storage.KeyHost, base)
		s.set(storage.KeyUsername, creds.Username)
		s.set(storage.KeyPassword, creds.Password)
		s.set(storage.KeyToken, token)
		s.store.SetSessionStatus(store.LoggedIn)
		s.log.Debug("logged in", zap.String("base", base), zap.String("username", creds.Username))

		if nav != nil {
			if nav.Len() > 1 {
				nav.Back()
			} else {
				nav.Push(navigation.Root)
			}
		}
		return LoginResult{Host: base}
	}

	e, rec := classifyLoginError(lastErr, candidates[0])
	s.store.LogError(rec)
	return LoginResult{Err: e}
}

// classifyLoginError turns the last candidate failure into a typed error and
// the store record shown to the user. resetBase is the first candidate.
func classifyLoginError(err error, resetBase string) (*apperrors.E, store.ErrorRecord) {
	rec := store.ErrorRecord{
		ErrorCode: farmos.StatusTextOf(err),
		Level:     levelWarning,
		Show:      true,
	}
	if farmos.StatusOf(err) == http.StatusForbidden {
		rec.Message = fmt.Sprintf(
			`The username or password you entered was incorrect. Please try again, or <a href="%s/user/password">reset your password</a>.`,
			resetBase)
		return apperrors.Wrap(apperrors.InvalidCredentials, rec.Message, err), rec
	}

	msg := ""
	if err != nil {
		msg = err.Error()
	}
	rec.Message = "Unable to reach the server. Please check that you have the correct URL and that your device has a network connection. Status: " + msg
	return apperrors.Wrap(apperrors.ServerUnreachable, rec.Message, err), rec
}
