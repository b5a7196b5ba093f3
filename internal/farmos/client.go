// Copyright (c) 2025 Field Kit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package farmos is the client for a farmOS 1.x server.
// It covers the calls the session layer depends on: form login with CSRF
// token retrieval, logout, and the farm.json site/profile document.
package farmos

import (
	"context"
	"time"
)

// DefaultTimeout bounds every request made by an HTTPClient.
const DefaultTimeout = 10 * time.Second

// Client defines the farmOS operations the CLI depends on.
// Implementations may call a real server or provide fakes for tests.
type Client interface {
	// Authenticate logs in with the client's credentials and returns the CSRF token.
	Authenticate(ctx context.Context) (string, error)
	// Logout ends the server-side session.
	Logout(ctx context.Context) error
	// Info fetches the site and user profile, authenticating first when needed.
	Info(ctx context.Context) (*Info, error)
}

// ConnectFunc builds a client for one server and credential pair.
// An empty baseURL means the same-origin development server.
type ConnectFunc func(baseURL, username, password string) Client

// Options configures NewConnector.
type Options struct {
	// DevOrigin replaces an empty base URL.
	DevOrigin string
	// Timeout is the per-request timeout; zero means DefaultTimeout.
	Timeout time.Duration
	// UserAgent is sent on every request when set.
	UserAgent string
}

// NewConnector returns a ConnectFunc producing HTTP clients.
// Every client gets its own cookie jar, so sessions never leak between candidates.
func NewConnector(opts Options) ConnectFunc {
	return func(baseURL, username, password string) Client {
		return NewHTTPClient(baseURL, username, password, opts)
	}
}
