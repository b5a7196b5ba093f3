// Copyright (c) 2025 Field Kit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package farmos

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
)

// Endpoint paths on a farmOS 1.x server.
const (
	PathLogin  = "/user/login"
	PathToken  = "/restws/session/token"
	PathLogout = "/user/logout"
	PathInfo   = "/farm.json"
)

// HTTPClient implements Client over the farmOS REST endpoints.
// The session cookie lives in the client's jar; the CSRF token is held in memory.
type HTTPClient struct {
	// baseURL is the server root without a trailing slash
	baseURL   string
	username  string
	password  string
	userAgent string
	client    *http.Client

	mu    sync.Mutex
	token string
}

// NewHTTPClient creates a client for one server and credential pair.
// Redirects are not followed so the login response can be inspected directly.
func NewHTTPClient(baseURL, username, password string, opts Options) *HTTPClient {
	if baseURL == "" {
		baseURL = opts.DevOrigin
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	jar, _ := cookiejar.New(nil)
	return &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		username:  username,
		password:  password,
		userAgent: opts.UserAgent,
		client: &http.Client{
			Timeout: timeout,
			Jar:     jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// BaseURL returns the resolved server root.
func (h *HTTPClient) BaseURL() string { return h.baseURL }

// Token returns the CSRF token from the last successful Authenticate.
func (h *HTTPClient) Token() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.token
}

// Authenticate posts the login form, then fetches the CSRF token.
// Drupal answers a rejected login with the form again instead of an error
// status, so a login that leaves no session cookie is reported as 403.
func (h *HTTPClient) Authenticate(ctx context.Context) (string, error) {
	form := url.Values{
		"name":    {h.username},
		"pass":    {h.password},
		"form_id": {"user_login"},
	}
	req, err := h.newRequest(ctx, http.MethodPost, PathLogin, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := h.do(req)
	if err != nil {
		return "", err
	}
	drain(resp)
	if resp.StatusCode >= http.StatusBadRequest {
		return "", statusError(resp)
	}
	if !h.hasSession() {
		return "", &HTTPError{
			Status:     http.StatusForbidden,
			StatusText: http.StatusText(http.StatusForbidden),
			Message:    fmt.Sprintf("Request failed with status code %d", http.StatusForbidden),
		}
	}

	token, err := h.fetchToken(ctx)
	if err != nil {
		return "", err
	}
	h.mu.Lock()
	h.token = token
	h.mu.Unlock()
	return token, nil
}

func (h *HTTPClient) fetchToken(ctx context.Context) (string, error) {
	req, err := h.newRequest(ctx, http.MethodGet, PathToken, nil)
	if err != nil {
		return "", err
	}
	resp, err := h.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError(err)
	}
	return strings.TrimSpace(string(b)), nil
}

// Logout calls GET /user/logout. Drupal redirects on success, so any
// non-error status counts.
func (h *HTTPClient) Logout(ctx context.Context) error {
	req, err := h.newRequest(ctx, http.MethodGet, PathLogout, nil)
	if err != nil {
		return err
	}
	resp, err := h.do(req)
	if err != nil {
		return err
	}
	drain(resp)

	h.mu.Lock()
	h.token = ""
	h.mu.Unlock()

	if resp.StatusCode >= http.StatusBadRequest {
		return statusError(resp)
	}
	return nil
}

// Info calls GET /farm.json with the CSRF token, logging in first when no
// token is held yet.
func (h *HTTPClient) Info(ctx context.Context) (*Info, error) {
	token := h.Token()
	if token == "" {
		var err error
		if token, err = h.Authenticate(ctx); err != nil {
			return nil, err
		}
	}

	req, err := h.newRequest(ctx, http.MethodGet, PathInfo, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-CSRF-Token", token)

	resp, err := h.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var info Info
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode farm.json: %w", err)
	}
	return &info, nil
}

func (h *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, body)
	if err != nil {
		return nil, transportError(err)
	}
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}
	return req, nil
}

func (h *HTTPClient) do(req *http.Request) (*http.Response, error) {
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	return resp, nil
}

func (h *HTTPClient) hasSession() bool {
	u, err := url.Parse(h.baseURL)
	if err != nil {
		return false
	}
	return len(h.client.Jar.Cookies(u)) > 0
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
