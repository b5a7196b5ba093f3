// Copyright (c) 2025 Field Kit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors turns farmOS connection failures into troubleshooting hints.
package httperrors

import (
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"

	"fieldkit/cli/internal/farmos"

	"github.com/pterm/pterm"
)

// Category groups failures that share the same advice.
type Category int

const (
	Generic Category = iota
	Timeout
	DNS
	ConnectionRefused
	TLS
	Forbidden
	Server
)

// Classify inspects err and returns its category.
func Classify(err error) Category {
	switch {
	case err == nil:
		return Generic
	case farmos.StatusOf(err) == http.StatusForbidden:
		return Forbidden
	case farmos.StatusOf(err) >= http.StatusInternalServerError:
		return Server
	case isTimeoutError(err):
		return Timeout
	case isDNSError(err):
		return DNS
	case isConnectionRefusedError(err):
		return ConnectionRefused
	case isTLSError(err):
		return TLS
	}
	return Generic
}

func isTimeoutError(err error) bool {
	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func isConnectionRefusedError(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

func isTLSError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

// Hints returns the troubleshooting lines for a category. host names the
// server the user typed.
func Hints(c Category, host string) (title string, lines []string) {
	switch c {
	case Forbidden:
		return "The server rejected the username or password", []string{
			"Check the spelling of your username",
			"Passwords are case sensitive",
			"Reset your password from the farmOS login page",
		}
	case Timeout:
		return "Connection to " + host + " timed out", []string{
			"Slow or unstable network connection",
			"The farmOS server is under heavy load",
			"A firewall is dropping the connection",
		}
	case DNS:
		return "Cannot resolve " + host, []string{
			"Check the server address for typos",
			"Check that your device is online",
			"Leave out the scheme; https:// is tried first, then http://",
		}
	case ConnectionRefused:
		return host + " refused the connection", []string{
			"The farmOS server may be down",
			"The port may be wrong",
		}
	case TLS:
		return "Secure connection to " + host + " failed", []string{
			"The server's certificate may be invalid or expired",
			"Your system clock may be wrong",
			"A proxy may be intercepting HTTPS",
		}
	case Server:
		return host + " returned a server error", []string{
			"The problem is on the farmOS server, not your device",
			"Try again in a few minutes or contact the farm's administrator",
		}
	}
	return "Cannot reach " + host, []string{
		"Check that you have the correct URL",
		"Check that your device has a network connection",
	}
}

// Show prints the hints for err with pterm.
func Show(err error, host string) {
	title, lines := Hints(Classify(err), host)
	items := make([]pterm.BulletListItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, pterm.BulletListItem{Level: 0, Text: l})
	}
	pterm.Println()
	pterm.Warning.Println(title)
	_ = pterm.DefaultBulletList.WithItems(items).Render()
	if err != nil {
		pterm.Debug.Printf("Technical details: %s\n", shorten(err.Error(), 100))
	}
}

func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	if !strings.Contains(urlStr, "://") {
		urlStr = "https://" + urlStr
	}
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
