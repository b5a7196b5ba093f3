package httperrors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"
	"testing"

	"fieldkit/cli/internal/farmos"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{"nil", nil, Generic},
		{"forbidden", &farmos.HTTPError{Status: http.StatusForbidden}, Forbidden},
		{"bad gateway", &farmos.HTTPError{Status: http.StatusBadGateway}, Server},
		{"deadline", fmt.Errorf("get: %w", context.DeadlineExceeded), Timeout},
		{"dns", &farmos.HTTPError{Err: &net.DNSError{Err: "no such host", Name: "farm.invalid"}, Message: "lookup farm.invalid: no such host"}, DNS},
		{"refused", &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}, ConnectionRefused},
		{"tls", errors.New("tls: failed to verify certificate: x509: certificate has expired"), TLS},
		{"other", errors.New("unexpected EOF"), Generic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestHintsNameHost(t *testing.T) {
	for _, c := range []Category{Generic, Timeout, DNS, ConnectionRefused, TLS, Server} {
		title, lines := Hints(c, "farm.example.com")
		if len(lines) == 0 {
			t.Errorf("category %d has no hints", c)
		}
		if !strings.Contains(title, "farm.example.com") {
			t.Errorf("category %d title %q does not name the host", c, title)
		}
	}
}

func TestExtractHostFromURL(t *testing.T) {
	tests := map[string]string{
		"https://farm.example.com/user": "farm.example.com",
		"farm.example.com:8080":         "farm.example.com:8080",
		"":                              "server",
	}
	for in, want := range tests {
		if got := ExtractHostFromURL(in); got != want {
			t.Errorf("ExtractHostFromURL(%q) = %q, want %q", in, got, want)
		}
	}
}
