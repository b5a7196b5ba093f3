package terminal

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestClearPreviousLines(t *testing.T) {
	tests := []struct {
		name       string
		textLength int
		width      int
		wantUps    int
	}{
		{"short prompt", 10, 80, 1},
		{"exact width", 80, 80, 1},
		{"wraps once", 81, 80, 2},
		{"empty", 0, 80, 1},
		{"unknown width", 100, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ClearPreviousLines(&buf, tt.textLength, tt.width)
			out := buf.String()
			if got := strings.Count(out, "\x1b[1A"); got != tt.wantUps {
				t.Errorf("cursor-up count = %d, want %d", got, tt.wantUps)
			}
			if got := strings.Count(out, "\x1b[2K"); got != tt.wantUps+1 {
				t.Errorf("clear count = %d, want %d", got, tt.wantUps+1)
			}
		})
	}
}

func TestReadLine(t *testing.T) {
	tests := map[string]string{
		"s3cret\n":   "s3cret",
		"s3cret\r\n": "s3cret",
		"no newline": "no newline",
	}
	for in, want := range tests {
		got, err := ReadLine(strings.NewReader(in))
		if err != nil {
			t.Fatalf("ReadLine(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("ReadLine(%q) = %q, want %q", in, got, want)
		}
	}

	if _, err := ReadLine(strings.NewReader("")); err == nil {
		t.Error("ReadLine on empty input should fail")
	}
}

func TestReadSecret_ClearsPrompt(t *testing.T) {
	var buf bytes.Buffer
	got, err := readSecret(&buf, "Password: ", 80, func() ([]byte, error) {
		return []byte("s3cret"), nil
	})
	if err != nil {
		t.Fatalf("readSecret error: %v", err)
	}
	if got != "s3cret" {
		t.Errorf("readSecret = %q, want %q", got, "s3cret")
	}

	out := buf.String()
	if !strings.HasPrefix(out, "Password: \n") {
		t.Errorf("output should start with the prompt and a newline, got %q", out)
	}
	if strings.Contains(out, "s3cret") {
		t.Error("password must not be echoed")
	}
	var want bytes.Buffer
	ClearPreviousLines(&want, len("Password: "), 80)
	if !strings.HasSuffix(out, want.String()) {
		t.Errorf("prompt was not cleared, got %q", out)
	}
}

func TestReadSecret_KeepsPromptOnError(t *testing.T) {
	var buf bytes.Buffer
	_, err := readSecret(&buf, "Password: ", 80, func() ([]byte, error) {
		return nil, errors.New("interrupted")
	})
	if err == nil {
		t.Fatal("readSecret should fail when the read fails")
	}
	if strings.Contains(buf.String(), "\x1b[2K") {
		t.Error("prompt should not be cleared after a failed read")
	}
}
