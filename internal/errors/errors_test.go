package errors

import (
	stderrors "errors"
	"testing"
)

func TestE_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *E
		want string
	}{
		{
			name: "without cause",
			err:  New(InvalidCredentials, "wrong password"),
			want: "invalid_credentials: wrong password",
		},
		{
			name: "with cause",
			err:  Wrap(StorageUnavailable, "open sqlite", stderrors.New("disk full")),
			want: "storage_unavailable: open sqlite: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	cause := stderrors.New("dial tcp: refused")
	wrapped := Wrap(ServerUnreachable, "login", cause)

	if got := KindOf(wrapped); got != ServerUnreachable {
		t.Errorf("KindOf() = %q, want %q", got, ServerUnreachable)
	}
	if !stderrors.Is(wrapped, cause) {
		t.Error("expected wrapped error to unwrap to its cause")
	}
	if got := KindOf(cause); got != "" {
		t.Errorf("KindOf(plain) = %q, want empty", got)
	}
}
