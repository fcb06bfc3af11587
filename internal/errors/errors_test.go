package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"not found", NotFound("/nope", fs.ErrNotExist), ExitBadInput},
		{"unknown template", UnknownTemplate("unknown template \"x\""), ExitBadInput},
		{"missing fact", MissingRequiredFact("missing"), ExitBadInput},
		{"usage", Usage("bad flag"), ExitBadInput},
		{"write", Write("writing prompt", fs.ErrPermission), ExitEnvironment},
		{"internal", Internal("boom", nil), ExitFailure},
		{"plain error", errors.New("plain"), ExitFailure},
		{"wrapped write", fmt.Errorf("running: %w", Write("x", nil)), ExitEnvironment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestAppError_UnwrapsCause(t *testing.T) {
	err := Write("creating output directory", fs.ErrPermission)
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("write error should unwrap to its filesystem cause")
	}
	if got := err.Error(); got != "creating output directory: permission denied" {
		t.Errorf("Error() = %q", got)
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(errors.New("plain")); got != KindInternal {
		t.Errorf("KindOf(plain) = %q, want %q", got, KindInternal)
	}
	wrapped := fmt.Errorf("scan: %w", NotFound("/x", nil))
	if got := KindOf(wrapped); got != KindNotFound {
		t.Errorf("KindOf(wrapped) = %q, want %q", got, KindNotFound)
	}
	if !Is(wrapped, KindNotFound) {
		t.Error("Is(wrapped, KindNotFound) = false")
	}
}
