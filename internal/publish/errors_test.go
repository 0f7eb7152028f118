package publish

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/Kush-Singh-26/publish/builder/config"
	"github.com/Kush-Singh-26/publish/builder/services"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"missing directory", fmt.Errorf("%w: ./_posts/", ErrDirMissing), ExitAbort},
		{"empty destination", ErrEmptyDestination, ExitAbort},
		{"no drafts", fmt.Errorf("%w in ./", services.ErrNoMarkdownFiles), ExitAbort},
		{"bad config", fmt.Errorf("%w: boom", config.ErrInvalid), ExitAbort},
		{"copy mismatch", services.ErrCopyMismatch, ExitFault},
		{"permission", fmt.Errorf("failed to copy: %w", fs.ErrPermission), ExitFault},
		{"already classified", &ExitError{Code: 7, Err: errors.New("x")}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassify_KeepsCause(t *testing.T) {
	err := Classify(fmt.Errorf("%w: x.md", services.ErrSourceMissing))
	if !errors.Is(err, services.ErrSourceMissing) {
		t.Errorf("Classify() lost the cause: %v", err)
	}
	if Classify(nil) != nil {
		t.Error("Classify(nil) should be nil")
	}
}
