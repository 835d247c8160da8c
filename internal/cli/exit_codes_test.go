package cli

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ariel-frischer/shipit/internal/changelog"
	"github.com/ariel-frischer/shipit/internal/command"
	"github.com/ariel-frischer/shipit/internal/errors"
	"github.com/ariel-frischer/shipit/internal/manifest"
	"github.com/ariel-frischer/shipit/internal/semver"
)

func TestExitCode(t *testing.T) {
	tests := map[string]struct {
		err  error
		want int
	}{
		"explicit exit error": {
			err:  NewExitError(ExitInvalidArguments),
			want: ExitInvalidArguments,
		},
		"no unreleased changes": {
			err:  fmt.Errorf("releasing: %w", changelog.ErrNoChanges),
			want: ExitSuccess,
		},
		"changelog parse error": {
			err:  &changelog.ParseError{Line: 3, Message: "bad heading"},
			want: ExitParseFailed,
		},
		"manifest parse error": {
			err:  &manifest.ParseError{Path: "Cargo.toml", Message: "missing [package] table"},
			want: ExitParseFailed,
		},
		"semver parse error": {
			err:  &semver.ParseError{Input: "1.2", Reason: "not major.minor.patch"},
			want: ExitParseFailed,
		},
		"wrapped parse error": {
			err:  fmt.Errorf("loading changelog: %w", &changelog.ParseError{Line: 1, Message: "x"}),
			want: ExitParseFailed,
		},
		"subprocess failure": {
			err:  &command.SubprocessError{Command: "git push origin main", ExitCode: 128},
			want: ExitSubprocessFailed,
		},
		"argument error": {
			err:  errors.NewArgumentError("invalid release date"),
			want: ExitInvalidArguments,
		},
		"prerequisite error": {
			err:  errors.MissingTool("cargo"),
			want: ExitMissingDependencies,
		},
		"plain error": {
			err:  stderrors.New("something broke"),
			want: 1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
