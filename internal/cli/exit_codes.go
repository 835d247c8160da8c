package cli

import (
	stderrors "errors"

	"github.com/ariel-frischer/shipit/internal/changelog"
	"github.com/ariel-frischer/shipit/internal/command"
	"github.com/ariel-frischer/shipit/internal/errors"
	"github.com/ariel-frischer/shipit/internal/manifest"
	"github.com/ariel-frischer/shipit/internal/semver"
)

// Exit codes for the shipit CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution. A release run
	// that found no unreleased changes also exits 0.
	ExitSuccess = 0

	// ExitParseFailed indicates the changelog, a manifest, or a version
	// string could not be parsed.
	ExitParseFailed = 1

	// ExitSubprocessFailed indicates a git or publish subprocess exited
	// non-zero.
	ExitSubprocessFailed = 2

	// ExitInvalidArguments indicates invalid command arguments.
	ExitInvalidArguments = 3

	// ExitMissingDependencies indicates required tools or files are
	// missing.
	ExitMissingDependencies = 4
)

// ExitError carries an explicit exit code through RunE.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return ""
}

// NewExitError creates an error that maps to the given exit code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// exitCode maps an error to the process exit code.
func exitCode(err error) int {
	var exit *ExitError
	if stderrors.As(err, &exit) {
		return exit.Code
	}

	if stderrors.Is(err, changelog.ErrNoChanges) {
		return ExitSuccess
	}

	if changelog.IsParseError(err) || manifest.IsParseError(err) {
		return ExitParseFailed
	}
	var semverErr *semver.ParseError
	if stderrors.As(err, &semverErr) {
		return ExitParseFailed
	}
	if command.IsSubprocessError(err) {
		return ExitSubprocessFailed
	}

	if cliErr := errors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case errors.Argument:
			return ExitInvalidArguments
		case errors.Prerequisite:
			return ExitMissingDependencies
		}
	}
	return 1
}
