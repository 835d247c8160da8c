// Package errors provides structured, categorized errors for the shipit
// CLI. Each error carries remediation steps that are printed alongside the
// message so failures tell the user what to do next.
package errors

import goerrors "errors"

// Category classifies what kind of failure a CLIError describes.
type Category int

const (
	// Argument errors are caused by invalid or missing command arguments.
	Argument Category = iota
	// Configuration errors are caused by invalid or missing configuration.
	Configuration
	// Prerequisite errors occur when required tools or repository state
	// are missing (git/cargo not installed, dirty worktree, wrong branch).
	Prerequisite
	// Runtime errors occur during release execution.
	Runtime
)

var categoryNames = map[Category]string{
	Argument:      "Argument Error",
	Configuration: "Configuration Error",
	Prerequisite:  "Prerequisite Error",
	Runtime:       "Runtime Error",
}

// String returns a human-readable name for the category.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Error"
}

// CLIError is a structured error with a category and remediation guidance.
type CLIError struct {
	Category    Category
	Message     string
	Remediation []string

	cause error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *CLIError) Unwrap() error {
	return e.cause
}

// NewArgumentError creates an argument error with remediation steps.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Remediation: remediation}
}

// NewConfigError creates a configuration error with remediation steps.
func NewConfigError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Configuration, Message: message, Remediation: remediation}
}

// NewPrerequisiteError creates a prerequisite error with remediation steps.
func NewPrerequisiteError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Prerequisite, Message: message, Remediation: remediation}
}

// NewRuntimeError creates a runtime error with remediation steps.
func NewRuntimeError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Runtime, Message: message, Remediation: remediation}
}

// Wrap attaches a category and remediation steps to an existing error.
// The original error stays reachable through Unwrap. Returns nil for a
// nil error.
func Wrap(err error, category Category, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     err.Error(),
		Remediation: remediation,
		cause:       err,
	}
}

// AsCLIError extracts a CLIError from anywhere in err's chain, or returns
// nil if there is none.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if goerrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
