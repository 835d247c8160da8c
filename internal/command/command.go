// Package command provides helpers to execute the external tools shipit
// drives (git, cargo). Commands run synchronously; a non-zero exit status
// surfaces as a SubprocessError carrying the command line and its stderr.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// SubprocessError is returned when an external command exits non-zero.
type SubprocessError struct {
	// Command is the full command line that failed.
	Command string
	// ExitCode is the command's exit status, or -1 if it did not run.
	ExitCode int
	// Stderr is the captured error output.
	Stderr string
	// Err is the underlying exec error.
	Err error
}

func (e *SubprocessError) Error() string {
	msg := fmt.Sprintf("command %q failed with exit code %d", e.Command, e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *SubprocessError) Unwrap() error {
	return e.Err
}

// IsSubprocessError returns true if the error is a SubprocessError.
func IsSubprocessError(err error) bool {
	var se *SubprocessError
	return errors.As(err, &se)
}

// Runner executes external commands. The release pipeline depends on this
// interface so tests can record the command sequence without spawning
// processes.
type Runner interface {
	// Run executes the command in dir, streaming output to the runner's
	// writers. Returns a SubprocessError on non-zero exit.
	Run(ctx context.Context, dir, name string, args ...string) error
	// Output executes the command in dir and captures its stdout.
	Output(ctx context.Context, dir, name string, args ...string) (string, error)
}

// ExecRunner is the Runner backed by os/exec.
type ExecRunner struct {
	// Stdout and Stderr receive the command's output streams when set;
	// otherwise output is captured only for error reporting.
	Stdout io.Writer
	Stderr io.Writer
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stdout = r.Stdout
	if r.Stderr != nil {
		cmd.Stderr = io.MultiWriter(r.Stderr, &stderr)
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		return wrapExecError(cmd, &stderr, err)
	}
	return nil
}

// Output implements Runner.
func (r *ExecRunner) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", wrapExecError(cmd, &stderr, err)
	}
	return stdout.String(), nil
}

// wrapExecError converts an exec failure into a SubprocessError.
func wrapExecError(cmd *exec.Cmd, stderr *bytes.Buffer, err error) error {
	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return &SubprocessError{
		Command:  strings.Join(cmd.Args, " "),
		ExitCode: exitCode,
		Stderr:   stderr.String(),
		Err:      err,
	}
}

// LookPath reports an error when the named binary is not on PATH.
func LookPath(name string) error {
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("required tool %q not found in PATH", name)
	}
	return nil
}
