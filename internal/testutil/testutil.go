// Package testutil provides test utilities and helpers for shipit tests:
// a command Runner that records invocations instead of spawning processes,
// and git repository fixtures built with go-git.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Call records a single command invocation seen by the RecordingRunner.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// String formats the call the way it would appear on a shell command line.
func (c Call) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// RecordingRunner implements command.Runner, recording every invocation.
// FailOn maps a command-line prefix to the error that invocation should
// return; Outputs maps a prefix to canned stdout.
type RecordingRunner struct {
	mu      sync.Mutex
	calls   []Call
	FailOn  map[string]error
	Outputs map[string]string
}

// Run implements command.Runner.
func (r *RecordingRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	return r.record(dir, name, args)
}

// Output implements command.Runner.
func (r *RecordingRunner) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	call := Call{Dir: dir, Name: name, Args: args}
	if err := r.record(dir, name, args); err != nil {
		return "", err
	}
	for prefix, out := range r.Outputs {
		if strings.HasPrefix(call.String(), prefix) {
			return out, nil
		}
	}
	return "", nil
}

func (r *RecordingRunner) record(dir, name string, args []string) error {
	call := Call{Dir: dir, Name: name, Args: args}

	r.mu.Lock()
	r.calls = append(r.calls, call)
	r.mu.Unlock()

	for prefix, err := range r.FailOn {
		if strings.HasPrefix(call.String(), prefix) {
			return err
		}
	}
	return nil
}

// Calls returns the recorded invocations in order.
func (r *RecordingRunner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// CommandLines returns the recorded invocations as shell-style strings.
func (r *RecordingRunner) CommandLines() []string {
	calls := r.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.String()
	}
	return lines
}

// InitRepo initializes a git repository at dir with an initial commit of
// whatever files are already present, and returns the repository.
func InitRepo(dir string) (*git.Repository, error) {
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		return nil, fmt.Errorf("initializing repository: %w", err)
	}
	if err := CommitAll(repo, "initial commit"); err != nil {
		return nil, err
	}
	return repo, nil
}

// CommitAll stages every change in the worktree and commits it.
func CommitAll(repo *git.Repository, message string) error {
	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}
	if err := worktree.AddGlob("."); err != nil {
		return fmt.Errorf("staging files: %w", err)
	}
	_, err = worktree.Commit(message, &git.CommitOptions{
		AllowEmptyCommits: true,
		Author: &object.Signature{
			Name:  "shipit tests",
			Email: "tests@example.com",
			When:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	})
	if err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}
