package git

import (
	"context"
	"fmt"

	"github.com/ariel-frischer/shipit/internal/command"
)

// Add stages the given paths.
func Add(ctx context.Context, r command.Runner, dir string, paths ...string) error {
	args := append([]string{"add", "--"}, paths...)
	logDebug("[git] add %v", paths)
	return r.Run(ctx, dir, "git", args...)
}

// Commit records the staged changes with the given message.
func Commit(ctx context.Context, r command.Runner, dir, message string) error {
	logDebug("[git] commit %q", message)
	return r.Run(ctx, dir, "git", "commit", "-m", message)
}

// Tag creates an annotated tag named tag at HEAD.
func Tag(ctx context.Context, r command.Runner, dir, tag, message string) error {
	logDebug("[git] tag %s", tag)
	return r.Run(ctx, dir, "git", "tag", "-a", tag, "-m", message)
}

// Push pushes the given branch and tag to the remote. The branch goes
// first so the tagged commit is never orphaned on the remote.
func Push(ctx context.Context, r command.Runner, dir, remote, branch, tag string) error {
	logDebug("[git] push %s %s %s", remote, branch, tag)
	if err := r.Run(ctx, dir, "git", "push", remote, branch); err != nil {
		return fmt.Errorf("pushing branch %s: %w", branch, err)
	}
	if err := r.Run(ctx, dir, "git", "push", remote, tag); err != nil {
		return fmt.Errorf("pushing tag %s: %w", tag, err)
	}
	return nil
}
