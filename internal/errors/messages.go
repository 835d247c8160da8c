package errors

import "fmt"

// Common error messages for the shipit CLI.
// These templates ensure consistent, actionable error messages.

// NotARepository creates an error for running outside a git repository.
func NotARepository(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("%s is not inside a git repository", path),
		"Run shipit from the workspace you want to release",
		"Or pass --config pointing at the workspace's .shipit/config.yml",
	)
}

// DirtyWorktree creates an error for uncommitted changes before a release.
func DirtyWorktree() *CLIError {
	return NewPrerequisiteError(
		"the worktree has uncommitted changes",
		"Commit or stash your changes so the release commit contains only version and changelog edits",
		"Or re-run with --allow-dirty if you know what you are doing",
	)
}

// WrongBranch creates an error for releasing from an unexpected branch.
func WrongBranch(current, expected string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("releases are cut from %q, but the current branch is %q", expected, current),
		fmt.Sprintf("Switch branches: git checkout %s", expected),
		"Or change the branch setting in .shipit/config.yml",
	)
}

// MissingTool creates an error for a required binary missing from PATH.
func MissingTool(name string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("required tool %q not found in PATH", name),
		fmt.Sprintf("Install %s and make sure it is on your PATH", name),
	)
}

// MissingChangelog creates an error for a missing changelog file.
func MissingChangelog(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("changelog not found at %s", path),
		"Create a Keep a Changelog style CHANGELOG.md with an Unreleased section",
		"Or set the changelog path in .shipit/config.yml",
	)
}

// MissingManifest creates an error for a missing workspace manifest.
func MissingManifest(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("workspace manifest not found at %s", path),
		"Run shipit from the workspace root",
		"Or set the manifest path in .shipit/config.yml",
	)
}
