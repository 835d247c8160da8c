// Package git provides the repository operations shipit needs for a
// release. It uses the go-git library for read-only state inspection
// (branch detection, repo root, dirty-worktree check, remote URLs) and
// shells out to the git CLI for the mutating operations (add, commit,
// tag, push) so that user hooks, signing, and credential helpers behave
// exactly as they do for a manual release.
package git

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
)

// debugLogger is a function that logs debug messages when debug mode is
// enabled. By default, it's a no-op. Set it via SetDebugLogger.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens a git repository at the specified path or current working
// directory. It uses go-git's PlainOpenWithOptions with DetectDotGit
// enabled to traverse up the directory tree to find the repository root.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	return repo, nil
}

// CurrentBranch returns the name of the current git branch.
// Returns empty string if in detached HEAD state.
func CurrentBranch(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}

	if !head.Name().IsBranch() {
		logDebug("[git] CurrentBranch: detached HEAD state")
		return "", nil
	}

	branch := head.Name().Short()
	logDebug("[git] CurrentBranch: %s", branch)
	return branch, nil
}

// RepositoryRoot returns the absolute path to the repository root.
func RepositoryRoot(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	logDebug("[git] RepositoryRoot: %s", root)
	return root, nil
}

// IsRepository checks if the path is within a git repository.
func IsRepository(path string) bool {
	_, err := openRepo(path)
	result := err == nil
	logDebug("[git] IsRepository: %v", result)
	return result
}

// IsClean reports whether the worktree has no uncommitted changes.
// Untracked files count as dirty: a release commit must capture exactly
// the version and changelog edits the pipeline makes.
func IsClean(path string) (bool, error) {
	repo, err := openRepo(path)
	if err != nil {
		return false, err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return false, fmt.Errorf("getting worktree status: %w", err)
	}

	logDebug("[git] IsClean: %v", status.IsClean())
	return status.IsClean(), nil
}

// RemoteURL returns the first URL of the named remote.
func RemoteURL(path, name string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	remote, err := repo.Remote(name)
	if err != nil {
		return "", fmt.Errorf("getting remote %q: %w", name, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %q has no URL", name)
	}
	return urls[0], nil
}

// BrowseURL converts a remote URL to the https form used for changelog
// comparison links. SCP-style and ssh:// remotes map onto their https
// host; a trailing ".git" is dropped. Returns empty string for URLs with
// no obvious https form (e.g. local paths).
func BrowseURL(remoteURL string) string {
	url := strings.TrimSuffix(remoteURL, ".git")

	switch {
	case strings.HasPrefix(url, "https://"), strings.HasPrefix(url, "http://"):
		return url
	case strings.HasPrefix(url, "git@"):
		// git@github.com:owner/repo -> https://github.com/owner/repo
		rest := strings.TrimPrefix(url, "git@")
		host, repoPath, ok := strings.Cut(rest, ":")
		if !ok {
			return ""
		}
		return "https://" + host + "/" + repoPath
	case strings.HasPrefix(url, "ssh://"):
		// ssh://git@github.com/owner/repo -> https://github.com/owner/repo
		rest := strings.TrimPrefix(url, "ssh://")
		if at := strings.Index(rest, "@"); at >= 0 {
			rest = rest[at+1:]
		}
		return "https://" + rest
	default:
		return ""
	}
}
