package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/shipit/internal/testutil"
)

// initRepo creates a repository with one committed file and returns its path.
func initRepo(t *testing.T) (string, *gogit.Repository) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# test\n"), 0o644))
	repo, err := testutil.InitRepo(dir)
	require.NoError(t, err)
	return dir, repo
}

func TestIsRepository(t *testing.T) {
	t.Parallel()

	dir, _ := initRepo(t)
	assert.True(t, IsRepository(dir))
	assert.False(t, IsRepository(t.TempDir()))
}

func TestCurrentBranch(t *testing.T) {
	t.Parallel()

	dir, _ := initRepo(t)
	branch, err := CurrentBranch(dir)
	require.NoError(t, err)
	assert.Equal(t, "master", branch)
}

func TestRepositoryRoot(t *testing.T) {
	t.Parallel()

	dir, _ := initRepo(t)
	sub := filepath.Join(dir, "nested", "deep")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	root, err := RepositoryRoot(sub)
	require.NoError(t, err)

	wantRoot, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	gotRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, wantRoot, gotRoot)
}

func TestIsClean(t *testing.T) {
	t.Parallel()

	dir, _ := initRepo(t)

	clean, err := IsClean(dir)
	require.NoError(t, err)
	assert.True(t, clean)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "untracked.txt"), []byte("dirty\n"), 0o644))
	clean, err = IsClean(dir)
	require.NoError(t, err)
	assert.False(t, clean)
}

func TestRemoteURL(t *testing.T) {
	t.Parallel()

	dir, repo := initRepo(t)
	_, err := repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:acme/widget.git"},
	})
	require.NoError(t, err)

	url, err := RemoteURL(dir, "origin")
	require.NoError(t, err)
	assert.Equal(t, "git@github.com:acme/widget.git", url)

	_, err = RemoteURL(dir, "upstream")
	require.Error(t, err)
}

func TestBrowseURL(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		remote   string
		expected string
	}{
		"https":         {remote: "https://github.com/acme/widget.git", expected: "https://github.com/acme/widget"},
		"https no .git": {remote: "https://github.com/acme/widget", expected: "https://github.com/acme/widget"},
		"scp style":     {remote: "git@github.com:acme/widget.git", expected: "https://github.com/acme/widget"},
		"ssh scheme":    {remote: "ssh://git@github.com/acme/widget.git", expected: "https://github.com/acme/widget"},
		"local path":    {remote: "/srv/git/widget.git", expected: ""},
		"malformed scp": {remote: "git@github.com", expected: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, BrowseURL(tt.remote))
		})
	}
}

func TestCommands_ArgvConstruction(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := &testutil.RecordingRunner{}

	require.NoError(t, Add(ctx, r, "/repo", "Cargo.toml", "CHANGELOG.md"))
	require.NoError(t, Commit(ctx, r, "/repo", "release: v1.3.0"))
	require.NoError(t, Tag(ctx, r, "/repo", "v1.3.0", "Release v1.3.0"))
	require.NoError(t, Push(ctx, r, "/repo", "origin", "main", "v1.3.0"))

	assert.Equal(t, []string{
		"git add -- Cargo.toml CHANGELOG.md",
		"git commit -m release: v1.3.0",
		"git tag -a v1.3.0 -m Release v1.3.0",
		"git push origin main",
		"git push origin v1.3.0",
	}, r.CommandLines())

	for _, call := range r.Calls() {
		assert.Equal(t, "/repo", call.Dir)
	}
}

func TestPush_BranchFailureStopsTagPush(t *testing.T) {
	t.Parallel()

	r := &testutil.RecordingRunner{
		FailOn: map[string]error{"git push origin main": assert.AnError},
	}

	err := Push(context.Background(), r, "/repo", "origin", "main", "v1.3.0")
	require.Error(t, err)
	assert.Len(t, r.Calls(), 1, "tag push must not run after branch push fails")
}
