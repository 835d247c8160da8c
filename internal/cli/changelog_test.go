package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/shipit/internal/testutil"
)

const testChangelog = `# Changelog

## [Unreleased]

### Added

- Streaming decode API

## [1.1.0] - 2026-03-02

### Added

- Frame batching

### Fixed

- Checksum mismatch on empty frames

## [1.0.0] - 2026-01-10

### Added

- Initial release
`

// chdirFixture creates a repo with a changelog and workspace manifest and
// makes it the working directory for the test.
func chdirFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "CHANGELOG.md"), []byte(testChangelog), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte("[package]\nname = \"widget\"\nversion = \"1.1.0\"\n"), 0o644))
	_, err := testutil.InitRepo(dir)
	require.NoError(t, err)

	t.Chdir(dir)
	return dir
}

// captureCmd returns a throwaway command with buffered output streams.
func captureCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	cmd := &cobra.Command{}
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	return cmd, out, errOut
}

func TestRunChangelogView_Version(t *testing.T) {
	chdirFixture(t)
	changelogPlainFlag = true
	changelogYAMLFlag = false
	t.Cleanup(func() { changelogPlainFlag = false })

	cmd, out, _ := captureCmd()
	require.NoError(t, runChangelogView(cmd, []string{"1.1.0"}))

	assert.Contains(t, out.String(), "1.1.0")
	assert.Contains(t, out.String(), "Frame batching")
	assert.Contains(t, out.String(), "Checksum mismatch on empty frames")
	assert.NotContains(t, out.String(), "Streaming decode API")
}

func TestRunChangelogView_VPrefixOptional(t *testing.T) {
	chdirFixture(t)
	changelogPlainFlag = true
	t.Cleanup(func() { changelogPlainFlag = false })

	cmd, out, _ := captureCmd()
	require.NoError(t, runChangelogView(cmd, []string{"v1.0.0"}))
	assert.Contains(t, out.String(), "Initial release")
}

func TestRunChangelogView_Unreleased(t *testing.T) {
	chdirFixture(t)
	changelogPlainFlag = true
	t.Cleanup(func() { changelogPlainFlag = false })

	cmd, out, _ := captureCmd()
	require.NoError(t, runChangelogView(cmd, []string{"unreleased"}))
	assert.Contains(t, out.String(), "Streaming decode API")
}

func TestRunChangelogView_VersionNotFound(t *testing.T) {
	chdirFixture(t)

	cmd, _, errOut := captureCmd()
	err := runChangelogView(cmd, []string{"9.9.9"})
	require.Error(t, err)

	var exit *ExitError
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, ExitInvalidArguments, exit.Code)
	assert.Contains(t, errOut.String(), "not found")
	assert.Contains(t, errOut.String(), "1.1.0")
}

func TestRunChangelogView_LastEntries(t *testing.T) {
	chdirFixture(t)
	changelogPlainFlag = true
	changelogLastFlag = 2
	t.Cleanup(func() {
		changelogPlainFlag = false
		changelogLastFlag = 5
	})

	cmd, out, _ := captureCmd()
	require.NoError(t, runChangelogView(cmd, nil))

	assert.Contains(t, out.String(), "Streaming decode API")
	assert.Contains(t, out.String(), "Frame batching")
	assert.NotContains(t, out.String(), "Initial release")
}

func TestRunChangelogView_YAML(t *testing.T) {
	chdirFixture(t)
	changelogYAMLFlag = true
	t.Cleanup(func() { changelogYAMLFlag = false })

	cmd, out, _ := captureCmd()
	require.NoError(t, runChangelogView(cmd, []string{"1.0.0"}))

	assert.Contains(t, out.String(), "version: 1.0.0")
	assert.Contains(t, out.String(), "date: 2026-01-10")
	assert.Contains(t, out.String(), "Initial release")
}

func TestRunInit(t *testing.T) {
	dir := chdirFixture(t)

	cmd, out, _ := captureCmd()
	require.NoError(t, runInit(cmd, nil))

	path := filepath.Join(dir, ".shipit", "config.yml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "changelog:")
	assert.Contains(t, string(data), "publish_command:")
	assert.Contains(t, out.String(), "Wrote")

	// A second run refuses to overwrite without --force.
	cmd, _, _ = captureCmd()
	err = runInit(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	initForceFlag = true
	t.Cleanup(func() { initForceFlag = false })
	cmd, _, _ = captureCmd()
	require.NoError(t, runInit(cmd, nil))
}

func TestVersionCmd_Plain(t *testing.T) {
	versionPlainFlag = true
	t.Cleanup(func() { versionPlainFlag = false })

	cmd, out, _ := captureCmd()
	printPlainVersion(cmd)

	assert.Contains(t, out.String(), "shipit dev")
	assert.Contains(t, out.String(), "go: go")
}
