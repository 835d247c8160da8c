package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/shipit/internal/semver"
)

// writeWorkspace lays out a root manifest plus two members under a temp
// dir, mirroring the usual crate-plus-proc-macro split.
func writeWorkspace(t *testing.T, version string) string {
	t.Helper()
	dir := t.TempDir()

	writeManifest(t, dir, "Cargo.toml", `[workspace]
members = ["widget-macro", "widget-bench"]

[package]
name = "widget"
version = "`+version+`"

[dependencies]
widget-macro = { version = "`+version+`", path = "widget-macro" }
`)
	writeManifest(t, dir, "widget-macro/Cargo.toml", `[package]
name = "widget-macro"
version = "`+version+`"
`)
	writeManifest(t, dir, "widget-bench/Cargo.toml", `[package]
name = "widget-bench"
version = "`+version+`"
publish = false

[dev-dependencies]
widget = { version = "`+version+`", path = ".." }
`)

	return filepath.Join(dir, "Cargo.toml")
}

func TestLoadWorkspace(t *testing.T) {
	t.Parallel()

	ws, err := LoadWorkspace(t.Context(), writeWorkspace(t, "1.2.3"))
	require.NoError(t, err)

	assert.Equal(t, semver.MustParse("1.2.3"), ws.Version)
	require.Len(t, ws.Members, 3)
	assert.Equal(t, "widget", ws.Members[0].Name)
	assert.Equal(t, "widget-macro", ws.Members[1].Name)
	assert.Equal(t, "widget-bench", ws.Members[2].Name)

	assert.NotNil(t, ws.Member("widget-macro"))
	assert.Nil(t, ws.Member("missing"))
}

func TestLoadWorkspace_VersionMismatch(t *testing.T) {
	t.Parallel()

	rootPath := writeWorkspace(t, "1.2.3")
	macroPath := filepath.Join(filepath.Dir(rootPath), "widget-macro", "Cargo.toml")
	require.NoError(t, os.WriteFile(macroPath, []byte("[package]\nname = \"widget-macro\"\nversion = \"1.2.2\"\n"), 0o644))

	_, err := LoadWorkspace(t.Context(), rootPath)
	require.Error(t, err)
	assert.True(t, IsParseError(err))
	assert.Contains(t, err.Error(), "declares version 1.2.2")
}

func TestLoadWorkspace_InvalidRootVersion(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rootPath := writeManifest(t, dir, "Cargo.toml", "[package]\nname = \"widget\"\nversion = \"not.a.version\"\n")

	_, err := LoadWorkspace(t.Context(), rootPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a semantic version")
}

func TestLoadWorkspace_MissingMember(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rootPath := writeManifest(t, dir, "Cargo.toml", `[workspace]
members = ["gone"]

[package]
name = "widget"
version = "1.2.3"
`)

	_, err := LoadWorkspace(t.Context(), rootPath)
	require.Error(t, err)
}

func TestWorkspace_SetVersion(t *testing.T) {
	t.Parallel()

	ws, err := LoadWorkspace(t.Context(), writeWorkspace(t, "1.2.3"))
	require.NoError(t, err)

	require.NoError(t, ws.SetVersion(semver.MustParse("1.3.0")))
	assert.Equal(t, semver.MustParse("1.3.0"), ws.Version)

	reloaded, err := LoadWorkspace(t.Context(), ws.Root.Path)
	require.NoError(t, err)
	assert.Equal(t, semver.MustParse("1.3.0"), reloaded.Version)
	for _, m := range reloaded.Members {
		assert.Equal(t, "1.3.0", m.Version, "member %s", m.Name)
	}
}

func TestWorkspace_ManifestPaths(t *testing.T) {
	t.Parallel()

	ws, err := LoadWorkspace(t.Context(), writeWorkspace(t, "1.2.3"))
	require.NoError(t, err)

	paths := ws.ManifestPaths()
	require.Len(t, paths, 3)
	assert.Equal(t, ws.Root.Path, paths[0])
}
