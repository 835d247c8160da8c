package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadWithOptions(LoadOptions{
		ProjectConfigPath: filepath.Join(t.TempDir(), "does-not-exist.yml"),
		SkipWarnings:      true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Cargo.toml", cfg.Manifest)
	assert.Equal(t, "CHANGELOG.md", cfg.Changelog)
	assert.Equal(t, "origin", cfg.Remote)
	assert.Equal(t, "v", cfg.TagPrefix)
	assert.Equal(t, "release: v{{.Version}}", cfg.CommitMessage)
	assert.Equal(t, "cargo publish -p {{.Package}}", cfg.PublishCommand)
	assert.True(t, cfg.UpdateLockfile)
}

func TestLoad_ProjectConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
changelog: docs/CHANGELOG.md
branch: main
tag_prefix: ""
update_lockfile: false
`), 0o644))

	cfg, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipWarnings: true})
	require.NoError(t, err)

	assert.Equal(t, "docs/CHANGELOG.md", cfg.Changelog)
	assert.Equal(t, "main", cfg.Branch)
	assert.Equal(t, "", cfg.TagPrefix)
	assert.False(t, cfg.UpdateLockfile)
	// Untouched keys keep their defaults.
	assert.Equal(t, "Cargo.toml", cfg.Manifest)
}

func TestLoad_EnvOverridesProjectConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("remote: upstream\n"), 0o644))

	t.Setenv("SHIPIT_REMOTE", "fork")
	t.Setenv("SHIPIT_TAG_PREFIX", "release-")

	cfg, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipWarnings: true})
	require.NoError(t, err)

	assert.Equal(t, "fork", cfg.Remote)
	assert.Equal(t, "release-", cfg.TagPrefix)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("remote: [unclosed\n"), 0o644))

	_, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipWarnings: true})
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Configuration {
		return &Configuration{
			Manifest:       "Cargo.toml",
			Changelog:      "CHANGELOG.md",
			Remote:         "origin",
			CommitMessage:  "release: v{{.Version}}",
			PublishCommand: "cargo publish -p {{.Package}}",
		}
	}

	tests := map[string]struct {
		mutate  func(*Configuration)
		wantErr string
	}{
		"valid config":         {mutate: func(c *Configuration) {}},
		"empty manifest":       {mutate: func(c *Configuration) { c.Manifest = " " }, wantErr: "manifest"},
		"empty changelog":      {mutate: func(c *Configuration) { c.Changelog = "" }, wantErr: "changelog"},
		"empty remote":         {mutate: func(c *Configuration) { c.Remote = "" }, wantErr: "remote"},
		"empty publish":        {mutate: func(c *Configuration) { c.PublishCommand = "" }, wantErr: "publish_command"},
		"bad commit template":  {mutate: func(c *Configuration) { c.CommitMessage = "release: {{.Version" }, wantErr: "commit_message"},
		"bad publish template": {mutate: func(c *Configuration) { c.PublishCommand = "cargo publish {{" }, wantErr: "publish_command"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
