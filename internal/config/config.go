// Package config provides hierarchical configuration management for shipit
// using koanf. Configuration is loaded with priority: environment variables
// > project config (.shipit/config.yml) > user config
// (~/.config/shipit/config.yml) > defaults. Legacy JSON project configs
// (.shipit/config.json) are still read, with a migration warning.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration represents the shipit CLI tool configuration.
type Configuration struct {
	// Manifest is the path of the root workspace manifest, relative to
	// the repository root. Can be set via SHIPIT_MANIFEST.
	Manifest string `koanf:"manifest"`

	// Changelog is the path of the Keep a Changelog file, relative to
	// the repository root. Can be set via SHIPIT_CHANGELOG.
	Changelog string `koanf:"changelog"`

	// Remote is the git remote releases are pushed to.
	Remote string `koanf:"remote"`

	// Branch is the branch releases must be cut from.
	// Empty means any branch is acceptable.
	Branch string `koanf:"branch"`

	// TagPrefix is prepended to the version when tagging (default "v").
	TagPrefix string `koanf:"tag_prefix"`

	// CommitMessage is a text/template for the release commit message.
	// {{.Version}} expands to the new version.
	CommitMessage string `koanf:"commit_message"`

	// PublishCommand is a text/template for the per-member publish
	// command line. {{.Package}} expands to the member's package name.
	PublishCommand string `koanf:"publish_command"`

	// RepoURL overrides the repository base URL used for changelog
	// comparison links. When empty the URL is derived from the existing
	// links or the git remote.
	RepoURL string `koanf:"repo_url"`

	// UpdateLockfile controls whether the lockfile refresh step
	// (cargo update --workspace) runs before the release.
	UpdateLockfile bool `koanf:"update_lockfile"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .shipit/config.yml)
	ProjectConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := opts.WarningWriter
	if warningWriter == nil {
		warningWriter = os.Stderr
	}

	for key, value := range Defaults() {
		k.Set(key, value)
	}

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider("SHIPIT_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadUserConfig loads the user-level YAML config if it exists.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil || !fileExists(path) {
		return nil
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load user config %s: %w", path, err)
	}
	return nil
}

// loadProjectConfig loads the project-level config. YAML is preferred;
// legacy JSON is still read with a migration warning.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	yamlPath := ProjectConfigPath()
	if customPath != "" {
		yamlPath = customPath
	}

	if fileExists(yamlPath) {
		if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
			return fmt.Errorf("failed to load project config %s: %w", yamlPath, err)
		}
		return nil
	}

	legacyPath := LegacyProjectConfigPath()
	if fileExists(legacyPath) {
		if err := k.Load(file.Provider(legacyPath), json.Parser()); err != nil {
			return fmt.Errorf("failed to load legacy project config %s: %w", legacyPath, err)
		}
		if !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", legacyPath)
			fmt.Fprintf(warningWriter, "  Move it to %s in YAML format.\n\n", ProjectConfigPath())
		}
	}
	return nil
}

// envTransform converts environment variable names to config keys.
// Example: SHIPIT_TAG_PREFIX -> tag_prefix
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "SHIPIT_"))
}

// fileExists checks whether a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
