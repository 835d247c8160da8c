package config

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/ariel-frischer/shipit/internal/errors"
)

// Validate checks configuration values for consistency. Template fields
// are parsed eagerly so a bad template fails at startup rather than
// halfway through a release.
func Validate(cfg *Configuration) error {
	if strings.TrimSpace(cfg.Manifest) == "" {
		return errors.NewConfigError("manifest path must not be empty",
			"Set manifest to the workspace root Cargo.toml")
	}
	if strings.TrimSpace(cfg.Changelog) == "" {
		return errors.NewConfigError("changelog path must not be empty",
			"Set changelog to the Keep a Changelog file")
	}
	if strings.TrimSpace(cfg.Remote) == "" {
		return errors.NewConfigError("remote must not be empty",
			"Set remote to the git remote releases are pushed to (usually origin)")
	}
	if strings.TrimSpace(cfg.PublishCommand) == "" {
		return errors.NewConfigError("publish_command must not be empty",
			`Set publish_command, e.g. "cargo publish -p {{.Package}}"`)
	}

	for field, tmpl := range map[string]string{
		"commit_message":  cfg.CommitMessage,
		"publish_command": cfg.PublishCommand,
	} {
		if _, err := template.New(field).Parse(tmpl); err != nil {
			return errors.NewConfigError(
				fmt.Sprintf("%s is not a valid template: %v", field, err),
				"Use {{.Version}} in commit_message and {{.Package}} in publish_command")
		}
	}

	return nil
}
