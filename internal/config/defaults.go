package config

// Defaults returns the default configuration values.
func Defaults() map[string]any {
	return map[string]any{
		"manifest":        "Cargo.toml",
		"changelog":       "CHANGELOG.md",
		"remote":          "origin",
		"branch":          "",
		"tag_prefix":      "v",
		"commit_message":  "release: v{{.Version}}",
		"publish_command": "cargo publish -p {{.Package}}",
		"repo_url":        "",
		"update_lockfile": true,
	}
}

// Template returns a fully commented starter config written by
// 'shipit init'.
func Template() string {
	return `# Shipit Configuration
# Values here override the built-in defaults; SHIPIT_* environment
# variables override values here.

manifest: Cargo.toml              # Root workspace manifest
changelog: CHANGELOG.md           # Keep a Changelog file
remote: origin                    # Git remote to push the release to
branch: ""                        # Branch releases are cut from ("" = any)
tag_prefix: v                     # Release tag prefix (v1.2.3)
commit_message: "release: v{{.Version}}"
publish_command: "cargo publish -p {{.Package}}"
repo_url: ""                      # Base URL for changelog links ("" = derive)
update_lockfile: true             # Run 'cargo update --workspace' first
`
}
