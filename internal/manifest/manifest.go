package manifest

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ParseError represents a manifest parse or validation error.
type ParseError struct {
	Path    string
	Message string
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// IsParseError returns true if the error is a manifest ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// Package holds the [package] table fields shipit cares about.
type Package struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Publish *bool  `toml:"publish"`
}

// workspaceTable holds the [workspace] table of a root manifest.
type workspaceTable struct {
	Members []string `toml:"members"`
}

// rawManifest mirrors the TOML structure of a Cargo-style manifest.
// Dependency values are either version strings or tables; they are decoded
// loosely and inspected for intra-workspace "path" keys.
type rawManifest struct {
	Package           *Package        `toml:"package"`
	Workspace         *workspaceTable `toml:"workspace"`
	Dependencies      map[string]any  `toml:"dependencies"`
	DevDependencies   map[string]any  `toml:"dev-dependencies"`
	BuildDependencies map[string]any  `toml:"build-dependencies"`
}

// Manifest is one parsed workspace member manifest.
type Manifest struct {
	// Path is the manifest file location on disk.
	Path string
	// Name is the package name.
	Name string
	// Version is the declared package version string.
	Version string
	// Publish reports whether the package may be published
	// (Cargo's publish = false opt-out).
	Publish bool
	// PathDeps lists the names of dependencies declared with a "path"
	// key, i.e. candidate intra-workspace edges.
	PathDeps []string

	// members declared by the [workspace] table, root manifest only.
	workspaceMembers []string
}

// Load reads and parses a single manifest file.
func Load(path string) (*Manifest, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var raw rawManifest
	if err := toml.Unmarshal(contents, &raw); err != nil {
		return nil, &ParseError{Path: path, Message: fmt.Sprintf("invalid TOML: %v", err)}
	}
	if raw.Package == nil {
		return nil, &ParseError{Path: path, Message: "missing [package] table"}
	}
	if raw.Package.Name == "" {
		return nil, &ParseError{Path: path, Message: "package name is empty"}
	}
	if raw.Package.Version == "" {
		return nil, &ParseError{Path: path, Message: "package version is missing"}
	}

	m := &Manifest{
		Path:    path,
		Name:    raw.Package.Name,
		Version: raw.Package.Version,
		Publish: raw.Package.Publish == nil || *raw.Package.Publish,
	}
	if raw.Workspace != nil {
		m.workspaceMembers = raw.Workspace.Members
	}

	for _, deps := range []map[string]any{raw.Dependencies, raw.DevDependencies, raw.BuildDependencies} {
		for name, value := range deps {
			if hasPathKey(value) {
				m.PathDeps = append(m.PathDeps, name)
			}
		}
	}

	return m, nil
}

// hasPathKey reports whether a dependency value is a table with a "path"
// key, marking it as an intra-workspace dependency.
func hasPathKey(value any) bool {
	table, ok := value.(map[string]any)
	if !ok {
		return false
	}
	_, ok = table["path"]
	return ok
}
