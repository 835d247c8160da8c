package manifest

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ariel-frischer/shipit/internal/semver"
)

// Workspace is the root manifest plus every member manifest, all sharing
// one release version.
type Workspace struct {
	// Root is the primary manifest the current version is read from.
	Root *Manifest
	// Members holds every workspace member including the root package,
	// in manifest-declaration order.
	Members []*Manifest
	// Version is the shared workspace version.
	Version semver.Version
}

// LoadWorkspace loads the root manifest at rootPath and all [workspace]
// members it declares. Member manifests are read concurrently. All members
// must declare the same version; disagreement is a ParseError.
func LoadWorkspace(ctx context.Context, rootPath string) (*Workspace, error) {
	root, err := Load(rootPath)
	if err != nil {
		return nil, err
	}

	members := make([]*Manifest, len(root.workspaceMembers))
	g, _ := errgroup.WithContext(ctx)
	for i, member := range root.workspaceMembers {
		g.Go(func() error {
			path := filepath.Join(filepath.Dir(rootPath), member, filepath.Base(rootPath))
			m, err := Load(path)
			if err != nil {
				return err
			}
			members[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ws := &Workspace{
		Root:    root,
		Members: append([]*Manifest{root}, members...),
	}

	version, err := semver.Parse(root.Version)
	if err != nil {
		return nil, &ParseError{Path: root.Path, Message: fmt.Sprintf("version %q is not a semantic version", root.Version)}
	}
	ws.Version = version

	for _, m := range ws.Members {
		if m.Version != root.Version {
			return nil, &ParseError{
				Path:    m.Path,
				Message: fmt.Sprintf("member %s declares version %s, but the workspace version is %s", m.Name, m.Version, root.Version),
			}
		}
	}

	if err := ws.checkUniqueNames(); err != nil {
		return nil, err
	}

	return ws, nil
}

// checkUniqueNames rejects workspaces with duplicate package names.
func (w *Workspace) checkUniqueNames() error {
	seen := make(map[string]string, len(w.Members))
	for _, m := range w.Members {
		if other, ok := seen[m.Name]; ok {
			return &ParseError{Path: m.Path, Message: fmt.Sprintf("package name %q already used by %s", m.Name, other)}
		}
		seen[m.Name] = m.Path
	}
	return nil
}

// Member returns the member with the given package name, or nil.
func (w *Workspace) Member(name string) *Manifest {
	for _, m := range w.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// ManifestPaths returns the file paths of every member manifest,
// root first, the rest sorted for stable output.
func (w *Workspace) ManifestPaths() []string {
	paths := make([]string, 0, len(w.Members))
	for _, m := range w.Members[1:] {
		paths = append(paths, m.Path)
	}
	sort.Strings(paths)
	return append([]string{w.Root.Path}, paths...)
}

// SetVersion rewrites every member manifest to the given version.
// Files already carrying the target version are left untouched.
func (w *Workspace) SetVersion(version semver.Version) error {
	for _, m := range w.Members {
		if err := SetVersion(m.Path, version.String()); err != nil {
			return err
		}
		m.Version = version.String()
	}
	w.Version = version
	return nil
}
