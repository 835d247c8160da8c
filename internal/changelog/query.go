package changelog

import (
	"fmt"
	"strings"
)

// VersionNotFoundError is returned when a requested version doesn't exist.
type VersionNotFoundError struct {
	Version           string
	AvailableVersions []string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %q not found (available: %s)",
		e.Version, strings.Join(e.AvailableVersions, ", "))
}

// GetSection retrieves a specific version's section from the document.
// Accepts both "v0.6.0" and "0.6.0" formats (normalizes the input).
// Returns VersionNotFoundError if the version doesn't exist.
func (d *Document) GetSection(version string) (*Section, error) {
	normalized := NormalizeVersion(version)

	for i := range d.Sections {
		if d.Sections[i].Version == normalized {
			return &d.Sections[i], nil
		}
	}

	return nil, &VersionNotFoundError{
		Version:           version,
		AvailableVersions: d.ListVersions(),
	}
}

// Unreleased retrieves the unreleased section, or nil if there isn't one.
func (d *Document) Unreleased() *Section {
	for i := range d.Sections {
		if d.Sections[i].IsUnreleased() {
			return &d.Sections[i]
		}
	}
	return nil
}

// HasUnreleasedChanges returns true if the unreleased section exists and
// holds at least one entry.
func (d *Document) HasUnreleasedChanges() bool {
	unreleased := d.Unreleased()
	return unreleased != nil && !unreleased.Changes.IsEmpty()
}

// LatestRelease returns the most recent released section (not unreleased).
// Returns nil if there are no released sections.
func (d *Document) LatestRelease() *Section {
	for i := range d.Sections {
		if !d.Sections[i].IsUnreleased() {
			return &d.Sections[i]
		}
	}
	return nil
}

// ListVersions returns all version identifiers in the document,
// newest first.
func (d *Document) ListVersions() []string {
	versions := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		versions[i] = s.Version
	}
	return versions
}

// AllEntries returns all entries from all sections, newest first.
// Entries within each section follow standard category order.
func (d *Document) AllEntries() []Entry {
	var entries []Entry
	for _, s := range d.Sections {
		entries = append(entries, s.Entries()...)
	}
	return entries
}

// LastN retrieves the N most recent entries across all sections.
// If N exceeds the total number of entries, all entries are returned.
func (d *Document) LastN(n int) []Entry {
	if n <= 0 {
		return []Entry{}
	}
	entries := d.AllEntries()
	if len(entries) <= n {
		return entries
	}
	return entries[:n]
}

// EntryCount returns the total number of entries across all sections.
func (d *Document) EntryCount() int {
	count := 0
	for _, s := range d.Sections {
		count += s.Changes.Count()
	}
	return count
}
