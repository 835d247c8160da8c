package changelog

import "strings"

// UnreleasedVersion is the normalized version identifier of the section
// collecting not-yet-released entries.
const UnreleasedVersion = "unreleased"

// Document represents a parsed CHANGELOG.md file. It contains the preamble
// (everything before the first version heading), an ordered list of version
// sections with the newest first, and the reference-link footer.
type Document struct {
	Preamble string
	Sections []Section
	Links    []Link
}

// Section represents a single version section in the changelog.
// The Version field is a bare semantic version (e.g. "0.6.0") or the
// special identifier "unreleased". The Date field is required for released
// sections (format: YYYY-MM-DD) and empty for unreleased.
type Section struct {
	Version string
	Date    string
	Changes Changes
}

// Changes groups change entries by Keep a Changelog category.
// Categories follow the Keep a Changelog specification:
// https://keepachangelog.com/en/1.1.0/
type Changes struct {
	Added      []string
	Changed    []string
	Deprecated []string
	Removed    []string
	Fixed      []string
	Security   []string
}

// Entry is a flattened view of a single changelog entry, used for querying
// and display where the version and category context is needed alongside
// the text.
type Entry struct {
	Text     string
	Category string
	Version  string
}

// Link is one reference-style link from the changelog footer,
// e.g. "[0.6.0]: https://github.com/owner/repo/compare/v0.5.0...v0.6.0".
type Link struct {
	Ref string
	URL string
}

// IsEmpty returns true if the Changes struct has no entries in any category.
func (c Changes) IsEmpty() bool {
	return c.Count() == 0
}

// Count returns the total number of entries across all categories.
func (c Changes) Count() int {
	return len(c.Added) +
		len(c.Changed) +
		len(c.Deprecated) +
		len(c.Removed) +
		len(c.Fixed) +
		len(c.Security)
}

// byCategory returns the category groups in standard rendering order.
func (c *Changes) byCategory() []struct {
	Name    string
	Entries []string
} {
	return []struct {
		Name    string
		Entries []string
	}{
		{"Added", c.Added},
		{"Changed", c.Changed},
		{"Deprecated", c.Deprecated},
		{"Removed", c.Removed},
		{"Fixed", c.Fixed},
		{"Security", c.Security},
	}
}

// group returns a pointer to the entry slice for the given lowercase
// category name, or nil if the category is unknown.
func (c *Changes) group(category string) *[]string {
	switch category {
	case "added":
		return &c.Added
	case "changed":
		return &c.Changed
	case "deprecated":
		return &c.Deprecated
	case "removed":
		return &c.Removed
	case "fixed":
		return &c.Fixed
	case "security":
		return &c.Security
	default:
		return nil
	}
}

// IsUnreleased returns true if this section collects unreleased changes.
func (s Section) IsUnreleased() bool {
	return s.Version == UnreleasedVersion
}

// Entries returns a flattened list of all entries in this section,
// in standard category order.
func (s Section) Entries() []Entry {
	entries := make([]Entry, 0, s.Changes.Count())
	for _, cat := range s.Changes.byCategory() {
		for _, text := range cat.Entries {
			entries = append(entries, Entry{Text: text, Category: strings.ToLower(cat.Name), Version: s.Version})
		}
	}
	return entries
}

// ValidCategories returns the list of valid Keep a Changelog categories
// in their standard rendering order.
func ValidCategories() []string {
	return []string{"added", "changed", "deprecated", "removed", "fixed", "security"}
}

// NormalizeVersion normalizes a version identifier by lowercasing it and
// removing any "v" prefix. This allows accepting "v0.6.0", "0.6.0", and
// "Unreleased" interchangeably on input.
func NormalizeVersion(version string) string {
	return strings.TrimPrefix(strings.ToLower(version), "v")
}
