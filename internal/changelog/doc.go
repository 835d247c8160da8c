// Package changelog provides Keep a Changelog management for shipit.
//
// This package implements:
//   - CHANGELOG.md parsing into a structured document model
//   - Release classification (major/minor/patch) from unreleased entries
//   - The release rewrite: renaming Unreleased, inserting a fresh section,
//     and regenerating the comparison-link footer
//   - Version and entry querying for CLI display
//
// The CHANGELOG.md file is the single source of truth: shipit reads it,
// transforms it in memory, and writes it back in canonical Keep a
// Changelog form.
package changelog
