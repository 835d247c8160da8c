package changelog

import (
	"strings"

	"github.com/ariel-frischer/shipit/internal/semver"
)

// categorySeverity maps each Keep a Changelog category to the release
// level it implies. Removed and Changed entries break the public API of a
// post-1.0 library, Added entries extend it, and the remaining categories
// are backwards compatible.
var categorySeverity = map[string]semver.Level{
	"added":      semver.Minor,
	"changed":    semver.Major,
	"deprecated": semver.Patch,
	"removed":    semver.Major,
	"fixed":      semver.Patch,
	"security":   semver.Patch,
}

// Classify inspects a set of changes and returns the release level they
// call for. The most severe category present wins; a set with no entries
// classifies as a patch, but callers should treat an empty unreleased
// section as "nothing to release" before classifying.
func Classify(c Changes) semver.Level {
	level := semver.Patch
	for _, cat := range c.byCategory() {
		if len(cat.Entries) == 0 {
			continue
		}
		level = semver.Max(level, CategorySeverity(strings.ToLower(cat.Name)))
	}
	return level
}

// CategorySeverity returns the release level implied by a single category
// name (lowercase). Unknown categories classify as patch.
func CategorySeverity(category string) semver.Level {
	if level, ok := categorySeverity[category]; ok {
		return level
	}
	return semver.Patch
}
