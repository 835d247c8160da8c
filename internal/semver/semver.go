// Package semver provides parsing, comparison, and bumping of the bare
// three-component version numbers shipit manages (e.g. "1.12.3").
// Prerelease and build metadata suffixes are rejected: workspace releases
// always move between plain X.Y.Z versions.
package semver

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Version is an immutable major.minor.patch triple.
type Version struct {
	Major, Minor, Patch int
}

// Level is the severity of a release bump.
type Level int

const (
	// Patch releases contain only backwards-compatible fixes.
	Patch Level = iota
	// Minor releases add functionality in a backwards-compatible manner.
	Minor
	// Major releases contain breaking changes.
	Major
)

// String returns a human-readable name for the bump level.
func (l Level) String() string {
	switch l {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Patch:
		return "patch"
	default:
		return "unknown"
	}
}

// Max returns the more severe of two bump levels.
func Max(a, b Level) Level {
	if a > b {
		return a
	}
	return b
}

// ParseError is returned when a version string is not a bare X.Y.Z version.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid version %q: %s", e.Input, e.Reason)
}

// Parse parses a bare "X.Y.Z" version string. A "v" prefix, missing
// components, prerelease suffixes, and build metadata are all rejected.
func Parse(s string) (Version, error) {
	if strings.HasPrefix(s, "v") {
		return Version{}, &ParseError{Input: s, Reason: "unexpected 'v' prefix"}
	}

	// Validate through x/mod/semver, which expects the "v" prefix.
	prefixed := "v" + s
	if !semver.IsValid(prefixed) {
		return Version{}, &ParseError{Input: s, Reason: "not a semantic version"}
	}
	if semver.Prerelease(prefixed) != "" || semver.Build(prefixed) != "" {
		return Version{}, &ParseError{Input: s, Reason: "prerelease and build suffixes are not supported"}
	}
	if semver.Canonical(prefixed) != prefixed {
		return Version{}, &ParseError{Input: s, Reason: "expected exactly three numeric components (X.Y.Z)"}
	}

	parts := strings.SplitN(s, ".", 3)
	var v Version
	var err error
	if v.Major, err = strconv.Atoi(parts[0]); err != nil {
		return Version{}, &ParseError{Input: s, Reason: "major component is not a number"}
	}
	if v.Minor, err = strconv.Atoi(parts[1]); err != nil {
		return Version{}, &ParseError{Input: s, Reason: "minor component is not a number"}
	}
	if v.Patch, err = strconv.Atoi(parts[2]); err != nil {
		return Version{}, &ParseError{Input: s, Reason: "patch component is not a number"}
	}
	return v, nil
}

// MustParse is like Parse but panics on malformed input. Intended for
// tests and compile-time constants.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String formats the version as "X.Y.Z".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Tag formats the version as a git tag with the given prefix (e.g. "v1.2.3").
func (v Version) Tag(prefix string) string {
	return prefix + v.String()
}

// Compare returns -1, 0, or +1 depending on whether v is less than, equal
// to, or greater than other.
func (v Version) Compare(other Version) int {
	switch {
	case v.Major != other.Major:
		return cmpInt(v.Major, other.Major)
	case v.Minor != other.Minor:
		return cmpInt(v.Minor, other.Minor)
	default:
		return cmpInt(v.Patch, other.Patch)
	}
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// Bump returns the next version for the given bump level. Lower components
// reset to zero: 1.2.3 bumped minor is 1.3.0, bumped major is 2.0.0.
func (v Version) Bump(level Level) Version {
	switch level {
	case Major:
		return Version{Major: v.Major + 1}
	case Minor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}
