package manifest

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// versionLineRegexp matches the version assignment inside [package],
// capturing everything around the quoted value so the rewrite preserves
// the author's spacing and trailing comments.
var versionLineRegexp = regexp.MustCompile(`^(\s*version\s*=\s*)"[^"]*"(.*)$`)

// tableHeadingRegexp matches TOML table headings like [package].
var tableHeadingRegexp = regexp.MustCompile(`^\s*\[`)

// SetVersion rewrites the version field of the [package] table in the
// manifest at path, preserving every other byte of the file. The rewrite
// is line based rather than a TOML marshal round-trip: manifests are
// hand-crafted and carry comments and formatting that must survive.
func SetVersion(path, newVersion string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading manifest: %w", err)
	}

	lines := strings.Split(string(contents), "\n")
	inPackage := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if tableHeadingRegexp.MatchString(line) {
			inPackage = trimmed == "[package]"
			continue
		}
		if !inPackage {
			continue
		}
		if m := versionLineRegexp.FindStringSubmatch(line); m != nil {
			lines[i] = fmt.Sprintf(`%s"%s"%s`, m[1], newVersion, m[2])
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
	}

	return &ParseError{Path: path, Message: "no version field found in the [package] table"}
}
