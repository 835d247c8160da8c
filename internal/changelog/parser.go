package changelog

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/ariel-frischer/shipit/internal/semver"
)

// ParseError represents a changelog parse or validation error with the
// line it occurred on (zero when the error is not tied to a single line).
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("changelog line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("changelog: %s", e.Message)
}

// IsParseError returns true if the error is a changelog ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

var (
	// sectionHeadingRegexp matches "## Unreleased", "## [Unreleased]",
	// "## 1.2.3 - 2024-01-15", and "## [1.2.3] - 2024-01-15".
	sectionHeadingRegexp = regexp.MustCompile(`^##\s+\[?([^\]\s]+)\]?(?:\s+-\s+(\S+))?\s*$`)

	// categoryHeadingRegexp matches "### Added" and friends.
	categoryHeadingRegexp = regexp.MustCompile(`^###\s+(\S+)\s*$`)

	// linkRegexp matches reference-style footer links: "[0.6.0]: https://...".
	linkRegexp = regexp.MustCompile(`^\[([^\]]+)\]:\s*(\S+)\s*$`)

	// dateRegexp matches the YYYY-MM-DD release date format.
	dateRegexp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Load reads and validates a CHANGELOG.md file from the given path.
func Load(path string) (*Document, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading changelog: %w", err)
	}
	return Parse(string(contents))
}

// Parse parses CHANGELOG.md contents into a Document and validates it.
// The parser is strict about the Keep a Changelog structure: section
// headings are "## <version> - <date>" (brackets optional), categories are
// "### <Category>", and entries are "-" or "*" bullets. Lines that fit
// none of these inside a section are a ParseError. Continuation lines
// indented under a bullet are folded into the preceding entry.
func Parse(contents string) (*Document, error) {
	doc := &Document{}
	lines := strings.Split(contents, "\n")

	var preamble []string
	var section *Section
	var category *[]string

	for i, line := range lines {
		lineNum := i + 1
		trimmed := strings.TrimRight(line, " \t")

		if m := sectionHeadingRegexp.FindStringSubmatch(trimmed); m != nil {
			if section != nil {
				doc.Sections = append(doc.Sections, *section)
			}
			section = &Section{Version: NormalizeVersion(m[1]), Date: m[2]}
			category = nil
			continue
		}

		if section == nil {
			preamble = append(preamble, line)
			continue
		}

		switch {
		case trimmed == "":
			// Blank lines between headings, categories, and entries.

		case categoryHeadingRegexp.MatchString(trimmed):
			name := strings.ToLower(categoryHeadingRegexp.FindStringSubmatch(trimmed)[1])
			category = section.Changes.group(name)
			if category == nil {
				return nil, &ParseError{Line: lineNum, Message: fmt.Sprintf("unknown category %q (valid: %s)", name, strings.Join(ValidCategories(), ", "))}
			}

		case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
			if category == nil {
				return nil, &ParseError{Line: lineNum, Message: "entry outside of a category heading"}
			}
			*category = append(*category, strings.TrimSpace(trimmed[2:]))

		case linkRegexp.MatchString(trimmed):
			m := linkRegexp.FindStringSubmatch(trimmed)
			doc.Links = append(doc.Links, Link{Ref: m[1], URL: m[2]})

		case strings.HasPrefix(line, "  ") || strings.HasPrefix(line, "\t"):
			// Continuation of the previous entry.
			if category == nil || len(*category) == 0 {
				return nil, &ParseError{Line: lineNum, Message: "continuation line without a preceding entry"}
			}
			(*category)[len(*category)-1] += " " + strings.TrimSpace(line)

		default:
			return nil, &ParseError{Line: lineNum, Message: fmt.Sprintf("unexpected line %q inside section %q", trimmed, section.Version)}
		}
	}

	if section != nil {
		doc.Sections = append(doc.Sections, *section)
	}
	doc.Preamble = strings.TrimRight(strings.Join(preamble, "\n"), "\n")

	if err := Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Validate checks that a Document satisfies the structural constraints
// shipit relies on: at most one unreleased section (and only as the
// newest), unique valid versions in descending order, dated non-empty
// released sections.
func Validate(doc *Document) error {
	seen := make(map[string]bool)
	var prev *semver.Version

	for i, s := range doc.Sections {
		if seen[s.Version] {
			return &ParseError{Message: fmt.Sprintf("duplicate section for version %q", s.Version)}
		}
		seen[s.Version] = true

		if s.IsUnreleased() {
			if i != 0 {
				return &ParseError{Message: "the Unreleased section must be the newest section"}
			}
			if s.Date != "" {
				return &ParseError{Message: "the Unreleased section must not carry a date"}
			}
			continue
		}

		v, err := semver.Parse(s.Version)
		if err != nil {
			return &ParseError{Message: fmt.Sprintf("section heading %q is not a semantic version", s.Version)}
		}
		if prev != nil && v.Compare(*prev) >= 0 {
			return &ParseError{Message: fmt.Sprintf("sections out of order: %s follows %s", s.Version, prev)}
		}
		prev = &v

		if s.Date == "" {
			return &ParseError{Message: fmt.Sprintf("released section %s is missing its date", s.Version)}
		}
		if !dateRegexp.MatchString(s.Date) {
			return &ParseError{Message: fmt.Sprintf("section %s has invalid date %q (expected YYYY-MM-DD)", s.Version, s.Date)}
		}
		if s.Changes.IsEmpty() {
			return &ParseError{Message: fmt.Sprintf("released section %s has no entries", s.Version)}
		}
	}

	return nil
}
