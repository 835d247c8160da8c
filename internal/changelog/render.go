package changelog

import (
	"fmt"
	"io"
	"strings"
)

// Render writes the document back out as canonical Keep a Changelog
// markdown. The preamble is reproduced verbatim; sections and the link
// footer are regenerated. Rendering a document parsed from canonical
// markdown reproduces the input byte for byte.
func Render(doc *Document, w io.Writer) error {
	if doc.Preamble != "" {
		if _, err := io.WriteString(w, doc.Preamble+"\n"); err != nil {
			return err
		}
	}

	for _, s := range doc.Sections {
		if err := renderSection(&s, w); err != nil {
			return fmt.Errorf("rendering section %s: %w", s.Version, err)
		}
	}

	return renderLinks(doc.Links, w)
}

// RenderString is a convenience function that renders to a string.
func RenderString(doc *Document) (string, error) {
	var b strings.Builder
	if err := Render(doc, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// renderSection writes a single version section with all its changes.
func renderSection(s *Section, w io.Writer) error {
	if _, err := io.WriteString(w, "\n"+formatSectionHeading(s)+"\n"); err != nil {
		return err
	}

	for _, cat := range s.Changes.byCategory() {
		if len(cat.Entries) == 0 {
			continue
		}
		if _, err := io.WriteString(w, "\n### "+cat.Name+"\n\n"); err != nil {
			return err
		}
		for _, entry := range cat.Entries {
			if _, err := io.WriteString(w, "- "+entry+"\n"); err != nil {
				return err
			}
		}
	}

	return nil
}

// formatSectionHeading formats the "## [version] - date" heading line.
func formatSectionHeading(s *Section) string {
	if s.IsUnreleased() {
		return "## [Unreleased]"
	}
	return fmt.Sprintf("## [%s] - %s", s.Version, s.Date)
}

// renderLinks writes the reference-link footer.
func renderLinks(links []Link, w io.Writer) error {
	if len(links) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	for _, link := range links {
		if _, err := io.WriteString(w, fmt.Sprintf("[%s]: %s\n", link.Ref, link.URL)); err != nil {
			return err
		}
	}
	return nil
}

// ComparisonLinks generates the footer links for the document's sections:
// Unreleased diffs against the newest release, each release diffs against
// its predecessor, and the oldest release links to its tag page.
func ComparisonLinks(sections []Section, baseURL string) []Link {
	links := make([]Link, 0, len(sections))
	for i, s := range sections {
		if s.IsUnreleased() {
			if i+1 < len(sections) {
				links = append(links, Link{
					Ref: "Unreleased",
					URL: fmt.Sprintf("%s/compare/v%s...HEAD", baseURL, sections[i+1].Version),
				})
			}
			continue
		}
		if i+1 < len(sections) {
			links = append(links, Link{
				Ref: s.Version,
				URL: fmt.Sprintf("%s/compare/v%s...v%s", baseURL, sections[i+1].Version, s.Version),
			})
		} else {
			links = append(links, Link{
				Ref: s.Version,
				URL: fmt.Sprintf("%s/releases/tag/v%s", baseURL, s.Version),
			})
		}
	}
	return links
}

// LinkBase derives the repository base URL from the document's existing
// footer links. Returns an empty string when no link reveals it.
func (d *Document) LinkBase() string {
	for _, link := range d.Links {
		for _, marker := range []string{"/compare/", "/releases/tag/"} {
			if idx := strings.Index(link.URL, marker); idx > 0 {
				return link.URL[:idx]
			}
		}
	}
	return ""
}
