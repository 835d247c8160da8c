package changelog

import (
	"errors"
	"fmt"

	"github.com/ariel-frischer/shipit/internal/semver"
)

// ErrNoChanges is returned when the Unreleased section is missing or
// empty. It signals a clean early stop, not a failure: there is simply
// nothing to release.
var ErrNoChanges = errors.New("no unreleased changes in the changelog")

// Release transforms the document for a new release: the Unreleased
// section is renamed to the new version with the given date, a fresh empty
// Unreleased section is inserted above it, and the comparison-link footer
// is regenerated. The document is modified in place.
//
// The baseURL is used for the regenerated footer links; when empty it is
// derived from the existing links. Returns ErrNoChanges when there is
// nothing to release.
func Release(doc *Document, version semver.Version, date, baseURL string) error {
	unreleased := doc.Unreleased()
	if unreleased == nil || unreleased.Changes.IsEmpty() {
		return ErrNoChanges
	}

	if latest := doc.LatestRelease(); latest != nil {
		prev, err := semver.Parse(latest.Version)
		if err != nil {
			return fmt.Errorf("previous release %q: %w", latest.Version, err)
		}
		if version.Compare(prev) <= 0 {
			return fmt.Errorf("new version %s does not follow latest release %s", version, prev)
		}
	}

	if baseURL == "" {
		baseURL = doc.LinkBase()
	}

	unreleased.Version = version.String()
	unreleased.Date = date

	doc.Sections = append([]Section{{Version: UnreleasedVersion}}, doc.Sections...)

	if baseURL != "" {
		doc.Links = ComparisonLinks(doc.Sections, baseURL)
	}

	return nil
}
