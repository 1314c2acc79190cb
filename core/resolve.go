package core

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/unascribed/FlexVer/go/flexver"
)

// Resolver selects versions of projects from a catalog
type Resolver struct {
	Catalog Catalog
	Log     *log.Logger
}

func NewResolver(catalog Catalog) *Resolver {
	return &Resolver{Catalog: catalog}
}

// Resolve returns the most recent version of the project that satisfies the descriptor.
// The catalog lists versions most recent first, so the first match wins; there is no other ranking.
func (r *Resolver) Resolve(projectID string, desc ConstraintDescriptor) (CatalogVersion, error) {
	if err := desc.Validate(); err != nil {
		return CatalogVersion{}, err
	}
	versions, err := r.Catalog.ListVersions(projectID)
	if err != nil {
		return CatalogVersion{}, fmt.Errorf("failed to fetch versions of %s: %w", projectID, err)
	}
	if len(versions) == 0 {
		return CatalogVersion{}, fmt.Errorf("%w: %s has no published versions", ErrNotFound, projectID)
	}

	for i, v := range versions {
		if !v.Satisfies(desc) {
			continue
		}
		if len(v.Files) == 0 {
			loggerOr(r.Log).Debug("skipping version without files", "project", projectID, "version", v.VersionNumber)
			continue
		}
		r.warnNewerNumber(projectID, v, versions[i+1:], desc)
		return v, nil
	}
	return CatalogVersion{}, fmt.Errorf("%w: %s (%s)", ErrConstraintUnsatisfiable, projectID, desc)
}

// warnNewerNumber warns when an older listed candidate has a higher version number than the selected one
func (r *Resolver) warnNewerNumber(projectID string, selected CatalogVersion, rest []CatalogVersion, desc ConstraintDescriptor) {
	for _, v := range rest {
		if !v.Satisfies(desc) || len(v.Files) == 0 {
			continue
		}
		if flexver.Compare(v.VersionNumber, selected.VersionNumber) > 0 {
			loggerOr(r.Log).Warn("versions inconsistent between latest version number and newest release",
				"project", projectID, "selected", selected.VersionNumber, "higher", v.VersionNumber)
			return
		}
	}
}
