package core

import "golang.org/x/exp/slices"

// Expand resolves the required dependencies of a version with the same descriptor as the version itself.
// Only direct dependencies are resolved. A dependency that fails is recorded in the returned
// PartialFailure and does not stop the others; the resolved versions keep declaration order.
func (r *Resolver) Expand(version CatalogVersion, desc ConstraintDescriptor) ([]CatalogVersion, *PartialFailure) {
	var resolved []CatalogVersion
	var failed *PartialFailure
	var seen []string
	for _, dep := range version.Dependencies {
		if dep.Kind != DependencyRequired || dep.ProjectID == "" {
			continue
		}
		if slices.Contains(seen, dep.ProjectID) || dep.ProjectID == version.ProjectID {
			continue
		}
		seen = append(seen, dep.ProjectID)

		v, err := r.Resolve(dep.ProjectID, desc)
		if err != nil {
			failed = failed.add(dep.ProjectID, err)
			continue
		}
		resolved = append(resolved, v)
	}
	return resolved, failed
}
