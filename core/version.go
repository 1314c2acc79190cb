package core

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// The possible values of DependencyRef.Kind, as used by Modrinth
const (
	DependencyRequired     = "required"
	DependencyOptional     = "optional"
	DependencyIncompatible = "incompatible"
	DependencyEmbedded     = "embedded"
)

// CatalogVersion is a published version of a project, as listed by the catalog
type CatalogVersion struct {
	ID            string
	ProjectID     string
	Name          string
	VersionNumber string
	GameVersions  []string
	Loaders       []Loader
	Downloads     int64
	Channel       Channel
	Files         []FileRef
	Dependencies  []DependencyRef
}

// FileRef is a downloadable file of a version
type FileRef struct {
	URL        string `toml:"url"`
	Filename   string `toml:"filename"`
	Size       int64  `toml:"size"`
	HashFormat string `toml:"hash-format"`
	Hash       string `toml:"hash"`
}

// DependencyRef is a dependency declared by a version
type DependencyRef struct {
	ProjectID string
	Kind      string
}

// PrimaryFile returns the first (primary) file of the version; a version without files is unusable
func (v CatalogVersion) PrimaryFile() (FileRef, error) {
	if len(v.Files) == 0 {
		return FileRef{}, fmt.Errorf("%w: %s %s", ErrUnusableVersion, v.ProjectID, v.VersionNumber)
	}
	return v.Files[0], nil
}

// Satisfies reports whether the version matches every constraint of the descriptor
func (v CatalogVersion) Satisfies(d ConstraintDescriptor) bool {
	return slices.Contains(v.GameVersions, d.MCVersion) &&
		slices.Contains(v.Loaders, d.Loader) &&
		d.Allows(v.Channel)
}

// DisplayName prefers the version name, falling back to the project ID
func (v CatalogVersion) DisplayName() string {
	if v.Name != "" {
		return v.Name
	}
	return v.ProjectID
}

// SizeMiB formats a byte count as MiB, for display only
func SizeMiB(size int64) string {
	return fmt.Sprintf("%.2f MiB", float64(size)/1048576)
}
