package core

import "io"

// Catalog is the remote package catalog that projects and versions are looked up in
type Catalog interface {
	// Search returns the hits for a free text query, most relevant first
	Search(query string) ([]SearchHit, error)
	// ListVersions returns all published versions of a project, most recent first
	ListVersions(projectID string) ([]CatalogVersion, error)
	FileGetter
}

// FileGetter opens the contents of a file by URL
type FileGetter interface {
	// GetFile returns the body of the file; the caller must close it.
	// The returned size is -1 when unknown.
	GetFile(url string) (io.ReadCloser, int64, error)
}

// SearchHit is a search result; the fields are only used for display
type SearchHit struct {
	ProjectID   string
	Slug        string
	Title       string
	Description string
	Downloads   int64
}
