package cmdshared

import (
	"fmt"
	"strings"

	"github.com/mrtool/mrtool/core"
)

// SearchTitle formats a search hit for a menu
func SearchTitle(h core.SearchHit) string {
	title := h.Title
	if title == "" {
		title = h.Slug
	}
	return fmt.Sprintf("%s (%s) - %d downloads", title, h.ProjectID, h.Downloads)
}

// SelectProject searches the catalog and lets the user pick one of the hits.
// A single hit is selected without asking.
func SelectProject(catalog core.Catalog, query string) (core.SearchHit, error) {
	hits, err := catalog.Search(query)
	if err != nil {
		return core.SearchHit{}, err
	}
	if len(hits) == 0 {
		return core.SearchHit{}, fmt.Errorf("%w: no projects match %q", core.ErrNotFound, query)
	}
	if len(hits) == 1 {
		return hits[0], nil
	}
	titles := make([]string, len(hits))
	for i, h := range hits {
		titles[i] = SearchTitle(h)
	}
	i, err := Choose("Choose a project:", titles, 0)
	if err != nil {
		return core.SearchHit{}, err
	}
	return hits[i], nil
}

// PrintHits prints search results, one block per hit
func PrintHits(hits []core.SearchHit) {
	for _, h := range hits {
		fmt.Println(SearchTitle(h))
		if desc := strings.TrimSpace(h.Description); desc != "" {
			fmt.Println("    " + desc)
		}
	}
}
