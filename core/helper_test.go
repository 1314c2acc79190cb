package core

import (
	"bytes"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// fakeCatalog is an in-memory catalog; versions are listed in the order they were published with publish,
// so publish the most recent version first
type fakeCatalog struct {
	versions  map[string][]CatalogVersion
	files     map[string][]byte
	listErr   map[string]error
	fileCalls map[string]int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		versions:  make(map[string][]CatalogVersion),
		files:     make(map[string][]byte),
		listErr:   make(map[string]error),
		fileCalls: make(map[string]int),
	}
}

func (c *fakeCatalog) Search(query string) ([]SearchHit, error) {
	var hits []SearchHit
	for id := range c.versions {
		if strings.Contains(id, query) {
			hits = append(hits, SearchHit{ProjectID: id, Slug: id, Title: id})
		}
	}
	return hits, nil
}

func (c *fakeCatalog) ListVersions(projectID string) ([]CatalogVersion, error) {
	if err := c.listErr[projectID]; err != nil {
		return nil, err
	}
	return c.versions[projectID], nil
}

func (c *fakeCatalog) GetFile(url string) (io.ReadCloser, int64, error) {
	c.fileCalls[url]++
	data, ok := c.files[url]
	if !ok {
		return nil, 0, errors.New("404 Not Found: " + url)
	}
	return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
}

// publish adds a version with one file whose contents are derived from the project and version IDs.
// Every argument in deps is a required dependency.
func (c *fakeCatalog) publish(projectID, versionID, mcVersion string, loader Loader, channel Channel, deps ...string) CatalogVersion {
	content := []byte(projectID + " " + versionID)
	url := "https://cdn.example.com/data/" + projectID + "/" + versionID + ".jar"
	c.files[url] = content
	v := CatalogVersion{
		ID:            versionID,
		ProjectID:     projectID,
		Name:          projectID + " " + versionID,
		VersionNumber: versionID,
		GameVersions:  []string{mcVersion},
		Loaders:       []Loader{loader},
		Channel:       channel,
		Files: []FileRef{{
			URL:        url,
			Filename:   projectID + "-" + versionID + ".jar",
			Size:       int64(len(content)),
			HashFormat: "sha512",
			Hash:       sha512Hex(content),
		}},
	}
	for _, dep := range deps {
		v.Dependencies = append(v.Dependencies, DependencyRef{ProjectID: dep, Kind: DependencyRequired})
	}
	c.versions[projectID] = append(c.versions[projectID], v)
	return v
}

func sha512Hex(data []byte) string {
	sum := sha512.Sum512(data)
	return hex.EncodeToString(sum[:])
}

func testDesc() ConstraintDescriptor {
	return ConstraintDescriptor{MCVersion: "1.20.1", Channels: []Channel{Release}, Loader: Fabric}
}

var quietLog = log.New(io.Discard)

func newTestStore(t *testing.T) *PackStore {
	return &PackStore{Dir: t.TempDir(), Log: quietLog}
}

func newTestManager(t *testing.T, catalog *fakeCatalog) *Manager {
	m := NewManager(newTestStore(t), catalog)
	m.Log = quietLog
	m.Resolver.Log = quietLog
	m.Downloader.Log = quietLog
	return m
}

// failWritesTo makes saves of the named pack fail, while other saves still work
func failWritesTo(store *PackStore, name string) {
	store.writeFile = func(path string, data []byte) error {
		if strings.HasSuffix(path, "/"+name+PackExtension) || strings.HasSuffix(path, `\`+name+PackExtension) {
			return errors.New("disk full")
		}
		return writeFileAtomic(path, data)
	}
}
