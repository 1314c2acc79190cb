package modrinth

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	modrinthApi "codeberg.org/jmansfield/go-modrinth/modrinth"
	"github.com/charmbracelet/log"
	"github.com/mrtool/mrtool/cmd"
	"github.com/mrtool/mrtool/core"
	"golang.org/x/exp/slices"
)

const (
	apiHost     = "api.modrinth.com"
	stagingHost = "staging-api.modrinth.com"
)

func init() {
	cmd.SetCatalog(func(staging bool) core.Catalog {
		return NewClient(staging)
	})
}

// Client is the Modrinth implementation of core.Catalog
type Client struct {
	api *modrinthApi.Client
	Log *log.Logger
	// Version ID -> project ID, for dependencies that only name a version
	depProjects map[string]string
}

// NewClient creates a client for the Modrinth API, or its staging server
func NewClient(staging bool) *Client {
	httpClient := &http.Client{}
	if staging {
		httpClient.Transport = stagingTransport{}
	}
	api := modrinthApi.NewClient(httpClient)
	api.UserAgent = core.UserAgent
	return &Client{api: api, depProjects: make(map[string]string)}
}

// stagingTransport sends API requests to the staging server
type stagingTransport struct {
	base http.RoundTripper
}

func (t stagingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Host == apiHost {
		req = req.Clone(req.Context())
		req.URL.Host = stagingHost
		req.Host = stagingHost
	}
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

func (c *Client) logger() *log.Logger {
	if c.Log == nil {
		return core.Log
	}
	return c.Log
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// apiError maps a go-modrinth error to ErrNotFound for 404 responses, and ErrIO otherwise.
// Errors that aren't go-modrinth response errors are classified by their message.
func apiError(what string, err error) error {
	if isNotFound(err) {
		return fmt.Errorf("%w: %s: %w", core.ErrNotFound, what, err)
	}
	return fmt.Errorf("%w: %s: %w", core.ErrIO, what, err)
}

func isNotFound(err error) bool {
	var notFound *modrinthApi.NotFoundErrorResponse
	if errors.As(err, &notFound) {
		return true
	}
	var resp *modrinthApi.ErrorResponse
	if errors.As(err, &resp) && resp.Response != nil {
		return resp.Response.StatusCode == http.StatusNotFound
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "404") || strings.Contains(msg, "not found")
}

func (c *Client) Search(query string) ([]core.SearchHit, error) {
	res, err := c.api.Projects.Search(&modrinthApi.SearchOptions{
		Limit:  10,
		Index:  "relevance",
		Facets: [][]string{{"project_type:mod"}},
		Query:  query,
	})
	if err != nil {
		return nil, apiError("search for "+query, err)
	}
	hits := make([]core.SearchHit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hits = append(hits, core.SearchHit{
			ProjectID:   deref(h.ProjectID),
			Slug:        deref(h.Slug),
			Title:       deref(h.Title),
			Description: deref(h.Description),
			Downloads:   int64(deref(h.Downloads)),
		})
	}
	return hits, nil
}

// ListVersions returns the versions of a project in the order Modrinth lists them (newest first).
// Versions with an unknown version type are left out; unknown loaders are dropped from a version.
func (c *Client) ListVersions(projectID string) ([]core.CatalogVersion, error) {
	versions, err := c.api.Versions.ListVersions(projectID, modrinthApi.ListVersionsOptions{})
	if err != nil {
		return nil, apiError("failed to list versions of "+projectID, err)
	}
	out := make([]core.CatalogVersion, 0, len(versions))
	for _, v := range versions {
		cv, err := c.convertVersion(v)
		if err != nil {
			c.logger().Debug("skipping version", "project", projectID, "version", deref(v.ID), "err", err)
			continue
		}
		out = append(out, cv)
	}
	return out, nil
}

func (c *Client) convertVersion(v *modrinthApi.Version) (core.CatalogVersion, error) {
	channel, err := core.ParseChannel(deref(v.VersionType))
	if err != nil {
		return core.CatalogVersion{}, err
	}
	cv := core.CatalogVersion{
		ID:            deref(v.ID),
		ProjectID:     deref(v.ProjectID),
		Name:          deref(v.Name),
		VersionNumber: deref(v.VersionNumber),
		GameVersions:  slices.Clone(v.GameVersions),
		Downloads:     int64(deref(v.Downloads)),
		Channel:       channel,
	}
	for _, l := range v.Loaders {
		loader, err := core.ParseLoader(l)
		if err != nil {
			continue
		}
		cv.Loaders = append(cv.Loaders, loader)
	}

	// The primary file goes first; without one, the first listed file is the primary file
	for _, f := range v.Files {
		ref := convertFile(f)
		if deref(f.Primary) {
			cv.Files = append([]core.FileRef{ref}, cv.Files...)
		} else {
			cv.Files = append(cv.Files, ref)
		}
	}

	for _, dep := range v.Dependencies {
		kind := deref(dep.DependencyType)
		projectID := deref(dep.ProjectID)
		if projectID == "" && dep.VersionID != nil {
			if kind != core.DependencyRequired {
				continue
			}
			projectID, err = c.projectOfVersion(*dep.VersionID)
			if err != nil {
				c.logger().Warn("failed to look up dependency", "version", *dep.VersionID, "err", err)
				continue
			}
		}
		if projectID == "" {
			continue
		}
		cv.Dependencies = append(cv.Dependencies, core.DependencyRef{ProjectID: projectID, Kind: kind})
	}
	return cv, nil
}

func (c *Client) projectOfVersion(versionID string) (string, error) {
	if id, ok := c.depProjects[versionID]; ok {
		return id, nil
	}
	v, err := c.api.Versions.Get(versionID)
	if err != nil {
		return "", apiError("failed to get version "+versionID, err)
	}
	id := deref(v.ProjectID)
	if id == "" {
		return "", errors.New("version " + versionID + " doesn't belong to a project")
	}
	c.depProjects[versionID] = id
	return id, nil
}

func convertFile(f *modrinthApi.File) core.FileRef {
	hashFormat, hash := getBestHash(f)
	return core.FileRef{
		URL:        deref(f.URL),
		Filename:   deref(f.Filename),
		Size:       int64(deref(f.Size)),
		HashFormat: hashFormat,
		Hash:       hash,
	}
}

func getBestHash(v *modrinthApi.File) (string, string) {
	for _, format := range []string{"sha512", "sha256", "sha1"} {
		if val, ok := v.Hashes[format]; ok {
			return format, val
		}
	}
	// None of the preferred hashes are present; take the first one that can be verified, in a stable order
	keys := make([]string, 0, len(v.Hashes))
	for k := range v.Hashes {
		if _, err := core.GetHashImpl(k); err == nil {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return "", ""
	}
	slices.Sort(keys)
	return keys[0], v.Hashes[keys[0]]
}

func (c *Client) GetFile(fileURL string) (io.ReadCloser, int64, error) {
	u, err := core.ReencodeURL(fileURL)
	if err != nil {
		return nil, 0, err
	}
	resp, err := core.GetWithUA(u, "application/octet-stream")
	if err != nil {
		return nil, 0, err
	}
	return resp.Body, resp.ContentLength, nil
}

// Project is the information shown about a project
type Project struct {
	ID           string
	Slug         string
	Title        string
	Description  string
	ProjectType  string
	ClientSide   string
	ServerSide   string
	Downloads    int64
	GameVersions []string
	Loaders      []string
}

// URL is the project's page on the Modrinth website
func (p Project) URL() string {
	projectType := p.ProjectType
	if projectType == "" {
		projectType = "mod"
	}
	slug := p.Slug
	if slug == "" {
		slug = p.ID
	}
	return "https://modrinth.com/" + projectType + "/" + slug
}

func (c *Client) GetProject(idOrSlug string) (Project, error) {
	p, err := c.api.Projects.Get(idOrSlug)
	if err != nil {
		return Project{}, apiError("failed to get project "+idOrSlug, err)
	}
	return Project{
		ID:           deref(p.ID),
		Slug:         deref(p.Slug),
		Title:        deref(p.Title),
		Description:  deref(p.Description),
		ProjectType:  deref(p.ProjectType),
		ClientSide:   deref(p.ClientSide),
		ServerSide:   deref(p.ServerSide),
		Downloads:    int64(deref(p.Downloads)),
		GameVersions: slices.Clone(p.GameVersions),
		Loaders:      slices.Clone(p.Loaders),
	}, nil
}

var urlRegexes = [...]*regexp.Regexp{
	// Slug/version number regex from https://github.com/modrinth/labrinth/blob/1679a3f844497d756d0cf272c5374a5236eabd42/src/util/validate.rs#L8
	regexp.MustCompile("^https?://(www.)?modrinth\\.com/(?P<urlCategory>[^/]+)/(?P<slug>[a-zA-Z0-9!@$()`.+,_\"-]{3,64})(?:/version/(?P<version>[a-zA-Z0-9!@$()`.+,_\"-]{1,32}))?"),
	// Version/file URL: the first path segment is the project ID
	regexp.MustCompile("^https?://cdn\\.modrinth\\.com/data/(?P<slug>[a-zA-Z0-9]+)/versions/(?P<versionID>[a-zA-Z0-9]+)/(?P<filename>[^/]+)$"),
	// A bare slug or project ID
	regexp.MustCompile("^(?P<slug>[a-zA-Z0-9!@$()`.+,_\"-]{3,64})$"),
}

var urlCategories = []string{"mod", "plugin", "datapack", "shader", "resourcepack", "modpack", "project"}

// ParseRef extracts the slug or project ID from a project page URL, a CDN file URL or a bare slug
func (c *Client) ParseRef(input string) (string, error) {
	return parseSlugOrUrl(strings.TrimSpace(input))
}

func parseSlugOrUrl(input string) (string, error) {
	for _, r := range urlRegexes {
		matches := r.FindStringSubmatch(input)
		if matches == nil {
			continue
		}
		if i := r.SubexpIndex("urlCategory"); i >= 0 && !slices.Contains(urlCategories, matches[i]) {
			return "", errors.New("unknown project type: " + matches[i])
		}
		if i := r.SubexpIndex("filename"); i >= 0 {
			if _, err := url.PathUnescape(matches[i]); err != nil {
				return "", err
			}
		}
		return matches[r.SubexpIndex("slug")], nil
	}
	return "", fmt.Errorf("%q is not a Modrinth project, slug or URL", input)
}
