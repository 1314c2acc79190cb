package cmdshared

import (
	"testing"

	"github.com/jarcoal/httpmock"
)

const manifest = `{
  "latest": {"release": "1.21.1", "snapshot": "24w40a"},
  "versions": [
    {"id": "24w40a", "type": "snapshot", "releaseTime": "2024-10-02T12:00:00+00:00"},
    {"id": "1.21.1", "type": "release", "releaseTime": "2024-08-08T12:00:00+00:00"},
    {"id": "1.20.1", "type": "release", "releaseTime": "2023-06-12T12:00:00+00:00"}
  ]
}`

func TestGetValidMCVersions(t *testing.T) {
	httpmock.Activate(t)
	httpmock.RegisterResponder("GET", VersionManifestURL, httpmock.NewStringResponder(200, manifest))

	versions, err := GetValidMCVersions()
	if err != nil {
		t.Fatal(err)
	}
	if versions.Latest.Release != "1.21.1" {
		t.Errorf("got latest release %s", versions.Latest.Release)
	}
	if versions.Versions[0].ID != "1.20.1" || versions.Versions[2].ID != "24w40a" {
		t.Errorf("expected versions sorted oldest first, got %+v", versions.Versions)
	}
	if err := versions.CheckValid("1.20.1"); err != nil {
		t.Error(err)
	}
	if err := versions.CheckValid("1.20.7"); err == nil {
		t.Error("expected 1.20.7 to be rejected")
	}
}

func TestGetValidMCVersionsServerError(t *testing.T) {
	httpmock.Activate(t)
	httpmock.RegisterResponder("GET", VersionManifestURL, httpmock.NewStringResponder(503, "unavailable"))

	if _, err := GetValidMCVersions(); err == nil {
		t.Error("expected an error")
	}
}
