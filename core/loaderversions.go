package core

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/unascribed/FlexVer/go/flexver"
)

type MavenMetadata struct {
	XMLName    xml.Name `xml:"metadata"`
	GroupID    string   `xml:"groupId"`
	ArtifactID string   `xml:"artifactId"`
	Versioning struct {
		Release  string `xml:"release"`
		Latest   string `xml:"latest"`
		Versions struct {
			Version []string `xml:"version"`
		} `xml:"versions"`
	} `xml:"versioning"`
}

func fetchMavenMetadata(url string) (MavenMetadata, error) {
	res, err := GetWithUA(url, "application/xml")
	if err != nil {
		return MavenMetadata{}, err
	}
	defer res.Body.Close()
	var out MavenMetadata
	if err := xml.NewDecoder(res.Body).Decode(&out); err != nil {
		return MavenMetadata{}, fmt.Errorf("failed to parse maven metadata from %s: %w", url, err)
	}
	return out, nil
}

// FetchMavenVersionList lists every version in the metadata; used for loaders that don't depend on the Minecraft version
func FetchMavenVersionList(url string) func(mcVersion string) ([]string, string, error) {
	return func(mcVersion string) ([]string, string, error) {
		out, err := fetchMavenMetadata(url)
		if err != nil {
			return nil, "", err
		}
		return out.Versioning.Versions.Version, out.Versioning.Release, nil
	}
}

// FetchMavenVersionFiltered lists the versions accepted by filter for the Minecraft version
func FetchMavenVersionFiltered(url string, friendlyName string, filter func(version string, mcVersion string) bool) func(mcVersion string) ([]string, string, error) {
	return func(mcVersion string) ([]string, string, error) {
		out, err := fetchMavenMetadata(url)
		if err != nil {
			return nil, "", err
		}
		allowed := make([]string, 0, len(out.Versioning.Versions.Version))
		for _, v := range out.Versioning.Versions.Version {
			if filter(v, mcVersion) {
				allowed = append(allowed, v)
			}
		}
		if len(allowed) == 0 {
			return nil, "", fmt.Errorf("%w: no %s versions available for Minecraft %s", ErrNotFound, friendlyName, mcVersion)
		}
		if filter(out.Versioning.Release, mcVersion) {
			return allowed, out.Versioning.Release, nil
		}
		if filter(out.Versioning.Latest, mcVersion) {
			return allowed, out.Versioning.Latest, nil
		}
		flexver.VersionSlice(allowed).Sort()
		return allowed, allowed[len(allowed)-1], nil
	}
}

// FetchNeoForge handles both NeoForge version schemes: 1.20.1 used Forge-style "1.20.1-47.1.x" versions in a
// separate artifact, later releases use "<minor>.<patch>.x"
func FetchNeoForge() func(mcVersion string) ([]string, string, error) {
	legacy := FetchMavenVersionFiltered("https://maven.neoforged.net/releases/net/neoforged/forge/maven-metadata.xml", "NeoForge",
		func(version string, mcVersion string) bool {
			return strings.HasPrefix(version, mcVersion+"-")
		})
	current := FetchMavenVersionFiltered("https://maven.neoforged.net/releases/net/neoforged/neoforge/maven-metadata.xml", "NeoForge",
		neoForgeMatches)

	return func(mcVersion string) ([]string, string, error) {
		if mcVersion != "1.20.1" {
			return current(mcVersion)
		}
		versions, latest, err := legacy(mcVersion)
		if err != nil {
			return nil, "", err
		}
		for i, v := range versions {
			versions[i] = strings.TrimPrefix(v, mcVersion+"-")
		}
		return versions, strings.TrimPrefix(latest, mcVersion+"-"), nil
	}
}

// neoForgeMatches reports whether a NeoForge version (a.b.x) belongs to Minecraft 1.a.b; 1.21 is 1.21.0
func neoForgeMatches(version string, mcVersion string) bool {
	parts := strings.Split(mcVersion, ".")
	if len(parts) < 2 {
		return false
	}
	patch := "0"
	if len(parts) > 2 {
		patch = parts[2]
	}
	// The trailing dot keeps 1.21.1 from matching 21.10.x
	return strings.HasPrefix(version, parts[1]+"."+patch+".")
}
