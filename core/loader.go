package core

import (
	"fmt"
	"strings"
)

// Loader is the mod loading runtime a version targets
type Loader uint8

const (
	Fabric Loader = iota + 1
	Quilt
	NeoForge
)

type LoaderComponent struct {
	Name         string
	FriendlyName string
	// VersionListGetter returns the loader versions available for a Minecraft version, and the latest of them
	VersionListGetter func(mcVersion string) ([]string, string, error)
}

var ModLoaders = map[Loader]LoaderComponent{
	Fabric: {
		Name:              "fabric",
		FriendlyName:      "Fabric",
		VersionListGetter: FetchMavenVersionList("https://maven.fabricmc.net/net/fabricmc/fabric-loader/maven-metadata.xml"),
	},
	Quilt: {
		Name:              "quilt",
		FriendlyName:      "Quilt",
		VersionListGetter: FetchMavenVersionList("https://maven.quiltmc.org/repository/release/org/quiltmc/quilt-loader/maven-metadata.xml"),
	},
	NeoForge: {
		Name:              "neoforge",
		FriendlyName:      "NeoForge",
		VersionListGetter: FetchNeoForge(),
	},
}

// ParseLoader is the single parser for loader names from the catalog, config files and flags.
// Forge is recognised but rejected with ErrUnsupportedLoader.
func ParseLoader(s string) (Loader, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for l, c := range ModLoaders {
		if c.Name == name {
			return l, nil
		}
	}
	if name == "forge" {
		return 0, fmt.Errorf("%w: Forge is not supported, use NeoForge instead", ErrUnsupportedLoader)
	}
	return 0, fmt.Errorf("%w %q (expected fabric, quilt or neoforge)", ErrUnknownLoader, s)
}

func (l Loader) String() string {
	if c, ok := ModLoaders[l]; ok {
		return c.Name
	}
	return fmt.Sprintf("loader(%d)", uint8(l))
}

// FriendlyName returns the display name of the loader
func (l Loader) FriendlyName() string {
	if c, ok := ModLoaders[l]; ok {
		return c.FriendlyName
	}
	return l.String()
}

// LatestVersion returns the newest version of the loader for a Minecraft version
func (l Loader) LatestVersion(mcVersion string) (string, error) {
	c, ok := ModLoaders[l]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownLoader, uint8(l))
	}
	_, latest, err := c.VersionListGetter(mcVersion)
	return latest, err
}

func (l Loader) MarshalText() ([]byte, error) {
	if _, ok := ModLoaders[l]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLoader, uint8(l))
	}
	return []byte(l.String()), nil
}

func (l *Loader) UnmarshalText(text []byte) error {
	parsed, err := ParseLoader(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
