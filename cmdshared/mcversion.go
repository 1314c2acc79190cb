package cmdshared

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/mrtool/mrtool/core"
)

// VersionManifestURL lists every Minecraft version
var VersionManifestURL = "https://launchermeta.mojang.com/mc/game/version_manifest.json"

type McVersionManifest struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []struct {
		ID          string    `json:"id"`
		Type        string    `json:"type"`
		URL         string    `json:"url"`
		Time        time.Time `json:"time"`
		ReleaseTime time.Time `json:"releaseTime"`
	} `json:"versions"`
}

// CheckValid returns an error when the version isn't a known Minecraft version
func (m McVersionManifest) CheckValid(version string) error {
	for _, v := range m.Versions {
		if v.ID == version {
			return nil
		}
	}
	return fmt.Errorf("%q is not a valid Minecraft version", version)
}

func GetValidMCVersions() (McVersionManifest, error) {
	res, err := core.GetWithUA(VersionManifestURL, "application/json")
	if err != nil {
		return McVersionManifest{}, err
	}
	defer res.Body.Close()
	dec := json.NewDecoder(res.Body)
	out := McVersionManifest{}
	err = dec.Decode(&out)
	if err != nil {
		return McVersionManifest{}, err
	}
	// Sort by oldest to newest
	sort.Slice(out.Versions, func(i, j int) bool {
		return out.Versions[i].ReleaseTime.Before(out.Versions[j].ReleaseTime)
	})
	return out, nil
}
