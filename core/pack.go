package core

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/sahilm/fuzzy"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// CurrentPackFormat is written to every saved pack
const CurrentPackFormat = "mrtool:1.0.0"

const packFormatPrefix = "mrtool:"

var packFormatConstraint = mustConstraint("~1")

func mustConstraint(c string) *semver.Constraints {
	constraint, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return constraint
}

// Pack is a named set of pinned mods, along with the constraints they were resolved with
type Pack struct {
	Name        string               `toml:"name"`
	PackFormat  string               `toml:"pack-format"`
	VersionInfo ConstraintDescriptor `toml:"version-info"`
	Mods        map[string]PinnedMod `toml:"mods"`
}

// PinnedMod is a project pinned to one resolved version
type PinnedMod struct {
	ProjectID     string  `toml:"project-id"`
	VersionID     string  `toml:"version-id"`
	Name          string  `toml:"name"`
	VersionNumber string  `toml:"version"`
	Channel       Channel `toml:"version-type"`
	File          FileRef `toml:"file"`
}

// NewPack creates an empty pack
func NewPack(name string, desc ConstraintDescriptor) Pack {
	return Pack{
		Name:        name,
		PackFormat:  CurrentPackFormat,
		VersionInfo: desc.Clone(),
		Mods:        make(map[string]PinnedMod),
	}
}

// NewPin creates a pin for the primary file of a version
func NewPin(v CatalogVersion) (PinnedMod, error) {
	file, err := v.PrimaryFile()
	if err != nil {
		return PinnedMod{}, err
	}
	return PinnedMod{
		ProjectID:     v.ProjectID,
		VersionID:     v.ID,
		Name:          v.Name,
		VersionNumber: v.VersionNumber,
		Channel:       v.Channel,
		File:          file,
	}, nil
}

// DisplayName returns the pin's name, or a name derived from its key
func (m PinnedMod) DisplayName(key string) string {
	if m.Name != "" {
		return m.Name
	}
	return PrettyName(key)
}

// Clone returns a deep copy of the pack
func (p Pack) Clone() Pack {
	p.VersionInfo = p.VersionInfo.Clone()
	p.Mods = maps.Clone(p.Mods)
	if p.Mods == nil {
		p.Mods = make(map[string]PinnedMod)
	}
	return p
}

// SetPin pins the version under key, replacing any existing pin
func (p *Pack) SetPin(key string, v CatalogVersion) error {
	pin, err := NewPin(v)
	if err != nil {
		return err
	}
	if p.Mods == nil {
		p.Mods = make(map[string]PinnedMod)
	}
	p.Mods[key] = pin
	return nil
}

// FindMod looks up a pin by key or by project ID
func (p Pack) FindMod(keyOrID string) (string, bool) {
	if _, ok := p.Mods[keyOrID]; ok {
		return keyOrID, true
	}
	for key, m := range p.Mods {
		if m.ProjectID == keyOrID || strings.EqualFold(key, keyOrID) {
			return key, true
		}
	}
	return "", false
}

// SortedKeys returns the pin keys in lexical order
func (p Pack) SortedKeys() []string {
	keys := maps.Keys(p.Mods)
	slices.Sort(keys)
	return keys
}

// Suggest returns the keys that fuzzily match the given (missing) key, best match first
func (p Pack) Suggest(key string) []string {
	return suggest(key, p.SortedKeys())
}

func suggest(pattern string, candidates []string) []string {
	matches := fuzzy.Find(pattern, candidates)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return out
}

// checkPackFormat fails for packs written by an incompatible (newer major) version
func checkPackFormat(format string) error {
	if format == "" {
		return nil
	}
	if !strings.HasPrefix(format, packFormatPrefix) {
		return fmt.Errorf("%w: unknown format %q", ErrIncompatibleFormat, format)
	}
	ver, err := semver.NewVersion(strings.TrimPrefix(format, packFormatPrefix))
	if err != nil {
		return fmt.Errorf("%w: invalid format version %q: %v", ErrIncompatibleFormat, format, err)
	}
	if !packFormatConstraint.Check(ver) {
		return fmt.Errorf("%w: %s is not supported by this version (supports %s)", ErrIncompatibleFormat, format, CurrentPackFormat)
	}
	return nil
}
