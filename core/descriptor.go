package core

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// ConstraintDescriptor holds the constraints a version must satisfy to be selected for a pack
type ConstraintDescriptor struct {
	MCVersion string    `toml:"mc-version"`
	Channels  []Channel `toml:"version-types"`
	Loader    Loader    `toml:"loader"`
}

// Validate checks that the descriptor can be used for a resolution
func (d ConstraintDescriptor) Validate() error {
	if d.MCVersion == "" {
		return errors.New("no Minecraft version specified")
	}
	if len(d.Channels) == 0 {
		return errors.New("at least one version type must be allowed")
	}
	for _, c := range d.Channels {
		if _, ok := channelNames[c]; !ok {
			return fmt.Errorf("%w: %d", ErrUnknownChannel, uint8(c))
		}
	}
	if _, ok := ModLoaders[d.Loader]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownLoader, uint8(d.Loader))
	}
	return nil
}

// Allows reports whether the channel is one of the allowed channels
func (d ConstraintDescriptor) Allows(c Channel) bool {
	return slices.Contains(d.Channels, c)
}

// Clone returns a copy that shares no mutable state with d
func (d ConstraintDescriptor) Clone() ConstraintDescriptor {
	d.Channels = slices.Clone(d.Channels)
	return d
}

func (d ConstraintDescriptor) String() string {
	return fmt.Sprintf("Minecraft %s, %s, %s", d.MCVersion, d.Loader.FriendlyName(), FormatChannels(d.Channels))
}
