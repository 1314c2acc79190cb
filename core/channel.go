package core

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Channel is the release maturity of a version (Modrinth calls this the version type)
type Channel uint8

const (
	Release Channel = iota + 1
	Beta
	Alpha
)

var channelNames = map[Channel]string{
	Release: "release",
	Beta:    "beta",
	Alpha:   "alpha",
}

// ParseChannel is the single parser for channel names from the catalog, config files and flags
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "release":
		return Release, nil
	case "beta":
		return Beta, nil
	case "alpha":
		return Alpha, nil
	}
	return 0, fmt.Errorf("%w %q (expected release, beta or alpha)", ErrUnknownChannel, s)
}

// ParseChannels parses a whitespace or comma separated list of channels, dropping duplicates
func ParseChannels(s string) ([]Channel, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	var channels []Channel
	for _, f := range fields {
		c, err := ParseChannel(f)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(channels, c) {
			channels = append(channels, c)
		}
	}
	return channels, nil
}

func (c Channel) String() string {
	if name, ok := channelNames[c]; ok {
		return name
	}
	return fmt.Sprintf("channel(%d)", uint8(c))
}

func (c Channel) MarshalText() ([]byte, error) {
	if _, ok := channelNames[c]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownChannel, uint8(c))
	}
	return []byte(c.String()), nil
}

func (c *Channel) UnmarshalText(text []byte) error {
	parsed, err := ParseChannel(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// FormatChannels joins channels with spaces, for display
func FormatChannels(channels []Channel) string {
	names := make([]string, 0, len(channels))
	for _, c := range channels {
		names = append(names, c.String())
	}
	return strings.Join(names, " ")
}
