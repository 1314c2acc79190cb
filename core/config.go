package core

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"golang.org/x/exp/slices"
)

// Config is the user configuration, merged from the config file, environment and flags
type Config struct {
	ReleaseTypes []Channel `mapstructure:"release-types" toml:"release-types"`
	Loader       Loader    `mapstructure:"loader" toml:"loader"`
	MCVersion    string    `mapstructure:"mc-version" toml:"mc-version,omitempty"`
	Staging      bool      `mapstructure:"staging" toml:"staging"`
	DownloadPath string    `mapstructure:"download-path" toml:"download-path"`
	PackPath     string    `mapstructure:"pack-path" toml:"pack-path"`
	InstallPath  string    `mapstructure:"install-path" toml:"install-path,omitempty"`
}

// ConfigKeys lists the keys that may be stored in the config file
var ConfigKeys = []string{"release-types", "loader", "mc-version", "staging", "download-path", "pack-path", "install-path"}

// Keys that are only set by flags and are not part of the persisted configuration
var runtimeKeys = []string{"config", "non-interactive", "verbose"}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig(paths PathsConfig) Config {
	return Config{
		ReleaseTypes: []Channel{Release},
		Loader:       Fabric,
		DownloadPath: paths.DownloadDir,
		PackPath:     paths.PackDir,
	}
}

// LoadConfig decodes merged settings (e.g. viper.AllSettings()) into a Config, starting from base.
// Channels and loaders go through ParseChannel and ParseLoader.
func LoadConfig(base Config, settings map[string]interface{}) (Config, error) {
	cfg := base
	cfg.ReleaseTypes = slices.Clone(base.ReleaseTypes)
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			channelListHook,
			mapstructure.TextUnmarshallerHookFunc(),
		),
		Metadata:         &md,
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(settings); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	for _, key := range md.Unused {
		if !slices.Contains(runtimeKeys, key) {
			Log.Warn("unused key in config", "key", key)
		}
	}
	if len(cfg.ReleaseTypes) == 0 {
		return Config{}, fmt.Errorf("invalid configuration: %w: release-types is empty", ErrUnknownChannel)
	}
	return cfg, nil
}

// channelListHook accepts "release beta" or "release,beta" for a channel list
func channelListHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf([]Channel{}) {
		return data, nil
	}
	channels, err := ParseChannels(data.(string))
	if err != nil {
		return nil, err
	}
	if len(channels) == 0 {
		return nil, fmt.Errorf("%w: release-types is empty", ErrUnknownChannel)
	}
	return channels, nil
}

// Descriptor builds the constraint descriptor the configuration describes
func (c Config) Descriptor() ConstraintDescriptor {
	return ConstraintDescriptor{
		MCVersion: c.MCVersion,
		Channels:  slices.Clone(c.ReleaseTypes),
		Loader:    c.Loader,
	}
}

// Paths returns the directories of the configuration, keeping defaults for unset values
func (c Config) Paths(defaults PathsConfig) PathsConfig {
	p := defaults
	if c.PackPath != "" {
		p.PackDir = c.PackPath
	}
	if c.DownloadPath != "" {
		p.DownloadDir = c.DownloadPath
	}
	return p
}

// WriteConfig writes the configuration file atomically
func WriteConfig(path string, cfg Config) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return writeFileAtomic(path, buf.Bytes())
}
