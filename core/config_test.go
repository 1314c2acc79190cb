package core

import (
	"errors"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"github.com/BurntSushi/toml"
)

func TestLoadConfig(t *testing.T) {
	paths := PathsConfig{PackDir: "/data/packs", DownloadDir: "/home/u/Downloads"}
	cfg, err := LoadConfig(DefaultConfig(paths), map[string]interface{}{
		"release-types":   "release beta",
		"loader":          "Quilt",
		"mc-version":      "1.21",
		"staging":         "true",
		"non-interactive": true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(cfg.ReleaseTypes, []Channel{Release, Beta}) {
		t.Errorf("got release types %v", cfg.ReleaseTypes)
	}
	if cfg.Loader != Quilt || cfg.MCVersion != "1.21" || !cfg.Staging {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.PackPath != "/data/packs" || cfg.DownloadPath != "/home/u/Downloads" {
		t.Errorf("defaults were lost: %+v", cfg)
	}
	desc := cfg.Descriptor()
	if err := desc.Validate(); err != nil {
		t.Errorf("descriptor from config is invalid: %v", err)
	}

	cfg, err = LoadConfig(DefaultConfig(paths), map[string]interface{}{
		"release-types": []interface{}{"alpha"},
		"pack-path":     "/elsewhere",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(cfg.ReleaseTypes, []Channel{Alpha}) || cfg.Loader != Fabric {
		t.Errorf("unexpected config %+v", cfg)
	}
	if got := cfg.Paths(paths).PackDir; got != "/elsewhere" {
		t.Errorf("expected pack path override, got %s", got)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	base := DefaultConfig(PathsConfig{})
	for _, settings := range []map[string]interface{}{
		{"loader": "forge"},
		{"loader": "rift"},
		{"release-types": "release nightly"},
		{"release-types": ""},
	} {
		if _, err := LoadConfig(base, settings); err == nil {
			t.Errorf("expected %v to be rejected", settings)
		}
	}
}

func TestChannelListHookRejectsEmptyList(t *testing.T) {
	for _, in := range []string{"", "  ", ","} {
		_, err := channelListHook(reflect.TypeOf(""), reflect.TypeOf([]Channel{}), in)
		if !errors.Is(err, ErrUnknownChannel) {
			t.Errorf("channelListHook(%q) = %v, want ErrUnknownChannel", in, err)
		}
	}
	got, err := channelListHook(reflect.TypeOf(""), reflect.TypeOf([]Channel{}), "beta,alpha")
	if err != nil {
		t.Fatal(err)
	}
	if want := []Channel{Beta, Alpha}; !slices.Equal(got.([]Channel), want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestWriteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mrtool", "config.toml")
	cfg := DefaultConfig(PathsConfig{PackDir: "/packs", DownloadDir: "/downloads"})
	cfg.ReleaseTypes = []Channel{Release, Beta}
	cfg.Loader = NeoForge
	if err := WriteConfig(path, cfg); err != nil {
		t.Fatal(err)
	}
	var decoded Config
	if _, err := toml.DecodeFile(path, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Loader != NeoForge || !slices.Equal(decoded.ReleaseTypes, cfg.ReleaseTypes) || decoded.PackPath != "/packs" {
		t.Errorf("unexpected config after rewrite: %+v", decoded)
	}
}
