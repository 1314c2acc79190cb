package settings

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/mrtool/mrtool/core"
)

func TestSetConfigValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	defaults := core.DefaultConfig(core.PathsConfig{PackDir: "/packs", DownloadDir: "/downloads"})

	// A missing file starts from the defaults
	cfg, err := setConfigValue(path, defaults, "loader", "Quilt")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Loader != core.Quilt || cfg.PackPath != "/packs" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if err := core.WriteConfig(path, cfg); err != nil {
		t.Fatal(err)
	}

	cfg, err = setConfigValue(path, defaults, "release-types", "release beta")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Loader != core.Quilt {
		t.Error("earlier setting was lost")
	}
	if want := []core.Channel{core.Release, core.Beta}; !slices.Equal(cfg.ReleaseTypes, want) {
		t.Errorf("got release types %v, want %v", cfg.ReleaseTypes, want)
	}

	if _, err := setConfigValue(path, defaults, "loader", "forge"); err == nil {
		t.Error("expected forge to be rejected")
	}
	if _, err := setConfigValue(path, defaults, "release-types", "nightly"); err == nil {
		t.Error("expected an unknown version type to be rejected")
	}
	if _, err := setConfigValue(path, defaults, "release-types", ""); err == nil {
		t.Error("expected empty release types to be rejected")
	}
	if _, err := setConfigValue(path, defaults, "release-types", " , "); err == nil {
		t.Error("expected a list without release types to be rejected")
	}
	if _, err := setConfigValue(path, defaults, "colour", "blue"); err == nil {
		t.Error("expected an unknown key to be rejected")
	}
}

func TestSetConfigValueUnreadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := core.WriteConfig(path, core.DefaultConfig(core.PathsConfig{})); err != nil {
		t.Fatal(err)
	}
	_, err := setConfigValue(filepath.Join(path, "not-a-dir"), core.Config{}, "loader", "fabric")
	if err == nil || errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected a read error, got %v", err)
	}
}
