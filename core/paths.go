package core

import (
	"os"
	"path/filepath"
	"runtime"
)

// PathsConfig holds the directories used by the store and downloads. It is resolved once at
// startup and passed to constructors explicitly.
type PathsConfig struct {
	ConfigDir   string
	PackDir     string
	DownloadDir string
}

// ConfigFile is the path of the main configuration file
func (p PathsConfig) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.toml")
}

// DefaultPaths resolves the default directories from the environment
func DefaultPaths() (PathsConfig, error) {
	configDir, err := GetLocalConfig()
	if err != nil {
		return PathsConfig{}, err
	}
	dataDir, err := GetLocalStore()
	if err != nil {
		return PathsConfig{}, err
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return PathsConfig{}, err
	}
	return PathsConfig{
		ConfigDir:   configDir,
		PackDir:     filepath.Join(dataDir, "packs"),
		DownloadDir: filepath.Join(home, "Downloads"),
	}, nil
}

func GetLocalStore() (string, error) {
	if //goland:noinspection GoBoolExpressions
	runtime.GOOS == "linux" {
		// Prefer $XDG_DATA_HOME over the config directory
		dataHome := os.Getenv("XDG_DATA_HOME")
		if dataHome != "" {
			return filepath.Join(dataHome, "mrtool"), nil
		}
	}
	return GetLocalConfig()
}

func GetLocalConfig() (string, error) {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userConfigDir, "mrtool"), nil
}
