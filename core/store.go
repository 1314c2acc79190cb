package core

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"
)

// PackExtension is the file extension of stored packs
const PackExtension = ".toml"

// PackStore persists packs as one TOML document per pack, named after the pack
type PackStore struct {
	Dir string
	Log *log.Logger

	// replaced in tests to simulate write failures
	writeFile func(path string, data []byte) error
}

func NewPackStore(paths PathsConfig) *PackStore {
	return &PackStore{Dir: paths.PackDir, writeFile: writeFileAtomic}
}

func (s *PackStore) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w %q", ErrInvalidPackName, name)
	}
	return filepath.Join(s.Dir, name+PackExtension), nil
}

// Load reads the pack with the given name
func (s *PackStore) Load(name string) (Pack, error) {
	path, err := s.path(name)
	if err != nil {
		return Pack{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Pack{}, fmt.Errorf("%w: pack %q", ErrNotFound, name)
		}
		return Pack{}, fmt.Errorf("%w: failed to read pack %q: %w", ErrIO, name, err)
	}

	var pack Pack
	md, err := toml.Decode(string(data), &pack)
	if err != nil {
		return Pack{}, fmt.Errorf("%w %s: %w", ErrCorruptState, path, err)
	}
	for _, key := range md.Undecoded() {
		loggerOr(s.Log).Warn("ignoring unknown field in pack file", "pack", name, "field", key.String())
	}
	if err := checkPackFormat(pack.PackFormat); err != nil {
		return Pack{}, fmt.Errorf("pack %q: %w", name, err)
	}
	if pack.PackFormat == "" {
		pack.PackFormat = CurrentPackFormat
	}
	if pack.Name != name {
		return Pack{}, fmt.Errorf("%w %s: file contains pack %q", ErrCorruptState, path, pack.Name)
	}
	if err := pack.VersionInfo.Validate(); err != nil {
		return Pack{}, fmt.Errorf("%w %s: %w", ErrCorruptState, path, err)
	}
	if pack.Mods == nil {
		pack.Mods = make(map[string]PinnedMod)
	}
	return pack, nil
}

// Save writes the pack under its name. The document is written to a temporary file first and
// renamed over the previous version, so a crash never leaves a partially written pack behind.
func (s *PackStore) Save(pack Pack) error {
	path, err := s.path(pack.Name)
	if err != nil {
		return err
	}
	if pack.PackFormat == "" {
		pack.PackFormat = CurrentPackFormat
	}
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	// Disable indentation
	enc.Indent = ""
	if err := enc.Encode(pack); err != nil {
		return fmt.Errorf("failed to encode pack %q: %w", pack.Name, err)
	}
	write := s.writeFile
	if write == nil {
		write = writeFileAtomic
	}
	if err := write(path, buf.Bytes()); err != nil {
		return fmt.Errorf("%w: failed to save pack %q: %w", ErrIO, pack.Name, err)
	}
	return nil
}

// Delete removes the pack with the given name
func (s *PackStore) Delete(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: pack %q", ErrNotFound, name)
		}
		return fmt.Errorf("%w: failed to remove pack %q: %w", ErrIO, name, err)
	}
	return nil
}

// Exists reports whether a pack with the given name is stored
func (s *PackStore) Exists(name string) (bool, error) {
	path, err := s.path(name)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %w", ErrIO, err)
}

// List returns the names of all stored packs, sorted
func (s *PackStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to list packs: %w", ErrIO, err)
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, PackExtension) {
			continue
		}
		names = append(names, strings.TrimSuffix(name, PackExtension))
	}
	slices.Sort(names)
	return names, nil
}

// Suggest returns the stored pack names that fuzzily match name, best match first
func (s *PackStore) Suggest(name string) []string {
	names, err := s.List()
	if err != nil {
		return nil
	}
	return suggest(name, names)
}

// writeFileAtomic writes data to a temporary file next to path, then renames it into place
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tempPath := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tempPath)
		}
	}()
	if _, err = f.Write(data); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tempPath, 0644); err != nil {
		return err
	}
	return os.Rename(tempPath, path)
}
