package core

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
)

// InstallIndexFile records which files in an install directory were put there by mrtool
const InstallIndexFile = ".mrtool-index.toml"

// InstallIndex is a representation of the install index, used to remove files of pins that no longer exist
type InstallIndex struct {
	Pack  string          `toml:"pack"`
	Files []InstalledFile `toml:"files"`
	dir   string
}

// InstalledFile is a file in the install index
type InstalledFile struct {
	File       string `toml:"file"`
	Mod        string `toml:"mod"`
	HashFormat string `toml:"hash-format"`
	Hash       string `toml:"hash"`
}

// LoadInstallIndex loads the index of an install directory; a missing index is empty
func LoadInstallIndex(dir string) (InstallIndex, error) {
	index := InstallIndex{dir: dir}
	data, err := os.ReadFile(filepath.Join(dir, InstallIndexFile))
	if err != nil {
		if os.IsNotExist(err) {
			return index, nil
		}
		return index, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if _, err := toml.Decode(string(data), &index); err != nil {
		return InstallIndex{dir: dir}, fmt.Errorf("%w %s: %w", ErrCorruptState, InstallIndexFile, err)
	}
	return index, nil
}

// SetFile records the file installed for a mod, replacing the previous entry of the mod.
// If the mod had a different file before, that file is deleted unless another mod still uses it.
func (in *InstallIndex) SetFile(key string, file FileRef) error {
	var previous string
	for _, f := range in.Files {
		if f.Mod == key && f.File != file.Filename {
			previous = f.File
		}
	}
	in.removeMod(key)
	in.Files = append(in.Files, InstalledFile{
		File:       file.Filename,
		Mod:        key,
		HashFormat: file.HashFormat,
		Hash:       file.Hash,
	})
	sort.SliceStable(in.Files, func(i, j int) bool {
		return in.Files[i].File < in.Files[j].File
	})
	if previous == "" || in.HasFile(previous) {
		return nil
	}
	if err := os.Remove(filepath.Join(in.dir, previous)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: failed to remove %s: %w", ErrIO, previous, err)
	}
	return nil
}

// HasFile reports whether any mod is recorded as using the file
func (in *InstallIndex) HasFile(name string) bool {
	for _, f := range in.Files {
		if f.File == name {
			return true
		}
	}
	return false
}

func (in *InstallIndex) removeMod(key string) {
	i := 0
	for _, f := range in.Files {
		if f.Mod != key {
			in.Files[i] = f
			i++
		}
	}
	in.Files = in.Files[:i]
}

// RemoveStale deletes the files of mods that are not in keep, and drops them from the index.
// Files that are still recorded for a kept mod are never deleted.
func (in *InstallIndex) RemoveStale(keep map[string]PinnedMod) ([]string, error) {
	inUse := make(map[string]bool)
	for _, f := range in.Files {
		if _, ok := keep[f.Mod]; ok {
			inUse[f.File] = true
		}
	}
	var removed []string
	var firstErr error
	i := 0
	for _, f := range in.Files {
		if _, ok := keep[f.Mod]; ok {
			in.Files[i] = f
			i++
			continue
		}
		if !inUse[f.File] {
			err := os.Remove(filepath.Join(in.dir, f.File))
			if err != nil && !os.IsNotExist(err) {
				// Keep the entry so the next install tries again
				in.Files[i] = f
				i++
				if firstErr == nil {
					firstErr = fmt.Errorf("%w: failed to remove %s: %w", ErrIO, f.File, err)
				}
				continue
			}
			removed = append(removed, f.File)
		}
	}
	in.Files = in.Files[:i]
	return removed, firstErr
}

// Write saves the index into its install directory
func (in InstallIndex) Write() error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	// Disable indentation
	enc.Indent = ""
	if err := enc.Encode(in); err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(in.dir, InstallIndexFile), buf.Bytes())
}
