package core

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// InstallStatus is the state of a pinned file in an install folder
type InstallStatus uint8

const (
	InstallOK InstallStatus = iota
	InstallMissing
	InstallModified
)

func (s InstallStatus) String() string {
	switch s {
	case InstallOK:
		return "ok"
	case InstallMissing:
		return "missing"
	case InstallModified:
		return "modified"
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// InstallCheck is the result of checking one pin against an install folder
type InstallCheck struct {
	Key    string
	File   string
	Status InstallStatus
}

// VerifyInstall hashes the file of every pin in installPath and compares it with the pinned digest.
// Nothing is downloaded or modified.
func (m *Manager) VerifyInstall(name string, installPath string) ([]InstallCheck, error) {
	pack, err := m.Store.Load(name)
	if err != nil {
		return nil, err
	}
	var checks []InstallCheck
	var failed *PartialFailure
	for _, key := range pack.SortedKeys() {
		file := pack.Mods[key].File
		status, err := checkFile(filepath.Join(installPath, file.Filename), file)
		if err != nil {
			failed = failed.add(key, err)
			continue
		}
		checks = append(checks, InstallCheck{Key: key, File: file.Filename, Status: status})
	}
	return checks, failed.orNil()
}

func checkFile(path string, file FileRef) (InstallStatus, error) {
	hasher, err := GetHashImpl(file.HashFormat)
	if err != nil {
		return 0, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return InstallMissing, nil
	} else if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, fmt.Errorf("%w: failed to read %s: %w", ErrIO, path, err)
	}
	if !HashMatches(file.Hash, hasher.Sum(nil)) {
		return InstallModified, nil
	}
	return InstallOK, nil
}
