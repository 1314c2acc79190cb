package core

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"
)

// Manager implements the pack operations offered to the command layer
type Manager struct {
	Store      *PackStore
	Resolver   *Resolver
	Downloader *Downloader
	Log        *log.Logger
}

func NewManager(store *PackStore, catalog Catalog) *Manager {
	return &Manager{
		Store:      store,
		Resolver:   NewResolver(catalog),
		Downloader: NewDownloader(catalog),
	}
}

// CreatePack creates a new pack and pins each of the given projects, along with their required
// dependencies. The empty pack is saved before any project is added, and again after every pin, so
// projects that fail do not prevent the others from being added; they are reported in a *PartialFailure.
// With exactly one project, that project is resolved first: if it fails, the error is returned as is
// and no pack is created.
func (m *Manager) CreatePack(name string, desc ConstraintDescriptor, projectIDs []string) (Pack, error) {
	if err := ValidatePackName(name); err != nil {
		return Pack{}, err
	}
	if err := desc.Validate(); err != nil {
		return Pack{}, err
	}
	exists, err := m.Store.Exists(name)
	if err != nil {
		return Pack{}, err
	}
	if exists {
		return Pack{}, fmt.Errorf("pack %q: %w", name, ErrAlreadyExists)
	}

	pack := NewPack(name, desc)
	if len(projectIDs) == 1 {
		// A single project that can't be resolved aborts the create and nothing is stored
		v, err := m.Resolver.Resolve(projectIDs[0], desc)
		if err != nil {
			return Pack{}, err
		}
		if err := m.Store.Save(pack); err != nil {
			return Pack{}, err
		}
		_, err = m.pinResolved(&pack, projectIDs[0], v)
		var partial *PartialFailure
		if err != nil && !errors.As(err, &partial) {
			if delErr := m.Store.Delete(name); delErr != nil && !errors.Is(delErr, ErrNotFound) {
				loggerOr(m.Log).Warn("failed to remove the new pack", "pack", name, "err", delErr)
			}
			return Pack{}, err
		}
		return pack, err
	}

	if err := m.Store.Save(pack); err != nil {
		return Pack{}, err
	}
	var failed *PartialFailure
	for _, id := range projectIDs {
		if _, err := m.pinProject(&pack, id); err != nil {
			failed = failed.absorb(id, err)
		}
	}
	return pack, failed.orNil()
}

// pinProject resolves a project and its required dependencies with the pack's version info, and pins
// those that are not pinned yet. The pack is saved after each pin; the keys that were added are returned.
// A failure to resolve the project itself is returned as is; dependency failures come back as a *PartialFailure.
func (m *Manager) pinProject(pack *Pack, id string) ([]string, error) {
	v, err := m.Resolver.Resolve(id, pack.VersionInfo)
	if err != nil {
		return nil, err
	}
	return m.pinResolved(pack, id, v)
}

// pinResolved pins an already resolved version under id, then its required dependencies
func (m *Manager) pinResolved(pack *Pack, id string, v CatalogVersion) ([]string, error) {
	var added []string
	if key, ok := pack.FindMod(v.ProjectID); ok {
		loggerOr(m.Log).Info("project is already pinned", "pack", pack.Name, "mod", key)
	} else {
		if err := m.pin(pack, id, v); err != nil {
			return nil, err
		}
		added = append(added, id)
	}

	deps, failed := m.Resolver.Expand(v, pack.VersionInfo)
	for _, dep := range deps {
		if _, ok := pack.FindMod(dep.ProjectID); ok {
			continue
		}
		if err := m.pin(pack, dep.ProjectID, dep); err != nil {
			failed = failed.add(dep.ProjectID, err)
			continue
		}
		added = append(added, dep.ProjectID)
	}
	return added, failed.orNil()
}

// pin sets one pin and saves the pack, undoing the pin if the save fails
func (m *Manager) pin(pack *Pack, key string, v CatalogVersion) error {
	previous, hadPrevious := pack.Mods[key]
	if err := pack.SetPin(key, v); err != nil {
		return err
	}
	if err := m.Store.Save(*pack); err != nil {
		if hadPrevious {
			pack.Mods[key] = previous
		} else {
			delete(pack.Mods, key)
		}
		return err
	}
	loggerOr(m.Log).Debug("pinned", "pack", pack.Name, "mod", key, "version", v.VersionNumber)
	return nil
}

// UpdatePack re-resolves all pins of the stored pack and saves the result. Pins that fail keep their
// previous version; the successful ones are saved anyway and the failures returned as a *PartialFailure.
func (m *Manager) UpdatePack(name string) ([]UpdateCheck, error) {
	pack, err := m.Store.Load(name)
	if err != nil {
		return nil, err
	}
	checks, updateErr := UpdatePack(m.Resolver, &pack)
	if err := m.Store.Save(pack); err != nil {
		return checks, err
	}
	return checks, updateErr
}

// ModifyPack loads the pack and starts an edit session for it
func (m *Manager) ModifyPack(name string) (*Session, error) {
	pack, err := m.Store.Load(name)
	if err != nil {
		return nil, err
	}
	return &Session{manager: m, pack: pack, state: Idle}, nil
}

// InstallPack downloads and verifies the file of every pin into installPath, in key order.
// Files are always downloaded again, even if a file with the same name is present. A pin that fails
// does not stop the others; failures are returned as a *PartialFailure.
// Files installed earlier for pins that have since been removed or updated are deleted, using the
// install index kept in installPath.
func (m *Manager) InstallPack(name string, installPath string) ([]string, error) {
	if installPath == "" {
		return nil, errors.New("no install path given")
	}
	pack, err := m.Store.Load(name)
	if err != nil {
		return nil, err
	}
	index, err := LoadInstallIndex(installPath)
	if err != nil {
		loggerOr(m.Log).Warn("ignoring unreadable install index", "dir", installPath, "err", err)
	}
	if index.Pack != "" && index.Pack != pack.Name {
		loggerOr(m.Log).Warn("install directory was used for another pack", "dir", installPath, "pack", index.Pack)
	}
	index.Pack = pack.Name

	var installed []string
	var filenames []string
	var failed *PartialFailure
	for _, key := range pack.SortedKeys() {
		pin := pack.Mods[key]
		if slices.Contains(filenames, pin.File.Filename) {
			loggerOr(m.Log).Warn("file name is used by more than one pin, the later one wins",
				"file", pin.File.Filename, "mod", key)
		}
		filenames = append(filenames, pin.File.Filename)
		path, err := m.Downloader.FetchVerified(pin.File, installPath)
		if err != nil {
			failed = failed.add(key, err)
			continue
		}
		installed = append(installed, path)
		if err := index.SetFile(key, pin.File); err != nil {
			loggerOr(m.Log).Warn("failed to remove previous file", "mod", key, "err", err)
		}
	}

	removed, err := index.RemoveStale(pack.Mods)
	for _, f := range removed {
		loggerOr(m.Log).Info("removed file of a mod that is no longer in the pack", "file", f)
	}
	if err != nil {
		failed = failed.add(InstallIndexFile, err)
	}
	if err := index.Write(); err != nil {
		failed = failed.add(InstallIndexFile, fmt.Errorf("%w: %w", ErrIO, err))
	}
	return installed, failed.orNil()
}

// RemovePack deletes the stored pack
func (m *Manager) RemovePack(name string) error {
	return m.Store.Delete(name)
}

// FetchHooks are the confirmation gates of FetchProject. A nil hook counts as a yes.
type FetchHooks struct {
	// ConfirmVersion is asked before the primary file is downloaded
	ConfirmVersion func(v CatalogVersion) bool
	// ConfirmDependencies is asked before any dependency is downloaded
	ConfirmDependencies func(deps []CatalogVersion) bool
}

// FetchResult lists what FetchProject resolved and downloaded
type FetchResult struct {
	Version      CatalogVersion
	Path         string
	Dependencies []CatalogVersion
	DepPaths     []string
	// Declined is set when a confirmation gate was answered with no
	Declined bool
}

// FetchProject resolves a project, downloads its primary file into destDir, then resolves and downloads
// its required dependencies in declaration order. Resolving or downloading the project itself aborts on
// failure; dependency failures are collected into a *PartialFailure.
func (m *Manager) FetchProject(projectID string, desc ConstraintDescriptor, destDir string, hooks FetchHooks) (FetchResult, error) {
	v, err := m.Resolver.Resolve(projectID, desc)
	if err != nil {
		return FetchResult{}, err
	}
	res := FetchResult{Version: v}
	file, err := v.PrimaryFile()
	if err != nil {
		return res, err
	}
	if hooks.ConfirmVersion != nil && !hooks.ConfirmVersion(v) {
		res.Declined = true
		return res, nil
	}
	res.Path, err = m.Downloader.FetchVerified(file, destDir)
	if err != nil {
		return res, err
	}

	deps, failed := m.Resolver.Expand(v, desc)
	res.Dependencies = deps
	if len(deps) == 0 {
		return res, failed.orNil()
	}
	if hooks.ConfirmDependencies != nil && !hooks.ConfirmDependencies(deps) {
		res.Declined = true
		return res, failed.orNil()
	}
	for _, dep := range deps {
		depFile, err := dep.PrimaryFile()
		if err == nil {
			var path string
			path, err = m.Downloader.FetchVerified(depFile, destDir)
			if err == nil {
				res.DepPaths = append(res.DepPaths, path)
				continue
			}
		}
		failed = failed.add(dep.ProjectID, err)
	}
	return res, failed.orNil()
}
