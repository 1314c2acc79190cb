package core

import (
	"errors"
	"fmt"
	"strings"
)

// SessionState is the step an edit session is in
type SessionState uint8

const (
	Idle SessionState = iota
	RenamingName
	EditingVersionInfo
	EditingMods
	Closed
)

func (s SessionState) String() string {
	switch s {
	case Idle:
		return "idle"
	case RenamingName:
		return "renaming"
	case EditingVersionInfo:
		return "editing version info"
	case EditingMods:
		return "editing mods"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Session is an edit session for one pack, created by Manager.ModifyPack. Each edit runs from Idle
// back to Idle; once closed, every edit fails with ErrSessionClosed.
// A session is not safe for concurrent use, and nothing prevents two sessions from editing the same pack.
type Session struct {
	manager *Manager
	pack    Pack
	state   SessionState
}

// Pack returns a copy of the pack as the session currently sees it
func (s *Session) Pack() Pack {
	return s.pack.Clone()
}

func (s *Session) State() SessionState {
	return s.state
}

// Close ends the session
func (s *Session) Close() {
	s.state = Closed
}

func (s *Session) enter(state SessionState) error {
	switch s.state {
	case Idle:
		s.state = state
		return nil
	case Closed:
		return ErrSessionClosed
	}
	return fmt.Errorf("%w: %s", ErrSessionBusy, s.state)
}

func (s *Session) leave() {
	if s.state != Closed {
		s.state = Idle
	}
}

// Rename deletes the stored pack and saves it under the new name. If saving under the new name fails,
// the pack only exists in this session and ErrRenameIncomplete is returned; saving it again with
// another edit (or retrying the rename) stores it.
func (s *Session) Rename(newName string) error {
	if err := s.enter(RenamingName); err != nil {
		return err
	}
	defer s.leave()

	if err := ValidatePackName(newName); err != nil {
		return err
	}
	if newName == s.pack.Name {
		return nil
	}
	exists, err := s.manager.Store.Exists(newName)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("pack %q: %w", newName, ErrAlreadyExists)
	}

	oldName := s.pack.Name
	if err := s.manager.Store.Delete(oldName); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	s.pack.Name = newName
	if err := s.manager.Store.Save(s.pack); err != nil {
		loggerOr(s.manager.Log).Error("pack was deleted but not saved under its new name",
			"old", oldName, "new", newName, "err", err)
		return fmt.Errorf("%w (%s -> %s): %w", ErrRenameIncomplete, oldName, newName, err)
	}
	return nil
}

// EditVersionInfo applies change to a staged copy of the pack and re-resolves every pin of the copy.
// The stored pack is replaced only if every pin re-resolved; otherwise the staged copy is discarded,
// the stored pack is left untouched, and the update failures are returned as a *PartialFailure.
func (s *Session) EditVersionInfo(change func(desc *ConstraintDescriptor) error) ([]UpdateCheck, error) {
	if err := s.enter(EditingVersionInfo); err != nil {
		return nil, err
	}
	defer s.leave()

	staged, err := Stage(s.manager.Store, s.pack)
	if err != nil {
		return nil, err
	}
	abandon := func(cause error) error {
		if err := staged.Abandon(); err != nil {
			loggerOr(s.manager.Log).Warn("failed to remove staged pack", "pack", staged.Pack.Name, "err", err)
		}
		return cause
	}

	if err := change(&staged.Pack.VersionInfo); err != nil {
		return nil, abandon(err)
	}
	if err := staged.Pack.VersionInfo.Validate(); err != nil {
		return nil, abandon(err)
	}
	if err := staged.Save(); err != nil {
		return nil, abandon(err)
	}
	checks, err := UpdatePack(s.manager.Resolver, &staged.Pack)
	if err != nil {
		return checks, abandon(err)
	}
	if err := staged.Save(); err != nil {
		return checks, abandon(err)
	}
	promoted, err := staged.Promote()
	if err != nil {
		return checks, abandon(err)
	}
	s.pack = promoted
	return checks, nil
}

// AddMods pins each project and its required dependencies, saving after every pin.
// The keys that were added are returned even when some projects failed.
func (s *Session) AddMods(projectIDs []string) ([]string, error) {
	if err := s.enter(EditingMods); err != nil {
		return nil, err
	}
	defer s.leave()

	var added []string
	var failed *PartialFailure
	for _, id := range projectIDs {
		keys, err := s.manager.pinProject(&s.pack, id)
		added = append(added, keys...)
		if err != nil {
			failed = failed.absorb(id, err)
		}
	}
	return added, failed.orNil()
}

// RemoveMod removes a pin, given by key or project ID, and saves the pack
func (s *Session) RemoveMod(keyOrID string) error {
	if err := s.enter(EditingMods); err != nil {
		return err
	}
	defer s.leave()

	key, ok := s.pack.FindMod(keyOrID)
	if !ok {
		msg := fmt.Sprintf("%s is not pinned in %s", keyOrID, s.pack.Name)
		if suggestions := s.pack.Suggest(keyOrID); len(suggestions) > 0 {
			msg += ", did you mean " + strings.Join(suggestions, " or ") + "?"
		}
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	}
	pin := s.pack.Mods[key]
	delete(s.pack.Mods, key)
	if err := s.manager.Store.Save(s.pack); err != nil {
		s.pack.Mods[key] = pin
		return err
	}
	return nil
}
