package core

import (
	"errors"
	"fmt"
)

// StagedPack is a copy of a pack stored under a temporary name. The copy can be changed and saved
// freely; the true-named pack is only touched by Promote.
type StagedPack struct {
	Pack     Pack
	store    *PackStore
	trueName string
	done     bool
}

// Stage saves a copy of pack under its staging name
func Stage(store *PackStore, pack Pack) (*StagedPack, error) {
	staged := pack.Clone()
	staged.Name = pack.Name + StagingSuffix
	if exists, err := store.Exists(staged.Name); err == nil && exists {
		loggerOr(store.Log).Warn("overwriting leftover staged pack", "pack", staged.Name)
	}
	if err := store.Save(staged); err != nil {
		return nil, err
	}
	return &StagedPack{Pack: staged, store: store, trueName: pack.Name}, nil
}

// TrueName is the name the staged pack is promoted to
func (s *StagedPack) TrueName() string {
	return s.trueName
}

// Save persists the current state of the staged copy
func (s *StagedPack) Save() error {
	if s.done {
		return errors.New("staged pack " + s.Pack.Name + " was already promoted or abandoned")
	}
	return s.store.Save(s.Pack)
}

// Promote makes the staged copy visible under the true name in one step, then removes the staged
// file. If saving fails, the previous true-named pack is left as it was.
func (s *StagedPack) Promote() (Pack, error) {
	if s.done {
		return Pack{}, errors.New("staged pack " + s.Pack.Name + " was already promoted or abandoned")
	}
	promoted := s.Pack.Clone()
	promoted.Name = s.trueName
	if err := s.store.Save(promoted); err != nil {
		return Pack{}, fmt.Errorf("failed to promote %s: %w", s.Pack.Name, err)
	}
	s.done = true
	if err := s.store.Delete(s.Pack.Name); err != nil && !errors.Is(err, ErrNotFound) {
		loggerOr(s.store.Log).Warn("failed to remove staged pack", "pack", s.Pack.Name, "err", err)
	}
	return promoted, nil
}

// Abandon discards the staged copy; the true-named pack is not touched
func (s *StagedPack) Abandon() error {
	if s.done {
		return nil
	}
	s.done = true
	if err := s.store.Delete(s.Pack.Name); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}
