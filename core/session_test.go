package core

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func packFile(t *testing.T, store *PackStore, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(store.Dir, name+PackExtension))
	if err != nil {
		t.Fatal(err)
	}
	return data
}

// sessionFixture creates pack "P" (1.20.1, Fabric, release) pinning sodium and lithium
func sessionFixture(t *testing.T) (*fakeCatalog, *Manager, *Session) {
	t.Helper()
	cat := newFakeCatalog()
	cat.publish("sodium", "s-1.21", "1.21", Fabric, Release)
	cat.publish("sodium", "s-1.20.1", "1.20.1", Fabric, Release)
	cat.publish("lithium", "l-1.21", "1.21", Fabric, Release)
	cat.publish("lithium", "l-1.20.1", "1.20.1", Fabric, Release)
	m := newTestManager(t, cat)
	if _, err := m.CreatePack("P", testDesc(), []string{"sodium", "lithium"}); err != nil {
		t.Fatal(err)
	}
	s, err := m.ModifyPack("P")
	if err != nil {
		t.Fatal(err)
	}
	return cat, m, s
}

func setMCVersion(version string) func(*ConstraintDescriptor) error {
	return func(d *ConstraintDescriptor) error {
		d.MCVersion = version
		return nil
	}
}

func TestEditVersionInfoPromotes(t *testing.T) {
	_, m, s := sessionFixture(t)

	checks, err := s.EditVersionInfo(setMCVersion("1.21"))
	if err != nil {
		t.Fatal(err)
	}
	if len(checks) != 2 {
		t.Errorf("expected 2 update checks, got %+v", checks)
	}
	if s.State() != Idle {
		t.Errorf("expected session to be idle, got %s", s.State())
	}

	loaded, err := m.Store.Load("P")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.VersionInfo.MCVersion != "1.21" {
		t.Errorf("expected the new version info, got %s", loaded.VersionInfo)
	}
	if loaded.Mods["sodium"].VersionID != "s-1.21" || loaded.Mods["lithium"].VersionID != "l-1.21" {
		t.Errorf("expected new pins, got %+v", loaded.Mods)
	}
	if s.Pack().VersionInfo.MCVersion != "1.21" {
		t.Error("session doesn't reflect the promoted pack")
	}
	names, err := m.Store.List()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(names, []string{"P"}) {
		t.Errorf("expected the staged pack to be gone, got %v", names)
	}
}

// "sodium" has no 1.22 version: the edit is rolled back and the stored pack is untouched
func TestEditVersionInfoRollsBack(t *testing.T) {
	cat, m, s := sessionFixture(t)
	cat.publish("lithium", "l-1.22", "1.22", Fabric, Release)
	before := packFile(t, m.Store, "P")

	_, err := s.EditVersionInfo(setMCVersion("1.22"))
	var partial *PartialFailure
	if !errors.As(err, &partial) {
		t.Fatalf("expected a PartialFailure, got %v", err)
	}
	if !slices.Equal(partial.IDs(), []string{"sodium"}) {
		t.Errorf("got failures %v, want [sodium]", partial.IDs())
	}
	if after := packFile(t, m.Store, "P"); string(before) != string(after) {
		t.Errorf("stored pack changed:\n%s\n---\n%s", before, after)
	}
	if s.Pack().VersionInfo.MCVersion != "1.20.1" {
		t.Error("session should keep the old version info")
	}
	names, _ := m.Store.List()
	if !slices.Equal(names, []string{"P"}) {
		t.Errorf("expected the staged pack to be removed, got %v", names)
	}
	if s.State() != Idle {
		t.Errorf("expected session to be idle, got %s", s.State())
	}
}

func TestEditVersionInfoPromoteFailure(t *testing.T) {
	_, m, s := sessionFixture(t)
	before := packFile(t, m.Store, "P")
	failWritesTo(m.Store, "P")

	_, err := s.EditVersionInfo(setMCVersion("1.21"))
	if !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
	if after := packFile(t, m.Store, "P"); string(before) != string(after) {
		t.Error("stored pack changed after a failed promotion")
	}
	names, _ := m.Store.List()
	if !slices.Equal(names, []string{"P"}) {
		t.Errorf("expected the staged pack to be removed, got %v", names)
	}
}

func TestEditVersionInfoInvalidChange(t *testing.T) {
	_, m, s := sessionFixture(t)
	before := packFile(t, m.Store, "P")

	_, err := s.EditVersionInfo(func(d *ConstraintDescriptor) error {
		d.Channels = nil
		return nil
	})
	if err == nil {
		t.Fatal("expected an empty channel list to be rejected")
	}
	if _, err := s.EditVersionInfo(func(d *ConstraintDescriptor) error {
		var perr error
		d.Loader, perr = ParseLoader("forge")
		return perr
	}); !errors.Is(err, ErrUnsupportedLoader) {
		t.Errorf("expected ErrUnsupportedLoader, got %v", err)
	}
	if after := packFile(t, m.Store, "P"); string(before) != string(after) {
		t.Error("stored pack changed")
	}
	if len(s.Pack().VersionInfo.Channels) != 1 {
		t.Error("the change leaked into the session's pack")
	}
}

func TestRename(t *testing.T) {
	_, m, s := sessionFixture(t)
	if err := s.Rename("Renamed"); err != nil {
		t.Fatal(err)
	}
	names, _ := m.Store.List()
	if !slices.Equal(names, []string{"Renamed"}) {
		t.Errorf("got packs %v, want [Renamed]", names)
	}
	loaded, err := m.Store.Load("Renamed")
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Mods) != 2 {
		t.Errorf("renamed pack lost pins: %+v", loaded.Mods)
	}

	if _, err := m.CreatePack("Other", testDesc(), nil); err != nil {
		t.Fatal(err)
	}
	if err := s.Rename("Other"); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
	if err := s.Rename("bad/name"); !errors.Is(err, ErrInvalidPackName) {
		t.Errorf("expected ErrInvalidPackName, got %v", err)
	}
}

func TestRenameIncomplete(t *testing.T) {
	_, m, s := sessionFixture(t)
	failWritesTo(m.Store, "New")

	err := s.Rename("New")
	if !errors.Is(err, ErrRenameIncomplete) {
		t.Fatalf("expected ErrRenameIncomplete, got %v", err)
	}
	if names, _ := m.Store.List(); len(names) != 0 {
		t.Errorf("expected no stored packs, got %v", names)
	}
	// The pack survives in the session and can be saved once writes work again
	if s.Pack().Name != "New" || len(s.Pack().Mods) != 2 {
		t.Errorf("session lost the pack: %+v", s.Pack())
	}
	m.Store.writeFile = nil
	if err := s.RemoveMod("lithium"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Store.Load("New"); err != nil {
		t.Errorf("expected the pack to be stored again: %v", err)
	}
}

func TestAddAndRemoveMods(t *testing.T) {
	cat, m, s := sessionFixture(t)
	cat.publish("fabric-api", "api1", "1.20.1", Fabric, Release)
	cat.publish("modmenu", "mm1", "1.20.1", Fabric, Release, "fabric-api")

	added, err := s.AddMods([]string{"modmenu", "missing", "sodium"})
	var partial *PartialFailure
	if !errors.As(err, &partial) || !slices.Equal(partial.IDs(), []string{"missing"}) {
		t.Fatalf("expected only missing to fail, got %v", err)
	}
	if want := []string{"modmenu", "fabric-api"}; !slices.Equal(added, want) {
		t.Errorf("added %v, want %v", added, want)
	}
	loaded, err := m.Store.Load("P")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"fabric-api", "lithium", "modmenu", "sodium"}; !slices.Equal(loaded.SortedKeys(), want) {
		t.Errorf("stored pins %v, want %v", loaded.SortedKeys(), want)
	}

	if err := s.RemoveMod("modmenu"); err != nil {
		t.Fatal(err)
	}
	err = s.RemoveMod("lithum")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "lithium") {
		t.Errorf("expected a suggestion in %q", err)
	}
	loaded, err = m.Store.Load("P")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"fabric-api", "lithium", "sodium"}; !slices.Equal(loaded.SortedKeys(), want) {
		t.Errorf("stored pins %v, want %v", loaded.SortedKeys(), want)
	}
}

func TestClosedSession(t *testing.T) {
	_, _, s := sessionFixture(t)
	s.Close()
	if s.State() != Closed {
		t.Errorf("expected closed, got %s", s.State())
	}
	if err := s.Rename("X"); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Rename: expected ErrSessionClosed, got %v", err)
	}
	if _, err := s.EditVersionInfo(setMCVersion("1.21")); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("EditVersionInfo: expected ErrSessionClosed, got %v", err)
	}
	if _, err := s.AddMods([]string{"sodium"}); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("AddMods: expected ErrSessionClosed, got %v", err)
	}
	if err := s.RemoveMod("sodium"); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("RemoveMod: expected ErrSessionClosed, got %v", err)
	}
}

func TestSessionBusy(t *testing.T) {
	_, _, s := sessionFixture(t)
	var inner error
	_, err := s.EditVersionInfo(func(d *ConstraintDescriptor) error {
		inner = s.RemoveMod("sodium")
		return errors.New("cancelled")
	})
	if err == nil {
		t.Fatal("expected the cancelled change to fail")
	}
	if !errors.Is(inner, ErrSessionBusy) {
		t.Errorf("expected ErrSessionBusy, got %v", inner)
	}
	if _, ok := s.Pack().Mods["sodium"]; !ok {
		t.Error("nested edit should not have removed the pin")
	}
}
