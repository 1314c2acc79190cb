package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestVerifyInstall(t *testing.T) {
	cat := newFakeCatalog()
	cat.publish("sodium", "s1", "1.20.1", Fabric, Release)
	lithium := cat.publish("lithium", "l1", "1.20.1", Fabric, Release)
	cat.publish("iris", "i1", "1.20.1", Fabric, Release)
	m := newTestManager(t, cat)
	if _, err := m.CreatePack("P", testDesc(), []string{"sodium", "lithium"}); err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	if _, err := m.InstallPack("P", dir); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, lithium.Files[0].Filename), []byte("edited"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := m.ModifyPack("P")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddMods([]string{"iris"}); err != nil {
		t.Fatal(err)
	}

	checks, err := m.VerifyInstall("P", dir)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]InstallStatus{"iris": InstallMissing, "lithium": InstallModified, "sodium": InstallOK}
	if len(checks) != len(want) {
		t.Fatalf("got %+v", checks)
	}
	for _, c := range checks {
		if c.Status != want[c.Key] {
			t.Errorf("%s: got %s, want %s", c.Key, c.Status, want[c.Key])
		}
	}
}
