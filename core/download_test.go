package core

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestDownloader(cat *fakeCatalog) *Downloader {
	d := NewDownloader(cat)
	d.Log = quietLog
	return d
}

func TestFetchVerified(t *testing.T) {
	cat := newFakeCatalog()
	v := cat.publish("sodium", "v1", "1.20.1", Fabric, Release)
	dir := t.TempDir()

	path, err := newTestDownloader(cat).FetchVerified(v.Files[0], dir)
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "sodium-v1.jar") {
		t.Errorf("unexpected path %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, cat.files[v.Files[0].URL]) {
		t.Error("downloaded file doesn't match the served bytes")
	}
	assertOnlyFiles(t, dir, "sodium-v1.jar")
}

func TestFetchVerifiedHashMismatch(t *testing.T) {
	cat := newFakeCatalog()
	v := cat.publish("sodium", "v1", "1.20.1", Fabric, Release)
	cat.files[v.Files[0].URL] = []byte("tampered")
	dir := t.TempDir()
	d := newTestDownloader(cat)

	for i := 0; i < 2; i++ {
		_, err := d.FetchVerified(v.Files[0], dir)
		if !errors.Is(err, ErrHashMismatch) {
			t.Fatalf("attempt %d: expected ErrHashMismatch, got %v", i, err)
		}
		assertOnlyFiles(t, dir)
	}
}

func TestFetchVerifiedReplacesStaleFile(t *testing.T) {
	cat := newFakeCatalog()
	v := cat.publish("sodium", "v1", "1.20.1", Fabric, Release)
	dir := t.TempDir()
	stale := filepath.Join(dir, v.Files[0].Filename)
	if err := os.WriteFile(stale, []byte("old contents"), 0644); err != nil {
		t.Fatal(err)
	}
	d := newTestDownloader(cat)

	for i := 0; i < 2; i++ {
		if _, err := d.FetchVerified(v.Files[0], dir); err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(stale)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(data, cat.files[v.Files[0].URL]) {
			t.Errorf("attempt %d: stale file was not replaced", i)
		}
	}
	if cat.fileCalls[v.Files[0].URL] != 2 {
		t.Errorf("expected the file to be downloaded on every call, got %d downloads", cat.fileCalls[v.Files[0].URL])
	}
}

func TestFetchVerifiedTransportError(t *testing.T) {
	cat := newFakeCatalog()
	v := cat.publish("sodium", "v1", "1.20.1", Fabric, Release)
	delete(cat.files, v.Files[0].URL)
	dir := t.TempDir()

	_, err := newTestDownloader(cat).FetchVerified(v.Files[0], dir)
	if !errors.Is(err, ErrIO) {
		t.Errorf("expected ErrIO, got %v", err)
	}
	assertOnlyFiles(t, dir)
}

func TestFetchVerifiedRejectsPathFilenames(t *testing.T) {
	cat := newFakeCatalog()
	v := cat.publish("sodium", "v1", "1.20.1", Fabric, Release)
	file := v.Files[0]
	file.Filename = "../escape.jar"
	if _, err := newTestDownloader(cat).FetchVerified(file, t.TempDir()); err == nil {
		t.Error("expected a file name containing a path to be rejected")
	}
}

func assertOnlyFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, e := range entries {
		got = append(got, e.Name())
	}
	if len(got) != len(names) {
		t.Fatalf("expected files %v in %s, found %v", names, dir, got)
	}
	for i := range names {
		if got[i] != names[i] {
			t.Fatalf("expected files %v in %s, found %v", names, dir, got)
		}
	}
}
