// file: internal/dataset/snapshot_test.go
// version: 1.0.0
// guid: 7e8f9a0b-1c2d-3e4f-5a6b-7c8d9e0f1a2b

package dataset

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

func writeTitles(t *testing.T, path string, gzipped bool, lines string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if gzipped {
		gz := gzip.NewWriter(f)
		if _, err := gz.Write([]byte(lines)); err != nil {
			t.Fatal(err)
		}
		if err := gz.Close(); err != nil {
			t.Fatal(err)
		}
		return
	}
	if _, err := f.WriteString(lines); err != nil {
		t.Fatal(err)
	}
}

func TestLoadPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titles.txt")
	writeTitles(t, path, false, "Dune\nDune Messiah\n\n  The Hobbit  \n")

	snap, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Dune", "Dune Messiah", "The Hobbit"}
	got := snap.Titles()
	if len(got) != len(want) {
		t.Fatalf("got %d titles, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("title %d = %q, want %q", i, got[i], want[i])
		}
	}
	if !snap.Ready() {
		t.Error("snapshot with titles should be ready")
	}
	if snap.Source() != path {
		t.Errorf("source = %q, want %q", snap.Source(), path)
	}
	if snap.LoadedAt().IsZero() {
		t.Error("loadedAt should be set")
	}
}

func TestLoadGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titles.txt.gz")
	writeTitles(t, path, true, "Neuromancer\nCount Zero\n")

	snap, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Len() != 2 {
		t.Fatalf("got %d titles, want 2", snap.Len())
	}
	if snap.Titles()[1] != "Count Zero" {
		t.Errorf("second title = %q", snap.Titles()[1])
	}
}

func TestLoadMissingFileYieldsEmptySnapshot(t *testing.T) {
	snap, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if snap == nil {
		t.Fatal("expected a usable empty snapshot despite the error")
	}
	if snap.Ready() || snap.Len() != 0 {
		t.Error("missing file should load as empty, not-ready snapshot")
	}
}

func TestNilSnapshotIsSafe(t *testing.T) {
	var snap *Snapshot
	if snap.Ready() {
		t.Error("nil snapshot should not be ready")
	}
	if snap.Len() != 0 || snap.Titles() != nil {
		t.Error("nil snapshot should be empty")
	}
	if snap.Source() != "" || !snap.LoadedAt().IsZero() {
		t.Error("nil snapshot accessors should return zero values")
	}
}

func TestNewSnapshot(t *testing.T) {
	snap := NewSnapshot([]string{"a", "b"})
	if snap.Len() != 2 || !snap.Ready() {
		t.Errorf("unexpected snapshot state: len=%d", snap.Len())
	}
}
