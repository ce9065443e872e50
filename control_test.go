package docindex

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadControlRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CONTROL_FILE")

	fl := newFreeList()
	fl.push(4)
	fl.push(1)
	it := newIndexTable()
	it.add(0)
	it.add(7)
	it.add(100)

	if err := saveControl(path, fl, it); err != nil {
		t.Fatalf("saveControl: %v", err)
	}

	loadedFL, loadedIT, err := loadControl(path)
	if err != nil {
		t.Fatalf("loadControl: %v", err)
	}
	if loadedFL.size() != fl.size() {
		t.Fatalf("free list size = %d, want %d", loadedFL.size(), fl.size())
	}
	if got := loadedFL.pop(); got != 1 {
		t.Fatalf("free list pop = %d, want 1 (LIFO order preserved)", got)
	}
	for _, id := range []int32{0, 7, 100} {
		if !loadedIT.isValid(id) {
			t.Fatalf("expected id %d valid after round trip", id)
		}
	}
}

func TestLoadControlMissingFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	fl, it, err := loadControl(filepath.Join(dir, "does-not-exist"))
	if err != nil {
		t.Fatalf("loadControl: %v", err)
	}
	if !fl.isEmpty() {
		t.Fatal("expected empty free list when control file is absent")
	}
	if it.size() != 0 {
		t.Fatal("expected empty index table when control file is absent")
	}
}

func TestLoadControlTruncatedFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CONTROL_FILE")
	// Only 2 of the 4 count bytes a real free list header would need.
	if err := os.WriteFile(path, []byte{0x01, 0x00}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	fl, it, err := loadControl(path)
	if err != nil {
		t.Fatalf("loadControl: %v", err)
	}
	if !fl.isEmpty() {
		t.Fatal("expected empty free list from a truncated checkpoint")
	}
	if it.size() != 0 {
		t.Fatal("expected empty index table from a truncated checkpoint")
	}
}
