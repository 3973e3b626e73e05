package hospital

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDirectoryMissingFileUsesSeed(t *testing.T) {
	dir, err := LoadDirectory(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if _, ok := dir.Lookup("Foothills Medical Centre"); !ok {
		t.Error("seed table missing a known facility")
	}
	if len(dir.Snapshot()) != len(SeedCoordinates) {
		t.Errorf("directory has %d entries, want %d", len(dir.Snapshot()), len(SeedCoordinates))
	}
}

func TestDirectoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coords.json")

	dir := NewDirectory()
	dir.Set("Test Clinic", Coordinate{Lat: 51.5, Lng: -114.5})
	if err := dir.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadDirectory(path)
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	c, ok := loaded.Lookup("Test Clinic")
	if !ok || c.Lat != 51.5 || c.Lng != -114.5 {
		t.Errorf("lookup = %+v ok=%v", c, ok)
	}
}

func TestLoadDirectoryRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coords.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDirectory(path); err == nil {
		t.Error("expected a parse error")
	}
}
