package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSyncStore_LoadMissingFile(t *testing.T) {
	store := NewSyncStore(filepath.Join(t.TempDir(), "sync_status.json"))

	records, err := store.Load()
	if err != nil {
		t.Fatalf("Load() on missing file error = %v, want nil", err)
	}
	if len(records) != 0 {
		t.Errorf("Load() on missing file len = %d, want 0", len(records))
	}
}

func TestSyncStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync_status.json")
	store := NewSyncStore(path)

	now := time.Date(2026, 8, 28, 14, 3, 59, 0, time.UTC)
	records := map[string]SyncRecord{
		"p1": NewSyncRecord(now),
	}
	if err := store.Save(records); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got, ok := loaded["p1"]
	if !ok {
		t.Fatal("Load() missing record for p1")
	}
	if got.LastUpdated != "28-08-2026T14:03:59" {
		t.Errorf("LastUpdated = %q, want %q", got.LastUpdated, "28-08-2026T14:03:59")
	}

	parsed, err := got.Time()
	if err != nil {
		t.Fatalf("Time() error = %v", err)
	}
	if !parsed.Equal(now) {
		t.Errorf("Time() = %v, want %v", parsed, now)
	}
}

func TestSyncStore_SaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "sync_status.json")
	store := NewSyncStore(path)

	if err := store.Save(map[string]SyncRecord{}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Save() did not create file: %v", err)
	}
}

func TestSyncStore_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync_status.json")
	store := NewSyncStore(path)

	first := map[string]SyncRecord{
		"p1": {LastUpdated: "01-01-2026T00:00:00"},
		"p2": {LastUpdated: "01-01-2026T00:00:00"},
	}
	if err := store.Save(first); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Full overwrite drops records absent from the new mapping.
	second := map[string]SyncRecord{
		"p1": {LastUpdated: "02-01-2026T00:00:00"},
	}
	if err := store.Save(second); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded) != 1 {
		t.Errorf("Load() len = %d, want 1", len(loaded))
	}
	if loaded["p1"].LastUpdated != "02-01-2026T00:00:00" {
		t.Errorf("p1 LastUpdated = %q, want %q", loaded["p1"].LastUpdated, "02-01-2026T00:00:00")
	}
}

func TestSyncStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync_status.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	_, err := NewSyncStore(path).Load()
	if !errors.Is(err, ErrStorageCorrupt) {
		t.Errorf("Load() error = %v, want ErrStorageCorrupt", err)
	}

	var storErr *StorageError
	if !errors.As(err, &storErr) {
		t.Fatalf("Load() error type = %T, want *StorageError", err)
	}
	if storErr.Op != "read" || storErr.Entity != "sync_state" {
		t.Errorf("StorageError = %s/%s, want read/sync_state", storErr.Op, storErr.Entity)
	}
}

func TestSyncStore_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	store := NewSyncStore(filepath.Join(dir, "sync_status.json"))

	if err := store.Save(map[string]SyncRecord{"p1": {LastUpdated: "01-01-2026T00:00:00"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	for _, e := range entries {
		if e.Name() != "sync_status.json" {
			t.Errorf("unexpected file left behind: %s", e.Name())
		}
	}
}
