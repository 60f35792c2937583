package storage

import (
	"encoding/json"
	"errors"
	"os"
)

// SyncStore persists the playlist_id -> SyncRecord mapping as a single
// JSON file. The caller holds the full mapping in memory for the run and
// writes it back wholesale; there is no per-key upsert at this layer.
type SyncStore struct {
	path string
}

// NewSyncStore creates a store backed by the file at path. The file is
// created lazily on the first Save.
func NewSyncStore(path string) *SyncStore {
	return &SyncStore{path: path}
}

// Load reads all sync records. A missing backing file is not an error:
// the first run simply starts from an empty mapping.
func (s *SyncStore) Load() (map[string]SyncRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]SyncRecord), nil
		}
		return nil, &StorageError{Op: "read", Entity: "sync_state", Err: err}
	}

	records := make(map[string]SyncRecord)
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &StorageError{Op: "read", Entity: "sync_state", Err: ErrStorageCorrupt}
	}
	return records, nil
}

// Save atomically overwrites the backing file with the full mapping.
func (s *SyncStore) Save(records map[string]SyncRecord) error {
	if err := writeJSON(s.path, records, true); err != nil {
		return &StorageError{Op: "write", Entity: "sync_state", Err: err}
	}
	return nil
}
