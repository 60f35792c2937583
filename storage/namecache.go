package storage

import (
	"encoding/json"
	"errors"
	"os"
)

// NameCache persists a playlist_id -> title mapping for human-facing
// lookup. Entries are created or overwritten opportunistically and never
// deleted; the cache is informational and is not authoritative for
// playlist identity.
type NameCache struct {
	path string
}

// NewNameCache creates a cache backed by the file at path. The file is
// created lazily on the first Record.
func NewNameCache(path string) *NameCache {
	return &NameCache{path: path}
}

// Load reads the full mapping. A missing backing file yields an empty map.
func (c *NameCache) Load() (map[string]string, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, &StorageError{Op: "read", Entity: "name_cache", Err: err}
	}

	names := make(map[string]string)
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, &StorageError{Op: "read", Entity: "name_cache", Err: ErrStorageCorrupt}
	}
	return names, nil
}

// Record upserts a single playlist title. Read-modify-write: the full
// mapping is loaded, the key replaced, and the file atomically rewritten.
func (c *NameCache) Record(playlistID, title string) error {
	if playlistID == "" {
		return &StorageError{Op: "write", Entity: "name_cache", Err: ErrInvalidInput}
	}

	names, err := c.Load()
	if err != nil {
		return err
	}
	names[playlistID] = title

	if err := writeJSON(c.path, names, false); err != nil {
		return &StorageError{Op: "write", Entity: "name_cache", ID: playlistID, Err: err}
	}
	return nil
}
