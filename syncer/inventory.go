package syncer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"ypsync/youtube"
)

// ListLocal builds the local index for one playlist folder: video id ->
// absolute file path, derived purely from filenames. Files whose names
// do not carry an embedded video ID are not under sync management and
// are ignored. Every id in the returned index resolves to a path by
// construction, so deletion never needs a second lookup.
func ListLocal(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("list playlist folder: %w", err)
	}

	index := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if id, ok := youtube.ParseVideoID(entry.Name()); ok {
			index[id] = filepath.Join(dir, entry.Name())
		}
	}

	return index, nil
}
