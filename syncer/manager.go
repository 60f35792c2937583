package syncer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"ypsync/config"
	"ypsync/storage"
	"ypsync/youtube"
)

// Source fetches playlist metadata and member lists from the remote side.
type Source interface {
	// PlaylistInfo returns the current metadata for one playlist.
	PlaylistInfo(ctx context.Context, playlistID string) (*youtube.Playlist, error)
	// PlaylistVideos returns the ordered member list of a playlist.
	PlaylistVideos(ctx context.Context, playlistID string) ([]youtube.Video, error)
}

// Acquirer materializes a batch of remote videos as local files in dir.
type Acquirer interface {
	Fetch(ctx context.Context, videos []youtube.Video, dir string) error
}

// Manager drives per-playlist synchronization: deciding between a first
// full download and an incremental update, applying the reconciliation
// plan, and persisting sync records so an interrupted run resumes
// without redoing completed playlists.
type Manager struct {
	cfg    *config.Config
	source Source
	sink   Acquirer
	store  *storage.SyncStore
	names  *storage.NameCache

	now func() time.Time
}

// NewManager creates a manager over the given collaborators.
func NewManager(cfg *config.Config, source Source, sink Acquirer, store *storage.SyncStore, names *storage.NameCache) *Manager {
	return &Manager{
		cfg:    cfg,
		source: source,
		sink:   sink,
		store:  store,
		names:  names,
		now:    time.Now,
	}
}

// Run processes each playlist fully before moving to the next. A failure
// aborts only the playlist it occurred in; the joined errors are
// returned after the whole run. The sync state is saved after each
// first-time playlist and again at the end, so a crash loses at most the
// in-flight playlist's progress.
func (m *Manager) Run(ctx context.Context, playlistIDs []string) error {
	records, err := m.store.Load()
	if err != nil {
		return err
	}

	var errs []error
	for _, id := range playlistIDs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := m.syncPlaylist(ctx, records, id); err != nil {
			log.Printf("syncer: playlist %s: %v", id, err)
			errs = append(errs, fmt.Errorf("playlist %s: %w", id, err))
		}
	}

	if err := m.store.Save(records); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// syncPlaylist decides the playlist's state for this run and runs the
// matching transition. Both transitions end with the playlist's sync
// record stamped with the current time.
func (m *Manager) syncPlaylist(ctx context.Context, records map[string]storage.SyncRecord, playlistID string) error {
	pl, err := m.source.PlaylistInfo(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("fetch playlist info: %w", err)
	}

	dir := m.cfg.PlaylistDir(pl.Title)
	_, hasRecord := records[pl.ID]
	folderExists := dirExists(dir)

	// An upstream title rename moves the expected folder path. If the
	// name cache remembers the previous title and that folder exists,
	// rename it instead of redownloading everything.
	if hasRecord && !folderExists && !m.cfg.Force {
		folderExists = m.recoverRenamedFolder(pl, dir)
	}

	// Cache the current title before processing; failures here are
	// informational only.
	if err := m.names.Record(pl.ID, pl.Title); err != nil {
		log.Printf("syncer: cache title for %s: %v", pl.ID, err)
	}

	if hasRecord && folderExists && !m.cfg.Force {
		log.Printf("syncer: playlist %q has been previously synced, detecting changes", pl.Title)
		return m.update(ctx, records, pl, dir)
	}
	return m.create(ctx, records, pl, dir)
}

// create performs a first-time (or forced) full download. The sync
// record is written and persisted before acquisition starts, so a crash
// mid-download resumes on the diff-and-update path instead of starting
// over.
func (m *Manager) create(ctx context.Context, records map[string]storage.SyncRecord, pl *youtube.Playlist, dir string) error {
	if m.cfg.Force {
		log.Printf("syncer: redownloading playlist %q", pl.Title)
	} else {
		log.Printf("syncer: playlist %q has not been previously synced, syncing", pl.Title)
	}

	// Defensive clear of any stale folder under the same name
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clear playlist folder: %w", err)
	}

	videos, err := m.source.PlaylistVideos(ctx, pl.ID)
	if err != nil {
		return fmt.Errorf("fetch playlist videos: %w", err)
	}

	records[pl.ID] = storage.NewSyncRecord(m.now())
	if err := m.store.Save(records); err != nil {
		return err
	}

	if err := m.sink.Fetch(ctx, videos, dir); err != nil {
		return fmt.Errorf("acquire videos: %w", err)
	}
	return nil
}

// update reconciles the local folder against the current remote member
// list. The record timestamp is overwritten even when nothing changed;
// the no-change short circuit only skips I/O, not the record update.
func (m *Manager) update(ctx context.Context, records map[string]storage.SyncRecord, pl *youtube.Playlist, dir string) error {
	local, err := ListLocal(dir)
	if err != nil {
		return err
	}

	videos, err := m.source.PlaylistVideos(ctx, pl.ID)
	if err != nil {
		return fmt.Errorf("fetch playlist videos: %w", err)
	}

	plan := Reconcile(local, videos)

	var fetchErr error
	if plan.InSync() {
		log.Printf("syncer: no changes from upstream detected, nothing done")
	} else {
		log.Printf("syncer: changes detected: %d songs added and %d songs removed in upstream, syncing",
			len(plan.Add), len(plan.Remove))

		for _, id := range plan.Remove {
			path := local[id]
			log.Printf("syncer: removing %s", filepath.Base(path))
			if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
				// A stuck file must not abort the remaining deletions
				// or the download phase.
				log.Printf("syncer: remove %s: %v", path, err)
			}
		}

		if len(plan.Add) > 0 {
			if err := m.sink.Fetch(ctx, plan.Add, dir); err != nil {
				fetchErr = fmt.Errorf("acquire videos: %w", err)
			}
		}
	}

	records[pl.ID] = storage.NewSyncRecord(m.now())
	return fetchErr
}

// recoverRenamedFolder moves the folder of a previously cached title to
// the playlist's current expected path. Best effort: any failure reports
// false and the caller falls back to a full download.
func (m *Manager) recoverRenamedFolder(pl *youtube.Playlist, dir string) bool {
	names, err := m.names.Load()
	if err != nil {
		return false
	}

	oldTitle, ok := names[pl.ID]
	if !ok || oldTitle == pl.Title {
		return false
	}

	oldDir := m.cfg.PlaylistDir(oldTitle)
	if !dirExists(oldDir) {
		return false
	}

	if err := os.Rename(oldDir, dir); err != nil {
		log.Printf("syncer: move renamed playlist folder %q -> %q: %v", oldDir, dir, err)
		return false
	}

	log.Printf("syncer: playlist %q was renamed upstream (previously %q), moved local folder", pl.Title, oldTitle)
	return true
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
