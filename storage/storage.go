// Package storage persists ypsync state between runs: the per-playlist
// sync records and the playlist name cache.
//
// Both stores are single JSON files that are fully read, modified in
// memory, and atomically rewritten. There is no file locking; concurrent
// process instances must be prevented externally.
package storage

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for common storage conditions.
var (
	// ErrStorageCorrupt indicates a state file could not be decoded.
	ErrStorageCorrupt = errors.New("storage: data corruption detected")
	// ErrInvalidInput indicates invalid or malformed input was provided.
	ErrInvalidInput = errors.New("storage: invalid input")
)

// StorageError wraps storage errors with operation and entity context.
// Use errors.As() to extract this error type and get operation details:
//
//	var storErr *storage.StorageError
//	if errors.As(err, &storErr) {
//		fmt.Printf("Failed to %s %s %s: %v\n", storErr.Op, storErr.Entity, storErr.ID, storErr.Err)
//	}
type StorageError struct {
	// Op is the operation that failed ("read", "write").
	Op string
	// Entity is the entity type ("sync_state", "name_cache").
	Entity string
	// ID is the entity ID if applicable.
	ID string
	// Err is the underlying error that occurred.
	Err error
}

// Error returns a string representation of the storage error.
func (e *StorageError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("storage: %s %s %s: %v", e.Op, e.Entity, e.ID, e.Err)
	}
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Entity, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *StorageError) Unwrap() error { return e.Err }

// TimeLayout is the wire format for sync record timestamps,
// e.g. "28-08-2026T14:03:59".
const TimeLayout = "02-01-2006T15:04:05"

// SyncRecord marks the last completed (or started) reconciliation pass
// for one playlist. Exactly one record exists per tracked playlist id.
type SyncRecord struct {
	LastUpdated string `json:"lastUpdated"`
}

// NewSyncRecord returns a record stamped with the given time.
func NewSyncRecord(t time.Time) SyncRecord {
	return SyncRecord{LastUpdated: t.Format(TimeLayout)}
}

// Time parses the record's timestamp.
func (r SyncRecord) Time() (time.Time, error) {
	return time.Parse(TimeLayout, r.LastUpdated)
}
