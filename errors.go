package ypsync

import (
	"ypsync/retry"
	"ypsync/storage"
	"ypsync/youtube"
)

// Error handling types exported for library users.
//
// All error types support the standard error handling patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, ypsync.ErrPlaylistNotFound) {
//		fmt.Println("playlist does not exist or is private")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var storErr *ypsync.StorageError
//	if errors.As(err, &storErr) {
//		fmt.Printf("%s on %s failed: %v\n", storErr.Op, storErr.Entity, storErr.Err)
//	}

// Type aliases for convenient error handling.
type (
	// SourceError wraps errors from the remote playlist source.
	SourceError = youtube.SourceError
	// StorageError wraps errors during storage operations.
	StorageError = storage.StorageError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrPlaylistNotFound indicates the playlist does not exist or is private.
	ErrPlaylistNotFound = youtube.ErrPlaylistNotFound
	// ErrNetworkTimeout indicates a network timeout occurred.
	ErrNetworkTimeout = youtube.ErrNetworkTimeout
	// ErrAPIKeyMissing indicates no YouTube Data API key was supplied.
	ErrAPIKeyMissing = youtube.ErrAPIKeyMissing
	// ErrYtdlpNotFound indicates the yt-dlp binary was not found.
	ErrYtdlpNotFound = youtube.ErrYtdlpNotFound

	// Storage errors
	// ErrStorageCorrupt indicates a state file could not be decoded.
	ErrStorageCorrupt = storage.ErrStorageCorrupt
	// ErrInvalidInput indicates invalid input was provided.
	ErrInvalidInput = storage.ErrInvalidInput
)

// IsRetryable determines if an error should be retried. Context errors
// and errors marked with Permanent are final.
func IsRetryable(err error) bool {
	return retry.IsRetryable(err)
}

// Permanent marks an error as not worth retrying.
func Permanent(err error) error {
	return retry.Permanent(err)
}
