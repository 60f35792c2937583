// Package youtube provides the remote playlist source backed by the
// YouTube Data API v3 and the yt-dlp based acquisition sink.
package youtube

import "errors"

// Sentinel errors for remote source operations.
var (
	ErrPlaylistNotFound = errors.New("youtube: playlist not found")
	ErrNetworkTimeout   = errors.New("youtube: network timeout")
	ErrAPIKeyMissing    = errors.New("youtube: api key required")
	ErrYtdlpNotFound    = errors.New("youtube: yt-dlp not installed")
)

// Playlist is a remote collection of videos. The id is the stable
// identity; the title may change upstream and is cached but never used
// to identify the playlist.
type Playlist struct {
	// ID is the YouTube playlist ID (e.g. "PLx0sYbCqOb8TBPRdmBHs5Iftvv9TPboYG").
	ID string `json:"id"`
	// Title is the current display title of the playlist.
	Title string `json:"title"`
}

// Video is a single playlist member. The id is embedded in the local
// filename when the video is downloaded, so local inventory can recover
// it without reading file contents.
type Video struct {
	// ID is the YouTube video ID (e.g. "dQw4w9WgXcQ").
	ID string `json:"id"`
	// Title is the video title.
	Title string `json:"title"`
}

// URL returns the full YouTube URL for this video.
func (v Video) URL() string {
	return "https://www.youtube.com/watch?v=" + v.ID
}

// SourceError wraps remote fetch errors with context about what failed.
// Use errors.As() to extract this error type and get operation details:
//
//	var srcErr *youtube.SourceError
//	if errors.As(err, &srcErr) {
//		fmt.Printf("Fetching %s failed: %v\n", srcErr.PlaylistID, srcErr.Err)
//	}
type SourceError struct {
	// Op is the operation that failed ("playlist_info", "playlist_videos").
	Op string
	// PlaylistID is the playlist that was being fetched.
	PlaylistID string
	// Err is the underlying error that occurred.
	Err error
}

// Error returns a string representation of the source error.
func (e *SourceError) Error() string {
	return "youtube: " + e.Op + " " + e.PlaylistID + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *SourceError) Unwrap() error { return e.Err }
