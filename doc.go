// Package ypsync synchronizes local audio folders with remote YouTube
// playlists.
//
// Each tracked playlist maps to one folder under the music directory,
// named "<playlist title> (Youtube)". A sync pass compares the folder's
// contents against the playlist's current member list and applies the
// minimal set of deletions and downloads to make them match. Files are
// named so that the video ID is recoverable from the filename alone,
// which keeps the tool free of any per-file database.
//
// Overview
//
// The work is split across sub-packages:
//
//   - syncer: the reconciliation engine and per-playlist state machine
//   - youtube: the Data API client and the yt-dlp download sink
//   - storage: sync records and the playlist name cache (atomic JSON)
//   - config: runtime configuration and the tracked-playlists file
//   - retry: exponential backoff for transient API failures
//
// Quick Start
//
// Wire the components and run a sync pass:
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	client, err := youtube.NewClient(ctx, cfg.APIKey)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	m := syncer.NewManager(cfg, client,
//		youtube.NewDownloader(cfg.YtdlpPath, cfg.AudioQuality),
//		storage.NewSyncStore(cfg.SyncFilePath),
//		storage.NewNameCache(cfg.CachePath))
//
//	if err := m.Run(ctx, []string{"PLxxxxxxxx"}); err != nil {
//		log.Fatal(err)
//	}
//
// Configuration
//
// Settings load from environment variables over built-in defaults:
//
//   - YOUTUBE_TOKEN: YouTube Data API key (required)
//   - YPSYNC_CONFIG: path to the tracked-playlists file
//   - YPSYNC_YTDLP_PATH: path to the yt-dlp executable
//   - YPSYNC_AUDIO_QUALITY: MP3 bitrate in kbps
//
// The tracked-playlists file is sectioned text; playlist IDs are listed
// one per line under a [playlists] header.
//
// Error Handling
//
// All operations return errors supporting errors.Is and errors.As:
//
//	if errors.Is(err, ypsync.ErrPlaylistNotFound) {
//		fmt.Println("playlist does not exist or is private")
//	}
//
//	var srcErr *ypsync.SourceError
//	if errors.As(err, &srcErr) {
//		fmt.Printf("fetching %s failed: %v\n", srcErr.PlaylistID, srcErr.Err)
//	}
//
// Dependencies
//
// ypsync requires yt-dlp to be installed and reachable via PATH or
// YPSYNC_YTDLP_PATH.
//
// Install yt-dlp: https://github.com/yt-dlp/yt-dlp
//
package ypsync
