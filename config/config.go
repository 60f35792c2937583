// Package config manages application configuration: the runtime Config
// value handed to every component, and the sectioned text file that
// declares which playlists to track.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all application configuration for playlist synchronization.
// It is constructed once at startup and passed explicitly into each
// component; nothing reads process-wide state after Load returns.
type Config struct {
	// MusicDir is the root directory playlist folders are created under.
	MusicDir string
	// ConfigPath is the sectioned text file declaring tracked playlists.
	ConfigPath string
	// SyncFilePath is the per-playlist last-sync state file.
	SyncFilePath string
	// CachePath is the playlist id -> title name cache file.
	CachePath string
	// SourceLabel is the suffix appended to playlist folder names,
	// e.g. "My Mix (Youtube)".
	SourceLabel string

	// YtdlpPath is the path to the yt-dlp executable.
	YtdlpPath string
	// AudioQuality is the MP3 bitrate in kbps passed to yt-dlp.
	AudioQuality int

	// APIKey is the YouTube Data API key, taken from YOUTUBE_TOKEN.
	APIKey string
	// Force requests a full redownload of every tracked playlist.
	Force bool
}

// Default returns configuration with the standard paths and safe defaults.
func Default() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	return &Config{
		MusicDir:     filepath.Join(home, "Music"),
		ConfigPath:   filepath.Join(home, ".ypsync", "config.ini"),
		SyncFilePath: filepath.Join(home, ".ypsync", "sync_status.json"),
		CachePath:    filepath.Join(home, ".cache", "ypsync", "playlists.json"),
		SourceLabel:  "Youtube",
		YtdlpPath:    "yt-dlp",
		AudioQuality: 192,
	}, nil
}

// Load builds the runtime configuration from defaults and environment
// variables. Priority: env vars > defaults. The YouTube API credential
// is read here; the caller decides whether its absence is fatal.
func Load() (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("YPSYNC_YTDLP_PATH"); v != "" {
		c.YtdlpPath = v
	}
	if v := os.Getenv("YPSYNC_AUDIO_QUALITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.AudioQuality = n
		}
	}
	if v := os.Getenv("YPSYNC_CONFIG"); v != "" {
		c.ConfigPath = v
	}
	c.APIKey = os.Getenv("YOUTUBE_TOKEN")
}

// Validate checks that configuration values are valid and consistent.
func (c *Config) Validate() error {
	if c.MusicDir == "" {
		return fmt.Errorf("music directory must not be empty")
	}
	if c.ConfigPath == "" {
		return fmt.Errorf("config path must not be empty")
	}
	if c.SyncFilePath == "" {
		return fmt.Errorf("sync file path must not be empty")
	}
	if c.YtdlpPath == "" {
		return fmt.Errorf("yt-dlp path must not be empty")
	}
	if c.AudioQuality <= 0 {
		return fmt.Errorf("audio quality must be positive")
	}
	return nil
}

// PlaylistDir returns the local folder for a playlist title:
// <MusicDir>/<title> (<SourceLabel>).
func (c *Config) PlaylistDir(title string) string {
	return filepath.Join(c.MusicDir, fmt.Sprintf("%s (%s)", title, c.SourceLabel))
}
