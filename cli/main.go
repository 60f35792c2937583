package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"ypsync/config"
	"ypsync/storage"
	"ypsync/syncer"
	"ypsync/youtube"
)

func main() {
	var outputFolder string
	var force bool

	flag.StringVar(&outputFolder, "o", "", "Folder playlist folders are created under (default ~/Music)")
	flag.StringVar(&outputFolder, "output-folder", "", "Folder playlist folders are created under (default ~/Music)")
	flag.BoolVar(&force, "f", false, "Redownload every tracked playlist from scratch")
	flag.BoolVar(&force, "force-update", false, "Redownload every tracked playlist from scratch")
	flag.Usage = printUsage
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if outputFolder != "" {
		cfg.MusicDir = expandUser(outputFolder)
	}
	cfg.Force = force

	if cfg.APIKey == "" {
		fmt.Fprintf(os.Stderr, "Error: YOUTUBE_TOKEN is not set; a YouTube Data API key is required\n")
		os.Exit(1)
	}

	playlists, err := config.TrackedPlaylists(cfg.ConfigPath)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrNoPlaylistSection):
			fmt.Fprintf(os.Stderr, "Error: %s has no [playlists] section\n", cfg.ConfigPath)
		case errors.Is(err, config.ErrNoPlaylists):
			fmt.Fprintf(os.Stderr, "Error: no playlists declared in %s\n", cfg.ConfigPath)
		default:
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", cfg.ConfigPath, err)
		}
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.MusicDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", cfg.MusicDir, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client, err := youtube.NewClient(ctx, cfg.APIKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating YouTube client: %v\n", err)
		os.Exit(1)
	}

	downloader := youtube.NewDownloader(cfg.YtdlpPath, cfg.AudioQuality)
	store := storage.NewSyncStore(cfg.SyncFilePath)
	names := storage.NewNameCache(cfg.CachePath)

	manager := syncer.NewManager(cfg, client, downloader, store, names)
	if err := manager.Run(ctx, playlists); err != nil {
		fmt.Fprintf(os.Stderr, "Sync finished with errors: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `ypsync - sync local audio folders with YouTube playlists

Usage:
  ypsync [flags]

Flags:
  -o, --output-folder <dir>  Folder playlist folders are created under (default ~/Music)
  -f, --force-update         Redownload every tracked playlist from scratch

Tracked playlists are declared in the [playlists] section of the config
file (default ~/.ypsync/config.ini, override with YPSYNC_CONFIG), one
playlist ID per line.

The YouTube Data API key is read from YOUTUBE_TOKEN.
`)
}

// expandUser resolves a leading ~ against the home directory.
func expandUser(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
