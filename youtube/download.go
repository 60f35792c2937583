package youtube

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
)

// Downloader materializes remote videos as local MP3 files using yt-dlp.
// Each video is downloaded into a unique staging directory and only
// renamed into the playlist folder once complete, so an interrupted
// download never leaves a partial file with a valid ID in its name.
type Downloader struct {
	// YtdlpPath is the path to the yt-dlp executable.
	YtdlpPath string
	// AudioQuality is the MP3 bitrate in kbps.
	AudioQuality int
}

// NewDownloader creates a downloader for the given yt-dlp binary and
// audio quality.
func NewDownloader(ytdlpPath string, audioQuality int) *Downloader {
	if ytdlpPath == "" {
		ytdlpPath = "yt-dlp"
	}
	if audioQuality <= 0 {
		audioQuality = 192
	}
	return &Downloader{YtdlpPath: ytdlpPath, AudioQuality: audioQuality}
}

// Fetch downloads the batch of videos into dir, sequentially and in the
// given order. A failed video is logged and the batch continues; the
// joined per-video errors are returned once the batch finishes.
func (d *Downloader) Fetch(ctx context.Context, videos []Video, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create playlist directory: %w", err)
	}

	var errs []error
	for i, v := range videos {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		log.Printf("youtube: downloading %q (%d/%d)", v.Title, i+1, len(videos))
		if err := d.fetchOne(ctx, v, dir); err != nil {
			log.Printf("youtube: download %s: %v", v.ID, err)
			errs = append(errs, fmt.Errorf("download %s: %w", v.ID, err))
		}
	}

	return errors.Join(errs...)
}

// fetchOne downloads a single video through a staging directory.
func (d *Downloader) fetchOne(ctx context.Context, v Video, dir string) error {
	staging := filepath.Join(os.TempDir(), "ypsync-"+uuid.NewString())
	if err := os.MkdirAll(staging, 0755); err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	base := VideoFilename(v)
	args := []string{
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", strconv.Itoa(d.AudioQuality),
		"--no-warnings",
		"-o", filepath.Join(staging, base+".%(ext)s"),
		v.URL(),
	}

	cmd := exec.CommandContext(ctx, d.YtdlpPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return ErrYtdlpNotFound
		}
		if msg := stderr.String(); msg != "" {
			return fmt.Errorf("yt-dlp: %w: %s", err, msg)
		}
		return fmt.Errorf("yt-dlp: %w", err)
	}

	src := filepath.Join(staging, base+".mp3")
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("yt-dlp produced no output file: %w", err)
	}

	return moveFile(src, filepath.Join(dir, base+".mp3"))
}

// moveFile renames src to dst, falling back to copy+remove when the
// staging directory lives on a different filesystem.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open staged file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination file: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copy staged file: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close destination file: %w", err)
	}

	return os.Remove(src)
}
