package youtube

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestNewDownloader_Defaults(t *testing.T) {
	d := NewDownloader("", 0)
	if d.YtdlpPath != "yt-dlp" {
		t.Errorf("NewDownloader().YtdlpPath = %q, want %q", d.YtdlpPath, "yt-dlp")
	}
	if d.AudioQuality != 192 {
		t.Errorf("NewDownloader().AudioQuality = %d, want 192", d.AudioQuality)
	}
}

// fakeYtdlp writes a stub executable that creates the output file the
// real yt-dlp would, based on the -o template it receives.
func fakeYtdlp(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub executable requires a POSIX shell")
	}

	script := `#!/bin/sh
out=""
prev=""
for a in "$@"; do
	if [ "$prev" = "-o" ]; then out="$a"; fi
	prev="$a"
done
out=$(printf '%s' "$out" | sed 's/%(ext)s/mp3/')
printf 'audio-bytes' > "$out"
`
	path := filepath.Join(t.TempDir(), "yt-dlp")
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("write stub yt-dlp: %v", err)
	}
	return path
}

func TestDownloader_Fetch(t *testing.T) {
	d := NewDownloader(fakeYtdlp(t), 192)
	dir := filepath.Join(t.TempDir(), "Mix (Youtube)")

	videos := []Video{
		{ID: "dQw4w9WgXcQ", Title: "First Song"},
		{ID: "AAAAAAAAAAA", Title: "Second: Song"},
	}

	if err := d.Fetch(context.Background(), videos, dir); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	for _, v := range videos {
		path := filepath.Join(dir, VideoFilename(v)+".mp3")
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Fetch() did not produce %s: %v", path, err)
		}
	}
}

func TestDownloader_FetchEmptyBatch(t *testing.T) {
	d := NewDownloader(fakeYtdlp(t), 192)
	dir := filepath.Join(t.TempDir(), "Empty (Youtube)")

	if err := d.Fetch(context.Background(), nil, dir); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	// The playlist folder is still created for an empty batch
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("Fetch() did not create playlist directory: %v", err)
	}
}

func TestDownloader_FetchMissingBinary(t *testing.T) {
	d := NewDownloader(filepath.Join(t.TempDir(), "no-such-ytdlp"), 192)
	dir := filepath.Join(t.TempDir(), "Mix (Youtube)")

	err := d.Fetch(context.Background(), []Video{{ID: "dQw4w9WgXcQ", Title: "Song"}}, dir)
	if err == nil {
		t.Error("Fetch() with missing binary returned nil error")
	}
}

func TestDownloader_FetchContinuesAfterFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub executable requires a POSIX shell")
	}

	// Stub that fails for one video ID and succeeds for the rest.
	script := `#!/bin/sh
out=""
prev=""
url=""
for a in "$@"; do
	if [ "$prev" = "-o" ]; then out="$a"; fi
	prev="$a"
	url="$a"
done
case "$url" in
	*badbadbad11*) exit 1 ;;
esac
out=$(printf '%s' "$out" | sed 's/%(ext)s/mp3/')
printf 'audio-bytes' > "$out"
`
	stub := filepath.Join(t.TempDir(), "yt-dlp")
	if err := os.WriteFile(stub, []byte(script), 0755); err != nil {
		t.Fatalf("write stub yt-dlp: %v", err)
	}

	d := NewDownloader(stub, 192)
	dir := filepath.Join(t.TempDir(), "Mix (Youtube)")

	videos := []Video{
		{ID: "badbadbad11", Title: "Broken"},
		{ID: "dQw4w9WgXcQ", Title: "Works"},
	}

	err := d.Fetch(context.Background(), videos, dir)
	if err == nil {
		t.Error("Fetch() with failing video returned nil error")
	}

	// The failure must not stop the rest of the batch
	good := filepath.Join(dir, VideoFilename(videos[1])+".mp3")
	if _, statErr := os.Stat(good); statErr != nil {
		t.Errorf("Fetch() did not download remaining video after failure: %v", statErr)
	}
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mp3")
	dst := filepath.Join(dir, "dst.mp3")

	if err := os.WriteFile(src, []byte("audio"), 0644); err != nil {
		t.Fatalf("write src: %v", err)
	}

	if err := moveFile(src, dst); err != nil {
		t.Fatalf("moveFile() error = %v", err)
	}

	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("moveFile() left source file behind")
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	if string(data) != "audio" {
		t.Errorf("dst contents = %q, want %q", data, "audio")
	}
}
