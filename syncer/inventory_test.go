package syncer

import (
	"os"
	"path/filepath"
	"testing"

	"ypsync/youtube"
)

func TestListLocal(t *testing.T) {
	dir := t.TempDir()

	files := []string{
		"First Song [dQw4w9WgXcQ].mp3",
		"Second Song [AAAAAAAAAAA].mp3",
		"not-managed.mp3",
		".hidden",
	}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("audio"), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "Sub [AAAAAAAAAAB].mp3"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	index, err := ListLocal(dir)
	if err != nil {
		t.Fatalf("ListLocal() error = %v", err)
	}

	if len(index) != 2 {
		t.Errorf("ListLocal() len = %d, want 2 (unmanaged files and directories ignored)", len(index))
	}
	if got := index["dQw4w9WgXcQ"]; got != filepath.Join(dir, "First Song [dQw4w9WgXcQ].mp3") {
		t.Errorf("index[dQw4w9WgXcQ] = %q", got)
	}
	if _, ok := index["AAAAAAAAAAB"]; ok {
		t.Error("ListLocal() indexed a directory")
	}
}

func TestListLocal_MissingDir(t *testing.T) {
	index, err := ListLocal(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("ListLocal() on missing dir error = %v, want nil", err)
	}
	if len(index) != 0 {
		t.Errorf("ListLocal() on missing dir len = %d, want 0", len(index))
	}
}

// Every file the downloader would write must be indexed back under its
// video ID.
func TestListLocal_InvertsDownloaderNaming(t *testing.T) {
	dir := t.TempDir()

	videos := []youtube.Video{
		{ID: "dQw4w9WgXcQ", Title: "Plain"},
		{ID: "a-b_c-d_e-f", Title: "We/ird: \"Title\""},
		{ID: "AAAAAAAAAAA", Title: "Ends With [Brackets]"},
	}
	for _, v := range videos {
		name := youtube.VideoFilename(v) + ".mp3"
		if err := os.WriteFile(filepath.Join(dir, name), []byte("audio"), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	index, err := ListLocal(dir)
	if err != nil {
		t.Fatalf("ListLocal() error = %v", err)
	}

	for _, v := range videos {
		if _, ok := index[v.ID]; !ok {
			t.Errorf("ListLocal() missing id %s for downloader-named file", v.ID)
		}
	}
}
