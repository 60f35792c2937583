package youtube

import (
	"regexp"
	"strings"
)

// Local filenames carry the video ID in a trailing bracket group:
//
//	<sanitized title> [<video id>].mp3
//
// VideoFilename constructs the base name and ParseVideoID is its
// inverse. Keeping both in one place guarantees that every file written
// by the downloader can be mapped back to its video ID by the local
// inventory without reading file contents.

// videoIDRe matches the final "[<11-char id>]" group before the file
// extension. Anchoring at the end keeps titles that themselves contain
// bracketed text from confusing extraction.
var videoIDRe = regexp.MustCompile(`\[([0-9A-Za-z_-]{11})\]\.[^.]+$`)

// VideoFilename returns the base filename (without extension) used when
// the video is written locally.
func VideoFilename(v Video) string {
	return sanitizeFilename(v.Title) + " [" + v.ID + "]"
}

// ParseVideoID extracts the video ID embedded in a local filename.
// It reports false for files not produced by the downloader.
func ParseVideoID(filename string) (string, bool) {
	m := videoIDRe.FindStringSubmatch(filename)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// sanitizeFilename removes/replaces characters that are invalid in filenames.
func sanitizeFilename(s string) string {
	replacements := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := s
	for _, char := range replacements {
		result = strings.ReplaceAll(result, char, "_")
	}
	return result
}
