package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Sentinel errors for playlist validation.
var (
	// ErrNoPlaylistSection indicates the config file has no [playlists] section.
	ErrNoPlaylistSection = errors.New("config: missing playlists section")
	// ErrNoPlaylists indicates the [playlists] section declares no playlist IDs.
	ErrNoPlaylists = errors.New("config: no playlists declared")
)

// DefaultCommentToken is the comment character used unless overridden.
const DefaultCommentToken = "#"

// Section holds the parsed contents of one config section: key=value
// assignments and bare flag entries (lines without a '=').
type Section struct {
	Assignments map[string]string
	Flags       []string
}

// Parser reads a sectioned text configuration file.
//
// A section header is a line of the form [name]. Lines within a section
// are either comments (everything after the comment token is ignored),
// bare flags, or key=value assignments. A line with more than one '='
// is not a valid assignment and is silently skipped.
type Parser struct {
	commentToken string
	lines        []string
}

// NewParser creates a parser for the file at path using the default
// comment token.
func NewParser(path string) (*Parser, error) {
	return NewParserWithComment(path, DefaultCommentToken)
}

// NewParserWithComment creates a parser with a custom comment token.
func NewParserWithComment(path, commentToken string) (*Parser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	return &Parser{commentToken: commentToken, lines: lines}, nil
}

// Sections parses the file into named sections. Entries appearing before
// the first section header are ignored.
func (p *Parser) Sections() map[string]Section {
	sections := make(map[string]Section)

	name := ""
	current := newSection()

	for _, raw := range p.lines {
		line := p.stripComment(raw)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			if name != "" {
				sections[name] = current
			}
			name = strings.Trim(line, "[]")
			current = newSection()
			continue
		}

		if name == "" {
			continue
		}

		parts := strings.Split(line, "=")
		switch len(parts) {
		case 1:
			current.Flags = append(current.Flags, strings.TrimSpace(parts[0]))
		case 2:
			current.Assignments[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
		default:
			// More than one '=' is not a valid assignment; skip the line.
		}
	}

	if name != "" {
		sections[name] = current
	}

	return sections
}

// stripComment removes everything from the comment token onward and trims
// surrounding whitespace.
func (p *Parser) stripComment(line string) string {
	if i := strings.Index(line, p.commentToken); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

func newSection() Section {
	return Section{Assignments: make(map[string]string)}
}

// TrackedPlaylists returns the deduplicated set of playlist IDs declared
// as flags in the [playlists] section, sorted for deterministic runs.
// It returns ErrNoPlaylistSection if the section is absent and
// ErrNoPlaylists if the section declares nothing.
func TrackedPlaylists(path string) ([]string, error) {
	parser, err := NewParser(path)
	if err != nil {
		return nil, err
	}

	section, ok := parser.Sections()["playlists"]
	if !ok {
		return nil, ErrNoPlaylistSection
	}

	seen := make(map[string]struct{})
	var ids []string
	for _, flag := range section.Flags {
		if flag == "" {
			continue
		}
		if _, dup := seen[flag]; dup {
			continue
		}
		seen[flag] = struct{}{}
		ids = append(ids, flag)
	}

	if len(ids) == 0 {
		return nil, ErrNoPlaylists
	}

	sort.Strings(ids)
	return ids, nil
}
