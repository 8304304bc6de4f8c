package model

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// maxTitleLength bounds sanitized titles so the resulting paths stay
// comfortably under filesystem limits.
const maxTitleLength = 200

var (
	invalidTitleChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRuns    = regexp.MustCompile(`\s+`)
)

// SanitizeTitle maps an arbitrary title to a filesystem-safe string.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?*) are replaced with underscore
//   - Whitespace runs are collapsed to a single space and trimmed
//   - Titles longer than 200 runes are truncated with a "..." marker
//
// The function is total and idempotent.
//
// Example:
//
//	SanitizeTitle("Song: Part 1/2")  // "Song_ Part 1_2"
func SanitizeTitle(title string) string {
	title = invalidTitleChars.ReplaceAllString(title, "_")
	title = strings.TrimSpace(whitespaceRuns.ReplaceAllString(title, " "))

	if runes := []rune(title); len(runes) > maxTitleLength {
		title = string(runes[:maxTitleLength]) + "..."
	}

	return title
}

// DestinationLayout describes where a run materializes its files: a
// playlist-scoped directory under the output root, plus a shared logs
// directory. The playlist directory is the unit of idempotency —
// re-running the same request against it must not re-download items
// already present.
type DestinationLayout struct {
	// Root is the output root directory.
	Root string
}

// PlaylistDir returns the destination directory for a playlist,
// named after its sanitized title.
func (l DestinationLayout) PlaylistDir(playlistTitle string) string {
	return filepath.Join(l.Root, SanitizeTitle(playlistTitle))
}

// LogsDir returns the directory holding run logs and ledger files.
func (l DestinationLayout) LogsDir() string {
	return filepath.Join(l.Root, "logs")
}

// ItemStem returns the extension-less filename for an item:
// "01 - Title".
func ItemStem(ordinal int, title string) string {
	return fmt.Sprintf("%02d - %s", ordinal, title)
}

// ItemFileName returns the full filename for an item in the given
// format: "01 - Title.wav".
func ItemFileName(ordinal int, title string, f Format) string {
	return ItemStem(ordinal, title) + "." + f.Ext()
}

// OutputTemplate returns the yt-dlp output template for an item. The
// ordinal prefix is fixed; the title and extension are expanded by
// yt-dlp itself.
func OutputTemplate(dir string, ordinal int) string {
	return filepath.Join(dir, fmt.Sprintf("%02d - %%(title)s.%%(ext)s", ordinal))
}
