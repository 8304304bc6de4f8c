package audio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PlaylistItem is one materialized file referenced by a generated
// playlist.
type PlaylistItem struct {
	// Path is the on-disk location of the audio file.
	Path string

	// Title is the display title for extended playlist entries.
	Title string
}

// PlaylistCreator generates M3U playlist files for the audio files a
// run materialized, so the download directory can be played in order.
type PlaylistCreator struct {
	extended bool
}

// NewPlaylistCreator creates a PlaylistCreator. When extended is true,
// the output carries #EXTM3U/#EXTINF metadata lines.
func NewPlaylistCreator(extended bool) *PlaylistCreator {
	return &PlaylistCreator{extended: extended}
}

// CreatePlaylist returns M3U content referencing the items by filename
// relative to the playlist file's own directory.
func (pc *PlaylistCreator) CreatePlaylist(items []PlaylistItem) string {
	var b strings.Builder

	if pc.extended {
		b.WriteString("#EXTM3U\n")
	}

	for _, item := range items {
		if pc.extended {
			// Durations are not tracked; -1 marks them unknown.
			b.WriteString(fmt.Sprintf("#EXTINF:-1,%s\n", item.Title))
		}
		b.WriteString(filepath.Base(item.Path))
		b.WriteString("\n")
	}

	return b.String()
}
