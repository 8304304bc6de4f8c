package audio

import (
	"strings"
	"testing"
)

func testItems() []PlaylistItem {
	return []PlaylistItem{
		{Path: "/music/Mix/01 - First Song.wav", Title: "First Song"},
		{Path: "/music/Mix/02 - Second Song.mp3", Title: "Second Song"},
	}
}

func TestPlaylistCreator_Simple(t *testing.T) {
	creator := NewPlaylistCreator(false)

	content := creator.CreatePlaylist(testItems())

	if strings.Contains(content, "#EXTM3U") {
		t.Error("simple M3U should not contain the extended header")
	}
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "01 - First Song.wav" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "02 - Second Song.mp3" {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestPlaylistCreator_Extended(t *testing.T) {
	creator := NewPlaylistCreator(true)

	content := creator.CreatePlaylist(testItems())

	if !strings.HasPrefix(content, "#EXTM3U") {
		t.Error("extended M3U should start with #EXTM3U")
	}
	if !strings.Contains(content, "#EXTINF:-1,First Song") {
		t.Error("extended M3U should contain #EXTINF entries")
	}
}

func TestPlaylistCreator_Empty(t *testing.T) {
	creator := NewPlaylistCreator(true)

	content := creator.CreatePlaylist(nil)
	if strings.TrimSpace(content) != "#EXTM3U" {
		t.Errorf("empty playlist content = %q", content)
	}
}
