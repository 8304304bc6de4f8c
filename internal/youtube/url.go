package youtube

import (
	"net/url"
	"strings"
)

// ExtractPlaylistID returns the playlist ID from a YouTube URL's
// "list" query parameter, or "" when the URL is not a YouTube URL or
// carries no playlist. The caller uses this to decide between playlist
// mode and single-video mode.
func ExtractPlaylistID(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	if !strings.Contains(host, "youtube.com") && !strings.Contains(host, "youtu.be") {
		return ""
	}

	return u.Query().Get("list")
}
