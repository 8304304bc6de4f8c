package youtube

import (
	"encoding/json"
	"fmt"

	"github.com/chenyg/ytpl-downloader/internal/model"
)

// probePayload is the subset of yt-dlp's --dump-single-json output the
// downloader cares about. With --flat-playlist, playlist entries carry
// only shallow metadata, which is all the orchestrator needs.
type probePayload struct {
	Type       string       `json:"_type"`
	Title      string       `json:"title"`
	Uploader   string       `json:"uploader"`
	WebpageURL string       `json:"webpage_url"`
	Thumbnail  string       `json:"thumbnail"`
	Thumbnails []thumbnail  `json:"thumbnails"`
	Entries    []probeEntry `json:"entries"`
}

type probeEntry struct {
	Title      string      `json:"title"`
	URL        string      `json:"url"`
	WebpageURL string      `json:"webpage_url"`
	Thumbnails []thumbnail `json:"thumbnails"`
}

type thumbnail struct {
	URL string `json:"url"`
}

// parseProbeOutput decodes a --dump-single-json document into a
// PlaylistInfo. A single-video document (no entries) becomes a
// one-entry playlist so both URL kinds flow through the same path.
func parseProbeOutput(data []byte) (*model.PlaylistInfo, error) {
	var payload probePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}

	info := &model.PlaylistInfo{
		Title:    payload.Title,
		Uploader: payload.Uploader,
	}

	if len(payload.Entries) == 0 {
		if payload.WebpageURL == "" {
			return nil, fmt.Errorf("no entries and no webpage URL in probe output")
		}
		info.Entries = []model.PlaylistEntry{{
			Title:     payload.Title,
			URL:       payload.WebpageURL,
			Thumbnail: pickThumbnail(payload.Thumbnail, payload.Thumbnails),
		}}
		return info, nil
	}

	info.Entries = make([]model.PlaylistEntry, 0, len(payload.Entries))
	for _, e := range payload.Entries {
		url := e.WebpageURL
		if url == "" {
			url = e.URL
		}
		info.Entries = append(info.Entries, model.PlaylistEntry{
			Title:     e.Title,
			URL:       url,
			Thumbnail: pickThumbnail("", e.Thumbnails),
		})
	}
	return info, nil
}

// pickThumbnail prefers the direct thumbnail field, then the last
// (highest resolution) entry of the thumbnails list.
func pickThumbnail(direct string, thumbs []thumbnail) string {
	if direct != "" {
		return direct
	}
	for i := len(thumbs) - 1; i >= 0; i-- {
		if thumbs[i].URL != "" {
			return thumbs[i].URL
		}
	}
	return ""
}
