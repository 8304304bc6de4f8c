package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/chenyg/ytpl-downloader/internal/model"
)

// Settings holds all configuration options.
type Settings struct {
	// Download settings
	OutputRoot string `json:"output_root"`
	DefaultURL string `json:"default_url"`

	// Audio format settings. The primary (lossless) format is attempted
	// first for every item; the secondary (compressed) format is the
	// fallback when the primary attempt fails.
	PrimaryQuality   string `json:"primary_quality"`
	SecondaryQuality string `json:"secondary_quality"`

	// Tag settings for fallback MP3 files
	ModifyTags      bool `json:"modify_tags"`
	EmbedCoverArt   bool `json:"embed_cover_art"`
	CoverArtMaxSize int  `json:"cover_art_max_size"`

	// Playlist file settings
	CreatePlaylist bool `json:"create_playlist"`
	M3UExtended    bool `json:"m3u_extended"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		OutputRoot: filepath.Join(homeDir, "Music", "Playlists"),
		DefaultURL: "https://www.youtube.com/watch?v=mP8Igecq1dA&list=PLhri3WAC3dSDoHb7D_GvnuMaMqlKatSam&index=1",

		PrimaryQuality:   "0",
		SecondaryQuality: "320K",

		ModifyTags:      true,
		EmbedCoverArt:   false,
		CoverArtMaxSize: 1000,

		CreatePlaylist: false,
		M3UExtended:    true,
	}
}

// Load reads settings from a JSON file. A missing file yields the
// defaults rather than an error.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// PrimaryProfile returns the codec profile for the lossless first attempt.
func (s *Settings) PrimaryProfile() model.CodecProfile {
	return model.CodecProfile{Format: model.FormatWAV, Quality: s.PrimaryQuality}
}

// SecondaryProfile returns the codec profile for the compressed fallback.
func (s *Settings) SecondaryProfile() model.CodecProfile {
	return model.CodecProfile{Format: model.FormatMP3, Quality: s.SecondaryQuality}
}

// Layout returns the destination layout rooted at the configured
// output directory.
func (s *Settings) Layout() model.DestinationLayout {
	return model.DestinationLayout{Root: s.OutputRoot}
}
