// Package config manages application settings.
//
// Settings are persisted as JSON. Load falls back to DefaultSettings
// when no file exists, so a fresh install works without any setup:
//
//	settings, err := config.Load(path)
//	settings.CreatePlaylist = true
//	err = settings.Save(path)
//
// The codec profiles for the WAV→MP3 fallback chain are derived from
// the quality fields via PrimaryProfile and SecondaryProfile.
package config
