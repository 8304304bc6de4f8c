package config

import (
	"path/filepath"
	"testing"

	"github.com/chenyg/ytpl-downloader/internal/model"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.OutputRoot == "" {
		t.Error("OutputRoot should have a default")
	}
	if s.PrimaryQuality != "0" {
		t.Errorf("PrimaryQuality = %q, want %q", s.PrimaryQuality, "0")
	}
	if s.SecondaryQuality != "320K" {
		t.Errorf("SecondaryQuality = %q, want %q", s.SecondaryQuality, "320K")
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.PrimaryQuality != DefaultSettings().PrimaryQuality {
		t.Error("missing file should yield defaults")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "settings.json")

	s := DefaultSettings()
	s.OutputRoot = "/tmp/out"
	s.CreatePlaylist = true
	s.SecondaryQuality = "256K"

	if err := s.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.OutputRoot != "/tmp/out" || !loaded.CreatePlaylist || loaded.SecondaryQuality != "256K" {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestProfiles(t *testing.T) {
	s := DefaultSettings()

	p := s.PrimaryProfile()
	if p.Format != model.FormatWAV || p.Quality != "0" {
		t.Errorf("PrimaryProfile() = %+v", p)
	}

	f := s.SecondaryProfile()
	if f.Format != model.FormatMP3 || f.Quality != "320K" {
		t.Errorf("SecondaryProfile() = %+v", f)
	}
}
