package resolve

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestResolve_ExactMatch(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "01 - Song.wav")

	res := Resolve(dir, 1, "Song")
	if !res.Exists {
		t.Fatal("expected exact match")
	}
	if res.Format != "WAV" {
		t.Errorf("Format = %q, want %q", res.Format, "WAV")
	}
	if filepath.Base(res.Path) != "01 - Song.wav" {
		t.Errorf("Path = %q", res.Path)
	}
}

func TestResolve_ExactMatchPrefersWAV(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "02 - Song.mp3")
	touch(t, dir, "02 - Song.wav")

	res := Resolve(dir, 2, "Song")
	if !res.Exists || res.Format != "WAV" {
		t.Errorf("Resolve = %+v, want WAV preferred over MP3", res)
	}
}

func TestResolve_ExactMatchSanitizedTitle(t *testing.T) {
	dir := t.TempDir()
	// On disk as sanitized by a previous run.
	touch(t, dir, "03 - Song_ Part 1_2.mp3")

	res := Resolve(dir, 3, "Song: Part 1/2")
	if !res.Exists || res.Format != "MP3" {
		t.Errorf("Resolve = %+v, want sanitized-title match", res)
	}
}

func TestResolve_UnrelatedTitleDoesNotMatch(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "01 - A Totally Different Song.mp3")

	res := Resolve(dir, 1, "Song")
	if res.Exists {
		t.Errorf("Resolve = %+v, unrelated file must not match", res)
	}
}

func TestResolve_OrdinalBoundsSearch(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "01 - Shared Keywords Here.wav")

	// Same title but wrong ordinal prefix: must not match.
	res := Resolve(dir, 2, "Shared Keywords Here")
	if res.Exists {
		t.Errorf("Resolve = %+v, ordinal prefix should bound the search", res)
	}
}

func TestResolve_FuzzyMatchTitleDrift(t *testing.T) {
	dir := t.TempDir()
	// Punctuation differs from the enumerated title.
	touch(t, dir, "04 - Morning Coffee Blues Official.mp3")

	res := Resolve(dir, 4, "Morning Coffee Blues (Official)")
	if !res.Exists {
		t.Fatal("expected fuzzy match for minor title drift")
	}
	if res.Format != "MP3" {
		t.Errorf("Format = %q", res.Format)
	}
}

func TestResolve_FuzzyThresholdBoundary(t *testing.T) {
	tests := []struct {
		name      string
		fileName  string
		title     string
		wantMatch bool
	}{
		// 3 keywords, 3/3 present: 1.0 >= 0.7.
		{"three of three", "05 - alpha bravo charlie.wav", "alpha bravo charlie", true},
		// 3 keywords, 2/3 present: 0.67 < 0.7.
		{"two of three", "05 - alpha bravo delta.wav", "alpha bravo charlie", false},
		// 4 keywords, 3/4 present: 0.75 >= 0.7 (file side 3/3).
		{"three of four", "05 - alpha bravo charlie.wav", "alpha bravo charlie delta", true},
		// 5 keywords, 3/5 present: 0.6 < 0.7.
		{"three of five", "05 - alpha bravo charlie.wav", "alpha bravo charlie delta echo", false},
		// 5 keywords, 4/5 present: 0.8 >= 0.7 (file side 4/4).
		{"four of five", "05 - alpha bravo charlie delta.wav", "alpha bravo charlie delta echo", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			touch(t, dir, tt.fileName)

			res := Resolve(dir, 5, tt.title)
			if res.Exists != tt.wantMatch {
				t.Errorf("Resolve(%q vs %q).Exists = %v, want %v",
					tt.title, tt.fileName, res.Exists, tt.wantMatch)
			}
		})
	}
}

func TestResolve_MissingDirectory(t *testing.T) {
	res := Resolve(filepath.Join(t.TempDir(), "does-not-exist"), 1, "Song")
	if res.Exists {
		t.Error("missing directory should resolve to no match")
	}
}

func TestResolve_NoSignificantKeywords(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "01 - ab.wav")

	// Title yields no keywords longer than two characters; the fuzzy
	// phase must bail out rather than match everything.
	res := Resolve(dir, 1, "a b")
	if res.Exists {
		t.Errorf("Resolve = %+v, want no match without significant keywords", res)
	}
}

func TestSignificantKeywords(t *testing.T) {
	got := significantKeywords("The Quick (Brown) Fox!! a of 42x")
	want := []string{"the", "quick", "brown", "fox", "42x"}

	if len(got) != len(want) {
		t.Fatalf("significantKeywords = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keyword[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
