package model

import (
	"strings"
	"testing"
)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal title", "normal title"},
		{"title:with:colons", "title_with_colons"},
		{"title<with>brackets", "title_with_brackets"},
		{"title/with\\slashes", "title_with_slashes"},
		{"title|with|pipes", "title_with_pipes"},
		{"title?with*wildcards", "title_with_wildcards"},
		{"title\"with\"quotes", "title_with_quotes"},
		{"multiple   spaces", "multiple spaces"},
		{"  leading and trailing  ", "leading and trailing"},
		{"tabs\tand\nnewlines", "tabs and newlines"},
		{"中文標題保留", "中文標題保留"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SanitizeTitle(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeTitle_NeverContainsInvalidChars(t *testing.T) {
	inputs := []string{
		`a<b>c:d"e/f\g|h?i*j`,
		strings.Repeat(`?`, 500),
		"",
	}
	for _, in := range inputs {
		got := SanitizeTitle(in)
		if strings.ContainsAny(got, `<>:"/\|?*`) {
			t.Errorf("SanitizeTitle(%q) = %q still contains invalid characters", in, got)
		}
	}
}

func TestSanitizeTitle_Truncation(t *testing.T) {
	long := strings.Repeat("a", 300)
	got := SanitizeTitle(long)

	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated title should end with marker, got %q", got[len(got)-10:])
	}
	if n := len([]rune(got)); n != 203 {
		t.Errorf("truncated title length = %d runes, want 203", n)
	}

	short := strings.Repeat("a", 200)
	if got := SanitizeTitle(short); got != short {
		t.Errorf("200-rune title should not be truncated")
	}
}

func TestSanitizeTitle_Idempotent(t *testing.T) {
	inputs := []string{
		"Song: Part 1/2",
		strings.Repeat("x", 300),
		"  spaced   out  ",
		"plain",
	}
	for _, in := range inputs {
		once := SanitizeTitle(in)
		twice := SanitizeTitle(once)
		if once != twice {
			t.Errorf("SanitizeTitle not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestPlaylistRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     PlaylistRequest
		wantErr bool
	}{
		{"full range", PlaylistRequest{URL: "https://example.com", Start: 1}, false},
		{"explicit window", PlaylistRequest{URL: "https://example.com", Start: 3, End: 5}, false},
		{"single item window", PlaylistRequest{URL: "https://example.com", Start: 4, End: 4}, false},
		{"end before start", PlaylistRequest{URL: "https://example.com", Start: 5, End: 3}, true},
		{"missing url", PlaylistRequest{Start: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPlaylistInfo_Window(t *testing.T) {
	info := &PlaylistInfo{Title: "Mix"}
	for i := 1; i <= 10; i++ {
		info.Entries = append(info.Entries, PlaylistEntry{Title: string(rune('a' + i - 1))})
	}

	tests := []struct {
		name       string
		start, end int
		wantLen    int
		firstTitle string
	}{
		{"full", 1, 0, 10, "a"},
		{"window 3-5", 3, 5, 3, "c"},
		{"tail from 8", 8, 0, 3, "h"},
		{"end clamped", 9, 99, 2, "i"},
		{"start clamped", 0, 2, 2, "a"},
		{"start past end of list", 11, 0, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := info.Window(tt.start, tt.end)
			if len(window) != tt.wantLen {
				t.Fatalf("Window(%d, %d) length = %d, want %d", tt.start, tt.end, len(window), tt.wantLen)
			}
			if tt.wantLen == 0 {
				return
			}
			if window[0].Title != tt.firstTitle {
				t.Errorf("first entry title = %q, want %q", window[0].Title, tt.firstTitle)
			}
			// Ordinals are window-relative and start at 1.
			for i, e := range window {
				if e.Ordinal != i+1 {
					t.Errorf("entry %d ordinal = %d, want %d", i, e.Ordinal, i+1)
				}
			}
		})
	}

	// Windowing must not touch the source entries.
	for _, e := range info.Entries {
		if e.Ordinal != 0 {
			t.Errorf("source entry mutated: ordinal = %d", e.Ordinal)
		}
	}
}

func TestOutcome(t *testing.T) {
	success := SuccessOutcome(FormatMP3)
	if !success.Succeeded() || success.Format != FormatMP3 {
		t.Errorf("SuccessOutcome(FormatMP3) = %+v", success)
	}

	skipped := SkippedOutcome("/music/01 - Song.wav", "WAV")
	if !skipped.Succeeded() || skipped.FormatLabel != "WAV" {
		t.Errorf("SkippedOutcome = %+v", skipped)
	}

	failed := FailedOutcome("container error", "network reset")
	if failed.Succeeded() {
		t.Error("FailedOutcome should not report success")
	}
	combined := failed.CombinedError()
	if combined != "WAV: container error; MP3: network reset" {
		t.Errorf("CombinedError() = %q", combined)
	}
}

func TestItemNaming(t *testing.T) {
	if got := ItemStem(1, "Song"); got != "01 - Song" {
		t.Errorf("ItemStem(1, Song) = %q", got)
	}
	if got := ItemFileName(12, "Song", FormatWAV); got != "12 - Song.wav" {
		t.Errorf("ItemFileName = %q", got)
	}
	if got := ItemFileName(3, "Song", FormatMP3); got != "03 - Song.mp3" {
		t.Errorf("ItemFileName = %q", got)
	}
}

func TestDestinationLayout(t *testing.T) {
	layout := DestinationLayout{Root: "/music"}

	if got := layout.PlaylistDir("My: Mix"); got != "/music/My_ Mix" {
		t.Errorf("PlaylistDir = %q", got)
	}
	if got := layout.LogsDir(); got != "/music/logs" {
		t.Errorf("LogsDir = %q", got)
	}
}

func TestOutputTemplate(t *testing.T) {
	got := OutputTemplate("/music/Mix", 7)
	want := "/music/Mix/07 - %(title)s.%(ext)s"
	if got != want {
		t.Errorf("OutputTemplate = %q, want %q", got, want)
	}
}

func TestPlaylistEntry_DisplayTitle(t *testing.T) {
	if got := (PlaylistEntry{Title: "Song"}).DisplayTitle(); got != "Song" {
		t.Errorf("DisplayTitle = %q", got)
	}
	if got := (PlaylistEntry{}).DisplayTitle(); got != "unknown title" {
		t.Errorf("DisplayTitle for empty entry = %q", got)
	}
}
