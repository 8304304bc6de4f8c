package ledger

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chenyg/ytpl-downloader/internal/model"
)

func fixedClock() time.Time {
	return time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)
}

func TestLedger_RecordAttempt(t *testing.T) {
	l := New()
	l.now = fixedClock

	l.RecordAttempt(1, "Song", model.FormatWAV, errors.New("conversion failed"))
	l.RecordAttempt(1, "Song", model.FormatMP3, errors.New("network reset"))

	attempts := l.Attempts()
	if len(attempts) != 2 {
		t.Fatalf("len(Attempts()) = %d, want 2", len(attempts))
	}
	if attempts[0].Format != "wav" || attempts[1].Format != "mp3" {
		t.Errorf("formats = %q, %q", attempts[0].Format, attempts[1].Format)
	}
	if attempts[0].Error != "conversion failed" {
		t.Errorf("attempt error = %q", attempts[0].Error)
	}
	if attempts[0].Timestamp != "2025-06-01T12:30:45Z" {
		t.Errorf("timestamp = %q", attempts[0].Timestamp)
	}
}

func TestLedger_FlushEmptyWritesNothing(t *testing.T) {
	dir := t.TempDir()

	if err := New().Flush(dir); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "logs")); !os.IsNotExist(err) {
		t.Error("empty ledger should not create the logs directory")
	}
}

func TestLedger_FlushFailuresOnly(t *testing.T) {
	dir := t.TempDir()

	l := New()
	l.now = fixedClock
	l.RecordFailure(3, "歌曲標題", "https://youtube.com/watch?v=x", "WAV: a; MP3: b")

	if err := l.Flush(dir); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "logs"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one log file, got %d", len(entries))
	}
	name := entries[0].Name()
	if !strings.HasPrefix(name, "failed_downloads_") || !strings.HasSuffix(name, ".json") {
		t.Errorf("unexpected log file name %q", name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "logs", name))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	// Non-ASCII titles must be written unescaped.
	if !strings.Contains(string(data), "歌曲標題") {
		t.Errorf("title should be preserved unescaped, got %s", data)
	}

	var records []model.FailureRecord
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("log file is not valid JSON: %v", err)
	}
	if len(records) != 1 || records[0].Ordinal != 3 || records[0].Error != "WAV: a; MP3: b" {
		t.Errorf("records = %+v", records)
	}
}

func TestLedger_FlushBothCategories(t *testing.T) {
	dir := t.TempDir()

	l := New()
	l.RecordAttempt(1, "Song", model.FormatWAV, errors.New("boom"))
	l.RecordFailure(1, "Song", "https://example.com", "WAV: boom; MP3: boom")

	if err := l.Flush(dir); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "logs"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}

	var haveFailed, haveAttempts bool
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "failed_downloads_") {
			haveFailed = true
		}
		if strings.HasPrefix(e.Name(), "format_attempts_") {
			haveAttempts = true
		}
	}
	if !haveFailed || !haveAttempts {
		t.Errorf("expected both log files, got failed=%v attempts=%v", haveFailed, haveAttempts)
	}
}
