package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chenyg/ytpl-downloader/internal/model"
)

// Ledger accumulates the structured records of one run: every failed
// codec attempt and every entry that exhausted both attempts. Records
// are append-only and the ledger is flushed to disk exactly once, at
// run end.
//
// The ledger has a single writer (the orchestrator) and is not safe
// for concurrent use.
type Ledger struct {
	attempts []model.AttemptRecord
	failures []model.FailureRecord

	// now is swappable for tests.
	now func() time.Time
}

// New creates an empty Ledger.
func New() *Ledger {
	return &Ledger{now: time.Now}
}

// RecordAttempt appends a record for one failed codec attempt.
func (l *Ledger) RecordAttempt(ordinal int, title string, format model.Format, err error) {
	rec := model.AttemptRecord{
		Ordinal:   ordinal,
		Title:     title,
		Format:    format.Ext(),
		Timestamp: l.now().Format(time.RFC3339),
	}
	if err != nil {
		rec.Error = err.Error()
	}
	l.attempts = append(l.attempts, rec)
}

// RecordFailure appends a record for an entry that exhausted both
// codec attempts.
func (l *Ledger) RecordFailure(ordinal int, title, url, combinedErr string) {
	l.failures = append(l.failures, model.FailureRecord{
		Ordinal:   ordinal,
		Title:     title,
		URL:       url,
		Error:     combinedErr,
		Timestamp: l.now().Format(time.RFC3339),
	})
}

// Attempts returns the accumulated attempt records in append order.
func (l *Ledger) Attempts() []model.AttemptRecord {
	return l.attempts
}

// Failures returns the accumulated failure records in append order.
func (l *Ledger) Failures() []model.FailureRecord {
	return l.failures
}

// Flush serializes the non-empty record sequences to timestamped JSON
// files under <outputRoot>/logs. Empty sequences write no file, so the
// directory is not polluted with empty logs. After a successful flush
// the ledger contents should be treated as immutable.
func (l *Ledger) Flush(outputRoot string) error {
	if len(l.failures) == 0 && len(l.attempts) == 0 {
		return nil
	}

	logsDir := model.DestinationLayout{Root: outputRoot}.LogsDir()
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("create logs directory: %w", err)
	}

	stamp := l.now().Format("20060102_150405")

	if len(l.failures) > 0 {
		path := filepath.Join(logsDir, fmt.Sprintf("failed_downloads_%s.json", stamp))
		if err := writeJSON(path, l.failures); err != nil {
			return fmt.Errorf("write failure log: %w", err)
		}
	}

	if len(l.attempts) > 0 {
		path := filepath.Join(logsDir, fmt.Sprintf("format_attempts_%s.json", stamp))
		if err := writeJSON(path, l.attempts); err != nil {
			return fmt.Errorf("write attempt log: %w", err)
		}
	}

	return nil
}

// writeJSON writes v as indented UTF-8 JSON. HTML escaping is disabled
// so non-ASCII titles stay readable in the log files.
func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
