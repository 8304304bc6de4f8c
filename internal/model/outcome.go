package model

import (
	"errors"
	"fmt"
)

var (
	errEmptyURL      = errors.New("request URL is empty")
	errInvalidWindow = errors.New("end position is before start position")
)

// Format identifies one of the two audio codec paths.
type Format int

const (
	// FormatWAV is the primary, lossless codec path.
	FormatWAV Format = iota

	// FormatMP3 is the compressed fallback codec path.
	FormatMP3
)

// Ext returns the file extension (without dot) yt-dlp produces for
// this format.
func (f Format) Ext() string {
	if f == FormatMP3 {
		return "mp3"
	}
	return "wav"
}

// Label returns the upper-case display label, e.g. "WAV".
func (f Format) Label() string {
	if f == FormatMP3 {
		return "MP3"
	}
	return "WAV"
}

// CodecProfile selects a codec and quality for one transfer attempt.
//
// Quality follows yt-dlp --audio-quality semantics: "0" means best
// (used for lossless WAV), "320K" selects a fixed MP3 bitrate.
type CodecProfile struct {
	Format  Format
	Quality string
}

// OutcomeKind discriminates the Outcome variants.
type OutcomeKind int

const (
	// OutcomeSuccess means one of the two codec attempts produced a file.
	OutcomeSuccess OutcomeKind = iota

	// OutcomeSkipped means an acceptable file already existed on disk
	// and no network transfer was made.
	OutcomeSkipped

	// OutcomeFailed means both codec attempts were exhausted.
	OutcomeFailed
)

// Outcome is the per-entry result of the format-fallback downloader.
// Exactly one outcome is produced per entry per run.
type Outcome struct {
	Kind OutcomeKind

	// Format is the codec that succeeded. Valid only for OutcomeSuccess.
	Format Format

	// FormatLabel is the extension label of the pre-existing file
	// ("WAV", "MP3", ... or "UNKNOWN"). Valid only for OutcomeSkipped.
	FormatLabel string

	// Path is the matched on-disk file. Valid only for OutcomeSkipped.
	Path string

	// PrimaryErr and SecondaryErr hold the attempt error messages.
	// Valid only for OutcomeFailed.
	PrimaryErr   string
	SecondaryErr string
}

// SuccessOutcome builds an Outcome for a completed transfer.
func SuccessOutcome(f Format) Outcome {
	return Outcome{Kind: OutcomeSuccess, Format: f}
}

// SkippedOutcome builds an Outcome for an already-materialized entry.
func SkippedOutcome(path, formatLabel string) Outcome {
	return Outcome{Kind: OutcomeSkipped, Path: path, FormatLabel: formatLabel}
}

// FailedOutcome builds an Outcome for an entry that exhausted both
// codec attempts.
func FailedOutcome(primaryErr, secondaryErr string) Outcome {
	return Outcome{Kind: OutcomeFailed, PrimaryErr: primaryErr, SecondaryErr: secondaryErr}
}

// Succeeded reports whether the entry ended up materialized on disk,
// either by transfer or by skip.
func (o Outcome) Succeeded() bool {
	return o.Kind == OutcomeSuccess || o.Kind == OutcomeSkipped
}

// CombinedError returns both attempt errors tagged with their format,
// e.g. "WAV: unsupported container; MP3: network reset".
func (o Outcome) CombinedError() string {
	return fmt.Sprintf("%s: %s; %s: %s",
		FormatWAV.Label(), o.PrimaryErr, FormatMP3.Label(), o.SecondaryErr)
}

// AttemptRecord is appended to the run ledger once per failed codec
// attempt: zero, one, or two per entry.
//
// The JSON field names match the historical log layout so existing
// tooling keeps parsing the files.
type AttemptRecord struct {
	Ordinal   int    `json:"index"`
	Title     string `json:"title"`
	Format    string `json:"format"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

// FailureRecord is appended to the run ledger once per entry that
// exhausted both codec attempts.
type FailureRecord struct {
	Ordinal   int    `json:"index"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}
