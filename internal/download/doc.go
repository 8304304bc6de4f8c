// Package download orchestrates playlist audio downloads.
//
// # Flow
//
// The Manager enumerates the playlist, slices the requested window,
// renumbers it from 1 and processes the entries strictly in order.
// Each entry goes through an on-disk existence check, then a lossless
// WAV attempt and, if that fails, a 320 kbps MP3 attempt. Every failed
// codec attempt and every fully failed entry is recorded in the run
// ledger, which is flushed to JSON files when the run ends. A crashed
// or cancelled run is resumed simply by running again: finished files
// are detected on disk and skipped.
//
// Progress is reported through a ProgressEvent callback, shared by the
// command-line and TUI front ends.
package download
