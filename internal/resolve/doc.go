// Package resolve implements the idempotency check that prevents
// re-downloading items already present on disk.
//
// Given a destination directory, an ordinal, and a title, Resolve
// looks for an existing file in any acceptable audio format, first by
// exact filename, then by fuzzy keyword matching bounded to the
// ordinal prefix. This makes interrupted runs resumable: re-running
// the same request skips everything that already materialized.
package resolve
