// Package model defines the core data structures used throughout
// the playlist audio downloader.
//
// # Requests and entries
//
// PlaylistRequest describes one invocation (URL plus ordinal window);
// PlaylistInfo is the probed playlist with its ordered entries:
//
//	window := info.Window(req.Start, req.End)
//	for _, entry := range window {
//	    fmt.Println(entry.Ordinal, entry.DisplayTitle())
//	}
//
// # Outcomes and ledger records
//
// Outcome is the tagged per-entry result of the format-fallback
// downloader (Success, Skipped, or Failed). AttemptRecord and
// FailureRecord are the structured rows accumulated by the run ledger.
//
// # Destination layout
//
// DestinationLayout computes the playlist-scoped destination directory
// and the logs directory. Item filenames follow the "NN - Title.ext"
// convention via ItemStem, ItemFileName and OutputTemplate;
// SanitizeTitle makes arbitrary titles safe for the filesystem.
package model
