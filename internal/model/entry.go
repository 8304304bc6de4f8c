package model

// PlaylistRequest describes one download invocation: a source URL and
// an optional ordinal window within the playlist.
//
// Start and End are absolute 1-based playlist positions. End == 0 means
// "all remaining entries". The invariant End >= Start (when End is set)
// is enforced by Validate.
type PlaylistRequest struct {
	// URL is the playlist (or video) URL to download from.
	URL string

	// Start is the first playlist position to download (1-based).
	// Values below 1 are treated as 1.
	Start int

	// End is the last playlist position to download (inclusive).
	// Zero means download everything from Start onwards.
	End int
}

// Validate checks the request invariants.
func (r PlaylistRequest) Validate() error {
	if r.URL == "" {
		return errEmptyURL
	}
	if r.End != 0 && r.End < r.Start {
		return errInvalidWindow
	}
	return nil
}

// PlaylistEntry is one item of an enumerated playlist. Entries are
// produced once per run and never mutated afterwards.
//
// Ordinal is the 1-based position within the requested window (not the
// absolute playlist position). It is used as the filename prefix and as
// the join key for ledger records.
type PlaylistEntry struct {
	// Ordinal is the 1-based position within the download window.
	Ordinal int

	// Title is the item title. May be empty for removed videos.
	Title string

	// URL is the canonical watch URL for the item.
	URL string

	// Thumbnail is the item thumbnail URL, if the enumeration exposed one.
	Thumbnail string
}

// IsEmpty reports whether the entry carries no usable information at
// all, which happens for deleted or private videos in a playlist.
func (e PlaylistEntry) IsEmpty() bool {
	return e.Title == "" && e.URL == ""
}

// DisplayTitle returns the entry title, or a placeholder when the
// enumeration did not provide one.
func (e PlaylistEntry) DisplayTitle() string {
	if e.Title == "" {
		return "unknown title"
	}
	return e.Title
}

// PlaylistInfo is the result of probing a playlist URL: its metadata
// plus the full ordered entry list.
type PlaylistInfo struct {
	// Title is the playlist title.
	Title string

	// Uploader is the channel that owns the playlist.
	Uploader string

	// Entries is the full ordered entry list, in playlist order.
	// Ordinals are not yet assigned; Window does that.
	Entries []PlaylistEntry
}

// Window slices the entry list to the requested [start, end] range of
// absolute playlist positions and assigns window-relative ordinals
// starting at 1. Out-of-range bounds are clamped to the available
// entries.
func (p *PlaylistInfo) Window(start, end int) []PlaylistEntry {
	if start < 1 {
		start = 1
	}
	if start > len(p.Entries) {
		return nil
	}
	if end <= 0 || end > len(p.Entries) {
		end = len(p.Entries)
	}

	window := make([]PlaylistEntry, end-start+1)
	copy(window, p.Entries[start-1:end])
	for i := range window {
		window[i].Ordinal = i + 1
	}
	return window
}
