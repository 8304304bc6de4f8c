package download

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/chenyg/ytpl-downloader/internal/artwork"
	"github.com/chenyg/ytpl-downloader/internal/audio"
	"github.com/chenyg/ytpl-downloader/internal/config"
	"github.com/chenyg/ytpl-downloader/internal/ledger"
	"github.com/chenyg/ytpl-downloader/internal/logging"
	"github.com/chenyg/ytpl-downloader/internal/model"
	"github.com/chenyg/ytpl-downloader/internal/resolve"
	"golang.org/x/sync/errgroup"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// RunContext carries the per-run state threaded through entry
// processing.
type RunContext struct {
	Ledger    *ledger.Ledger
	Dir       string
	Total     int
	Primary   model.CodecProfile
	Secondary model.CodecProfile

	PlaylistTitle string
	Uploader      string
}

// Summary aggregates one run's outcomes.
type Summary struct {
	Total          int
	Succeeded      int
	Failed         int
	Skipped        int
	PrimaryCount   int
	SecondaryCount int

	// Failures lists the entries that exhausted both codec attempts,
	// in processing order.
	Failures []model.FailureRecord
}

// SuccessRate returns succeeded/total as a percentage. A run with no
// expected items has a zero rate.
func (s *Summary) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Succeeded) / float64(s.Total) * 100
}

// Manager coordinates playlist downloads: enumeration, the per-entry
// existence check, the WAV to MP3 fallback and the final ledger flush.
type Manager struct {
	settings *config.Settings
	fetcher  Fetcher
	tagger   *audio.Tagger
	artwork  *artwork.Service
	playlist *audio.PlaylistCreator
	logger   *slog.Logger

	processedItems int32
	totalItems     int32

	onProgress func(ProgressEvent)
}

// NewManager creates a new download Manager. onProgress may be nil.
func NewManager(settings *config.Settings, fetcher Fetcher, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:   settings,
		fetcher:    fetcher,
		tagger:     audio.NewTagger(audio.DefaultTagConfig()),
		artwork:    artwork.NewService(),
		playlist:   audio.NewPlaylistCreator(settings.M3UExtended),
		logger:     logging.Discard(),
		onProgress: onProgress,
	}
}

// SetLogger directs the manager's run log. Passing nil restores the
// discarding default.
func (m *Manager) SetLogger(l *slog.Logger) {
	if l == nil {
		l = logging.Discard()
	}
	m.logger = l
}

// GetProgress returns processed and total item counts for the current
// run.
func (m *Manager) GetProgress() (processed, total int32) {
	return atomic.LoadInt32(&m.processedItems), atomic.LoadInt32(&m.totalItems)
}

// DownloadPlaylist enumerates the playlist behind req.URL, slices the
// requested window and processes its entries strictly in order.
//
// Only enumeration-level problems are returned as an error. Per-entry
// failures are absorbed into the returned Summary and the on-disk
// failure records, so one broken video never aborts the run.
func (m *Manager) DownloadPlaylist(ctx context.Context, req model.PlaylistRequest) (*Summary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Fetching playlist info: %s", req.URL), Level: LevelInfo})
	info, err := m.fetcher.Probe(ctx, req.URL)
	if err != nil {
		return nil, fmt.Errorf("enumerate playlist: %w", err)
	}
	if len(info.Entries) == 0 {
		return nil, fmt.Errorf("playlist %q has no entries", info.Title)
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Found playlist: %s (%d entries)", info.Title, len(info.Entries)), Level: LevelInfo})
	m.logger.Info("playlist enumerated",
		"title", info.Title, "uploader", info.Uploader, "entries", len(info.Entries))

	window := info.Window(req.Start, req.End)
	if len(window) == 0 {
		return nil, fmt.Errorf("window start %d is beyond the %d-entry playlist", req.Start, len(info.Entries))
	}

	total := len(window)
	if req.End > 0 {
		start := req.Start
		if start < 1 {
			start = 1
		}
		total = req.End - start + 1
	}

	dir := m.settings.Layout().PlaylistDir(info.Title)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create destination directory: %w", err)
	}

	rc := &RunContext{
		Ledger:        ledger.New(),
		Dir:           dir,
		Total:         total,
		Primary:       m.settings.PrimaryProfile(),
		Secondary:     m.settings.SecondaryProfile(),
		PlaylistTitle: info.Title,
		Uploader:      info.Uploader,
	}

	atomic.StoreInt32(&m.totalItems, int32(total))
	atomic.StoreInt32(&m.processedItems, 0)

	summary := &Summary{Total: total}
	for _, entry := range window {
		if ctx.Err() != nil {
			break
		}
		m.processEntry(ctx, rc, entry, summary)
		atomic.AddInt32(&m.processedItems, 1)
	}

	m.finishRun(rc, summary, window)

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// DownloadSingle fetches one video's audio directly into the output
// root, without ordinal prefixes or window handling.
func (m *Manager) DownloadSingle(ctx context.Context, url string) (*Summary, error) {
	if err := (model.PlaylistRequest{URL: url}).Validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(m.settings.OutputRoot, 0755); err != nil {
		return nil, fmt.Errorf("create destination directory: %w", err)
	}

	rc := &RunContext{
		Ledger:    ledger.New(),
		Dir:       m.settings.OutputRoot,
		Total:     1,
		Primary:   m.settings.PrimaryProfile(),
		Secondary: m.settings.SecondaryProfile(),
	}

	atomic.StoreInt32(&m.totalItems, 1)
	atomic.StoreInt32(&m.processedItems, 0)

	m.progress(ProgressEvent{Message: fmt.Sprintf("Downloading single video: %s", url), Level: LevelInfo})

	entry := model.PlaylistEntry{Ordinal: 1, URL: url}
	template := filepath.Join(rc.Dir, "%(title)s.%(ext)s")

	summary := &Summary{Total: 1}
	outcome := m.downloadWithFallback(ctx, rc, entry, template)
	m.recordOutcome(rc, entry, outcome, summary)
	atomic.AddInt32(&m.processedItems, 1)

	m.finishRun(rc, summary, nil)
	return summary, nil
}

// processEntry runs the existence check and, when needed, the fallback
// download for one playlist entry.
func (m *Manager) processEntry(ctx context.Context, rc *RunContext, entry model.PlaylistEntry, summary *Summary) {
	if entry.IsEmpty() {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping unavailable entry %d", entry.Ordinal), Level: LevelWarning})
		m.logger.Warn("skipping unavailable entry", "ordinal", entry.Ordinal)
		return
	}

	title := entry.DisplayTitle()
	m.progress(ProgressEvent{Message: fmt.Sprintf("[%d/%d] %s", entry.Ordinal, rc.Total, title), Level: LevelInfo})

	if res := resolve.Resolve(rc.Dir, entry.Ordinal, title); res.Exists {
		m.recordOutcome(rc, entry, model.SkippedOutcome(res.Path, res.Format), summary)
		return
	}

	if entry.URL == "" {
		summary.Failed++
		rc.Ledger.RecordFailure(entry.Ordinal, title, "", "no resolvable source URL")
		m.progress(ProgressEvent{Message: fmt.Sprintf("Failed: %s (no resolvable source URL)", title), Level: LevelError})
		m.logger.Error("entry has no source URL", "ordinal", entry.Ordinal, "title", title)
		return
	}

	outcome := m.downloadWithFallback(ctx, rc, entry, model.OutputTemplate(rc.Dir, entry.Ordinal))
	m.recordOutcome(rc, entry, outcome, summary)
}

// recordOutcome folds one entry's outcome into the summary and the run
// ledger.
func (m *Manager) recordOutcome(rc *RunContext, entry model.PlaylistEntry, outcome model.Outcome, summary *Summary) {
	title := entry.DisplayTitle()

	switch outcome.Kind {
	case model.OutcomeSuccess:
		summary.Succeeded++
		if outcome.Format == rc.Primary.Format {
			summary.PrimaryCount++
		} else {
			summary.SecondaryCount++
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Downloaded (%s): %s", outcome.Format.Label(), title), Level: LevelSuccess})
		m.logger.Info("entry downloaded", "ordinal", entry.Ordinal, "format", outcome.Format.Label())

	case model.OutcomeSkipped:
		summary.Succeeded++
		summary.Skipped++
		m.progress(ProgressEvent{Message: fmt.Sprintf("Already exists (%s): %s", outcome.FormatLabel, filepath.Base(outcome.Path)), Level: LevelSuccess})
		m.logger.Info("entry already on disk", "ordinal", entry.Ordinal, "path", outcome.Path)

	case model.OutcomeFailed:
		summary.Failed++
		rc.Ledger.RecordFailure(entry.Ordinal, title, entry.URL, outcome.CombinedError())
		m.progress(ProgressEvent{Message: fmt.Sprintf("Failed: %s", title), Level: LevelError})
		m.logger.Error("entry failed in both formats",
			"ordinal", entry.Ordinal, "title", title, "error", outcome.CombinedError())
	}
}

// downloadWithFallback drives the two-stage codec chain for one entry:
// a lossless WAV attempt first, then a 320 kbps MP3 attempt. Failed
// attempts are recorded in the run ledger; the MP3 path also fetches
// cover art concurrently when tag embedding is enabled.
func (m *Manager) downloadWithFallback(ctx context.Context, rc *RunContext, entry model.PlaylistEntry, outputTemplate string) model.Outcome {
	title := entry.DisplayTitle()
	observer := m.transferObserver(entry.Ordinal)

	primaryErr := m.fetcher.FetchAudio(ctx, entry.URL, outputTemplate, rc.Primary, observer)
	if primaryErr == nil {
		return model.SuccessOutcome(rc.Primary.Format)
	}

	rc.Ledger.RecordAttempt(entry.Ordinal, title, rc.Primary.Format, primaryErr)
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("%s failed, retrying as %s: %s", rc.Primary.Format.Label(), rc.Secondary.Format.Label(), title),
		Level:   LevelWarning,
	})
	m.logger.Warn("primary attempt failed",
		"ordinal", entry.Ordinal, "format", rc.Primary.Format.Label(), "error", primaryErr)

	// Cover art is fetched alongside the retry; it only matters if the
	// MP3 lands.
	var art []byte
	g, gctx := errgroup.WithContext(ctx)
	if m.settings.EmbedCoverArt && entry.Thumbnail != "" {
		g.Go(func() error {
			data, err := m.artwork.FetchCover(gctx, entry.Thumbnail, m.settings.CoverArtMaxSize)
			if err != nil {
				m.logger.Warn("cover art fetch failed", "ordinal", entry.Ordinal, "error", err)
				return nil
			}
			art = data
			return nil
		})
	}
	g.Go(func() error {
		return m.fetcher.FetchAudio(gctx, entry.URL, outputTemplate, rc.Secondary, observer)
	})

	if err := g.Wait(); err != nil {
		rc.Ledger.RecordAttempt(entry.Ordinal, title, rc.Secondary.Format, err)
		m.logger.Warn("secondary attempt failed",
			"ordinal", entry.Ordinal, "format", rc.Secondary.Format.Label(), "error", err)
		return model.FailedOutcome(primaryErr.Error(), err.Error())
	}

	m.tagFallback(rc, entry, art)
	return model.SuccessOutcome(rc.Secondary.Format)
}

// tagFallback stamps playlist metadata onto a fallback MP3. Tag
// problems never fail the entry; the audio is already on disk.
func (m *Manager) tagFallback(rc *RunContext, entry model.PlaylistEntry, art []byte) {
	if !m.settings.ModifyTags && art == nil {
		return
	}

	res := resolve.Resolve(rc.Dir, entry.Ordinal, entry.DisplayTitle())
	if !res.Exists || res.Format != model.FormatMP3.Label() {
		return
	}

	meta := audio.TrackMetadata{
		Title:       entry.DisplayTitle(),
		Artist:      rc.Uploader,
		Album:       rc.PlaylistTitle,
		TrackNumber: entry.Ordinal,
	}
	if err := m.tagger.SaveTags(res.Path, meta, art); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error tagging %s: %v", entry.DisplayTitle(), err), Level: LevelWarning})
		m.logger.Warn("tagging failed", "path", res.Path, "error", err)
	}
}

// transferObserver adapts raw transfer snapshots into verbose progress
// lines.
func (m *Manager) transferObserver(ordinal int) model.TransferProgressFunc {
	return func(p model.TransferProgress) {
		switch p.Status {
		case model.TransferFinished, model.TransferConverting:
			m.progress(ProgressEvent{Message: fmt.Sprintf("[%02d] converting audio", ordinal), Level: LevelVerbose})
		case model.TransferDownloading:
			if p.TotalBytes <= 0 {
				return
			}
			msg := fmt.Sprintf("[%02d] %5.1f%% of %.1f MiB", ordinal, p.Percent, float64(p.TotalBytes)/(1<<20))
			if p.Speed > 0 {
				msg += fmt.Sprintf(" at %.1f MiB/s", p.Speed/(1<<20))
			}
			if p.ETA > 0 {
				msg += fmt.Sprintf(", ETA %s", p.ETA.Round(time.Second))
			}
			m.progress(ProgressEvent{Message: msg, Level: LevelVerbose})
		}
	}
}

// finishRun flushes the ledger, optionally writes the M3U file, and
// logs the final tallies.
func (m *Manager) finishRun(rc *RunContext, summary *Summary, window []model.PlaylistEntry) {
	if m.settings.CreatePlaylist && summary.Succeeded > 0 && len(window) > 0 {
		m.writePlaylistFile(rc, window)
	}

	if err := rc.Ledger.Flush(m.settings.OutputRoot); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Could not write failure records: %v", err), Level: LevelWarning})
		m.logger.Error("ledger flush failed", "error", err)
	}

	summary.Failures = rc.Ledger.Failures()

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Done: %d/%d succeeded (%.1f%%)", summary.Succeeded, summary.Total, summary.SuccessRate()),
		Level:   LevelInfo,
	})
	m.logger.Info("run complete",
		"total", summary.Total, "succeeded", summary.Succeeded,
		"failed", summary.Failed, "skipped", summary.Skipped,
		"wav", summary.PrimaryCount, "mp3", summary.SecondaryCount)
}

// writePlaylistFile materializes an M3U file referencing every entry
// that ended up on disk.
func (m *Manager) writePlaylistFile(rc *RunContext, window []model.PlaylistEntry) {
	var items []audio.PlaylistItem
	for _, entry := range window {
		if entry.IsEmpty() {
			continue
		}
		if res := resolve.Resolve(rc.Dir, entry.Ordinal, entry.DisplayTitle()); res.Exists {
			items = append(items, audio.PlaylistItem{Path: res.Path, Title: entry.DisplayTitle()})
		}
	}
	if len(items) == 0 {
		return
	}

	content := m.playlist.CreatePlaylist(items)
	path := filepath.Join(rc.Dir, model.SanitizeTitle(rc.PlaylistTitle)+".m3u")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist file: %v", err), Level: LevelWarning})
		m.logger.Warn("playlist file write failed", "path", path, "error", err)
		return
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist file: %s", filepath.Base(path)), Level: LevelSuccess})
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
