package youtube

import (
	"context"
	"fmt"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/chenyg/ytpl-downloader/internal/model"
)

// audioSelector mirrors the yt-dlp format chain that reliably yields
// the best audio-only stream without pulling DASH video.
const audioSelector = "bestaudio[ext=m4a]/bestaudio[ext=webm]/bestaudio/best"

// Client is the enumeration and transfer collaborator, backed by the
// yt-dlp binary via go-ytdlp.
type Client struct {
	progressInterval time.Duration
}

// NewClient creates a Client with default progress sampling.
func NewClient() *Client {
	return &Client{progressInterval: 500 * time.Millisecond}
}

// EnsureInstalled downloads the yt-dlp binary if it is not already
// available on this machine.
func EnsureInstalled(ctx context.Context) error {
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return fmt.Errorf("install yt-dlp: %w", err)
	}
	return nil
}

// Probe fetches playlist metadata and the ordered entry list without
// downloading any media. A bare video URL yields a single-entry result.
func (c *Client) Probe(ctx context.Context, url string) (*model.PlaylistInfo, error) {
	cmd := ytdlp.New().
		SkipDownload().
		DumpSingleJSON().
		FlatPlaylist().
		NoWarnings()

	res, err := cmd.Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", url, err)
	}

	info, err := parseProbeOutput([]byte(res.Stdout))
	if err != nil {
		return nil, fmt.Errorf("parse probe output: %w", err)
	}
	return info, nil
}

// FetchAudio downloads the best audio stream for one item and
// transcodes it to the profile's codec, writing the result through the
// yt-dlp output template. Progress snapshots are delivered to
// onProgress when non-nil; they carry no control-flow meaning.
func (c *Client) FetchAudio(ctx context.Context, url, outputTemplate string, profile model.CodecProfile, onProgress model.TransferProgressFunc) error {
	cmd := ytdlp.New().
		Format(audioSelector).
		ExtractAudio().
		AudioFormat(profile.Format.Ext()).
		AudioQuality(profile.Quality).
		EmbedMetadata().
		PostProcessorArgs("ffmpeg:-threads 0").
		Output(outputTemplate).
		NoPlaylist().
		NoWarnings()

	if onProgress != nil {
		cmd = cmd.ProgressFunc(c.progressInterval, func(update ytdlp.ProgressUpdate) {
			onProgress(mapProgress(update))
		})
	}

	if _, err := cmd.Run(ctx, url); err != nil {
		return fmt.Errorf("%s transfer: %w", profile.Format.Label(), err)
	}
	return nil
}

// mapProgress converts a go-ytdlp progress update into the neutral
// snapshot consumed by the display layers.
func mapProgress(update ytdlp.ProgressUpdate) model.TransferProgress {
	p := model.TransferProgress{
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
	}

	switch update.Status {
	case ytdlp.ProgressStatusError:
		p.Status = model.TransferError
	case ytdlp.ProgressStatusFinished:
		p.Status = model.TransferFinished
	case ytdlp.ProgressStatusPostProcessing:
		p.Status = model.TransferConverting
	default:
		p.Status = model.TransferDownloading
	}

	if update.TotalBytes > 0 {
		p.Percent = float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100
	}
	if !update.Started.IsZero() {
		if elapsed := time.Since(update.Started); elapsed > 0 {
			p.Speed = float64(update.DownloadedBytes) / elapsed.Seconds()
		}
	}
	if eta := update.ETA(); eta > 0 {
		p.ETA = eta
	}
	if update.Info != nil && update.Info.Filename != nil {
		p.Filename = *update.Info.Filename
	}

	return p
}
