package download

import (
	"context"

	"github.com/chenyg/ytpl-downloader/internal/model"
)

// Fetcher enumerates playlists and transfers audio. The production
// implementation is youtube.Client; tests substitute a stub.
type Fetcher interface {
	// Probe enumerates the playlist (or single video) behind url
	// without downloading any media.
	Probe(ctx context.Context, url string) (*model.PlaylistInfo, error)

	// FetchAudio downloads one entry's audio into outputTemplate using
	// the given codec profile. onProgress may be nil.
	FetchAudio(ctx context.Context, url, outputTemplate string, profile model.CodecProfile, onProgress model.TransferProgressFunc) error
}
