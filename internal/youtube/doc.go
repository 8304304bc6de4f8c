// Package youtube wraps the yt-dlp binary (via go-ytdlp) behind the
// two operations the downloader needs:
//
//   - Probe: enumerate a playlist (title, uploader, ordered entries)
//     without downloading anything.
//   - FetchAudio: download one item's best audio stream and transcode
//     it to a codec profile (lossless WAV or 320k MP3).
//
// Transfer progress is surfaced as display-only snapshots through
// model.TransferProgressFunc.
package youtube
