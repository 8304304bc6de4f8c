// Package audio post-processes downloaded files: ID3 tagging of
// fallback MP3s (including optional cover art) and M3U playlist
// generation for the destination directory.
package audio
