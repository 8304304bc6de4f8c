// Package artwork downloads video thumbnails and converts them into
// JPEG cover art suitable for embedding in ID3 tags.
package artwork
