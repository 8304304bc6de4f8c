// Package http provides the HTTP client used for ancillary resources
// such as video thumbnails. Media transfers themselves are delegated
// to yt-dlp and never pass through this package.
package http
