package model

import "time"

// TransferStatus is the phase reported by a transfer progress event.
type TransferStatus string

const (
	TransferDownloading TransferStatus = "downloading"
	TransferConverting  TransferStatus = "converting"
	TransferFinished    TransferStatus = "finished"
	TransferError       TransferStatus = "error"
)

// TransferProgress is a display-only snapshot of one in-flight
// transfer. It is delivered through a one-way observer; no control
// flow decision depends on it.
type TransferProgress struct {
	Status          TransferStatus
	DownloadedBytes int64
	TotalBytes      int64

	// Percent is 0..100, or 0 when the total size is unknown.
	Percent float64

	// Speed is the transfer rate in bytes per second, 0 if unknown.
	Speed float64

	// ETA is the estimated remaining time, 0 if unknown.
	ETA time.Duration

	// Filename is the file being written, when known.
	Filename string
}

// TransferProgressFunc observes transfer progress snapshots.
type TransferProgressFunc func(TransferProgress)
