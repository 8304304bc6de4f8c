package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/chenyg/ytpl-downloader/internal/model"
)

// NewRunLogger creates the timestamped free-text log file for one run
// under <outputRoot>/logs and returns a structured logger writing to
// it. The caller owns the returned closer and should close it after
// the run summary has been logged.
func NewRunLogger(outputRoot string) (*slog.Logger, io.Closer, error) {
	logsDir := model.DestinationLayout{Root: outputRoot}.LogsDir()
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("create logs directory: %w", err)
	}

	name := fmt.Sprintf("download_log_%s.log", time.Now().Format("20060102_150405"))
	f, err := os.Create(filepath.Join(logsDir, name))
	if err != nil {
		return nil, nil, fmt.Errorf("create run log: %w", err)
	}

	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler), f, nil
}

// Discard returns a logger that drops everything. Used as the default
// when no run log is configured, so callers never need nil checks.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
