package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/chenyg/ytpl-downloader/internal/config"
	"github.com/chenyg/ytpl-downloader/internal/download"
	"github.com/chenyg/ytpl-downloader/internal/logging"
	"github.com/chenyg/ytpl-downloader/internal/model"
	"github.com/chenyg/ytpl-downloader/internal/youtube"
)

func main() {
	// Command line flags
	var (
		urlFlag      = flag.String("url", "", "YouTube playlist or video URL")
		outputFlag   = flag.String("output", "", "Output directory (overrides config)")
		configFlag   = flag.String("config", "", "Path to config file")
		startFlag    = flag.Int("start", 0, "First playlist position to download (1-based)")
		endFlag      = flag.Int("end", 0, "Last playlist position to download (0 = to the end)")
		coverFlag    = flag.Bool("cover", false, "Embed cover art in fallback MP3s")
		playlistFlag = flag.Bool("playlist", false, "Create an M3U playlist file")
		verboseFlag  = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Parse()

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *outputFlag != "" {
		settings.OutputRoot = *outputFlag
	}
	if *coverFlag {
		settings.EmbedCoverArt = true
	}
	if *playlistFlag {
		settings.CreatePlaylist = true
	}

	// Get URL; with no arguments at all, fall back to prompting.
	url := *urlFlag
	if url == "" && flag.NArg() > 0 {
		url = flag.Arg(0)
	}

	reader := bufio.NewReader(os.Stdin)
	interactive := url == ""
	if interactive {
		url = promptURL(reader, settings.DefaultURL)
	}
	if url == "" {
		fmt.Println("Playlist Audio Downloader - Download YouTube playlists as WAV with MP3 fallback")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  ytpl-dl -url <URL> [options]")
		fmt.Println("  ytpl-dl <URL> [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: ytpl-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	fmt.Println("🎵 Playlist Audio Downloader")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	if err := youtube.EnsureInstalled(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing yt-dlp: %v\n", err)
		os.Exit(1)
	}

	isPlaylist := youtube.ExtractPlaylistID(url) != ""
	start, end := *startFlag, *endFlag
	if interactive && isPlaylist && start == 0 && end == 0 {
		start, end = promptRange(reader)
	}

	// Create manager with progress callback
	manager := download.NewManager(settings, youtube.NewClient(), func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case download.LevelError:
			prefix = "❌ "
		case download.LevelWarning:
			prefix = "⚠️  "
		case download.LevelSuccess:
			prefix = "✅ "
		case download.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	})

	if logger, closer, err := logging.NewRunLogger(settings.OutputRoot); err == nil {
		manager.SetLogger(logger)
		defer closer.Close()
	} else {
		fmt.Fprintf(os.Stderr, "Warning: could not open run log: %v\n", err)
	}

	var summary *download.Summary
	var err error
	if isPlaylist {
		summary, err = manager.DownloadPlaylist(ctx, model.PlaylistRequest{URL: url, Start: start, End: end})
	} else {
		summary, err = manager.DownloadSingle(ctx, url)
	}
	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nDownload cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✨ Complete! %d/%d items succeeded (%.1f%%)\n",
		summary.Succeeded, summary.Total, summary.SuccessRate())
	if summary.Skipped > 0 {
		fmt.Printf("   %d already on disk\n", summary.Skipped)
	}
	fmt.Printf("   WAV: %d | MP3 fallback: %d\n", summary.PrimaryCount, summary.SecondaryCount)
	if len(summary.Failures) > 0 {
		fmt.Println("\nFailed items:")
		for _, f := range summary.Failures {
			fmt.Printf("  %02d - %s\n      %s\n", f.Ordinal, f.Title, f.Error)
		}
	}
}

func promptURL(reader *bufio.Reader, fallback string) string {
	if fallback != "" {
		fmt.Printf("Playlist URL [%s]: ", fallback)
	} else {
		fmt.Print("Playlist URL: ")
	}
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback
	}
	return line
}

// promptRange asks for the window bounds. Anything non-numeric selects
// the full playlist.
func promptRange(reader *bufio.Reader) (int, int) {
	fmt.Print("First video to download (empty for full playlist): ")
	line, _ := reader.ReadString('\n')
	start, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || start < 1 {
		return 0, 0
	}

	fmt.Print("Last video to download (empty for the rest): ")
	line, _ = reader.ReadString('\n')
	end, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || end < start {
		return start, 0
	}
	return start, end
}
