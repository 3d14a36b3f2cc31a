package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/handiism/playlist-dl/internal/catalog"
	"github.com/handiism/playlist-dl/internal/config"
	"github.com/handiism/playlist-dl/internal/playlist"
	"github.com/handiism/playlist-dl/internal/ui"
	"github.com/handiism/playlist-dl/internal/ytdlp"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nInterrupted, cancelling...")
		cancel()
	}()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr, nil))
}

// listerFactory builds the Lister for the configured backend. Tests
// replace it with a fake.
type listerFactory func(settings *config.Settings) playlist.Lister

func defaultLister(settings *config.Settings) playlist.Lister {
	if settings.Lister == config.ListerNative {
		return playlist.NewNativeLister()
	}
	return playlist.NewYTDLPLister(ytdlp.NewFetcher(settings.FetchTool, settings.CondaEnv, nil))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, newLister listerFactory) int {
	fs := flag.NewFlagSet("playlist-csv", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		urlFlag     = fs.String("url", "", "Playlist URL or id (or pass it as the first argument)")
		outputFlag  = fs.String("output", catalog.DefaultPath, "Catalog file to write")
		listerFlag  = fs.String("lister", "", "Listing backend: ytdlp or native (overrides config)")
		configFlag  = fs.String("config", "", "Path to config file")
		envFlag     = fs.String("env", "", "Conda environment to run yt-dlp in (overrides config)")
		timeoutFlag = fs.Duration("timeout", 0, "Listing timeout (overrides config)")
		verboseFlag = fs.Bool("verbose", false, "Show verbose output")
	)

	fs.Usage = func() {
		fmt.Fprintln(stderr, "playlist-csv - write a playlist as a url,artist,title catalog")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Usage:")
		fmt.Fprintln(stderr, "  playlist-csv -url <URL> [options]")
		fmt.Fprintln(stderr, "  playlist-csv <URL> [options]")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	source := *urlFlag
	if source == "" && fs.NArg() > 0 {
		source = fs.Arg(0)
	}
	if source == "" {
		fs.Usage()
		return 1
	}

	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintln(stderr, ui.ErrorStyle.Render("Error loading config: "+err.Error()))
			return 1
		}
	}
	if *listerFlag != "" {
		settings.Lister = *listerFlag
	}
	if *envFlag != "" {
		settings.CondaEnv = *envFlag
	}
	if *timeoutFlag > 0 {
		settings.ListTimeoutSeconds = int(*timeoutFlag / time.Second)
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintln(stderr, ui.ErrorStyle.Render("Error: invalid settings: "+err.Error()))
		return 1
	}

	if newLister == nil {
		newLister = defaultLister
	}

	printer := ui.NewPrinter(stdout, *verboseFlag)
	extractor := playlist.NewExtractor(newLister(settings), settings.ListTimeout(), printer.Handle)

	if _, err := extractor.Extract(ctx, source, *outputFlag); err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(stderr, ui.WarningStyle.Render("Listing cancelled."))
			return 130
		}
		fmt.Fprintln(stderr, ui.ErrorStyle.Render("Error: "+err.Error()))
		return 1
	}
	return 0
}
