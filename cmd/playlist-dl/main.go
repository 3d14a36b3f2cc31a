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

	"github.com/handiism/playlist-dl/internal/catalog"
	"github.com/handiism/playlist-dl/internal/config"
	"github.com/handiism/playlist-dl/internal/download"
	"github.com/handiism/playlist-dl/internal/model"
	"github.com/handiism/playlist-dl/internal/progress"
	"github.com/handiism/playlist-dl/internal/ui"
	"github.com/handiism/playlist-dl/internal/ytdlp"
)

// Exit codes.
const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
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

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// options holds the parsed command line.
type options struct {
	url, artist, title string
	playlist           optionalValue

	configPath string
	output     string
	format     string
	env        string
	overwrite  string
	keepGoing  bool
	verbose    bool
	dryRun     bool
	savePath   string
}

func parseFlags(args []string, stderr io.Writer) (*options, *flag.FlagSet, error) {
	fs := flag.NewFlagSet("playlist-dl", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.url, "url", "", "Media URL to download (requires --artist and --title)")
	fs.StringVar(&opts.artist, "artist", "", "Artist metadata and file name prefix")
	fs.StringVar(&opts.title, "title", "", "Title metadata")
	fs.Var(&opts.playlist, "playlist", "Catalog CSV (url,artist,title); the path is optional and defaults to "+catalog.DefaultPath)
	fs.StringVar(&opts.configPath, "config", "", "Path to config file")
	fs.StringVar(&opts.output, "output", "", "Downloads directory (overrides config)")
	fs.StringVar(&opts.format, "format", "", "Target audio format, e.g. opus or mp3 (overrides config)")
	fs.StringVar(&opts.env, "env", "", "Conda environment to run the fetch tool in (overrides config)")
	fs.StringVar(&opts.overwrite, "overwrite", "", "Existing destination policy: overwrite, skip or fail")
	fs.BoolVar(&opts.keepGoing, "keep-going", false, "Continue after a failed item and report a summary")
	fs.BoolVar(&opts.verbose, "verbose", false, "Show verbose output")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "Print the fetch commands without running them")
	fs.StringVar(&opts.savePath, "save-config", "", "Write the effective settings to this file and exit")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "playlist-dl - download audio for a catalog or a single track")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Usage:")
		fmt.Fprintln(stderr, "  playlist-dl [--playlist [path]] [options]")
		fmt.Fprintln(stderr, "  playlist-dl --url <URL> --artist <artist> --title <title> [options]")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "For interactive mode, use: playlist-tui")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}

	// A bare --playlist followed by a path leaves the path as the first
	// positional argument; flags after it still need parsing.
	rest := fs.Args()
	if opts.playlist.set && opts.playlist.value == "" && len(rest) > 0 {
		opts.playlist.value = rest[0]
		if err := fs.Parse(rest[1:]); err != nil {
			return nil, fs, err
		}
		rest = fs.Args()
	}
	if len(rest) > 0 {
		return nil, fs, fmt.Errorf("%w: unexpected argument %q", config.ErrConfigurationConflict, rest[0])
	}
	return opts, fs, nil
}

func loadSettings(opts *options) (*config.Settings, error) {
	settings := config.DefaultSettings()
	if opts.configPath != "" {
		var err error
		settings, err = config.Load(opts.configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if opts.output != "" {
		settings.DownloadsDir = opts.output
	}
	if opts.format != "" {
		settings.AudioFormat = opts.format
	}
	if opts.env != "" {
		settings.CondaEnv = opts.env
	}
	if opts.overwrite != "" {
		settings.OverwritePolicy = opts.overwrite
	}
	if opts.keepGoing {
		settings.KeepGoing = true
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, _, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, ui.ErrorStyle.Render("Error: "+err.Error()))
		return exitFailure
	}

	settings, err := loadSettings(opts)
	if err != nil {
		fmt.Fprintln(stderr, ui.ErrorStyle.Render("Error: "+err.Error()))
		return exitFailure
	}

	if opts.savePath != "" {
		if err := settings.Save(opts.savePath); err != nil {
			fmt.Fprintln(stderr, ui.ErrorStyle.Render("Error saving config: "+err.Error()))
			return exitFailure
		}
		fmt.Fprintln(stdout, ui.SuccessStyle.Render("Config saved: "+opts.savePath))
		return exitOK
	}

	mode, err := config.ResolveMode(config.ModeInput{
		URL:          opts.url,
		Artist:       opts.artist,
		Title:        opts.title,
		PlaylistSet:  opts.playlist.set,
		PlaylistPath: opts.playlist.value,
	})
	if err != nil {
		fmt.Fprintln(stderr, ui.ErrorStyle.Render("Error: "+err.Error()))
		return exitFailure
	}

	var entries []model.Entry
	if mode.IsSingle() {
		entries = []model.Entry{*mode.Single}
	} else {
		entries, err = catalog.Load(mode.CatalogPath)
		if err != nil {
			fmt.Fprintln(stderr, ui.ErrorStyle.Render("Error: "+err.Error()))
			return exitFailure
		}
	}

	printer := ui.NewPrinter(stdout, opts.verbose)
	fetcher := ytdlp.NewFetcher(settings.FetchTool, settings.CondaEnv, nil)
	manager := download.NewManager(settings, fetcher, printer.Handle)

	subtitle := fmt.Sprintf("%d track(s) → %s (%s)", len(entries), settings.DownloadsDir, settings.Format())
	if env := fetcher.Environment(); env != "" {
		subtitle += " via conda env " + env
	}
	ui.Banner(stdout, "♪ playlist-dl", subtitle)

	if opts.dryRun {
		for _, cmd := range manager.Plan(entries) {
			fmt.Fprintln(stdout, cmd)
		}
		fmt.Fprintln(stdout, ui.DimStyle.Render("[Dry run - not downloading]"))
		return exitOK
	}

	summary, err := manager.Run(ctx, entries)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(stderr, ui.WarningStyle.Render("Download cancelled."))
			return exitInterrupted
		}
		if errors.Is(err, download.ErrItemsFailed) {
			printFailures(stderr, summary)
		} else {
			fmt.Fprintln(stderr, ui.ErrorStyle.Render("Error: "+err.Error()))
		}
		return exitFailure
	}

	return exitOK
}

func printFailures(w io.Writer, summary *download.Summary) {
	failed := summary.Failed()
	fmt.Fprintln(w, ui.ErrorStyle.Render(fmt.Sprintf("%d item(s) failed:", len(failed))))
	for _, r := range failed {
		fmt.Fprintln(w, ui.Render(progress.Message(progress.LevelError, fmt.Sprintf("%s (%s): %v", r.Entry.DisplayName(), r.Entry.URL, r.Err))))
	}
}
