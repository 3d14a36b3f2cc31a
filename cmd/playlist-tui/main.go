package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/handiism/playlist-dl/internal/catalog"
	"github.com/handiism/playlist-dl/internal/config"
	"github.com/handiism/playlist-dl/internal/tui"
)

func main() {
	var (
		configFlag   = flag.String("config", "", "Path to config file")
		playlistFlag = flag.String("playlist", catalog.DefaultPath, "Catalog CSV to pre-fill")
	)
	flag.Parse()

	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid settings: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(settings, *playlistFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
