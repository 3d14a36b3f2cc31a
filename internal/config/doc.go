// Package config provides configuration management for playlist-dl.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Selecting the downloader's input mode (single entry or catalog)
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Downloads to ~/Downloads
//	// Extracts audio as opus through yt-dlp, no conda environment
//	// Stops at the first failed entry
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Input Mode
//
// The downloader accepts either one explicit url/artist/title triple or a
// catalog file, never both:
//
//	mode, err := config.ResolveMode(config.ModeInput{URL: url, Artist: artist, Title: title})
//	if errors.Is(err, config.ErrConfigurationConflict) {
//	    // mixed or incomplete flags
//	}
package config
