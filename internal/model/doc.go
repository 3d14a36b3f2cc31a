// Package model defines the core data structures shared by the catalog
// extractor and the batch downloader.
//
// # Entry
//
// Entry is one catalog row: a playable media URL plus the artist and title
// that end up in the audio metadata and the final file name:
//
//	entry := model.Entry{URL: model.VideoURL("abc123"), Artist: "Artist X", Title: "Song Y"}
//	fmt.Println(entry.FileName("opus")) // "Artist X - Song Y.opus"
//
// # Title Parsing
//
// ParseTitle splits a playlist display name into artist and title on the
// first " - " separator:
//
//	artist, title := model.ParseTitle("Artist X - Song Y - Live")
//	// artist = "Artist X", title = "Song Y - Live"
//
// # Listing
//
// ListedItem is one element of a flat playlist listing, before it is turned
// into an Entry by the extractor.
package model
