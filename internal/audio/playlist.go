package audio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/handiism/playlist-dl/internal/model"
)

// PlaylistCreator generates playlist files for a finished batch.
//
// Only placed items are listed, in batch order. Failed items are left
// out. Paths are relative (just the filename) because the playlist is
// written next to the tracks.
//
// Example:
//
//	creator := NewPlaylistCreator(model.PlaylistFormatM3U, true)
//	content := creator.CreatePlaylist(summary.Results)
//
//	// #EXTM3U
//	// #EXTINF:-1,Artist X - Song Y
//	// Artist X - Song Y.opus
type PlaylistCreator struct {
	format   model.PlaylistFormat
	extended bool // For M3U: include EXTINF lines
}

// NewPlaylistCreator creates a new PlaylistCreator. extended only affects
// M3U output.
func NewPlaylistCreator(format model.PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// Format returns the configured playlist format.
func (p *PlaylistCreator) Format() model.PlaylistFormat {
	return p.format
}

// CreatePlaylist generates playlist content for the placed results.
func (p *PlaylistCreator) CreatePlaylist(results []model.Result) string {
	placed := make([]model.Result, 0, len(results))
	for _, r := range results {
		if r.OK() && r.Path != "" {
			placed = append(placed, r)
		}
	}

	switch p.format {
	case model.PlaylistFormatPLS:
		return p.createPLS(placed)
	default:
		return p.createM3U(placed)
	}
}

// createM3U generates an M3U playlist.
//
// The duration is unknown without probing the file, so extended entries
// use -1 as M3U allows.
func (p *PlaylistCreator) createM3U(results []model.Result) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, r := range results {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:-1,%s\n", r.Entry.DisplayName()))
		}
		sb.WriteString(filepath.Base(r.Path) + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
//	[playlist]
//	File1=Artist X - Song Y.opus
//	Title1=Artist X - Song Y
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(results []model.Result) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, r := range results {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, filepath.Base(r.Path)))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, r.Entry.DisplayName()))
		sb.WriteString(fmt.Sprintf("Length%d=-1\n", idx))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(results)))
	sb.WriteString("Version=2\n")

	return sb.String()
}
