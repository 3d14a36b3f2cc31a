package playlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/handiism/playlist-dl/internal/model"
	"github.com/handiism/playlist-dl/internal/ytdlp"
)

// ErrSourceUnavailable means the playlist could not be listed (network,
// auth, not found, or an unreadable listing).
var ErrSourceUnavailable = errors.New("playlist source unavailable")

// Lister produces a flat listing of a playlist.
type Lister interface {
	List(ctx context.Context, source string) ([]model.ListedItem, error)
}

// flatListing is the subset of yt-dlp's --dump-single-json output we read.
type flatListing struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Entries []flatEntry `json:"entries"`
}

type flatEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// YTDLPLister lists playlists through the yt-dlp binary.
type YTDLPLister struct {
	fetcher *ytdlp.Fetcher
}

// NewYTDLPLister creates a lister backed by fetcher.
func NewYTDLPLister(fetcher *ytdlp.Fetcher) *YTDLPLister {
	return &YTDLPLister{fetcher: fetcher}
}

// List implements Lister.
func (l *YTDLPLister) List(ctx context.Context, source string) ([]model.ListedItem, error) {
	out, err := l.fetcher.ListFlat(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, source, err)
	}
	items, err := ParseFlatListing(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, source, err)
	}
	return items, nil
}

// ParseFlatListing decodes yt-dlp's single-JSON flat playlist dump.
// A single video (no "entries") is listed as one item.
func ParseFlatListing(data []byte) ([]model.ListedItem, error) {
	var listing flatListing
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}

	if listing.Entries == nil {
		if listing.ID == "" {
			return nil, errors.New("listing has neither entries nor an id")
		}
		return []model.ListedItem{{ID: listing.ID, Name: listing.Title}}, nil
	}

	items := make([]model.ListedItem, 0, len(listing.Entries))
	for _, e := range listing.Entries {
		items = append(items, model.ListedItem{ID: e.ID, Name: e.Title})
	}
	return items, nil
}

// PlaylistID extracts the playlist identifier from a URL's list= parameter.
// A source without a URL scheme is taken to be a bare playlist id.
func PlaylistID(source string) (string, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return "", errors.New("empty playlist reference")
	}
	if !strings.Contains(source, "://") {
		return source, nil
	}

	u, err := url.Parse(source)
	if err != nil {
		return "", err
	}
	id := u.Query().Get("list")
	if id == "" {
		return "", fmt.Errorf("URL does not contain a list parameter: %s", source)
	}
	return id, nil
}
