package playlist

import (
	"context"
	"fmt"

	"github.com/handiism/playlist-dl/internal/model"
	"github.com/ytget/ytdlp/v2"
)

// NativeLister lists YouTube playlists in-process, without the yt-dlp
// binary.
type NativeLister struct {
	// limit caps the number of items; 0 means all.
	limit int
}

// NewNativeLister creates a NativeLister.
func NewNativeLister() *NativeLister {
	return &NativeLister{}
}

// List implements Lister.
func (l *NativeLister) List(ctx context.Context, source string) ([]model.ListedItem, error) {
	playlistID, err := PlaylistID(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, l.limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, playlistID, err)
	}

	listed := make([]model.ListedItem, 0, len(items))
	for _, it := range items {
		listed = append(listed, model.ListedItem{ID: it.VideoID, Name: it.Title})
	}
	return listed, nil
}
