package playlist

import (
	"context"
	"fmt"
	"time"

	"github.com/handiism/playlist-dl/internal/catalog"
	"github.com/handiism/playlist-dl/internal/model"
	"github.com/handiism/playlist-dl/internal/progress"
)

// Extractor builds a catalog file from a playlist listing.
type Extractor struct {
	lister     Lister
	timeout    time.Duration
	onProgress progress.Func
}

// NewExtractor creates an Extractor. A zero timeout disables the listing
// deadline.
func NewExtractor(lister Lister, timeout time.Duration, onProgress progress.Func) *Extractor {
	return &Extractor{
		lister:     lister,
		timeout:    timeout,
		onProgress: onProgress,
	}
}

// Entries lists source and converts each item to a catalog Entry, in
// listing order. Items without an identifier cannot be addressed and are
// dropped with a warning.
func (e *Extractor) Entries(ctx context.Context, source string) ([]model.Entry, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	e.onProgress.Emit(progress.Message(progress.LevelVerbose, fmt.Sprintf("Listing playlist: %s", source)))

	items, err := e.lister.List(ctx, source)
	if err != nil {
		return nil, err
	}

	entries := make([]model.Entry, 0, len(items))
	for i, item := range items {
		if item.ID == "" {
			e.onProgress.Emit(progress.Message(progress.LevelWarning, fmt.Sprintf("Skipping item %d: no video id", i+1)))
			continue
		}
		entry := model.NewEntry(item)
		e.onProgress.Emit(progress.Event{
			Message: fmt.Sprintf("%s -> %q / %q", item.ID, entry.Artist, entry.Title),
			Level:   progress.LevelVerbose,
			Item:    i + 1,
			Total:   len(items),
			Percent: -1,
		})
		entries = append(entries, entry)
	}
	return entries, nil
}

// Extract lists source and writes the resulting catalog to outPath,
// replacing any previous content. The returned entries are what was
// written.
func (e *Extractor) Extract(ctx context.Context, source, outPath string) ([]model.Entry, error) {
	if outPath == "" {
		outPath = catalog.DefaultPath
	}

	entries, err := e.Entries(ctx, source)
	if err != nil {
		return nil, err
	}

	if err := catalog.Write(outPath, entries); err != nil {
		return nil, err
	}

	e.onProgress.Emit(progress.Message(progress.LevelSuccess, fmt.Sprintf("Catalog saved: %s (%d entries)", outPath, len(entries))))
	return entries, nil
}
