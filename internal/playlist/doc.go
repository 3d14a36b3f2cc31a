// Package playlist turns a playlist reference into a catalog.
//
// # Listing
//
// A Lister returns a flat listing (identifier and display name per item,
// nothing downloaded) in playlist order. Two backends exist:
//
//   - YTDLPLister runs `yt-dlp --flat-playlist --dump-single-json`
//   - NativeLister talks to YouTube directly via github.com/ytget/ytdlp/v2
//
// Any listing failure is reported as ErrSourceUnavailable.
//
// # Extraction
//
//	extractor := playlist.NewExtractor(lister, timeout, onProgress)
//	entries, err := extractor.Extract(ctx, playlistURL, "playlist.csv")
//
// The listing is buffered in full before the catalog is written, so the
// file is either completely replaced or left untouched.
package playlist
