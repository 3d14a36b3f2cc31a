// Package audio provides post-processing for placed audio files: ID3 tag
// writing and playlist generation.
//
// # ID3 Tagging
//
// MP3 artifacts get ID3v2 artist/title frames and, optionally, a front
// cover picture:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.SaveTags("/tmp/stage/abc123.mp3", entry, jpegBytes)
//
// Other formats (opus, m4a, ...) carry the metadata written by the fetch
// tool and are not touched.
//
// # Playlist Generation
//
// After a batch, the placed files can be listed in a playlist:
//
//	creator := audio.NewPlaylistCreator(model.PlaylistFormatM3U, true)
//	content := creator.CreatePlaylist(summary.Results)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
package audio
