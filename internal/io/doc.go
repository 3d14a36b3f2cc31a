// Package ioutils provides file system utilities for playlist-dl.
//
// This package contains functions for:
//   - Atomic file writing (temporary file + rename)
//   - Moving files across directories and file systems
//   - Locating the newest file with a given extension
//   - Resolving the user's downloads directory
//   - Cover art resizing and JPEG conversion
//
// # Atomic Writes
//
// Catalog files are written through WriteFileAtomic so a reader never
// observes a half-written catalog:
//
//	err := ioutils.WriteFileAtomic("playlist.csv", data)
//
// # Moving Artifacts
//
// MoveFile renames a file into place and falls back to copy + remove when
// the source and destination live on different file systems (EXDEV). What
// happens when the destination already exists is decided by an
// OverwritePolicy:
//
//	skipped, err := ioutils.MoveFile(ctx, src, dst, ioutils.OverwriteFail)
//	if errors.Is(err, ioutils.ErrDestinationExists) {
//	    // dst was left untouched
//	}
package ioutils
