// Package catalog reads and writes the CSV catalog shared by the extractor
// and the downloader.
//
// The format is headerless UTF-8 CSV with the columns url, artist, title:
//
//	https://www.youtube.com/watch?v=abc123,Artist X,Song Y
//
// Read is deliberately permissive: empty rows and rows with fewer than three
// columns are skipped without being reported. Write always produces exactly
// three trimmed columns per entry and replaces the target atomically.
package catalog
