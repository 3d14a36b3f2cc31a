package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	ioutils "github.com/handiism/playlist-dl/internal/io"
	"github.com/handiism/playlist-dl/internal/model"
)

// DefaultPath is used when no catalog path is given.
const DefaultPath = "playlist.csv"

// columns is the number of fields in a valid row.
const columns = 3

var (
	// ErrCatalogNotFound means the catalog path does not exist.
	ErrCatalogNotFound = errors.New("catalog not found")

	// ErrEmptyCatalog means no valid row survived parsing.
	ErrEmptyCatalog = errors.New("no valid entries in catalog")

	// ErrIO covers every other failure to read or write a catalog file.
	ErrIO = errors.New("catalog i/o error")
)

// Decode parses catalog rows from r. Malformed rows are skipped.
func Decode(r io.Reader) ([]model.Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var entries []model.Entry
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		if len(row) < columns {
			continue
		}
		entries = append(entries, model.Entry{
			URL:    row[0],
			Artist: row[1],
			Title:  row[2],
		}.Trimmed())
	}
}

// Encode writes entries to w, one trimmed url,artist,title row each.
func Encode(w io.Writer, entries []model.Entry) error {
	writer := csv.NewWriter(w)
	for _, e := range entries {
		e = e.Trimmed()
		if err := writer.Write([]string{e.URL, e.Artist, e.Title}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// Read parses the catalog at path.
//
// Returns ErrCatalogNotFound when the path does not exist and ErrIO for any
// other read or parse failure. A catalog with no valid rows is not an error
// here; see Load.
func Read(path string) ([]model.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer f.Close()

	entries, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}
	return entries, nil
}

// Load reads the catalog at path and fails with ErrEmptyCatalog when it
// yields no entries.
func Load(path string) ([]model.Entry, error) {
	entries, err := Read(path)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCatalog, path)
	}
	return entries, nil
}

// Write replaces the catalog at path with entries. The whole catalog is
// encoded in memory first, so a failure leaves any previous file intact.
func Write(path string, entries []model.Entry) error {
	var buf bytes.Buffer
	if err := Encode(&buf, entries); err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrIO, path, err)
	}
	if err := ioutils.WriteFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}
