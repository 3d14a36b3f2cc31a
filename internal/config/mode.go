package config

import (
	"errors"
	"fmt"

	"github.com/handiism/playlist-dl/internal/catalog"
	"github.com/handiism/playlist-dl/internal/model"
)

// ErrConfigurationConflict is returned when single-entry flags are mixed
// with a catalog path, or when the single-entry triple is incomplete.
var ErrConfigurationConflict = errors.New("configuration conflict")

// ModeInput carries the raw downloader inputs as supplied on the command line.
type ModeInput struct {
	URL    string
	Artist string
	Title  string

	// PlaylistSet is true when the catalog flag was given at all, even
	// without a value.
	PlaylistSet  bool
	PlaylistPath string
}

// Mode is the resolved downloader input: exactly one of Single or
// CatalogPath is set.
type Mode struct {
	Single      *model.Entry
	CatalogPath string
}

// IsSingle reports whether the mode processes one explicit entry.
func (m Mode) IsSingle() bool {
	return m.Single != nil
}

// ResolveMode validates the mutually exclusive single/catalog inputs.
//
// Any of URL/Artist/Title together with PlaylistSet is a conflict. A partial
// triple is a conflict too. With neither given, the catalog mode reads
// catalog.DefaultPath.
func ResolveMode(in ModeInput) (Mode, error) {
	usingSingle := in.URL != "" || in.Artist != "" || in.Title != ""

	if usingSingle && in.PlaylistSet {
		return Mode{}, fmt.Errorf("%w: --url/--artist/--title cannot be combined with --playlist", ErrConfigurationConflict)
	}

	if usingSingle {
		if in.URL == "" || in.Artist == "" || in.Title == "" {
			return Mode{}, fmt.Errorf("%w: --url, --artist and --title must be used together", ErrConfigurationConflict)
		}
		entry := model.Entry{URL: in.URL, Artist: in.Artist, Title: in.Title}.Trimmed()
		if err := entry.Validate(); err != nil {
			return Mode{}, fmt.Errorf("%w: %v", ErrConfigurationConflict, err)
		}
		return Mode{Single: &entry}, nil
	}

	path := in.PlaylistPath
	if path == "" {
		path = catalog.DefaultPath
	}
	return Mode{CatalogPath: path}, nil
}
