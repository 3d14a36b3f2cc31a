package model

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"runtime"
	"strings"
)

// VideoURLTemplate builds a canonical watch URL from a video identifier.
const VideoURLTemplate = "https://www.youtube.com/watch?v=%s"

// Entry represents a single catalog row.
//
// URL is always non-empty and well-formed and Title is always non-empty.
// Artist may be empty when the source display name had no separator.
type Entry struct {
	// URL is the playable media reference handed to the fetch tool.
	URL string

	// Artist is written to the artist metadata field and used as the
	// file name prefix.
	Artist string

	// Title is written to the title metadata field.
	Title string
}

// VideoURL returns the canonical watch URL for a video identifier.
func VideoURL(id string) string {
	return fmt.Sprintf(VideoURLTemplate, id)
}

// NewEntry builds an Entry from a listed item, applying ParseTitle to its
// display name. An empty display name falls back to the identifier so the
// title is never empty.
func NewEntry(item ListedItem) Entry {
	artist, title := ParseTitle(item.Name)
	if title == "" {
		title = item.ID
	}
	return Entry{
		URL:    VideoURL(item.ID),
		Artist: artist,
		Title:  title,
	}
}

// Trimmed returns a copy of e with surrounding whitespace removed from
// every field.
func (e Entry) Trimmed() Entry {
	return Entry{
		URL:    strings.TrimSpace(e.URL),
		Artist: strings.TrimSpace(e.Artist),
		Title:  strings.TrimSpace(e.Title),
	}
}

// Validate checks the Entry invariants.
func (e Entry) Validate() error {
	if e.URL == "" {
		return errors.New("entry url is empty")
	}
	u, err := url.Parse(e.URL)
	if err != nil {
		return fmt.Errorf("entry url %q: %w", e.URL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("entry url %q is not absolute", e.URL)
	}
	if e.Title == "" {
		return fmt.Errorf("entry %s has an empty title", e.URL)
	}
	return nil
}

// VideoID extracts the YouTube video identifier from the entry URL. It
// understands watch URLs (v= parameter), youtu.be short links and
// /shorts/ paths.
func (e Entry) VideoID() (string, bool) {
	u, err := url.Parse(e.URL)
	if err != nil {
		return "", false
	}
	if v := u.Query().Get("v"); v != "" {
		return v, true
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	path := strings.Trim(u.Path, "/")
	switch {
	case host == "youtu.be" && path != "":
		return strings.SplitN(path, "/", 2)[0], true
	case strings.HasPrefix(path, "shorts/"):
		if id := strings.TrimPrefix(path, "shorts/"); id != "" {
			return strings.SplitN(id, "/", 2)[0], true
		}
	}
	return "", false
}

// DisplayName returns "<artist> - <title>", or just the title when the
// artist is unknown. It is meant for messages; file names come from
// FileName.
func (e Entry) DisplayName() string {
	if e.Artist == "" {
		return e.Title
	}
	return e.Artist + TitleSeparator + e.Title
}

// FileName returns the canonical file name "<artist> - <title>.<ext>". The
// separator is always present, so an entry without artist yields
// " - <title>.<ext>".
//
// Characters the host file system rejects are replaced with underscores,
// so a title such as "AC/DC" cannot escape the destination directory. A
// title that sanitizes to nothing falls back to the video id, or "_".
func (e Entry) FileName(ext string) string {
	title := sanitizeFileName(e.Title)
	if title == "" {
		if id, ok := e.VideoID(); ok {
			title = sanitizeFileName(id)
		}
	}
	if title == "" {
		title = "_"
	}
	return sanitizeFileName(e.Artist) + TitleSeparator + title + "." + strings.TrimPrefix(ext, ".")
}

var (
	invalidFileCharsWindows = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	invalidFileCharsPOSIX   = regexp.MustCompile(`[/\x00-\x1f]`)
	trailingDots            = regexp.MustCompile(`\.+$`)
	repeatedSpace           = regexp.MustCompile(`\s+`)
)

// sanitizeFileName sanitizes name for the running platform.
func sanitizeFileName(name string) string {
	return sanitizeFileNameFor(runtime.GOOS, name)
}

// sanitizeFileNameFor removes or replaces characters that are invalid in
// file names on goos.
//
// The following transformations are applied:
//   - "/" and control chars are replaced with underscore everywhere;
//     on windows <>:"\|?* are replaced as well
//   - Trailing dots are removed on windows
//   - Multiple whitespace is collapsed to single space
//   - Surrounding whitespace is removed
func sanitizeFileNameFor(goos, name string) string {
	if goos == "windows" {
		name = invalidFileCharsWindows.ReplaceAllString(name, "_")
		name = trailingDots.ReplaceAllString(name, "")
	} else {
		name = invalidFileCharsPOSIX.ReplaceAllString(name, "_")
	}
	name = repeatedSpace.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}
