package model

import (
	"strings"
	"testing"
)

func TestParseTitle(t *testing.T) {
	tests := []struct {
		input      string
		wantArtist string
		wantTitle  string
	}{
		{"Artist X - Song Y", "Artist X", "Song Y"},
		{"  Artist X   -   Song Y  ", "Artist X", "Song Y"},
		{"Artist - Song - Live at Wembley", "Artist", "Song - Live at Wembley"},
		{"No separator here", "", "No separator here"},
		{"  padded title  ", "", "padded title"},
		{"Artist-Song", "", "Artist-Song"},
		{"Artist -Song", "", "Artist -Song"},
		{" - Song", "", "Song"},
		{"Artist - ", "Artist", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			artist, title := ParseTitle(tt.input)
			if artist != tt.wantArtist || title != tt.wantTitle {
				t.Errorf("ParseTitle(%q) = (%q, %q), want (%q, %q)", tt.input, artist, title, tt.wantArtist, tt.wantTitle)
			}
		})
	}
}

func TestParseTitle_SplitsOnFirstSeparatorOnly(t *testing.T) {
	inputs := []string{
		"a - b",
		"a - b - c",
		" x  -  y - z - w ",
		"- a - b",
	}

	for _, s := range inputs {
		idx := strings.Index(s, TitleSeparator)
		wantArtist := strings.TrimSpace(s[:idx])
		wantTitle := strings.TrimSpace(s[idx+len(TitleSeparator):])

		artist, title := ParseTitle(s)
		if artist != wantArtist || title != wantTitle {
			t.Errorf("ParseTitle(%q) = (%q, %q), want (%q, %q)", s, artist, title, wantArtist, wantTitle)
		}
	}
}

func TestNewEntry(t *testing.T) {
	entry := NewEntry(ListedItem{ID: "abc123", Name: "Artist X - Song Y"})

	want := Entry{URL: "https://www.youtube.com/watch?v=abc123", Artist: "Artist X", Title: "Song Y"}
	if entry != want {
		t.Errorf("NewEntry() = %+v, want %+v", entry, want)
	}
}

func TestNewEntry_EmptyNameFallsBackToID(t *testing.T) {
	entry := NewEntry(ListedItem{ID: "abc123", Name: "   "})

	if entry.Title != "abc123" {
		t.Errorf("Title = %q, want %q", entry.Title, "abc123")
	}
	if entry.Artist != "" {
		t.Errorf("Artist = %q, want empty", entry.Artist)
	}
}

func TestEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		entry   Entry
		wantErr bool
	}{
		{"valid", Entry{URL: "https://www.youtube.com/watch?v=a", Artist: "A", Title: "B"}, false},
		{"empty artist allowed", Entry{URL: "https://example.com/x", Title: "B"}, false},
		{"empty url", Entry{Title: "B"}, true},
		{"relative url", Entry{URL: "watch?v=a", Title: "B"}, true},
		{"empty title", Entry{URL: "https://example.com/x", Artist: "A"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEntry_VideoID(t *testing.T) {
	tests := []struct {
		url    string
		want   string
		wantOK bool
	}{
		{"https://www.youtube.com/watch?v=abc123", "abc123", true},
		{"https://www.youtube.com/watch?v=abc123&list=PL1", "abc123", true},
		{"https://youtu.be/abc123", "abc123", true},
		{"https://www.youtube.com/shorts/abc123", "abc123", true},
		{"https://example.com/track/1", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, ok := Entry{URL: tt.url}.VideoID()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("VideoID() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestEntry_FileName(t *testing.T) {
	tests := []struct {
		entry Entry
		ext   string
		want  string
	}{
		{Entry{Artist: "A", Title: "B"}, "opus", "A - B.opus"},
		{Entry{Artist: "A", Title: "B"}, ".mp3", "A - B.mp3"},
		{Entry{Title: "Only Title"}, "opus", " - Only Title.opus"},
		{Entry{Artist: "AC/DC", Title: "Thunderstruck"}, "opus", "AC_DC - Thunderstruck.opus"},
		{Entry{Artist: "Spaced   Out", Title: "Song"}, "opus", "Spaced Out - Song.opus"},
		{Entry{URL: "https://www.youtube.com/watch?v=abc123", Title: "   "}, "opus", " - abc123.opus"},
		{Entry{Title: "   "}, "opus", " - _.opus"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.entry.FileName(tt.ext); got != tt.want {
				t.Errorf("FileName(%q) = %q, want %q", tt.ext, got, tt.want)
			}
		})
	}
}

func TestEntry_FileName_DotsOnlyTitle(t *testing.T) {
	for _, title := range []string{".", "..", "..."} {
		entry := Entry{URL: "https://www.youtube.com/watch?v=abc123", Title: title}
		got := entry.FileName("opus")
		if strings.HasPrefix(got, ".") {
			t.Errorf("FileName() for title %q = %q, want a visible name", title, got)
		}
		stem := strings.TrimSuffix(strings.TrimPrefix(got, TitleSeparator), ".opus")
		if stem == "" {
			t.Errorf("FileName() for title %q = %q, want a non-empty stem", title, got)
		}
	}
}

func TestSanitizeFileNameFor(t *testing.T) {
	tests := []struct {
		goos  string
		input string
		want  string
	}{
		{"linux", "normal-file", "normal-file"},
		{"linux", "file/with/slashes", "file_with_slashes"},
		{"linux", "nul\x00and\nnewline", "nul_and_newline"},
		{"linux", "file:with:colons", "file:with:colons"},
		{"linux", "Who? What \"Why\"", "Who? What \"Why\""},
		{"linux", "T.N.T.", "T.N.T."},
		{"darwin", "a<b>c|d", "a<b>c|d"},
		{"linux", "multiple   spaces", "multiple spaces"},
		{"linux", "  surrounding spaces   ", "surrounding spaces"},
		{"windows", "file:with:colons", "file_with_colons"},
		{"windows", "file<with>brackets", "file_with_brackets"},
		{"windows", "file/with\\slashes", "file_with_slashes"},
		{"windows", "file|with|pipes", "file_with_pipes"},
		{"windows", "file?with*wildcards", "file_with_wildcards"},
		{"windows", "trailing dots...", "trailing dots"},
		{"windows", "...", ""},
		{"windows", "  surrounding spaces   ", "surrounding spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.input, func(t *testing.T) {
			got := sanitizeFileNameFor(tt.goos, tt.input)
			if got != tt.want {
				t.Errorf("sanitizeFileNameFor(%q, %q) = %q, want %q", tt.goos, tt.input, got, tt.want)
			}
		})
	}
}

func TestPlaylistFormat_Extension(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"m3u", ".m3u"},
		{"PLS", ".pls"},
		{"", ".m3u"},
		{"wpl", ".m3u"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParsePlaylistFormat(tt.input).Extension(); got != tt.want {
				t.Errorf("Extension() = %q, want %q", got, tt.want)
			}
		})
	}
}
