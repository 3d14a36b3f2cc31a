package audio

import (
	"errors"
	"strings"
	"testing"

	"github.com/handiism/playlist-dl/internal/model"
)

func testResults() []model.Result {
	return []model.Result{
		{
			Entry: model.Entry{URL: "https://www.youtube.com/watch?v=1", Artist: "Artist X", Title: "Song Y"},
			Path:  "/music/Artist X - Song Y.opus",
		},
		{
			Entry: model.Entry{URL: "https://www.youtube.com/watch?v=2", Artist: "Artist X", Title: "Broken"},
			Err:   errors.New("fetch failed"),
		},
		{
			Entry: model.Entry{URL: "https://www.youtube.com/watch?v=3", Title: "Untitled"},
			Path:  "/music/Untitled.opus",
		},
	}
}

func TestPlaylistCreator_M3U(t *testing.T) {
	content := NewPlaylistCreator(model.PlaylistFormatM3U, false).CreatePlaylist(testResults())

	want := "Artist X - Song Y.opus\nUntitled.opus\n"
	if content != want {
		t.Errorf("M3U =\n%q\nwant\n%q", content, want)
	}
}

func TestPlaylistCreator_M3UExtended(t *testing.T) {
	content := NewPlaylistCreator(model.PlaylistFormatM3U, true).CreatePlaylist(testResults())

	if !strings.HasPrefix(content, "#EXTM3U\n") {
		t.Error("Extended M3U should start with #EXTM3U")
	}
	if !strings.Contains(content, "#EXTINF:-1,Artist X - Song Y\n") {
		t.Errorf("missing EXTINF line:\n%s", content)
	}
	if strings.Contains(content, "Broken") {
		t.Error("failed items must not be listed")
	}
}

func TestPlaylistCreator_PLS(t *testing.T) {
	content := NewPlaylistCreator(model.PlaylistFormatPLS, false).CreatePlaylist(testResults())

	for _, want := range []string{
		"[playlist]\n",
		"File1=Artist X - Song Y.opus\n",
		"Title2=Untitled\n",
		"NumberOfEntries=2\n",
		"Version=2\n",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("PLS missing %q:\n%s", want, content)
		}
	}
}

func TestPlaylistCreator_Empty(t *testing.T) {
	content := NewPlaylistCreator(model.PlaylistFormatPLS, false).CreatePlaylist(nil)
	if !strings.Contains(content, "NumberOfEntries=0") {
		t.Errorf("empty PLS = %q", content)
	}
}
