package audio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/handiism/playlist-dl/internal/model"
)

func writeTestMP3(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "abc123.mp3")
	// Not a real MPEG stream; id3v2 only cares about the tag header.
	if err := os.WriteFile(path, []byte("\xff\xfbfake audio frames"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTagger_SaveTags(t *testing.T) {
	path := writeTestMP3(t)
	entry := model.Entry{URL: "https://www.youtube.com/watch?v=abc123", Artist: "Artist X", Title: "Song Y"}
	cover := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00}

	if err := NewTagger(nil).SaveTags(path, entry, cover); err != nil {
		t.Fatalf("SaveTags() error = %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	defer tag.Close()

	if tag.Artist() != "Artist X" {
		t.Errorf("Artist = %q", tag.Artist())
	}
	if tag.Title() != "Song Y" {
		t.Errorf("Title = %q", tag.Title())
	}

	pics := tag.GetFrames(tag.CommonID("Attached picture"))
	if len(pics) != 1 {
		t.Fatalf("got %d pictures, want 1", len(pics))
	}
	pic, ok := pics[0].(id3v2.PictureFrame)
	if !ok || !bytes.Equal(pic.Picture, cover) {
		t.Errorf("picture frame = %+v", pics[0])
	}

	comments := tag.GetFrames(tag.CommonID("Comments"))
	if len(comments) != 1 {
		t.Fatalf("got %d comments, want 1", len(comments))
	}
	if c, ok := comments[0].(id3v2.CommentFrame); !ok || c.Text != entry.URL {
		t.Errorf("comment frame = %+v", comments[0])
	}
}

func TestTagger_DoNotModify(t *testing.T) {
	path := writeTestMP3(t)
	first := model.Entry{URL: "https://x/1", Artist: "Old", Title: "Old Title"}
	if err := NewTagger(nil).SaveTags(path, first, nil); err != nil {
		t.Fatal(err)
	}

	cfg := &TagConfig{ModifyTags: true, Artist: TagDoNotModify, TrackTitle: TagModify, Comments: TagEmpty}
	second := model.Entry{URL: "https://x/2", Artist: "New", Title: "New Title"}
	if err := NewTagger(cfg).SaveTags(path, second, nil); err != nil {
		t.Fatal(err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	defer tag.Close()

	if tag.Artist() != "Old" {
		t.Errorf("Artist = %q, want unchanged", tag.Artist())
	}
	if tag.Title() != "New Title" {
		t.Errorf("Title = %q", tag.Title())
	}
	if n := len(tag.GetFrames(tag.CommonID("Comments"))); n != 0 {
		t.Errorf("got %d comments, want none", n)
	}
}

func TestTagger_MissingFile(t *testing.T) {
	err := NewTagger(nil).SaveTags(filepath.Join(t.TempDir(), "nope.mp3"), model.Entry{}, nil)
	if !os.IsNotExist(err) {
		t.Errorf("SaveTags() error = %v, want not-exist", err)
	}
}
