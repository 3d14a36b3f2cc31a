package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/handiism/playlist-dl/internal/config"
	"github.com/handiism/playlist-dl/internal/model"
	"github.com/handiism/playlist-dl/internal/playlist"
)

type stubLister struct {
	items  []model.ListedItem
	err    error
	source string
}

func (s *stubLister) List(ctx context.Context, source string) ([]model.ListedItem, error) {
	s.source = source
	return s.items, s.err
}

func TestRun_WritesCatalogAndConfirms(t *testing.T) {
	out := filepath.Join(t.TempDir(), "playlist.csv")
	lister := &stubLister{items: []model.ListedItem{{ID: "abc123", Name: "Artist X - Song Y"}}}

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--output", out, "https://www.youtube.com/playlist?list=PL1"}, &stdout, &stderr,
		func(*config.Settings) playlist.Lister { return lister })
	if code != 0 {
		t.Fatalf("run() = %d; stderr:\n%s", code, stderr.String())
	}

	if lister.source != "https://www.youtube.com/playlist?list=PL1" {
		t.Errorf("lister got source %q", lister.source)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "https://www.youtube.com/watch?v=abc123,Artist X,Song Y\n" {
		t.Errorf("catalog = %q", data)
	}
	if !strings.Contains(stdout.String(), out) {
		t.Errorf("confirmation does not name the output path:\n%s", stdout.String())
	}
}

func TestRun_SourceUnavailable(t *testing.T) {
	out := filepath.Join(t.TempDir(), "playlist.csv")
	lister := &stubLister{err: playlist.ErrSourceUnavailable}

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--url", "PL1", "--output", out}, &stdout, &stderr,
		func(*config.Settings) playlist.Lister { return lister })
	if code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("no catalog should be written")
	}
}

func TestRun_MissingSource(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), nil, &stdout, &stderr, nil); code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "Usage:") {
		t.Errorf("usage not printed:\n%s", stderr.String())
	}
}

func TestRun_ListerSelection(t *testing.T) {
	var got string
	factory := func(s *config.Settings) playlist.Lister {
		got = s.Lister
		return &stubLister{items: []model.ListedItem{{ID: "a", Name: "b"}}}
	}

	var stdout, stderr bytes.Buffer
	out := filepath.Join(t.TempDir(), "p.csv")
	if code := run(context.Background(), []string{"--lister", "native", "--output", out, "PL1"}, &stdout, &stderr, factory); code != 0 {
		t.Fatalf("run() = %d; stderr:\n%s", code, stderr.String())
	}
	if got != config.ListerNative {
		t.Errorf("lister = %q, want native", got)
	}

	if code := run(context.Background(), []string{"--lister", "scraper", "PL1"}, &stdout, &stderr, factory); code != 1 {
		t.Errorf("unknown lister: run() = %d, want 1", code)
	}
}

func TestDefaultLister(t *testing.T) {
	s := config.DefaultSettings()
	if _, ok := defaultLister(s).(*playlist.YTDLPLister); !ok {
		t.Error("default backend should be yt-dlp")
	}
	s.Lister = config.ListerNative
	if _, ok := defaultLister(s).(*playlist.NativeLister); !ok {
		t.Error("native backend not selected")
	}
}
