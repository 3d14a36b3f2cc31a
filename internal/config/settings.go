package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ioutils "github.com/handiism/playlist-dl/internal/io"
	"github.com/handiism/playlist-dl/internal/model"
)

// Lister backends understood by the extractor.
const (
	ListerYTDLP  = "ytdlp"
	ListerNative = "native"
)

// Settings holds all configuration options.
type Settings struct {
	// Destination settings
	DownloadsDir    string `json:"downloads_dir"`
	WorkDir         string `json:"work_dir"`
	OverwritePolicy string `json:"overwrite_policy"` // overwrite, skip, fail

	// Fetch tool settings
	AudioFormat string `json:"audio_format"`
	FetchTool   string `json:"fetch_tool"`
	CondaEnv    string `json:"conda_env"` // empty runs the fetch tool directly
	KeepGoing   bool   `json:"keep_going"`

	// Listing settings
	Lister             string `json:"lister"` // ytdlp, native
	ListTimeoutSeconds int    `json:"list_timeout_seconds"`

	// Cover art settings (mp3 only)
	EmbedCoverArt   bool `json:"embed_cover_art"`
	CoverArtMaxSize int  `json:"cover_art_max_size"`

	// Playlist settings
	CreatePlaylist bool   `json:"create_playlist"`
	PlaylistFormat string `json:"playlist_format"` // m3u, pls
	M3UExtended    bool   `json:"m3u_extended"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	downloads, err := ioutils.HomeDownloadsDir()
	if err != nil {
		downloads = filepath.Join(os.TempDir(), "Downloads")
	}

	return &Settings{
		DownloadsDir:    downloads,
		WorkDir:         ".",
		OverwritePolicy: string(ioutils.OverwriteReplace),

		AudioFormat: "opus",
		FetchTool:   "yt-dlp",
		CondaEnv:    "",
		KeepGoing:   false,

		Lister:             ListerYTDLP,
		ListTimeoutSeconds: 60,

		EmbedCoverArt:   false,
		CoverArtMaxSize: 1000,

		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		M3UExtended:    true,
	}
}

// Load reads settings from a JSON file. A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return ioutils.WriteFileAtomic(path, data)
}

// Validate checks field values that cannot be defaulted silently.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.AudioFormat) == "" {
		return fmt.Errorf("audio_format must not be empty")
	}
	if strings.ContainsAny(s.AudioFormat, `/\.`) {
		return fmt.Errorf("audio_format %q must be a bare extension", s.AudioFormat)
	}
	if s.FetchTool == "" {
		return fmt.Errorf("fetch_tool must not be empty")
	}
	if s.DownloadsDir == "" {
		return fmt.Errorf("downloads_dir must not be empty")
	}
	if _, err := ioutils.ParseOverwritePolicy(s.OverwritePolicy); err != nil {
		return err
	}
	switch s.Lister {
	case ListerYTDLP, ListerNative:
	default:
		return fmt.Errorf("unknown lister %q (want %s or %s)", s.Lister, ListerYTDLP, ListerNative)
	}
	return nil
}

// Overwrite returns the parsed overwrite policy, defaulting to replace.
func (s *Settings) Overwrite() ioutils.OverwritePolicy {
	p, err := ioutils.ParseOverwritePolicy(s.OverwritePolicy)
	if err != nil {
		return ioutils.OverwriteReplace
	}
	return p
}

// ListTimeout returns the playlist listing timeout.
func (s *Settings) ListTimeout() time.Duration {
	if s.ListTimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(s.ListTimeoutSeconds) * time.Second
}

// Format returns the normalized target audio extension.
func (s *Settings) Format() string {
	return strings.ToLower(strings.TrimSpace(s.AudioFormat))
}

// ToPlaylistFormat converts the playlist_format value.
func (s *Settings) ToPlaylistFormat() model.PlaylistFormat {
	return model.ParsePlaylistFormat(s.PlaylistFormat)
}
