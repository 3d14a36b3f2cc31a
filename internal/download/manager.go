package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/handiism/playlist-dl/internal/audio"
	"github.com/handiism/playlist-dl/internal/config"
	"github.com/handiism/playlist-dl/internal/http"
	ioutils "github.com/handiism/playlist-dl/internal/io"
	"github.com/handiism/playlist-dl/internal/model"
	"github.com/handiism/playlist-dl/internal/progress"
	"github.com/handiism/playlist-dl/internal/ytdlp"
)

// StagingPrefix names the per-item staging directories created in the
// work directory.
const StagingPrefix = ".playlist-dl-"

var (
	// ErrFetchFailed means the fetch tool exited non-zero or could not be
	// started. The wrapped error carries the exit status and stderr tail.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrNoArtifactFound means the fetch tool succeeded but left no file
	// with the target extension.
	ErrNoArtifactFound = errors.New("no artifact found")

	// ErrItemsFailed is returned by Run in keep-going mode when at least
	// one item failed.
	ErrItemsFailed = errors.New("some items failed")

	// ErrDestinationExists is returned under the "fail" overwrite policy.
	ErrDestinationExists = ioutils.ErrDestinationExists

	// ErrToolNotFound means the fetch tool (or conda) is not on PATH.
	ErrToolNotFound = ytdlp.ErrToolNotFound
)

// Summary collects per-item results of a batch, in catalog order.
type Summary struct {
	Results []model.Result

	// PlaylistPath is set when a playlist file was written.
	PlaylistPath string
}

// Succeeded returns the number of placed or skipped items.
func (s *Summary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if r.OK() {
			n++
		}
	}
	return n
}

// Failed returns the failed results.
func (s *Summary) Failed() []model.Result {
	var failed []model.Result
	for _, r := range s.Results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}

// Option configures a Manager.
type Option func(*Manager)

// WithHTTPClient sets the client used for cover art.
func WithHTTPClient(c *http.Client) Option {
	return func(m *Manager) {
		m.httpClient = c
	}
}

// Manager coordinates catalog downloads.
type Manager struct {
	settings     *config.Settings
	fetcher      *ytdlp.Fetcher
	httpClient   *http.Client
	tagger       *audio.Tagger
	playlist     *audio.PlaylistCreator
	imageService *ioutils.ImageService

	totalItems int32
	doneItems  int32

	onProgress progress.Func
	mu         sync.Mutex
}

// NewManager creates a new download Manager.
func NewManager(settings *config.Settings, fetcher *ytdlp.Fetcher, onProgress func(progress.Event), opts ...Option) *Manager {
	m := &Manager{
		settings:     settings,
		fetcher:      fetcher,
		httpClient:   http.NewClient(),
		tagger:       audio.NewTagger(audio.DefaultTagConfig()),
		playlist:     audio.NewPlaylistCreator(settings.ToPlaylistFormat(), settings.M3UExtended),
		imageService: ioutils.NewImageService(),
		onProgress:   onProgress,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GetProgress returns how many items of the current batch are finished.
func (m *Manager) GetProgress() (done, total int) {
	return int(atomic.LoadInt32(&m.doneItems)), int(atomic.LoadInt32(&m.totalItems))
}

// Plan returns the fetch command each entry would run, without running
// anything. Staging directories are shown as "<staging>".
func (m *Manager) Plan(entries []model.Entry) []string {
	cmds := make([]string, 0, len(entries))
	for _, entry := range entries {
		cmd := m.fetcher.FetchCommand(m.request(entry.Trimmed(), filepath.Join(m.workDir(), "<staging>")))
		cmds = append(cmds, cmd.String())
	}
	return cmds
}

// Run downloads entries one after another.
//
// Without Settings.KeepGoing the first failure stops the batch and is
// returned. With it, failures are recorded and Run returns ErrItemsFailed
// at the end. Cancellation of ctx always stops the batch.
func (m *Manager) Run(ctx context.Context, entries []model.Entry) (*Summary, error) {
	summary := &Summary{Results: make([]model.Result, 0, len(entries))}

	atomic.StoreInt32(&m.totalItems, int32(len(entries)))
	atomic.StoreInt32(&m.doneItems, 0)

	if err := m.prepare(); err != nil {
		return summary, err
	}

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		res, err := m.download(ctx, i+1, len(entries), entry)
		summary.Results = append(summary.Results, res)
		atomic.AddInt32(&m.doneItems, 1)

		if err == nil {
			continue
		}
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		// In fail-fast mode the caller reports the returned error.
		if !m.settings.KeepGoing {
			return summary, err
		}
		m.emit(progress.Event{
			Message: fmt.Sprintf("Error downloading %s: %v", entry.DisplayName(), err),
			Level:   progress.LevelError,
			Item:    i + 1,
			Total:   len(entries),
			Percent: -1,
		})
	}

	if m.settings.CreatePlaylist {
		m.writePlaylist(summary)
	}

	failed := len(summary.Failed())
	if failed > 0 {
		m.emit(progress.Message(progress.LevelWarning, fmt.Sprintf("Finished: %d succeeded, %d failed", summary.Succeeded(), failed)))
		return summary, fmt.Errorf("%w: %d of %d", ErrItemsFailed, failed, len(entries))
	}

	m.emit(progress.Message(progress.LevelSuccess, fmt.Sprintf("Finished: %d succeeded", summary.Succeeded())))
	return summary, nil
}

// DownloadOne processes a single entry: fetch into a staging directory,
// locate the artifact, tag it (mp3), rename it and move it into the
// downloads directory. The returned Result carries the same error.
func (m *Manager) DownloadOne(ctx context.Context, entry model.Entry) (model.Result, error) {
	if err := m.prepare(); err != nil {
		return model.Result{Entry: entry, Err: err}, err
	}
	return m.download(ctx, 1, 1, entry)
}

// prepare checks the tool and creates the output directories.
func (m *Manager) prepare() error {
	if err := m.fetcher.Check(); err != nil {
		return err
	}
	if err := ioutils.EnsureDir(m.settings.DownloadsDir); err != nil {
		return fmt.Errorf("create downloads directory: %w", err)
	}
	if err := ioutils.EnsureDir(m.workDir()); err != nil {
		return fmt.Errorf("create work directory: %w", err)
	}
	return nil
}

func (m *Manager) download(ctx context.Context, item, total int, entry model.Entry) (res model.Result, err error) {
	entry = entry.Trimmed()
	res = model.Result{Entry: entry}
	defer func() { res.Err = err }()

	if err := entry.Validate(); err != nil {
		return res, err
	}

	m.emit(progress.Event{
		Message: fmt.Sprintf("Downloading: %s", entry.DisplayName()),
		Level:   progress.LevelInfo,
		Item:    item,
		Total:   total,
		Percent: 0,
	})

	staging := filepath.Join(m.workDir(), StagingPrefix+uuid.NewString())
	if err := os.Mkdir(staging, 0o755); err != nil {
		return res, fmt.Errorf("create staging directory: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(staging); rmErr != nil {
			m.emit(progress.Message(progress.LevelWarning, fmt.Sprintf("Could not remove %s: %v", staging, rmErr)))
		}
	}()

	req := m.request(entry, staging)
	m.emit(progress.Message(progress.LevelVerbose, m.fetcher.FetchCommand(req).String()))

	err = m.fetcher.Fetch(ctx, req, func(line string) {
		ev := progress.Event{Message: line, Level: progress.LevelVerbose, Item: item, Total: total, Percent: -1}
		if pct, ok := ytdlp.ParseProgress(line); ok {
			ev.Percent = pct
		}
		m.emit(ev)
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, ctxErr
		}
		return res, fmt.Errorf("%w: %s: %w", ErrFetchFailed, entry.URL, err)
	}

	format := m.settings.Format()
	artifact, found, err := ioutils.NewestWithExt(staging, format)
	if err != nil {
		return res, fmt.Errorf("scan staging directory: %w", err)
	}
	if !found {
		return res, fmt.Errorf("%w: no .%s file for %s", ErrNoArtifactFound, format, entry.URL)
	}

	if format == "mp3" {
		m.tag(ctx, artifact, entry)
	}

	dst := filepath.Join(m.settings.DownloadsDir, entry.FileName(format))
	skipped, err := ioutils.MoveFile(ctx, artifact, dst, m.settings.Overwrite())
	if err != nil {
		return res, err
	}

	res.Path = dst
	res.Skipped = skipped
	if skipped {
		m.emit(progress.Event{Message: fmt.Sprintf("Skipped existing: %s", dst), Level: progress.LevelWarning, Item: item, Total: total, Percent: -1})
	} else {
		m.emit(progress.Event{Message: fmt.Sprintf("Saved: %s", dst), Level: progress.LevelSuccess, Item: item, Total: total, Percent: 100})
	}
	return res, nil
}

func (m *Manager) request(entry model.Entry, outputDir string) ytdlp.FetchRequest {
	return ytdlp.FetchRequest{
		URL:       entry.URL,
		Artist:    entry.Artist,
		Title:     entry.Title,
		Format:    m.settings.Format(),
		OutputDir: outputDir,
	}
}

// tag writes ID3 frames to an mp3 artifact. Tagging problems are warnings;
// the file still carries the metadata written by the fetch tool.
func (m *Manager) tag(ctx context.Context, path string, entry model.Entry) {
	var artwork []byte
	if m.settings.EmbedCoverArt {
		var err error
		artwork, err = m.coverArt(ctx, entry)
		if err != nil {
			m.emit(progress.Message(progress.LevelWarning, fmt.Sprintf("Error downloading cover art for %s: %v", entry.DisplayName(), err)))
		}
	}

	if err := m.tagger.SaveTags(path, entry, artwork); err != nil {
		m.emit(progress.Message(progress.LevelWarning, fmt.Sprintf("Error tagging %s: %v", entry.DisplayName(), err)))
	}
}

func (m *Manager) coverArt(ctx context.Context, entry model.Entry) ([]byte, error) {
	id, ok := entry.VideoID()
	if !ok {
		return nil, fmt.Errorf("no video id in %s", entry.URL)
	}

	data, err := m.httpClient.Thumbnail(ctx, id)
	if err != nil {
		return nil, err
	}

	if size := m.settings.CoverArtMaxSize; size > 0 {
		data, err = m.imageService.ResizeImage(ctx, data, size, size)
	} else {
		data, err = m.imageService.ConvertToJPEG(ctx, data)
	}
	if err != nil {
		return nil, err
	}

	m.emit(progress.Message(progress.LevelVerbose, fmt.Sprintf("Downloaded cover art for %s", entry.DisplayName())))
	return data, nil
}

func (m *Manager) writePlaylist(summary *Summary) {
	if summary.Succeeded() == 0 {
		return
	}

	name := "playlist-dl" + m.playlist.Format().Extension()
	path := filepath.Join(m.settings.DownloadsDir, name)
	content := m.playlist.CreatePlaylist(summary.Results)

	if err := ioutils.WriteFileAtomic(path, []byte(content)); err != nil {
		m.emit(progress.Message(progress.LevelWarning, fmt.Sprintf("Error creating playlist: %v", err)))
		return
	}
	summary.PlaylistPath = path
	m.emit(progress.Message(progress.LevelSuccess, fmt.Sprintf("Created playlist %s", path)))
}

func (m *Manager) workDir() string {
	if dir := strings.TrimSpace(m.settings.WorkDir); dir != "" {
		return dir
	}
	return "."
}

func (m *Manager) emit(event progress.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onProgress.Emit(event)
}
