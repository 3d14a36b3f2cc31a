package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
)

// DefaultTool is the fetch tool binary name.
const DefaultTool = "yt-dlp"

// OutputTemplate names artifacts after the media id inside the output
// directory; the final name is decided by the caller after the fetch.
const OutputTemplate = "%(id)s.%(ext)s"

// ErrToolNotFound means neither the fetch tool nor conda could be resolved.
var ErrToolNotFound = errors.New("fetch tool not found")

// FetchRequest describes one audio extraction.
type FetchRequest struct {
	URL    string
	Artist string
	Title  string

	// Format is the target audio encoding, e.g. "opus" or "mp3".
	Format string

	// OutputDir is where the tool writes its artifact. Empty means the
	// current working directory.
	OutputDir string
}

// Fetcher invokes the fetch tool, optionally through `conda run`.
type Fetcher struct {
	tool     string
	condaEnv string
	runner   Runner
}

// NewFetcher creates a Fetcher. condaEnv selects the execution environment;
// empty runs tool directly. A nil runner means ExecRunner.
func NewFetcher(tool, condaEnv string, runner Runner) *Fetcher {
	if tool == "" {
		tool = DefaultTool
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Fetcher{tool: tool, condaEnv: condaEnv, runner: runner}
}

// Environment returns the configured conda environment, or "".
func (f *Fetcher) Environment() string {
	return f.condaEnv
}

// Check verifies that the executable the Fetcher launches is on PATH.
func (f *Fetcher) Check() error {
	name, _ := f.command(nil)
	if _, err := f.runner.LookPath(name); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrToolNotFound, name, err)
	}
	return nil
}

// FetchArgs builds the tool arguments for req, without the launcher prefix.
func FetchArgs(req FetchRequest) []string {
	output := OutputTemplate
	if req.OutputDir != "" {
		output = filepath.Join(req.OutputDir, OutputTemplate)
	}

	return []string{
		"--extract-audio",
		"--audio-format", req.Format,
		"--no-playlist",
		"--newline",
		"--output", output,
		"--postprocessor-args", MetadataArgs(req.Artist, req.Title),
		req.URL,
	}
}

// MetadataArgs builds the ffmpeg arguments embedding artist and title.
func MetadataArgs(artist, title string) string {
	return "-metadata artist=" + ShellQuote(artist) + " -metadata title=" + ShellQuote(title)
}

// FetchCommand returns the full invocation Fetch would run for req.
func (f *Fetcher) FetchCommand(req FetchRequest) Command {
	name, args := f.command(FetchArgs(req))
	return Command{Name: name, Args: args}
}

// Fetch downloads and transcodes req.URL. Output lines are passed to onLine.
// A non-zero exit is returned as *ExitError.
func (f *Fetcher) Fetch(ctx context.Context, req FetchRequest, onLine func(string)) error {
	return f.runner.Run(ctx, f.FetchCommand(req), onLine)
}

// ListFlat returns the single-JSON flat listing of a playlist without
// downloading anything.
func (f *Fetcher) ListFlat(ctx context.Context, source string) ([]byte, error) {
	name, args := f.command([]string{
		"--flat-playlist",
		"--skip-download",
		"--dump-single-json",
		"--quiet",
		"--no-warnings",
		source,
	})
	return f.runner.Output(ctx, Command{Name: name, Args: args})
}

// command prefixes args with the conda launcher when an environment is set.
func (f *Fetcher) command(args []string) (string, []string) {
	if f.condaEnv == "" {
		return f.tool, args
	}
	full := append([]string{"run", "-n", f.condaEnv, "--no-capture-output", f.tool}, args...)
	return "conda", full
}

var progressLine = regexp.MustCompile(`^\[download\]\s+(\d+(?:\.\d+)?)%`)

// ParseProgress extracts the percentage from a "[download]  42.0% of ..."
// line.
func ParseProgress(line string) (float64, bool) {
	m := progressLine.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	pct, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return pct, true
}
