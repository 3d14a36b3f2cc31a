package ytdlp

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

type recordingRunner struct {
	runs    []Command
	outputs []Command
	lookups []string
	lookErr error
	output  []byte
}

func (r *recordingRunner) Run(ctx context.Context, cmd Command, onLine func(string)) error {
	r.runs = append(r.runs, cmd)
	if onLine != nil {
		onLine("[download]  50.0% of 3.00MiB")
	}
	return nil
}

func (r *recordingRunner) Output(ctx context.Context, cmd Command) ([]byte, error) {
	r.outputs = append(r.outputs, cmd)
	return r.output, nil
}

func (r *recordingRunner) LookPath(name string) (string, error) {
	r.lookups = append(r.lookups, name)
	if r.lookErr != nil {
		return "", r.lookErr
	}
	return "/usr/bin/" + name, nil
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "''"},
		{"simple", "simple"},
		{"a-b_c.d/e:f", "a-b_c.d/e:f"},
		{"Artist X", "'Artist X'"},
		{"Don't Stop", `'Don'"'"'t Stop'`},
		{"$HOME; rm -rf /", "'$HOME; rm -rf /'"},
		{"Beyoncé", "'Beyoncé'"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ShellQuote(tt.input); got != tt.want {
				t.Errorf("ShellQuote(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFetchArgs(t *testing.T) {
	req := FetchRequest{
		URL:       "https://www.youtube.com/watch?v=abc123",
		Artist:    "Artist X",
		Title:     "Don't Stop",
		Format:    "opus",
		OutputDir: "/tmp/stage",
	}

	want := []string{
		"--extract-audio",
		"--audio-format", "opus",
		"--no-playlist",
		"--newline",
		"--output", filepath.Join("/tmp/stage", OutputTemplate),
		"--postprocessor-args", `-metadata artist='Artist X' -metadata title='Don'"'"'t Stop'`,
		"https://www.youtube.com/watch?v=abc123",
	}

	if got := FetchArgs(req); !reflect.DeepEqual(got, want) {
		t.Errorf("FetchArgs() =\n%q\nwant\n%q", got, want)
	}
}

func TestFetcher_Fetch_Direct(t *testing.T) {
	runner := &recordingRunner{}
	f := NewFetcher("", "", runner)

	var lines []string
	err := f.Fetch(context.Background(), FetchRequest{URL: "https://x/1", Artist: "A", Title: "B", Format: "mp3"}, func(l string) {
		lines = append(lines, l)
	})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if len(runner.runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runner.runs))
	}
	if runner.runs[0].Name != DefaultTool {
		t.Errorf("Name = %q, want %q", runner.runs[0].Name, DefaultTool)
	}
	if runner.runs[0].Args[0] != "--extract-audio" {
		t.Errorf("Args[0] = %q, want --extract-audio", runner.runs[0].Args[0])
	}
	if len(lines) != 1 {
		t.Errorf("got %d lines, want 1", len(lines))
	}
}

func TestFetcher_Fetch_CondaEnvironment(t *testing.T) {
	runner := &recordingRunner{}
	f := NewFetcher("yt-dlp", "py13", runner)

	if err := f.Fetch(context.Background(), FetchRequest{URL: "https://x/1", Format: "opus"}, nil); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	cmd := runner.runs[0]
	if cmd.Name != "conda" {
		t.Errorf("Name = %q, want conda", cmd.Name)
	}
	wantPrefix := []string{"run", "-n", "py13", "--no-capture-output", "yt-dlp"}
	if !reflect.DeepEqual(cmd.Args[:len(wantPrefix)], wantPrefix) {
		t.Errorf("Args prefix = %q, want %q", cmd.Args[:len(wantPrefix)], wantPrefix)
	}
	if f.Environment() != "py13" {
		t.Errorf("Environment() = %q, want py13", f.Environment())
	}
}

func TestFetcher_ListFlat(t *testing.T) {
	runner := &recordingRunner{output: []byte(`{"entries":[]}`)}
	f := NewFetcher("yt-dlp", "", runner)

	out, err := f.ListFlat(context.Background(), "https://www.youtube.com/playlist?list=PL1")
	if err != nil {
		t.Fatalf("ListFlat() error = %v", err)
	}
	if string(out) != `{"entries":[]}` {
		t.Errorf("ListFlat() = %q", out)
	}

	args := runner.outputs[0].Args
	if args[0] != "--flat-playlist" || args[len(args)-1] != "https://www.youtube.com/playlist?list=PL1" {
		t.Errorf("unexpected args %q", args)
	}
}

func TestFetcher_Check(t *testing.T) {
	runner := &recordingRunner{}
	if err := NewFetcher("yt-dlp", "py13", runner).Check(); err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if runner.lookups[0] != "conda" {
		t.Errorf("looked up %q, want conda", runner.lookups[0])
	}

	runner = &recordingRunner{lookErr: errors.New("not found")}
	err := NewFetcher("yt-dlp", "", runner).Check()
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("Check() error = %v, want ErrToolNotFound", err)
	}
}

func TestParseProgress(t *testing.T) {
	tests := []struct {
		line   string
		want   float64
		wantOK bool
	}{
		{"[download]  42.3% of 3.45MiB at 1.00MiB/s ETA 00:02", 42.3, true},
		{"[download] 100% of 3.45MiB in 00:03", 100, true},
		{"[download] Destination: abc.webm", 0, false},
		{"[ExtractAudio] Destination: abc.opus", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := ParseProgress(tt.line)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseProgress() = %v, %v, want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCommand_String(t *testing.T) {
	c := Command{Name: "yt-dlp", Args: []string{"-x", "Artist X"}}
	if got := c.String(); got != "yt-dlp -x 'Artist X'" {
		t.Errorf("String() = %q", got)
	}
}
