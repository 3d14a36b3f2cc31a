// Package ytdlp drives the external yt-dlp binary, optionally inside a conda
// environment.
//
// The binary is a black box: this package only builds argument lists, runs
// the process, streams its output lines and turns a non-zero exit into an
// *ExitError carrying the tail of stderr.
//
// # Execution Environment
//
// The environment selector is an explicit constructor argument rather than a
// global, so tests and callers can choose it per Fetcher:
//
//	f := ytdlp.NewFetcher("yt-dlp", "py13", ytdlp.ExecRunner{})
//	// runs: conda run -n py13 --no-capture-output yt-dlp ...
//
//	f = ytdlp.NewFetcher("yt-dlp", "", ytdlp.ExecRunner{})
//	// runs: yt-dlp ...
//
// # Fetching Audio
//
//	err := f.Fetch(ctx, ytdlp.FetchRequest{
//	    URL:       "https://www.youtube.com/watch?v=abc123",
//	    Artist:    "Artist X",
//	    Title:     "Song Y",
//	    Format:    "opus",
//	    OutputDir: stagingDir,
//	}, func(line string) { fmt.Println(line) })
package ytdlp
