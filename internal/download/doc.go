// Package download provides the batch download logic: every catalog
// entry is fetched as audio, renamed to "<artist> - <title>.<ext>" and
// moved into the downloads directory.
//
// # Manager
//
// The Manager processes entries strictly one after another:
//
//  1. Create an isolated staging directory in the work directory
//  2. Run the fetch tool into it (optionally through `conda run`)
//  3. Pick the newest file with the target extension
//  4. Tag MP3 files with ID3 metadata and optional cover art
//  5. Move the file to its canonical name, applying the overwrite policy
//  6. Remove the staging directory
//
// After the batch an M3U/PLS playlist of the placed files can be written.
//
// # Basic Usage
//
//	fetcher := ytdlp.NewFetcher(settings.FetchTool, settings.CondaEnv, nil)
//	manager := download.NewManager(settings, fetcher, func(event progress.Event) {
//	    fmt.Println(event.Message)
//	})
//
//	summary, err := manager.Run(ctx, entries)
//	if errors.Is(err, download.ErrItemsFailed) {
//	    for _, r := range summary.Failed() {
//	        fmt.Println(r.Entry.DisplayName(), r.Err)
//	    }
//	}
//
// # Failure Modes
//
// By default the first failing item stops the batch (fail-fast). With
// Settings.KeepGoing the batch continues and Run reports ErrItemsFailed.
// Per-item errors wrap ErrFetchFailed, ErrNoArtifactFound or
// ErrDestinationExists.
//
// # Progress Events
//
// Fetch tool output is forwarded as LevelVerbose events; download
// percentages parsed from it are set in Event.Percent together with the
// item position.
package download
