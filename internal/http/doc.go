// Package http provides the HTTP client used to fetch cover art.
//
// Audio itself is fetched by the external tool; the only direct HTTP
// traffic is the video thumbnail embedded into MP3 files.
//
// # Basic Usage
//
//	client := http.NewClient()
//	jpeg, err := client.Thumbnail(ctx, "abc123")
//
// Tests point the client at an httptest server:
//
//	client := http.NewClient(http.WithThumbnailBase(srv.URL))
package http
