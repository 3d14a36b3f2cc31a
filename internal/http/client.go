package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultThumbnailBase is the host serving YouTube video thumbnails.
const DefaultThumbnailBase = "https://i.ytimg.com/vi"

// thumbnailNames are tried in order; not every video has a maxres image.
var thumbnailNames = []string{"maxresdefault.jpg", "hqdefault.jpg"}

// maxBodySize caps in-memory downloads. Thumbnails are well below it.
const maxBodySize = 16 << 20

// ErrNotFound is returned when the server answers 404.
var ErrNotFound = errors.New("not found")

// Client wraps HTTP operations used for cover art.
//
// Client provides:
//   - A fixed User-Agent header
//   - Timeout handling
//   - Thumbnail lookup with fallback between sizes
//
// Example usage:
//
//	client := NewClient()
//	jpeg, err := client.Thumbnail(ctx, "abc123")
type Client struct {
	httpClient    *http.Client
	userAgent     string
	thumbnailBase string
}

// Option configures a Client.
type Option func(*Client)

// WithThumbnailBase overrides the thumbnail host, e.g. for an httptest
// server.
func WithThumbnailBase(base string) Option {
	return func(c *Client) {
		c.thumbnailBase = strings.TrimRight(base, "/")
	}
}

// NewClient creates a new HTTP client with a 30 second timeout and the
// "playlist-dl" User-Agent.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		userAgent:     "playlist-dl",
		thumbnailBase: DefaultThumbnailBase,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns an error if:
//   - The request fails
//   - The response status is not 200 OK (ErrNotFound for 404)
//   - Reading the body fails
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
}

// ThumbnailURL returns the URL of a named thumbnail for videoID.
func (c *Client) ThumbnailURL(videoID, name string) string {
	return c.thumbnailBase + "/" + videoID + "/" + name
}

// Thumbnail downloads the largest available thumbnail for videoID.
//
// Example:
//
//	data, err := client.Thumbnail(ctx, "abc123")
func (c *Client) Thumbnail(ctx context.Context, videoID string) ([]byte, error) {
	if videoID == "" {
		return nil, errors.New("empty video id")
	}

	var lastErr error
	for _, name := range thumbnailNames {
		data, err := c.Get(ctx, c.ThumbnailURL(videoID, name))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}
