// Package feeds fetches the portfolio's live content: public GitHub
// repositories and READMEs, and Medium posts through the rss2json proxy.
//
// Every fetch is a single request with no retry. Display code turns the
// results into a [Section]; a failure becomes exactly one error card.
package feeds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Default endpoints.
const (
	DefaultGitHubURL   = "https://api.github.com"
	DefaultRSS2JSONURL = "https://api.rss2json.com/v1/api.json"
	MediumFeedURL      = "https://medium.com/feed/@"
	MediumProfileURL   = "https://medium.com/@"
)

// ErrEmptyFeed is returned when a feed answers but carries no items.
var ErrEmptyFeed = errors.New("feeds: no posts found or invalid feed")

// StatusError is returned for a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("feeds: %s: status %d", e.URL, e.StatusCode)
}

// Client performs the feed requests. The zero value is not usable; call
// NewClient.
type Client struct {
	HTTP        *http.Client
	GitHubURL   string
	RSS2JSONURL string
	UserAgent   string
}

// NewClient returns a client against the public endpoints. A nil hc uses a
// client with a 10 second timeout.
func NewClient(hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		HTTP:        hc,
		GitHubURL:   DefaultGitHubURL,
		RSS2JSONURL: DefaultRSS2JSONURL,
		UserAgent:   "folio",
	}
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("feeds: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("feeds: get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return &StatusError{URL: url, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("feeds: decode %s: %w", url, err)
	}
	return nil
}
