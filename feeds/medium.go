package feeds

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// PlaceholderThumbnail is shown for posts without an image.
const PlaceholderThumbnail = "https://via.placeholder.com/60"

// rss2json reports dates in this layout, UTC.
const rss2jsonLayout = "2006-01-02 15:04:05"

var imgSrc = regexp.MustCompile(`<img.*?src="(.*?)".*?>`)

// Post is one Medium article.
type Post struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Published   time.Time `json:"published"`
	Date        string    `json:"date"`
	Thumbnail   string    `json:"thumbnail"`
	Description string    `json:"description"`
}

type rss2jsonResponse struct {
	Status string `json:"status"`
	Items  []struct {
		Title       string `json:"title"`
		Link        string `json:"link"`
		PubDate     string `json:"pubDate"`
		Content     string `json:"content"`
		Description string `json:"description"`
	} `json:"items"`
}

// Posts returns up to max of user's latest Medium posts. A feed that is not
// ok or has no items yields ErrEmptyFeed.
func (c *Client) Posts(ctx context.Context, user string, max int) ([]Post, error) {
	if max <= 0 {
		max = 3
	}
	u := c.RSS2JSONURL + "?rss_url=" + url.QueryEscape(MediumFeedURL+user)

	var r rss2jsonResponse
	if err := c.getJSON(ctx, u, &r); err != nil {
		return nil, err
	}
	if r.Status != "ok" || len(r.Items) == 0 {
		return nil, ErrEmptyFeed
	}

	items := r.Items
	if len(items) > max {
		items = items[:max]
	}
	posts := make([]Post, 0, len(items))
	for _, it := range items {
		p := Post{
			Title:       it.Title,
			Link:        it.Link,
			Thumbnail:   Thumbnail(it.Content),
			Description: strings.TrimSpace(it.Description),
		}
		if t, err := time.Parse(rss2jsonLayout, it.PubDate); err == nil {
			p.Published = t
			p.Date = t.Format("Jan 2, 2006")
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// Thumbnail returns the src of the first <img> in html, or
// PlaceholderThumbnail.
func Thumbnail(html string) string {
	if m := imgSrc.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	return PlaceholderThumbnail
}
