package feeds

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Repo is a public GitHub repository.
type Repo struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	HTMLURL     string    `json:"html_url"`
	Language    string    `json:"language"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	UpdatedAt   time.Time `json:"updated_at"`
	Owner       struct {
		Login string `json:"login"`
	} `json:"owner"`
}

// Repos lists up to max of user's most recently updated repositories. The
// profile repository named after the user is dropped, so fewer than max
// may be returned.
func (c *Client) Repos(ctx context.Context, user string, max int) ([]Repo, error) {
	if max <= 0 {
		max = 4
	}
	u := fmt.Sprintf("%s/users/%s/repos?sort=updated&per_page=%d",
		strings.TrimRight(c.GitHubURL, "/"), url.PathEscape(user), max)

	var repos []Repo
	if err := c.getJSON(ctx, u, &repos); err != nil {
		return nil, err
	}
	out := repos[:0]
	for _, r := range repos {
		if r.Name == user {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type readmeResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// Readme returns the decoded README markdown of owner/repo.
func (c *Client) Readme(ctx context.Context, owner, repo string) (string, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/readme",
		strings.TrimRight(c.GitHubURL, "/"), url.PathEscape(owner), url.PathEscape(repo))

	var r readmeResponse
	if err := c.getJSON(ctx, u, &r); err != nil {
		return "", err
	}
	if r.Encoding != "" && r.Encoding != "base64" {
		return "", fmt.Errorf("feeds: readme %s/%s: unsupported encoding %q", owner, repo, r.Encoding)
	}
	// GitHub wraps the payload at 60 columns.
	raw := strings.NewReplacer("\n", "", "\r", "").Replace(r.Content)
	b, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("feeds: readme %s/%s: %w", owner, repo, err)
	}
	return string(b), nil
}
