// Package site holds the static portfolio content: the person, their
// projects, research notes, music tracks, social links, themes and quotes.
//
// Content is a YAML document. [Default] returns the built-in document
// embedded in the binary; [Load] reads a replacement from disk.
package site

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var defaultYAML []byte

// fallbackSubtitles are rotated in the hero when the document lists none.
var fallbackSubtitles = []string{
	"Full-stack Developer",
	"Research Enthusiast",
	"Music Producer",
	"AI Explorer",
	"Creative Thinker",
}

// Site is the whole portfolio document.
type Site struct {
	Personal   Personal   `yaml:"personal" json:"personal"`
	Projects   []Project  `yaml:"projects" json:"projects"`
	Research   []Research `yaml:"research" json:"research"`
	Music      []Track    `yaml:"music" json:"music"`
	Social     Social     `yaml:"social" json:"social"`
	Spotify    Spotify    `yaml:"spotify" json:"spotify"`
	Themes     []Theme    `yaml:"themes" json:"themes"`
	Quotes     []Quote    `yaml:"quotes" json:"quotes"`
	Navigation []NavLink  `yaml:"navigation" json:"navigation"`
	Meta       Meta       `yaml:"meta" json:"meta"`
}

// Personal describes the portfolio owner.
type Personal struct {
	Name         string   `yaml:"name" json:"name"`
	Title        string   `yaml:"title" json:"title"`
	Subtitle     []string `yaml:"subtitle" json:"subtitle"`
	Bio          string   `yaml:"bio" json:"bio"`
	Description  string   `yaml:"description" json:"description"`
	CurrentFocus string   `yaml:"currentFocus" json:"currentFocus"`
	Personality  string   `yaml:"personality" json:"personality"`
	Email        string   `yaml:"email" json:"email"`
	GitHub       string   `yaml:"github" json:"github"`
	Medium       string   `yaml:"medium" json:"medium"`
	FunFacts     []string `yaml:"funFacts" json:"funFacts"`
}

// Project is one entry of the projects grid.
type Project struct {
	ID              string   `yaml:"id" json:"id"`
	Title           string   `yaml:"title" json:"title"`
	Description     string   `yaml:"description" json:"description"`
	LongDescription string   `yaml:"longDescription" json:"longDescription"`
	Technologies    []string `yaml:"technologies" json:"technologies"`
	GitHubURL       string   `yaml:"githubUrl" json:"githubUrl"`
	LiveURL         string   `yaml:"liveUrl" json:"liveUrl"`
	Status          string   `yaml:"status" json:"status"`
	Featured        bool     `yaml:"featured" json:"featured"`
	Year            string   `yaml:"year" json:"year"`
	Type            string   `yaml:"type" json:"type"`
	Color           string   `yaml:"color" json:"color"`
	Highlights      []string `yaml:"highlights" json:"highlights"`
}

// ComingSoon reports whether the project is announced but not live.
func (p Project) ComingSoon() bool {
	return p.Status == "coming-soon"
}

// Links returns the project's usable links; "#" placeholders are dropped.
func (p Project) Links() []string {
	var out []string
	for _, u := range []string{p.GitHubURL, p.LiveURL} {
		if u != "" && u != "#" {
			out = append(out, u)
		}
	}
	return out
}

// Research is one research note.
type Research struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	URL         string   `yaml:"url" json:"url"`
	Year        string   `yaml:"year" json:"year"`
	Type        string   `yaml:"type" json:"type"`
	Status      string   `yaml:"status" json:"status"`
	Color       string   `yaml:"color" json:"color"`
	Tags        []string `yaml:"tags" json:"tags"`
}

// Track is one released music track.
type Track struct {
	ID             string   `yaml:"id" json:"id"`
	Title          string   `yaml:"title" json:"title"`
	Artist         string   `yaml:"artist" json:"artist"`
	Platform       string   `yaml:"platform" json:"platform"`
	URL            string   `yaml:"url" json:"url"`
	YouTubeURL     string   `yaml:"youtubeUrl" json:"youtubeUrl,omitempty"`
	EmbedID        string   `yaml:"embedId" json:"embedId,omitempty"`
	YouTubeEmbedID string   `yaml:"youtubeEmbedId" json:"youtubeEmbedId,omitempty"`
	Year           string   `yaml:"year" json:"year"`
	Type           string   `yaml:"type" json:"type"`
	Description    string   `yaml:"description" json:"description"`
	Genre          string   `yaml:"genre" json:"genre"`
	Duration       string   `yaml:"duration" json:"duration"`
	Status         string   `yaml:"status" json:"status"`
	Featured       bool     `yaml:"featured" json:"featured"`
	Color          string   `yaml:"color" json:"color"`
	Highlights     []string `yaml:"highlights" json:"highlights"`
}

// Embed returns the player URL for the track's platform, or "" when the
// track has no embeddable id.
func (t Track) Embed() string {
	switch {
	case t.Platform == "spotify" && t.EmbedID != "":
		return "https://open.spotify.com/embed/track/" + t.EmbedID
	case t.Platform == "youtube" && t.YouTubeEmbedID != "":
		return "https://www.youtube.com/embed/" + t.YouTubeEmbedID
	}
	return ""
}

// Social holds profile links.
type Social struct {
	GitHub       string `yaml:"github" json:"github"`
	Medium       string `yaml:"medium" json:"medium"`
	YouTube      string `yaml:"youtube" json:"youtube"`
	Spotify      string `yaml:"spotify" json:"spotify"`
	BuyMeACoffee string `yaml:"buymeacoffee" json:"buymeacoffee"`
	Email        string `yaml:"email" json:"email"`
}

// Spotify configures the "now playing" label.
type Spotify struct {
	ArtistID           string   `yaml:"artistId" json:"artistId"`
	NowPlayingMessages []string `yaml:"nowPlayingMessages" json:"nowPlayingMessages"`
}

// ArtistURL returns the artist page the label links to.
func (s Spotify) ArtistURL() string {
	if s.ArtistID == "" {
		return ""
	}
	return "https://open.spotify.com/artist/" + s.ArtistID
}

// Theme is one entry of the palette cycle.
type Theme struct {
	Name    string `yaml:"name" json:"name"`
	Class   string `yaml:"class" json:"class"`
	Primary string `yaml:"primary" json:"primary"`
	Icon    string `yaml:"icon" json:"icon"`
	Type    string `yaml:"type" json:"type"`
}

// Quote is one rotating quote.
type Quote struct {
	Text   string `yaml:"text" json:"text"`
	Author string `yaml:"author" json:"author"`
}

// String formats the quote for a single-line label.
func (q Quote) String() string {
	if q.Author == "" {
		return `"` + q.Text + `"`
	}
	return `"` + q.Text + `" - ` + q.Author
}

// NavLink is one navigation entry.
type NavLink struct {
	Label string `yaml:"label" json:"label"`
	Href  string `yaml:"href" json:"href"`
}

// Meta holds document metadata.
type Meta struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Keywords    []string `yaml:"keywords" json:"keywords"`
	Author      string   `yaml:"author" json:"author"`
	URL         string   `yaml:"url" json:"url"`
}

// Subtitles returns the hero rotation strings, falling back to a built-in
// list when the document has none.
func (s *Site) Subtitles() []string {
	if len(s.Personal.Subtitle) > 0 {
		return s.Personal.Subtitle
	}
	return append([]string(nil), fallbackSubtitles...)
}

// QuoteLines returns every quote formatted for display.
func (s *Site) QuoteLines() []string {
	out := make([]string, 0, len(s.Quotes))
	for _, q := range s.Quotes {
		out = append(out, q.String())
	}
	return out
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("site: invalid document")

// Validate checks the fields the front ends depend on.
func (s *Site) Validate() error {
	var problems []string
	if strings.TrimSpace(s.Personal.Name) == "" {
		problems = append(problems, "personal.name is required")
	}
	if len(s.Themes) == 0 {
		problems = append(problems, "at least one theme is required")
	}
	for i, t := range s.Themes {
		if !validHex(t.Primary) {
			problems = append(problems, fmt.Sprintf("themes[%d].primary %q is not #rrggbb", i, t.Primary))
		}
	}
	for i, p := range s.Projects {
		if p.Title == "" {
			problems = append(problems, fmt.Sprintf("projects[%d].title is required", i))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

func validHex(s string) bool {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return false
	}
	_, err := strconv.ParseUint(h, 16, 32)
	return err == nil
}

// Parse decodes and validates a YAML document.
func Parse(data []byte) (*Site, error) {
	var s Site
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("site: parse: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("site: read %s: %w", path, err)
	}
	return Parse(data)
}

// Default returns a fresh copy of the embedded document.
func Default() *Site {
	s, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("site: embedded document: %v", err))
	}
	return s
}
