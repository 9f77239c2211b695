package window

import (
	"fmt"
	"strings"

	"github.com/phanxgames/folio/feeds"
	"github.com/phanxgames/folio/site"
)

// PanelID names one of the switchable content sections.
type PanelID int

const (
	PanelAbout PanelID = iota
	PanelProjects
	PanelResearch
	PanelMusic
	PanelRepos
	PanelPosts
	panelCount
)

var panelTitles = [panelCount]string{"About", "Projects", "Research", "Music", "Repositories", "Posts"}

func (p PanelID) String() string {
	if p < 0 || p >= panelCount {
		return fmt.Sprintf("PanelID(%d)", int(p))
	}
	return panelTitles[p]
}

// loadingText is shown in a feed panel until its section arrives.
const loadingText = "Loading..."

// panelText renders the body of panel p. Feed panels read their section
// from sections; a missing section means the fetch is still running.
func panelText(p PanelID, s *site.Site, sections map[PanelID]feeds.Section) string {
	var b strings.Builder
	switch p {
	case PanelAbout:
		b.WriteString(s.Personal.Bio + "\n\n")
		b.WriteString(s.Personal.Description + "\n\n")
		if s.Personal.CurrentFocus != "" {
			b.WriteString("Current focus: " + s.Personal.CurrentFocus + "\n\n")
		}
		for _, f := range s.Personal.FunFacts {
			b.WriteString("- " + f + "\n")
		}
	case PanelProjects:
		for _, pr := range s.Projects {
			head := pr.Title
			if pr.ComingSoon() {
				head += " (coming soon)"
			}
			fmt.Fprintf(&b, "%s  [%s, %s]\n%s\n", head, pr.Type, pr.Year, pr.Description)
			if len(pr.Technologies) > 0 {
				b.WriteString(strings.Join(pr.Technologies, " / ") + "\n")
			}
			for _, l := range pr.Links() {
				b.WriteString(l + "\n")
			}
			b.WriteString("\n")
		}
	case PanelResearch:
		for _, r := range s.Research {
			fmt.Fprintf(&b, "%s  [%s, %s]\n%s\n", r.Title, r.Type, r.Year, r.Description)
			if len(r.Tags) > 0 {
				b.WriteString("#" + strings.Join(r.Tags, " #") + "\n")
			}
			b.WriteString("\n")
		}
	case PanelMusic:
		for _, t := range s.Music {
			fmt.Fprintf(&b, "%s - %s  (%s, %s)\n%s\n", t.Title, t.Artist, t.Genre, t.Duration, t.Description)
			if u := t.Embed(); u != "" {
				b.WriteString(u + "\n")
			} else if t.URL != "" {
				b.WriteString(t.URL + "\n")
			}
			b.WriteString("\n")
		}
		if u := s.Spotify.ArtistURL(); u != "" {
			b.WriteString("Artist: " + u + "\n")
		}
	case PanelRepos, PanelPosts:
		sec, ok := sections[p]
		if !ok {
			return loadingText
		}
		for _, c := range sec.Cards {
			b.WriteString(cardText(c) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func cardText(c feeds.Card) string {
	switch c.Kind {
	case feeds.KindError:
		return "! " + c.Body
	case feeds.KindLink:
		return c.Title + ": " + c.URL
	}
	var b strings.Builder
	b.WriteString(c.Title)
	if len(c.Meta) > 0 {
		b.WriteString("  " + strings.Join(c.Meta, "  "))
	}
	b.WriteString("\n" + c.Body)
	if c.URL != "" {
		b.WriteString("\n" + c.URL)
	}
	b.WriteString("\n")
	return b.String()
}

// tabLine renders the panel selector with the active entry bracketed.
func tabLine(active PanelID) string {
	parts := make([]string, panelCount)
	for i := PanelID(0); i < panelCount; i++ {
		if i == active {
			parts[i] = fmt.Sprintf("[%d %s]", i+1, i)
		} else {
			parts[i] = fmt.Sprintf(" %d %s ", i+1, i)
		}
	}
	return strings.Join(parts, " ")
}
