package feeds

import "strconv"

// Messages shown in place of a section's content when its fetch fails.
const (
	ReposErrorText  = "Couldn't load repositories. Please try again later."
	ReadmeErrorText = "Couldn't load README. The repository may not have one."
	PostsErrorText  = "Couldn't load Medium posts. Please try again later."
)

// Kind classifies a card.
type Kind string

const (
	KindRepo   Kind = "repo"
	KindPost   Kind = "post"
	KindReadme Kind = "readme"
	KindLink   Kind = "link"
	KindError  Kind = "error"
)

// Card is one display block of a section.
type Card struct {
	Kind  Kind     `json:"kind"`
	Title string   `json:"title,omitempty"`
	Body  string   `json:"body,omitempty"`
	URL   string   `json:"url,omitempty"`
	Image string   `json:"image,omitempty"`
	Meta  []string `json:"meta,omitempty"`
}

// Section is the display model of one fetched feed. A failed section holds
// exactly one KindError card and nothing else.
type Section struct {
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
}

// Failed reports whether the section is the error placeholder.
func (s Section) Failed() bool {
	return len(s.Cards) == 1 && s.Cards[0].Kind == KindError
}

func failed(name, text string) Section {
	return Section{Name: name, Cards: []Card{{Kind: KindError, Body: text}}}
}

// RepoSection builds the repositories section.
func RepoSection(repos []Repo, err error) Section {
	if err != nil {
		return failed("repos", ReposErrorText)
	}
	s := Section{Name: "repos", Cards: make([]Card, 0, len(repos))}
	for _, r := range repos {
		desc := r.Description
		if desc == "" {
			desc = "No description available."
		}
		lang := r.Language
		if lang == "" {
			lang = "N/A"
		}
		s.Cards = append(s.Cards, Card{
			Kind:  KindRepo,
			Title: r.Name,
			Body:  desc,
			URL:   r.HTMLURL,
			Meta:  []string{"★ " + strconv.Itoa(r.Stars), "⑂ " + strconv.Itoa(r.Forks), lang},
		})
	}
	return s
}

// ReadmeSection builds the README viewer for repo from its markdown,
// rendering it to HTML.
func ReadmeSection(repo, markdown string, err error) Section {
	if err != nil {
		return failed("readme", ReadmeErrorText)
	}
	html, err := RenderMarkdown(markdown)
	if err != nil {
		return failed("readme", ReadmeErrorText)
	}
	return Section{Name: "readme", Cards: []Card{{Kind: KindReadme, Title: repo, Body: html}}}
}

// PostSection builds the posts section, ending with a link to the full
// profile.
func PostSection(user string, posts []Post, err error) Section {
	if err != nil {
		return failed("posts", PostsErrorText)
	}
	s := Section{Name: "posts", Cards: make([]Card, 0, len(posts)+1)}
	for _, p := range posts {
		desc := p.Description
		if desc == "" {
			desc = "Click to read this article on Medium."
		}
		var meta []string
		if p.Date != "" {
			meta = []string{p.Date}
		}
		s.Cards = append(s.Cards, Card{
			Kind:  KindPost,
			Title: p.Title,
			Body:  desc,
			URL:   p.Link,
			Image: p.Thumbnail,
			Meta:  meta,
		})
	}
	s.Cards = append(s.Cards, Card{Kind: KindLink, Title: "View all on Medium", URL: MediumProfileURL + user})
	return s
}
