package window

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/feeds"
	"github.com/phanxgames/folio/site"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g, err := NewGame(Options{Width: 640, Height: 480, Rand: rand.New(rand.NewPCG(1, 2))})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestNewGameWiresContent(t *testing.T) {
	g := newTestGame(t)
	if g.name.Text() != site.Default().Personal.Name {
		t.Errorf("name = %q", g.name.Text())
	}
	if g.subtitle.Text() == "" {
		t.Error("rotator did not start typing")
	}
	if g.nowPlaying.Text() == "" || g.quote.Text() == "" {
		t.Error("footer cyclers did not show their first item")
	}
	if g.Panel() != PanelAbout || !strings.Contains(g.tabs.Text(), "[1 About]") {
		t.Errorf("panel = %v tabs = %q", g.Panel(), g.tabs.Text())
	}
	if len(g.Web().Points()) != 120 {
		t.Errorf("web points = %d", len(g.Web().Points()))
	}
}

func TestHandleKeys(t *testing.T) {
	g := newTestGame(t)

	g.handleKey(ebiten.KeyDigit5)
	if g.Panel() != PanelRepos {
		t.Errorf("panel = %v, want Repositories", g.Panel())
	}
	g.handleKey(ebiten.KeyTab)
	if g.Panel() != PanelPosts {
		t.Errorf("panel = %v, want Posts", g.Panel())
	}
	g.handleKey(ebiten.KeyTab)
	if g.Panel() != PanelAbout {
		t.Errorf("panel = %v, want wrap to About", g.Panel())
	}

	before := g.themes.Index()
	g.handleKey(ebiten.KeyT)
	if g.themes.Index() != before+1 {
		t.Errorf("theme index = %d, want %d", g.themes.Index(), before+1)
	}
	if g.Web().Color() != g.themes.Primary() {
		t.Error("theme cycle did not recolour the web")
	}

	mode := g.themes.Mode()
	g.handleKey(ebiten.KeyM)
	if g.themes.Mode() == mode {
		t.Error("mode not toggled")
	}

	g.handleKey(ebiten.KeyP)
	if !g.Web().Paused() {
		t.Error("P did not pause the web")
	}
	g.handleKey(ebiten.KeyP)
	if g.Web().Paused() {
		t.Error("P did not resume the web")
	}

	g.handleKey(ebiten.KeySpace)
	if !g.Rotator().Paused() {
		t.Error("space did not pause the rotator")
	}

	g.handleKey(ebiten.KeyQ)
	if !g.quit {
		t.Error("Q did not quit")
	}
}

func TestInjectKeysOnePerFrame(t *testing.T) {
	g := newTestGame(t)
	g.InjectKeys(ebiten.KeyDigit2, ebiten.KeyDigit3)
	if !g.processInjectedInput() || g.Panel() != PanelProjects {
		t.Fatalf("first frame panel = %v", g.Panel())
	}
	if len(g.injectQueue) != 1 {
		t.Fatalf("queue = %d, want 1", len(g.injectQueue))
	}
	g.processInjectedInput()
	if g.Panel() != PanelResearch {
		t.Errorf("second frame panel = %v", g.Panel())
	}
	if g.processInjectedInput() {
		t.Error("empty queue reported a consumed key")
	}
}

func TestTickAdvancesRotator(t *testing.T) {
	g := newTestGame(t)
	first := g.subtitle.Text()
	g.tick(200 * time.Millisecond)
	if len(g.subtitle.Text()) <= len(first) {
		t.Errorf("subtitle %q did not grow from %q", g.subtitle.Text(), first)
	}
	g.ToggleRotator()
	frozen := g.subtitle.Text()
	g.tick(time.Second)
	if g.subtitle.Text() != frozen {
		t.Error("paused rotator advanced")
	}
}

func TestSetHiddenStopsWeb(t *testing.T) {
	g := newTestGame(t)
	g.SetHidden(true)
	if g.Web().Running() {
		t.Error("hidden web still running")
	}
	g.SetHidden(false)
	if !g.Web().Running() {
		t.Error("shown web not running")
	}
}

func TestLayoutSchedulesResize(t *testing.T) {
	g := newTestGame(t)
	if w, h := g.Layout(640, 480); w != 640 || h != 480 || g.resize {
		t.Fatalf("same size Layout = %dx%d resize %v", w, h, g.resize)
	}
	g.Layout(800, 600)
	if !g.resize {
		t.Error("size change did not schedule a resize")
	}
}

type fakeFetcher struct {
	repoErr error
}

func (f fakeFetcher) Repos(ctx context.Context, user string, max int) ([]feeds.Repo, error) {
	if f.repoErr != nil {
		return nil, f.repoErr
	}
	return []feeds.Repo{{Name: "Meow-Mocks"}}, nil
}

func (f fakeFetcher) Posts(ctx context.Context, user string, max int) ([]feeds.Post, error) {
	return []feeds.Post{{Title: "Shannon"}}, nil
}

func TestFeedsDeliveredToFrameLoop(t *testing.T) {
	g := newTestGame(t)
	g.SelectPanel(PanelRepos)
	if g.body.Text() != loadingText {
		t.Fatalf("body = %q, want loading placeholder", g.body.Text())
	}

	g.LoadFeeds(context.Background(), fakeFetcher{repoErr: errors.New("offline")}, "", "")
	deadline := time.Now().Add(5 * time.Second)
	for len(g.sections) < 2 && time.Now().Before(deadline) {
		g.drainFeeds()
		time.Sleep(time.Millisecond)
	}
	if len(g.sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(g.sections))
	}
	if !g.sections[PanelRepos].Failed() {
		t.Error("repo failure not turned into an error section")
	}
	if !strings.Contains(g.body.Text(), feeds.ReposErrorText) {
		t.Errorf("visible panel not refreshed: %q", g.body.Text())
	}
	if strings.Count(g.body.Text(), "!") != 1 {
		t.Errorf("error panel = %q, want one error card", g.body.Text())
	}
}

func TestPanelText(t *testing.T) {
	s := site.Default()
	about := panelText(PanelAbout, s, nil)
	if !strings.Contains(about, s.Personal.FunFacts[0]) {
		t.Errorf("about = %q", about)
	}
	if got := panelText(PanelProjects, s, nil); !strings.Contains(got, "(coming soon)") {
		t.Error("coming-soon project not marked")
	}
	if got := panelText(PanelMusic, s, nil); !strings.Contains(got, "open.spotify.com/embed/track/") {
		t.Error("music panel has no embed link")
	}
	posts := feeds.PostSection("u", []feeds.Post{{Title: "A"}}, nil)
	got := panelText(PanelPosts, s, map[PanelID]feeds.Section{PanelPosts: posts})
	if !strings.Contains(got, "View all on Medium: https://medium.com/@u") {
		t.Errorf("posts = %q", got)
	}
}

func TestTabLine(t *testing.T) {
	got := tabLine(PanelMusic)
	if !strings.Contains(got, "[4 Music]") || strings.Contains(got, "[1 About]") {
		t.Errorf("tabLine = %q", got)
	}
	if PanelID(42).String() != "PanelID(42)" {
		t.Errorf("out of range String = %q", PanelID(42))
	}
}

func TestWrapText(t *testing.T) {
	measure := func(s string) float64 { return float64(len(s)) }
	tests := []struct {
		in    string
		width float64
		want  []string
	}{
		{"one two three", 7, []string{"one two", "three"}},
		{"averyveryverylongword x", 5, []string{"averyveryverylongword", "x"}},
		{"a\n\nb", 10, []string{"a", "", "b"}},
		{"no wrap here", 0, []string{"no wrap here"}},
	}
	for _, tt := range tests {
		got := wrapText(tt.in, tt.width, measure)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("wrapText(%q, %v) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestLabelImplementsTextElement(t *testing.T) {
	var _ folio.TextElement = (*Label)(nil)
	fonts, err := DefaultFonts()
	if err != nil {
		t.Fatal(err)
	}
	l := NewLabel(fonts.Body, "x")
	l.FadeTo(0, 100*time.Millisecond)
	l.Update(100 * time.Millisecond)
	if l.Opacity() > 0.001 {
		t.Errorf("opacity = %f, want faded out", l.Opacity())
	}
	l.SetOpacity(1)
	if l.Opacity() != 1 {
		t.Error("SetOpacity did not jump")
	}
}

func TestPausedRotatorFreezesFade(t *testing.T) {
	g := newTestGame(t)
	g.subtitle.SetOpacity(0)
	g.subtitle.FadeTo(1, time.Second)
	g.ToggleRotator()
	g.tick(500 * time.Millisecond)
	if g.subtitle.Opacity() != 0 {
		t.Errorf("opacity = %v while paused, want frozen at 0", g.subtitle.Opacity())
	}
	g.ToggleRotator()
	g.tick(time.Second)
	if g.subtitle.Opacity() == 0 {
		t.Error("fade did not continue after resume")
	}
}

func TestDeliverGivesUpOnCancel(t *testing.T) {
	g := newTestGame(t)
	for i := 0; i < cap(g.feedc); i++ {
		g.feedc <- feedResult{panel: PanelRepos}
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan bool, 1)
	go func() { done <- g.deliver(ctx, feedResult{panel: PanelPosts}) }()
	cancel()
	select {
	case ok := <-done:
		if ok {
			t.Error("deliver reported success on a full channel")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("deliver blocked after cancel")
	}
}
