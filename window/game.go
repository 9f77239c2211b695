// Package window is the Ebitengine front end: the web animation as a
// background layer, the hero name and rotating subtitle, the now playing
// and quote lines, and switchable content panels.
package window

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/feeds"
	"github.com/phanxgames/folio/site"
)

// Interval rotations of the footer lines.
const (
	nowPlayingInterval = 10 * time.Second
	quoteInterval      = 24 * time.Second
	quoteFade          = 500 * time.Millisecond
)

// Fetcher is the subset of feeds.Client the window uses.
type Fetcher interface {
	Repos(ctx context.Context, user string, max int) ([]feeds.Repo, error)
	Posts(ctx context.Context, user string, max int) ([]feeds.Post, error)
}

// Options configures a Game. Zero fields take the defaults noted.
type Options struct {
	Site          *site.Site    // default site.Default()
	Themes        *folio.Themes // default in-memory themes over the site palette
	Width, Height int           // initial layout size, default 1280x720
	ReducedMotion bool
	ShowFPS       bool
	Debug         bool
	ScreenshotDir string // default "screenshots"
	Fonts         *Fonts // default DefaultFonts()
	Rand          *rand.Rand
}

type feedResult struct {
	panel   PanelID
	section feeds.Section
}

// Game implements ebiten.Game for the portfolio.
type Game struct {
	site   *site.Site
	themes *folio.Themes
	fonts  Fonts
	sched  *folio.Scheduler

	surface *Surface
	web     *folio.Web
	w, h    int
	resize  bool

	name       *Label
	subtitle   *Label
	nowPlaying *Label
	quote      *Label
	tabs       *Label
	body       *Label

	rotator *folio.Rotator
	glitch  *folio.Glitch
	cyclers []*folio.Cycler

	panel    PanelID
	sections map[PanelID]feeds.Section
	feedc    chan feedResult

	background folio.Color
	accent     folio.Color

	hidden  bool // forced hidden by a test script
	focused bool
	quit    bool

	injectQueue     []ebiten.Key
	keyBuf          []ebiten.Key
	screenshotQueue []string
	screenshotDir   string
	testRunner      *TestRunner

	fps   *fpsWidget
	debug bool
	stats debugStats
	frame uint64
}

// NewGame builds the scene. Errors come only from font loading.
func NewGame(opts Options) (*Game, error) {
	if opts.Site == nil {
		opts.Site = site.Default()
	}
	if opts.Width <= 0 {
		opts.Width = 1280
	}
	if opts.Height <= 0 {
		opts.Height = 720
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = "screenshots"
	}
	if opts.Themes == nil {
		opts.Themes, _ = folio.NewThemes(nil, opts.Site.Themes, false)
	}
	if opts.Fonts == nil {
		fs, err := DefaultFonts()
		if err != nil {
			return nil, err
		}
		opts.Fonts = &fs
	}

	g := &Game{
		site:          opts.Site,
		themes:        opts.Themes,
		fonts:         *opts.Fonts,
		sched:         folio.NewScheduler(),
		w:             opts.Width,
		h:             opts.Height,
		sections:      make(map[PanelID]feeds.Section),
		feedc:         make(chan feedResult, 2),
		focused:       true,
		screenshotDir: opts.ScreenshotDir,
		debug:         opts.Debug,
	}
	if opts.ShowFPS {
		g.fps = newFPSWidget()
	}

	g.surface = NewSurface(g.w, g.h)
	g.web = folio.NewWeb(g.surface, float64(g.w), float64(g.h), folio.WebConfig{
		ReducedMotion: opts.ReducedMotion,
		Color:         g.themes.Primary(),
		Rand:          opts.Rand,
	})

	s := g.site
	g.name = NewLabel(g.fonts.Title, s.Personal.Name)
	g.name.Align = AlignCenter
	g.subtitle = NewLabel(g.fonts.Large, "")
	g.subtitle.Align = AlignCenter
	g.nowPlaying = NewLabel(g.fonts.Small, "")
	g.quote = NewLabel(g.fonts.Small, "")
	g.quote.Align = AlignCenter
	g.tabs = NewLabel(g.fonts.Body, "")
	g.body = NewLabel(g.fonts.Body, "")

	g.glitch = folio.NewGlitch(g.sched, g.name, s.Personal.Name, folio.GlitchConfig{Rand: opts.Rand})
	g.rotator = folio.NewRotator(g.sched, g.subtitle, s.Subtitles(), folio.RotatorConfig{
		Rand:         opts.Rand,
		OnTextChange: func(string, folio.Effect) { g.glitch.Start() },
	})
	if c := folio.NewCycler(g.sched, g.nowPlaying, s.Spotify.NowPlayingMessages, nowPlayingInterval, 0); c != nil {
		g.cyclers = append(g.cyclers, c)
	}
	if c := folio.NewCycler(g.sched, g.quote, s.QuoteLines(), quoteInterval, quoteFade); c != nil {
		g.cyclers = append(g.cyclers, c)
	}

	g.applyTheme()
	g.layout()
	g.SelectPanel(PanelAbout)
	return g, nil
}

// LoadFeeds fetches the repository and post sections in the background.
// Results are applied on the frame loop.
func (g *Game) LoadFeeds(ctx context.Context, f Fetcher, githubUser, mediumUser string) {
	if githubUser == "" {
		githubUser = g.site.Personal.GitHub
	}
	if mediumUser == "" {
		mediumUser = g.site.Personal.Medium
	}
	go func() {
		repos, err := f.Repos(ctx, githubUser, 4)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[folio] Error fetching GitHub repositories: %v\n", err)
		}
		g.deliver(ctx, feedResult{PanelRepos, feeds.RepoSection(repos, err)})
	}()
	go func() {
		posts, err := f.Posts(ctx, mediumUser, 3)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[folio] Error fetching Medium feed: %v\n", err)
		}
		g.deliver(ctx, feedResult{PanelPosts, feeds.PostSection(mediumUser, posts, err)})
	}()
}

// deliver hands r to the frame loop, giving up when ctx is done.
func (g *Game) deliver(ctx context.Context, r feedResult) bool {
	select {
	case g.feedc <- r:
		return true
	case <-ctx.Done():
		return false
	}
}

// drainFeeds applies every delivered section without blocking.
func (g *Game) drainFeeds() {
	for {
		select {
		case r := <-g.feedc:
			g.sections[r.panel] = r.section
			if r.panel == g.panel {
				g.refreshPanel()
			}
		default:
			return
		}
	}
}

// Update advances timers, input and animations by one tick.
func (g *Game) Update() error {
	var t0 time.Time
	if g.debug {
		t0 = time.Now()
	}
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	dt := time.Second / time.Duration(tps)

	if g.testRunner != nil {
		g.testRunner.step(g)
	}
	g.processInput()
	if g.quit {
		return ebiten.Termination
	}

	g.focused = ebiten.IsFocused()
	g.web.SetVisible(g.focused && !g.hidden)
	if g.resize {
		g.resize = false
		g.surface.Resize(g.w, g.h)
		g.web.Resize(float64(g.w), float64(g.h))
		g.layout()
	}

	g.drainFeeds()
	g.tick(dt)

	if g.debug {
		g.stats.updateTime = time.Since(t0)
	}
	return nil
}

// tick advances the scheduler and label animations by dt.
func (g *Game) tick(dt time.Duration) {
	g.sched.Advance(dt)
	for _, l := range g.labels() {
		// A paused rotator freezes its fade too.
		if l == g.subtitle && g.rotator.Paused() {
			continue
		}
		l.Update(dt)
	}
	if g.fps != nil {
		g.fps.update(dt)
	}
}

func (g *Game) processInput() {
	if g.processInjectedInput() {
		return
	}
	g.keyBuf = pressedKeys(g.keyBuf)
	for _, k := range g.keyBuf {
		g.handleKey(k)
	}
}

func (g *Game) labels() []*Label {
	return []*Label{g.name, g.subtitle, g.nowPlaying, g.quote, g.tabs, g.body}
}

// Draw composites the web layer and the text onto screen.
func (g *Game) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if g.debug {
		t0 = time.Now()
	}
	screen.Fill(g.background.NRGBA())

	g.web.Frame()
	if g.debug {
		g.stats.webTime = time.Since(t0)
		t0 = time.Now()
	}
	screen.DrawImage(g.surface.Image(), nil)

	for _, l := range g.labels() {
		l.Draw(screen)
	}
	if g.fps != nil {
		g.fps.draw(screen)
	}

	if g.debug {
		g.stats.drawTime = time.Since(t0)
		g.stats.edges = g.web.Edges()
		g.stats.pending = g.sched.Pending()
		g.debugLog(os.Stderr, g.stats)
	}
	g.frame++
	g.flushScreenshots(screen)
}

// Layout tracks the outside size; a change regenerates the web on the next
// Update.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.resize = true
	}
	return g.w, g.h
}

// layout positions the labels for the current size.
func (g *Game) layout() {
	w, h := float64(g.w), float64(g.h)
	margin := 32.0
	g.name.X, g.name.Y = w/2, h*0.12
	g.subtitle.X, g.subtitle.Y = w/2, g.name.Y+g.fonts.Title.LineHeight()+8
	g.tabs.X, g.tabs.Y = margin, g.subtitle.Y+g.fonts.Large.LineHeight()+32
	g.body.X, g.body.Y = margin, g.tabs.Y+g.fonts.Body.LineHeight()+16
	g.body.WrapWidth = w - 2*margin
	g.nowPlaying.X, g.nowPlaying.Y = margin, h-margin-2*g.fonts.Small.LineHeight()
	g.quote.X, g.quote.Y = w/2, h-margin-g.fonts.Small.LineHeight()
}

// SelectPanel shows panel p.
func (g *Game) SelectPanel(p PanelID) {
	if p < 0 || p >= panelCount {
		return
	}
	g.panel = p
	g.tabs.SetText(tabLine(p))
	g.refreshPanel()
}

// Panel returns the visible panel.
func (g *Game) Panel() PanelID {
	return g.panel
}

func (g *Game) refreshPanel() {
	g.body.SetText(panelText(g.panel, g.site, g.sections))
}

// CycleTheme advances the palette and recolours the web.
func (g *Game) CycleTheme() {
	if _, err := g.themes.Cycle(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[folio] theme: %v\n", err)
	}
	g.applyTheme()
}

// ToggleMode flips light and dark mode.
func (g *Game) ToggleMode() {
	if _, err := g.themes.ToggleMode(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[folio] theme: %v\n", err)
	}
	g.applyTheme()
}

func (g *Game) applyTheme() {
	g.accent = g.themes.Primary()
	g.web.SetColor(g.accent)
	fg := folio.Color{R: 0.93, G: 0.94, B: 0.96, A: 1}
	g.background = folio.Color{R: 0.04, G: 0.05, B: 0.08, A: 1}
	if g.themes.Mode() == folio.ModeLight {
		fg = folio.Color{R: 0.1, G: 0.11, B: 0.14, A: 1}
		g.background = folio.Color{R: 0.96, G: 0.97, B: 0.98, A: 1}
	}
	for _, l := range g.labels() {
		l.Color = fg
	}
	g.name.Color = g.accent
	g.tabs.Color = g.accent
}

// ToggleWeb pauses or resumes the web animation.
func (g *Game) ToggleWeb() {
	if g.web.Paused() {
		g.web.Resume()
	} else {
		g.web.Pause()
	}
}

// ToggleRotator pauses or resumes the subtitle rotation.
func (g *Game) ToggleRotator() {
	if g.rotator.Paused() {
		g.rotator.Resume()
	} else {
		g.rotator.Pause()
	}
}

// SetHidden forces the web to behave as if the window were not visible.
func (g *Game) SetHidden(hidden bool) {
	g.hidden = hidden
	g.web.SetVisible(g.focused && !hidden)
}

// Quit makes the next Update end the game.
func (g *Game) Quit() {
	g.quit = true
}

// Web exposes the background animation.
func (g *Game) Web() *folio.Web {
	return g.web
}

// Rotator exposes the subtitle rotator.
func (g *Game) Rotator() *folio.Rotator {
	return g.rotator
}
