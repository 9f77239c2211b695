// Package term renders the portfolio hero in a terminal with tcell: the
// web as glyph lines behind the name, the rotating subtitle and the
// footer cyclers. It shares every animation with the window front end.
package term

import (
	"context"
	"log"
	"math/rand/v2"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/site"
)

// DefaultFrameInterval is the ticker period of Run, about 60 frames a second.
const DefaultFrameInterval = 16 * time.Millisecond

const (
	nowPlayingInterval = 10 * time.Second
	quoteInterval      = 24 * time.Second
	quoteFade          = 500 * time.Millisecond
)

// Options configures an App. Zero fields take the defaults noted.
type Options struct {
	Site          *site.Site    // default site.Default()
	Themes        *folio.Themes // default in-memory themes over the site palette
	ReducedMotion bool
	FrameInterval time.Duration // default DefaultFrameInterval
	Rand          *rand.Rand
	Logger        *log.Logger // theme store failures; nil discards
}

// App is the terminal scene. Drive it with HandleEvent, Tick and Draw, or
// let Run do so.
type App struct {
	screen tcell.Screen
	site   *site.Site
	themes *folio.Themes
	sched  *folio.Scheduler
	logger *log.Logger

	surface *Surface
	web     *folio.Web

	name, subtitle, nowPlaying, quote, help *Label
	labels                                  []*Label

	rotator *folio.Rotator
	glitch  *folio.Glitch
	cyclers []*folio.Cycler

	bg   tcell.Style
	quit bool
}

// NewApp builds the scene for the current screen size.
func NewApp(screen tcell.Screen, opts Options) *App {
	if opts.Site == nil {
		opts.Site = site.Default()
	}
	if opts.Themes == nil {
		opts.Themes, _ = folio.NewThemes(nil, opts.Site.Themes, false)
	}
	a := &App{
		screen: screen,
		site:   opts.Site,
		themes: opts.Themes,
		sched:  folio.NewScheduler(),
		logger: opts.Logger,
	}
	cols, rows := screen.Size()
	a.surface = NewSurface(cols, rows)
	a.web = folio.NewWeb(a.surface, float64(cols*CellWidth), float64(rows*CellHeight), folio.WebConfig{
		ReducedMotion: opts.ReducedMotion,
		Color:         a.themes.Primary(),
		Rand:          opts.Rand,
	})

	s := a.site
	a.name = NewLabel(s.Personal.Name)
	a.name.Align = AlignCenter
	a.subtitle = NewLabel("")
	a.subtitle.Align = AlignCenter
	a.nowPlaying = NewLabel("")
	a.quote = NewLabel("")
	a.quote.Align = AlignCenter
	a.help = NewLabel("q quit  p web  space subtitle  t theme  m mode")
	a.labels = []*Label{a.name, a.subtitle, a.nowPlaying, a.quote, a.help}

	a.glitch = folio.NewGlitch(a.sched, a.name, s.Personal.Name, folio.GlitchConfig{Rand: opts.Rand})
	a.rotator = folio.NewRotator(a.sched, a.subtitle, s.Subtitles(), folio.RotatorConfig{
		Rand:         opts.Rand,
		OnTextChange: func(string, folio.Effect) { a.glitch.Start() },
	})
	if c := folio.NewCycler(a.sched, a.nowPlaying, s.Spotify.NowPlayingMessages, nowPlayingInterval, 0); c != nil {
		a.cyclers = append(a.cyclers, c)
	}
	if c := folio.NewCycler(a.sched, a.quote, s.QuoteLines(), quoteInterval, quoteFade); c != nil {
		a.cyclers = append(a.cyclers, c)
	}

	a.applyTheme()
	a.layout(cols, rows)
	return a
}

// Web exposes the background animation.
func (a *App) Web() *folio.Web { return a.web }

// Rotator exposes the subtitle rotator.
func (a *App) Rotator() *folio.Rotator { return a.rotator }

// Quitting reports whether a quit key was pressed.
func (a *App) Quitting() bool { return a.quit }

// HandleEvent applies a tcell event and reports whether the app should exit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a.handleKey(ev)
	case *tcell.EventResize:
		cols, rows := ev.Size()
		a.resize(cols, rows)
	case *tcell.EventFocus:
		a.web.SetVisible(ev.Focused)
	}
	return a.quit
}

func (a *App) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.quit = true
		return
	case tcell.KeyRune:
	default:
		return
	}
	switch ev.Rune() {
	case 'q', 'Q':
		a.quit = true
	case 'p', 'P':
		if a.web.Paused() {
			a.web.Resume()
		} else {
			a.web.Pause()
		}
	case ' ':
		if a.rotator.Paused() {
			a.rotator.Resume()
		} else {
			a.rotator.Pause()
		}
	case 't', 'T':
		if _, err := a.themes.Cycle(); err != nil {
			a.logf("theme: %v", err)
		}
		a.applyTheme()
	case 'm', 'M':
		if _, err := a.themes.ToggleMode(); err != nil {
			a.logf("theme: %v", err)
		}
		a.applyTheme()
	}
}

func (a *App) resize(cols, rows int) {
	if c, r := a.surface.Size(); c == cols && r == rows {
		return
	}
	a.surface.Resize(cols, rows)
	a.web.Resize(float64(cols*CellWidth), float64(rows*CellHeight))
	a.layout(cols, rows)
}

func (a *App) layout(cols, rows int) {
	mid := cols / 2
	a.name.X, a.name.Y = mid, rows/3
	a.subtitle.X, a.subtitle.Y = mid, rows/3+2
	a.nowPlaying.X, a.nowPlaying.Y = 2, rows-4
	a.quote.X, a.quote.Y = mid, rows-3
	a.help.X, a.help.Y = 2, rows-1
}

func (a *App) applyTheme() {
	primary := a.themes.Primary()
	a.web.SetColor(primary)
	a.bg = tcell.StyleDefault.Background(tcell.NewRGBColor(10, 12, 20))
	fg := tcell.NewRGBColor(237, 240, 245)
	if a.themes.Mode() == folio.ModeLight {
		a.bg = tcell.StyleDefault.Background(tcell.NewRGBColor(245, 247, 250))
		fg = tcell.NewRGBColor(26, 28, 36)
	}
	for _, l := range a.labels {
		l.Style = a.bg.Foreground(fg)
	}
	a.name.Style = a.bg.Foreground(tcellColor(primary)).Bold(true)
	a.help.Style = a.help.Style.Dim(true)
}

// Tick advances timers and fades by dt.
func (a *App) Tick(dt time.Duration) {
	a.sched.Advance(dt)
	for _, l := range a.labels {
		if l == a.subtitle && a.rotator.Paused() {
			continue
		}
		l.Update(dt)
	}
}

// Draw renders one frame and shows it.
func (a *App) Draw() {
	a.web.Frame()
	a.screen.SetStyle(a.bg)
	a.screen.Clear()
	a.surface.Render(a.screen, a.bg)
	for _, l := range a.labels {
		l.Draw(a.screen)
	}
	a.screen.Show()
}

func (a *App) logf(format string, args ...any) {
	if a.logger != nil {
		a.logger.Printf(format, args...)
	}
}

// Run drives an App on an initialised screen until a quit key, a closed
// screen or ctx cancellation. The caller owns screen and calls Fini.
func Run(ctx context.Context, screen tcell.Screen, opts Options) error {
	interval := opts.FrameInterval
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	screen.EnableFocus()
	app := NewApp(screen, opts)

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	last := time.Now()
	app.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || app.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			app.Tick(now.Sub(last))
			last = now
			app.Draw()
		}
	}
}
