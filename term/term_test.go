package term

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/folio"
)

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.Screen, y int) string {
	cols, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < cols; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		alpha float64
		want  rune
	}{
		{0, 0},
		{-1, 0},
		{0.05, '.'},
		{0.5, '+'},
		{0.99, '#'},
		{1, '#'},
	}
	for _, tt := range tests {
		if got := Glyph(tt.alpha); got != tt.want {
			t.Errorf("Glyph(%v) = %q, want %q", tt.alpha, got, tt.want)
		}
	}
}

func TestLineVisitsEndpoints(t *testing.T) {
	tests := []struct {
		x0, y0, x1, y1 int
		n              int
	}{
		{0, 0, 5, 0, 6},
		{0, 0, 0, 3, 4},
		{0, 0, 3, 3, 4},
		{5, 2, 0, 0, 6},
		{2, 2, 2, 2, 1},
	}
	for _, tt := range tests {
		var got [][2]int
		line(tt.x0, tt.y0, tt.x1, tt.y1, func(x, y int) {
			got = append(got, [2]int{x, y})
		})
		if len(got) != tt.n {
			t.Errorf("line(%d,%d,%d,%d) visited %d cells, want %d", tt.x0, tt.y0, tt.x1, tt.y1, len(got), tt.n)
			continue
		}
		if got[0] != [2]int{tt.x0, tt.y0} || got[len(got)-1] != [2]int{tt.x1, tt.y1} {
			t.Errorf("line(%d,%d,%d,%d) = %v, endpoints missing", tt.x0, tt.y0, tt.x1, tt.y1, got)
		}
	}
}

func TestSurfaceStrokeAndClear(t *testing.T) {
	s := NewSurface(10, 5)
	s.StrokeLine(0, 0, 9*CellWidth, 0, 1, folio.ColorWeb.WithAlpha(0.3))
	s.StrokeLine(0, 0, 4*CellWidth, 0, 1, folio.ColorWeb.WithAlpha(0.8))
	if s.At(2, 0) != 0.8 {
		t.Errorf("overlap alpha = %v, want strongest 0.8", s.At(2, 0))
	}
	if s.At(7, 0) != 0.3 {
		t.Errorf("alpha = %v, want 0.3", s.At(7, 0))
	}
	// Off-surface strokes are clipped.
	s.StrokeLine(-100, -100, 1000, -100, 1, folio.ColorWeb)
	s.Clear()
	for x := 0; x < 10; x++ {
		if s.At(x, 0) != 0 {
			t.Fatalf("cell %d not cleared", x)
		}
	}
}

func TestSurfaceRender(t *testing.T) {
	screen := newScreen(t, 20, 4)
	s := NewSurface(20, 4)
	s.StrokeLine(0, CellHeight, 19*CellWidth, CellHeight, 1, folio.ColorWeb.WithAlpha(1))
	s.Render(screen, tcell.StyleDefault)
	if got := rowText(screen, 1); got != strings.Repeat("#", 20) {
		t.Errorf("row 1 = %q", got)
	}
	if got := strings.TrimSpace(rowText(screen, 0)); got != "" {
		t.Errorf("row 0 = %q, want empty", got)
	}
}

func TestLabelDraw(t *testing.T) {
	screen := newScreen(t, 20, 3)
	l := NewLabel("folio")
	l.X, l.Y, l.Align = 10, 1, AlignCenter
	l.Draw(screen)
	if got := rowText(screen, 1); got != "        folio       " {
		t.Errorf("row = %q", got)
	}

	screen.Clear()
	l.SetOpacity(0.2)
	l.Draw(screen)
	if got := strings.TrimSpace(rowText(screen, 1)); got != "" {
		t.Errorf("faded label drew %q", got)
	}

	wide := NewLabel("日本")
	if wide.Width() != 4 {
		t.Errorf("wide Width = %d, want 4", wide.Width())
	}
}

func TestLabelClipsRightEdge(t *testing.T) {
	screen := newScreen(t, 5, 1)
	l := NewLabel("portfolio")
	l.X = 2
	l.Draw(screen)
	if got := rowText(screen, 0); got != "  por" {
		t.Errorf("row = %q", got)
	}
}

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen) {
	t.Helper()
	screen := newScreen(t, 80, 24)
	return NewApp(screen, Options{Rand: rand.New(rand.NewPCG(1, 2))}), screen
}

func TestAppKeys(t *testing.T) {
	app, _ := newTestApp(t)

	app.HandleEvent(key('p'))
	if !app.Web().Paused() {
		t.Error("p did not pause the web")
	}
	app.HandleEvent(key('p'))
	if app.Web().Paused() {
		t.Error("p did not resume the web")
	}

	app.HandleEvent(key(' '))
	if !app.Rotator().Paused() {
		t.Error("space did not pause the rotator")
	}

	before := app.themes.Index()
	app.HandleEvent(key('t'))
	if app.themes.Index() != before+1 || app.Web().Color() != app.themes.Primary() {
		t.Error("t did not cycle and recolour")
	}

	if app.HandleEvent(key('x')) {
		t.Error("unbound key quit")
	}
	if !app.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) || !app.Quitting() {
		t.Error("Esc did not quit")
	}
}

func TestAppResize(t *testing.T) {
	app, _ := newTestApp(t)
	if w, h := app.Web().Size(); w != 80*CellWidth || h != 24*CellHeight {
		t.Fatalf("web size = %vx%v", w, h)
	}
	app.HandleEvent(tcell.NewEventResize(100, 30))
	if w, h := app.Web().Size(); w != 100*CellWidth || h != 30*CellHeight {
		t.Errorf("web size after resize = %vx%v", w, h)
	}
	if c, r := app.surface.Size(); c != 100 || r != 30 {
		t.Errorf("surface = %dx%d", c, r)
	}
	if app.quote.Y != 27 {
		t.Errorf("quote row = %d, want 27", app.quote.Y)
	}
}

func TestAppFocus(t *testing.T) {
	app, _ := newTestApp(t)
	app.HandleEvent(tcell.NewEventFocus(false))
	if app.Web().Running() {
		t.Error("unfocused web still running")
	}
	app.HandleEvent(tcell.NewEventFocus(true))
	if !app.Web().Running() {
		t.Error("focused web not running")
	}
}

func TestAppDraw(t *testing.T) {
	app, screen := newTestApp(t)
	app.Tick(700 * time.Millisecond)
	app.Draw()

	if !strings.Contains(rowText(screen, app.name.Y), app.site.Personal.Name) {
		t.Errorf("name row = %q", rowText(screen, app.name.Y))
	}
	if sub := app.subtitle.Text(); sub == "" || !strings.Contains(rowText(screen, app.subtitle.Y), sub) {
		t.Errorf("subtitle %q not on row %q", sub, rowText(screen, app.subtitle.Y))
	}
	if app.Web().Frames() != 1 {
		t.Errorf("frames = %d, want 1", app.Web().Frames())
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	screen := newScreen(t, 40, 12)
	errc := make(chan error, 1)
	go func() {
		errc <- Run(context.Background(), screen, Options{FrameInterval: time.Millisecond})
	}()
	time.Sleep(20 * time.Millisecond)
	if err := screen.PostEvent(key('q')); err != nil {
		t.Fatal(err)
	}
	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Run = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after q")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	screen := newScreen(t, 40, 12)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		errc <- Run(ctx, screen, Options{})
	}()
	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Run = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestPausedRotatorFreezesFade(t *testing.T) {
	app, _ := newTestApp(t)
	app.subtitle.SetOpacity(0)
	app.subtitle.FadeTo(1, time.Second)
	app.HandleEvent(key(' '))
	app.Tick(500 * time.Millisecond)
	if app.subtitle.Opacity() != 0 {
		t.Errorf("opacity = %v while paused, want 0", app.subtitle.Opacity())
	}
}
