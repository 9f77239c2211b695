package folio

import (
	"math"
	"math/rand/v2"
)

// Surface is a 2D drawing target. It is owned by exactly one Web.
type Surface interface {
	// Clear erases the whole surface.
	Clear()
	// StrokeLine draws a line segment of the given width and color.
	StrokeLine(x0, y0, x1, y1, width float64, c Color)
}

// Point is a single animated particle of the web.
type Point struct {
	X, Y   float64
	VX, VY float64
}

// WebConfig controls the web animation.
type WebConfig struct {
	// Points is the size of the point collection. Default 120.
	Points int
	// Threshold is the distance under which two points are connected. Default 120.
	Threshold float64
	// Speed bounds each velocity component to [-Speed, Speed]. Default 0.2.
	Speed float64
	// LineWidth is the stroke width of every edge. Default 1.
	LineWidth float64
	// Color is the stroke hue; its alpha is replaced per edge.
	Color Color
	// ReducedMotion skips the animated loop and draws a static grid once.
	ReducedMotion bool
	// GridLines is the number of guide lines per axis of the static grid. Default 10.
	GridLines int
	// GridAlpha is the stroke alpha of the static grid. Default 0.1.
	GridAlpha float64
	// Rand is the randomness source. Nil uses a freshly seeded source.
	Rand *rand.Rand
}

func (c *WebConfig) defaults() {
	if c.Points <= 0 {
		c.Points = 120
	}
	if c.Threshold <= 0 {
		c.Threshold = 120
	}
	if c.Speed <= 0 {
		c.Speed = 0.2
	}
	if c.LineWidth <= 0 {
		c.LineWidth = 1
	}
	if c.Color == (Color{}) {
		c.Color = ColorWeb
	}
	if c.GridLines <= 0 {
		c.GridLines = 10
	}
	if c.GridAlpha <= 0 {
		c.GridAlpha = 0.1
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
}

// Web animates a fixed-size set of moving points and connects every pair
// closer than the threshold with a line whose alpha fades linearly with
// distance. All methods are safe on a nil *Web and do nothing.
type Web struct {
	cfg     WebConfig
	surface Surface
	points  []Point
	w, h    float64

	paused bool
	hidden bool
	drawn  bool // static grid already rendered for the current size/color
	edges  int
	frames uint64
}

// NewWeb creates a web over surface sized width x height. A nil surface
// returns nil: the feature simply does not activate.
func NewWeb(surface Surface, width, height float64, cfg WebConfig) *Web {
	if surface == nil {
		return nil
	}
	cfg.defaults()
	w := &Web{cfg: cfg, surface: surface}
	w.Resize(width, height)
	return w
}

// Resize regenerates the whole point collection for the new dimensions.
// Previous point state is not preserved.
func (w *Web) Resize(width, height float64) {
	if w == nil {
		return
	}
	w.w = math.Max(width, 0)
	w.h = math.Max(height, 0)
	w.drawn = false

	rng := w.cfg.Rand
	speed := Range{-w.cfg.Speed, w.cfg.Speed}
	if cap(w.points) >= w.cfg.Points {
		w.points = w.points[:w.cfg.Points]
	} else {
		w.points = make([]Point, w.cfg.Points)
	}
	for i := range w.points {
		w.points[i] = Point{
			X:  rng.Float64() * w.w,
			Y:  rng.Float64() * w.h,
			VX: speed.Random(rng),
			VY: speed.Random(rng),
		}
	}
}

// Size returns the current viewport dimensions.
func (w *Web) Size() (width, height float64) {
	if w == nil {
		return 0, 0
	}
	return w.w, w.h
}

// Pause stops the animation at the next frame boundary.
func (w *Web) Pause() {
	if w == nil {
		return
	}
	w.paused = true
}

// Resume continues the animation from the next frame. No frames are
// replayed for the time spent paused.
func (w *Web) Resume() {
	if w == nil {
		return
	}
	w.paused = false
}

// Paused reports whether Pause is in effect.
func (w *Web) Paused() bool {
	return w != nil && w.paused
}

// SetVisible records whether the hosting view is visible. A hidden web
// does not animate; an explicit Pause still holds after the view returns.
func (w *Web) SetVisible(visible bool) {
	if w == nil {
		return
	}
	w.hidden = !visible
}

// Running reports whether Frame would animate.
func (w *Web) Running() bool {
	return w != nil && !w.cfg.ReducedMotion && !w.paused && !w.hidden
}

// SetColor changes the stroke hue used from the next frame on.
func (w *Web) SetColor(c Color) {
	if w == nil {
		return
	}
	w.cfg.Color = c
	w.drawn = false
}

// Color returns the current stroke hue.
func (w *Web) Color() Color {
	if w == nil {
		return Color{}
	}
	return w.cfg.Color
}

// Points returns the live point collection. The slice MUST NOT be retained
// across a Resize.
func (w *Web) Points() []Point {
	if w == nil {
		return nil
	}
	return w.points
}

// Edges returns the number of edges drawn by the last animated frame.
func (w *Web) Edges() int {
	if w == nil {
		return 0
	}
	return w.edges
}

// Frames returns the number of animated frames drawn so far.
func (w *Web) Frames() uint64 {
	if w == nil {
		return 0
	}
	return w.frames
}

// Frame is invoked once per display refresh. It advances and redraws the
// web when running, or draws the static grid once under reduced motion.
// It reports whether the surface was touched.
func (w *Web) Frame() bool {
	if w == nil {
		return false
	}
	if w.cfg.ReducedMotion {
		if w.drawn {
			return false
		}
		w.drawGrid()
		w.drawn = true
		return true
	}
	if w.paused || w.hidden {
		return false
	}
	w.Step()
	w.Draw()
	w.frames++
	return true
}

// Step advances every point by its velocity and reflects velocities that
// carry a point past a viewport bound.
func (w *Web) Step() {
	if w == nil {
		return
	}
	for i := range w.points {
		p := &w.points[i]
		p.X += p.VX
		p.Y += p.VY
		if (p.X < 0 && p.VX < 0) || (p.X > w.w && p.VX > 0) {
			p.VX = -p.VX
		}
		if (p.Y < 0 && p.VY < 0) || (p.Y > w.h && p.VY > 0) {
			p.VY = -p.VY
		}
	}
}

// Draw clears the surface and strokes every edge under the threshold.
func (w *Web) Draw() {
	if w == nil {
		return
	}
	w.surface.Clear()
	w.edges = 0
	t := w.cfg.Threshold
	for i := 0; i < len(w.points); i++ {
		p := w.points[i]
		for j := i + 1; j < len(w.points); j++ {
			q := w.points[j]
			d := math.Hypot(p.X-q.X, p.Y-q.Y)
			if d >= t {
				continue
			}
			w.surface.StrokeLine(p.X, p.Y, q.X, q.Y, w.cfg.LineWidth, w.cfg.Color.WithAlpha(EdgeAlpha(d, t)))
			w.edges++
		}
	}
}

// drawGrid renders the reduced-motion fallback: evenly spaced horizontal
// and vertical guide lines.
func (w *Web) drawGrid() {
	w.surface.Clear()
	n := w.cfg.GridLines
	c := w.cfg.Color.WithAlpha(w.cfg.GridAlpha)
	for i := 0; i < n; i++ {
		y := w.h / float64(n) * float64(i)
		x := w.w / float64(n) * float64(i)
		w.surface.StrokeLine(0, y, w.w, y, w.cfg.LineWidth, c)
		w.surface.StrokeLine(x, 0, x, w.h, w.cfg.LineWidth, c)
	}
}

// EdgeAlpha returns the stroke alpha of an edge of length d under threshold t:
// 1 for coincident points, falling linearly to 0 at the threshold.
func EdgeAlpha(d, t float64) float64 {
	if t <= 0 || d >= t {
		return 0
	}
	if d <= 0 {
		return 1
	}
	return 1 - d/t
}
