package term

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/folio"
)

// Cell size in web units. The web runs in a virtual pixel space of
// cols*CellWidth x rows*CellHeight so its threshold and speed keep the
// proportions they have in the window.
const (
	CellWidth  = 8
	CellHeight = 16
)

// glyphs are picked by stroke alpha, faintest first.
var glyphs = []rune{'.', '·', ':', '+', '*', '#'}

// Glyph returns the cell rune for a stroke of alpha a, or 0 for nothing.
func Glyph(a float64) rune {
	if a <= 0 {
		return 0
	}
	i := int(a * float64(len(glyphs)))
	if i >= len(glyphs) {
		i = len(glyphs) - 1
	}
	return glyphs[i]
}

type cell struct {
	alpha float64
	color folio.Color
}

// Surface rasterises web strokes into a cell buffer. Render copies the
// buffer onto the screen, so a paused web keeps its last frame.
type Surface struct {
	cols, rows int
	cells      []cell
}

// NewSurface creates a surface of cols x rows cells.
func NewSurface(cols, rows int) *Surface {
	s := &Surface{}
	s.Resize(cols, rows)
	return s
}

// Resize reallocates the buffer. The contents are cleared.
func (s *Surface) Resize(cols, rows int) {
	s.cols, s.rows = max(cols, 0), max(rows, 0)
	s.cells = make([]cell, s.cols*s.rows)
}

// Size returns the buffer dimensions in cells.
func (s *Surface) Size() (cols, rows int) {
	return s.cols, s.rows
}

// Clear erases every cell.
func (s *Surface) Clear() {
	clear(s.cells)
}

// StrokeLine plots the segment with Bresenham's algorithm. Overlapping
// strokes keep the strongest alpha. Width is ignored: a cell is the
// thinnest line a terminal can draw.
func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c folio.Color) {
	cx0, cy0 := toCell(x0, CellWidth), toCell(y0, CellHeight)
	cx1, cy1 := toCell(x1, CellWidth), toCell(y1, CellHeight)
	line(cx0, cy0, cx1, cy1, func(x, y int) {
		s.plot(x, y, c)
	})
}

// At returns the alpha plotted at a cell.
func (s *Surface) At(x, y int) float64 {
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows {
		return 0
	}
	return s.cells[y*s.cols+x].alpha
}

func (s *Surface) plot(x, y int, c folio.Color) {
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows {
		return
	}
	p := &s.cells[y*s.cols+x]
	if c.A > p.alpha {
		p.alpha = c.A
		p.color = c
	}
}

// Render draws every lit cell onto screen with bg as the background.
func (s *Surface) Render(screen tcell.Screen, bg tcell.Style) {
	for y := 0; y < s.rows; y++ {
		for x := 0; x < s.cols; x++ {
			c := s.cells[y*s.cols+x]
			g := Glyph(c.alpha)
			if g == 0 {
				continue
			}
			screen.SetContent(x, y, g, nil, bg.Foreground(tcellColor(c.color)))
		}
	}
}

func toCell(v, size float64) int {
	return int(math.Floor(v / size))
}

// line visits every cell on the segment from (x0, y0) to (x1, y1),
// endpoints included.
func line(x0, y0, x1, y1 int, visit func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		visit(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func tcellColor(c folio.Color) tcell.Color {
	n := c.NRGBA()
	return tcell.NewRGBColor(int32(n.R), int32(n.G), int32(n.B))
}
