package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/folio"
)

// Surface is an offscreen image the web animation draws into. It is
// composited onto the screen each frame.
type Surface struct {
	img *ebiten.Image
}

// NewSurface allocates a w x h surface. Sizes below 1 are raised to 1.
func NewSurface(w, h int) *Surface {
	return &Surface{img: ebiten.NewImage(max(w, 1), max(h, 1))}
}

// Clear erases the surface.
func (s *Surface) Clear() {
	s.img.Clear()
}

// StrokeLine draws an antialiased line segment.
func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c folio.Color) {
	vector.StrokeLine(s.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c.NRGBA(), true)
}

// Resize reallocates the backing image when the size changes.
func (s *Surface) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	b := s.img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return
	}
	s.img.Deallocate()
	s.img = ebiten.NewImage(w, h)
}

// Image returns the backing image.
func (s *Surface) Image() *ebiten.Image {
	return s.img
}
