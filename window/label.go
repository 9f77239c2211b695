package window

import (
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/phanxgames/folio"
)

// Align controls horizontal text alignment relative to a label's X.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
)

// Label is a text node with an animated opacity. It implements
// folio.TextElement.
type Label struct {
	X, Y      float64
	Color     folio.Color
	Align     Align
	WrapWidth float64 // 0 disables wrapping
	Hidden    bool

	font    *Font
	text    string
	lines   []string // cached wrap of text
	wrapped float64  // WrapWidth the cache was built for
	dirty   bool
	fade    *folio.Fader
}

// NewLabel creates a visible label.
func NewLabel(font *Font, s string) *Label {
	return &Label{Color: folio.ColorWhite, font: font, text: s, dirty: true, fade: folio.NewFader(1)}
}

func (l *Label) SetText(s string) {
	if s == l.text {
		return
	}
	l.text = s
	l.dirty = true
}

func (l *Label) Text() string { return l.text }

func (l *Label) SetOpacity(a float64) { l.fade.Set(a) }

func (l *Label) FadeTo(a float64, d time.Duration) { l.fade.FadeTo(a, d) }

// Opacity returns the current animated opacity.
func (l *Label) Opacity() float64 { return l.fade.Value() }

// Update advances the opacity animation.
func (l *Label) Update(dt time.Duration) {
	l.fade.Update(dt)
}

// Lines returns the wrapped lines of the current text.
func (l *Label) Lines() []string {
	if l.dirty || l.wrapped != l.WrapWidth {
		l.wrapped = l.WrapWidth
		l.lines = wrapText(l.text, l.WrapWidth, func(s string) float64 {
			w, _ := l.font.MeasureString(s)
			return w
		})
		l.dirty = false
	}
	return l.lines
}

// Height returns the rendered height of the wrapped text.
func (l *Label) Height() float64 {
	return float64(len(l.Lines())) * l.font.LineHeight()
}

// Draw renders the label onto dst.
func (l *Label) Draw(dst *ebiten.Image) {
	a := l.Color.A * l.fade.Value()
	if l.Hidden || l.text == "" || a <= 0 {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(l.X, l.Y)
	op.ColorScale.Scale(float32(l.Color.R), float32(l.Color.G), float32(l.Color.B), 1)
	op.ColorScale.ScaleAlpha(float32(a))
	op.LineSpacing = l.font.LineHeight()
	if l.Align == AlignCenter {
		op.PrimaryAlign = text.AlignCenter
	}
	text.Draw(dst, strings.Join(l.Lines(), "\n"), l.font.Face(), op)
}
