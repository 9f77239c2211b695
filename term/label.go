package term

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/phanxgames/folio"
)

// Align is the horizontal anchor of a Label.
type Align uint8

const (
	AlignLeft   Align = iota // X is the first column
	AlignCenter              // X is the middle column
)

// Label is a single row of text. It implements folio.TextElement;
// opacity maps to hidden, dim and normal cells.
type Label struct {
	X, Y  int
	Align Align
	Style tcell.Style

	text string
	fade *folio.Fader
}

// NewLabel creates a visible label.
func NewLabel(s string) *Label {
	return &Label{text: s, Style: tcell.StyleDefault, fade: folio.NewFader(1)}
}

func (l *Label) SetText(s string)                  { l.text = s }
func (l *Label) Text() string                      { return l.text }
func (l *Label) SetOpacity(a float64)              { l.fade.Set(a) }
func (l *Label) FadeTo(a float64, d time.Duration) { l.fade.FadeTo(a, d) }

// Opacity returns the current opacity.
func (l *Label) Opacity() float64 { return l.fade.Value() }

// Update advances a running fade.
func (l *Label) Update(dt time.Duration) {
	l.fade.Update(dt)
}

// Width returns the display width of the text in cells.
func (l *Label) Width() int {
	return runewidth.StringWidth(l.text)
}

// Draw writes the label onto screen. Cells past the right edge are dropped.
func (l *Label) Draw(screen tcell.Screen) {
	a := l.fade.Value()
	if a < 1.0/3 || l.text == "" {
		return
	}
	st := l.Style
	if a < 2.0/3 {
		st = st.Dim(true)
	}
	x := l.X
	if l.Align == AlignCenter {
		x -= l.Width() / 2
	}
	cols, _ := screen.Size()
	for _, r := range l.text {
		w := runewidth.RuneWidth(r)
		if x >= cols {
			return
		}
		if x >= 0 {
			screen.SetContent(x, l.Y, r, nil, st)
		}
		x += max(w, 1)
	}
}
