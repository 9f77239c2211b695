package window

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Font wraps Ebitengine's text/v2 face for TrueType rendering.
type Font struct {
	face *text.GoTextFace
	size float64
	lh   float64 // cached line height
}

// LoadFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadFont(ttf []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("folio: failed to parse TTF data: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &Font{face: face, size: size, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying face.
func (f *Font) Face() *text.GoTextFace {
	return f.face
}

// Fonts is the set of faces the window uses.
type Fonts struct {
	Title *Font // hero name
	Large *Font // rotator
	Body  *Font
	Small *Font
}

// DefaultFonts loads the Go fonts bundled with golang.org/x/image.
func DefaultFonts() (Fonts, error) {
	var fs Fonts
	var err error
	if fs.Title, err = LoadFont(gobold.TTF, 56); err != nil {
		return fs, err
	}
	if fs.Large, err = LoadFont(goregular.TTF, 28); err != nil {
		return fs, err
	}
	if fs.Body, err = LoadFont(goregular.TTF, 16); err != nil {
		return fs, err
	}
	if fs.Small, err = LoadFont(goregular.TTF, 13); err != nil {
		return fs, err
	}
	return fs, nil
}

// wrapText breaks s into lines no wider than width as reported by measure.
// Existing newlines are kept. A word wider than width gets its own line.
func wrapText(s string, width float64, measure func(string) float64) []string {
	if width <= 0 {
		return strings.Split(s, "\n")
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			next := cur + " " + w
			if measure(next) > width {
				lines = append(lines, cur)
				cur = w
				continue
			}
			cur = next
		}
		lines = append(lines, cur)
	}
	return lines
}
