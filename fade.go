package folio

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Fader animates a single opacity value toward a target. Element
// implementations embed one to satisfy TextElement.FadeTo and call Update
// once per frame.
//
// There is no global animation manager: the owner calls Update itself.
type Fader struct {
	// Ease is the easing curve for new fades. Nil uses ease.InOutQuad,
	// the closest curve to a CSS "ease" transition.
	Ease ease.TweenFunc

	value float64
	tween *gween.Tween
}

// NewFader creates a fader resting at the given opacity.
func NewFader(value float64) *Fader {
	return &Fader{value: clamp01(value)}
}

// Value returns the current opacity.
func (f *Fader) Value() float64 {
	return f.value
}

// Set jumps to v immediately and cancels any running fade.
func (f *Fader) Set(v float64) {
	f.value = clamp01(v)
	f.tween = nil
}

// FadeTo starts a transition from the current value to target over d.
// A non-positive duration behaves like Set.
func (f *Fader) FadeTo(target float64, d time.Duration) {
	target = clamp01(target)
	if d <= 0 {
		f.Set(target)
		return
	}
	fn := f.Ease
	if fn == nil {
		fn = ease.InOutQuad
	}
	f.tween = gween.New(float32(f.value), float32(target), float32(d.Seconds()), fn)
}

// Fading reports whether a transition is in progress.
func (f *Fader) Fading() bool {
	return f.tween != nil
}

// Update advances the running fade by dt and returns the current opacity.
func (f *Fader) Update(dt time.Duration) float64 {
	if f.tween == nil {
		return f.value
	}
	v, done := f.tween.Update(float32(dt.Seconds()))
	f.value = clamp01(float64(v))
	if done {
		f.tween = nil
	}
	return f.value
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
