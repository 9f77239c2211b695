package folio

import (
	"math/rand/v2"
	"strings"
	"time"
)

// glitchRunes are swapped into the text while a glitch runs.
const glitchRunes = `!<>-_\/[]{}=+*^?#________`

// GlitchConfig controls a Glitch. Zero fields take the defaults noted.
type GlitchConfig struct {
	Intensity float64       // per-rune replacement probability, default 0.04
	Speed     time.Duration // re-render interval, default 120ms
	Duration  time.Duration // total glitch length, default 600ms
	Rand      *rand.Rand
}

// Glitch briefly corrupts a text element and restores it. It is the name
// decoration the hero rotator triggers through OnTextChange.
type Glitch struct {
	sched *Scheduler
	el    TextElement
	text  string
	cfg   GlitchConfig
	runes []rune

	interval *Timer
	stop     *Timer
}

// NewGlitch creates a glitch over el that restores text when it stops.
// A nil element returns nil.
func NewGlitch(sched *Scheduler, el TextElement, text string, cfg GlitchConfig) *Glitch {
	if el == nil || sched == nil {
		return nil
	}
	if cfg.Intensity <= 0 {
		cfg.Intensity = 0.04
	}
	if cfg.Speed <= 0 {
		cfg.Speed = 120 * time.Millisecond
	}
	if cfg.Duration <= 0 {
		cfg.Duration = 600 * time.Millisecond
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Glitch{sched: sched, el: el, text: text, cfg: cfg, runes: []rune(glitchRunes)}
}

// Active reports whether a glitch is running.
func (g *Glitch) Active() bool {
	return g != nil && g.interval.Active()
}

// Start begins a glitch. Starting while one runs is a no-op.
func (g *Glitch) Start() {
	if g == nil || g.Active() {
		return
	}
	g.interval = g.sched.Every(g.cfg.Speed, g.render)
	g.stop = g.sched.After(g.cfg.Duration, g.Stop)
}

// Stop ends the glitch and restores the original text.
func (g *Glitch) Stop() {
	if g == nil {
		return
	}
	g.interval.Stop()
	g.stop.Stop()
	g.interval, g.stop = nil, nil
	g.el.SetText(g.text)
}

func (g *Glitch) render() {
	var b strings.Builder
	b.Grow(len(g.text))
	for _, c := range g.text {
		if g.cfg.Rand.Float64() < g.cfg.Intensity {
			b.WriteRune(g.runes[g.cfg.Rand.IntN(len(g.runes))])
			continue
		}
		b.WriteRune(c)
	}
	g.el.SetText(b.String())
}
