package folio

import (
	"math/rand/v2"
	"strings"
	"time"
)

// Effect names a presentation mode for a rotating string.
type Effect string

const (
	EffectType     Effect = "type"     // reveal one rune per tick, then delete
	EffectScramble Effect = "scramble" // resolve random runes into the target, then delete
	EffectFade     Effect = "fade"     // fade the whole string in and out
)

// DefaultAlphabet is the symbol set random scramble runes are drawn from.
const DefaultAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*"

// TextElement is a text-bearing display node. Implementations live in the
// front ends (window.Label, term.Label).
type TextElement interface {
	SetText(s string)
	Text() string
	// SetOpacity jumps to the given opacity.
	SetOpacity(a float64)
	// FadeTo transitions to the given opacity over d.
	FadeTo(a float64, d time.Duration)
}

// RotatorConfig controls a Rotator. Zero fields take the defaults noted.
type RotatorConfig struct {
	TypeSpeed     time.Duration // per typed rune, default 80ms
	DeleteSpeed   time.Duration // per deleted rune, default 40ms
	PauseTime     time.Duration // hold once the full string shows, default 2s
	Jitter        time.Duration // max random extra delay per typed rune, default 50ms; see NoJitter
	ScrambleSpeed time.Duration // per scramble iteration, default 50ms
	FadeDuration  time.Duration // fade transition and settle delay, default 500ms
	NextDelay     time.Duration // gap between pairs, default 300ms

	// Effects is applied round robin, one per pair. Default type, scramble, fade.
	Effects []Effect
	// Alphabet for scramble runes. Default DefaultAlphabet.
	Alphabet string
	// OnTextChange fires when a new (text, effect) pair begins.
	OnTextChange func(text string, effect Effect)
	// Rand is the randomness source. Nil uses the global source.
	Rand *rand.Rand

	// NoJitter disables the per-rune typing jitter. It is the only way to
	// type at exactly TypeSpeed: a zero Jitter takes the default.
	NoJitter bool
}

func (c *RotatorConfig) defaults() {
	if c.TypeSpeed <= 0 {
		c.TypeSpeed = 80 * time.Millisecond
	}
	if c.DeleteSpeed <= 0 {
		c.DeleteSpeed = 40 * time.Millisecond
	}
	if c.PauseTime <= 0 {
		c.PauseTime = 2 * time.Second
	}
	if c.Jitter <= 0 && !c.NoJitter {
		c.Jitter = 50 * time.Millisecond
	}
	if c.NoJitter {
		c.Jitter = 0
	}
	if c.ScrambleSpeed <= 0 {
		c.ScrambleSpeed = 50 * time.Millisecond
	}
	if c.FadeDuration <= 0 {
		c.FadeDuration = 500 * time.Millisecond
	}
	if c.NextDelay <= 0 {
		c.NextDelay = 300 * time.Millisecond
	}
	if len(c.Effects) == 0 {
		c.Effects = []Effect{EffectType, EffectScramble, EffectFade}
	} else {
		c.Effects = append([]Effect(nil), c.Effects...)
	}
	if c.Alphabet == "" {
		c.Alphabet = DefaultAlphabet
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
}

type phase uint8

const (
	phaseIdle       phase = iota // nothing to show
	phaseStart                   // pair selected, effect entry pending
	phaseTyping                  // revealing runes
	phaseScrambling              // resolving random runes
	phaseHolding                 // full string shown, deletion next
	phaseDeleting                // removing trailing runes
	phaseFadeIn                  // invisible, text reveal next
	phaseFadeHold                // visible, fade out next
	phaseFadeOut                 // fading out, next pair follows
	phaseNext                    // between pairs
)

// Rotator cycles a text element through candidate strings, rendering each
// with one effect and advancing text and effect together. It is driven by
// a Scheduler and holds at most one pending tick at any time.
//
// All methods are safe on a nil *Rotator and do nothing.
type Rotator struct {
	sched    *Scheduler
	el       TextElement
	texts    []string
	cfg      RotatorConfig
	alphabet []rune

	text, effect int
	target       []rune
	cursor       int
	phase        phase
	pairs        int

	pending   *Timer
	remaining time.Duration // delay left on the pending tick when paused
	paused    bool
	destroyed bool
	gen       uint64 // bumped by UpdateTexts and Destroy
}

// NewRotator binds a rotator to el and starts the first pair immediately.
// A nil element returns nil. An empty texts list leaves the element
// untouched until UpdateTexts supplies strings.
func NewRotator(sched *Scheduler, el TextElement, texts []string, cfg RotatorConfig) *Rotator {
	if el == nil || sched == nil {
		return nil
	}
	cfg.defaults()
	r := &Rotator{
		sched:    sched,
		el:       el,
		texts:    append([]string(nil), texts...),
		cfg:      cfg,
		alphabet: []rune(cfg.Alphabet),
	}
	if len(r.texts) > 0 {
		r.begin()
	}
	return r
}

// State returns the current text and effect indices.
func (r *Rotator) State() (text, effect int) {
	if r == nil {
		return 0, 0
	}
	return r.text, r.effect
}

// Effect returns the effect of the current pair.
func (r *Rotator) Effect() Effect {
	if r == nil {
		return ""
	}
	return r.cfg.Effects[r.effect]
}

// Pairs returns the number of completed (text, effect) pairs.
func (r *Rotator) Pairs() int {
	if r == nil {
		return 0
	}
	return r.pairs
}

// Paused reports whether the rotator is frozen by Pause.
func (r *Rotator) Paused() bool {
	return r != nil && r.paused
}

// Destroyed reports whether Destroy was called.
func (r *Rotator) Destroyed() bool {
	return r != nil && r.destroyed
}

// Pause freezes the rotator without resetting its cursor state.
func (r *Rotator) Pause() {
	if r == nil || r.destroyed || r.paused {
		return
	}
	r.paused = true
	r.remaining = 0
	if r.pending.Active() {
		r.remaining = r.pending.at - r.sched.Now()
		r.pending.Stop()
	}
	r.pending = nil
}

// Resume continues from the frozen state, honouring the delay that was
// left on the interrupted tick.
func (r *Rotator) Resume() {
	if r == nil || r.destroyed || !r.paused {
		return
	}
	r.paused = false
	if r.phase == phaseIdle {
		return
	}
	r.schedule(r.remaining)
}

// Destroy clears the element and cancels every pending tick. No callback
// fires afterwards.
func (r *Rotator) Destroy() {
	if r == nil || r.destroyed {
		return
	}
	r.destroyed = true
	r.gen++
	r.pending.Stop()
	r.pending = nil
	r.phase = phaseIdle
	r.el.SetText("")
	r.el.SetOpacity(1)
}

// UpdateTexts replaces the candidate strings and restarts at pair (0, 0).
func (r *Rotator) UpdateTexts(texts []string) {
	if r == nil || r.destroyed {
		return
	}
	r.gen++
	r.pending.Stop()
	r.pending = nil
	r.texts = append(r.texts[:0:0], texts...)
	r.text, r.effect, r.cursor = 0, 0, 0
	r.remaining = 0
	if len(r.texts) == 0 {
		r.phase = phaseIdle
		return
	}
	if r.paused {
		// Resume begins pair (0, 0) through the regular pair start.
		r.phase = phaseNext
		return
	}
	r.begin()
}

// begin selects the current pair, notifies the observer and runs the
// effect entry unless the observer paused, destroyed or restarted the
// rotator.
func (r *Rotator) begin() {
	r.target = []rune(r.texts[r.text])
	r.cursor = 0
	r.phase = phaseStart
	gen := r.gen
	if fn := r.cfg.OnTextChange; fn != nil {
		fn(r.texts[r.text], r.cfg.Effects[r.effect])
	}
	if r.destroyed || r.paused || r.gen != gen {
		return
	}
	r.tick()
}

func (r *Rotator) schedule(d time.Duration) {
	r.pending.Stop()
	r.pending = r.sched.After(d, r.fire)
}

func (r *Rotator) fire() {
	r.pending = nil
	if r.destroyed || r.paused {
		return
	}
	r.tick()
}

// tick performs one step of the current phase and schedules the next.
func (r *Rotator) tick() {
	switch r.phase {
	case phaseStart:
		r.enter()

	case phaseTyping:
		if r.cursor < len(r.target) {
			r.cursor++
			r.el.SetText(string(r.target[:r.cursor]))
		}
		if r.cursor < len(r.target) {
			r.schedule(r.typeDelay())
			return
		}
		r.phase = phaseHolding
		r.schedule(r.cfg.PauseTime)

	case phaseScrambling:
		r.el.SetText(Scramble(r.target, r.cursor, r.alphabet, r.cfg.Rand))
		r.cursor++
		if r.cursor <= len(r.target) {
			r.schedule(r.cfg.ScrambleSpeed)
			return
		}
		r.phase = phaseHolding
		r.schedule(r.cfg.PauseTime)

	case phaseHolding:
		r.phase = phaseDeleting
		r.cursor = len(r.target)
		r.tick()

	case phaseDeleting:
		if r.cursor > 0 {
			r.cursor--
			r.el.SetText(string(r.target[:r.cursor]))
		}
		if r.cursor > 0 {
			r.schedule(r.cfg.DeleteSpeed)
			return
		}
		r.next()

	case phaseFadeIn:
		r.el.SetText(string(r.target))
		r.el.FadeTo(1, r.cfg.FadeDuration)
		r.phase = phaseFadeHold
		r.schedule(r.cfg.PauseTime)

	case phaseFadeHold:
		r.el.FadeTo(0, r.cfg.FadeDuration)
		r.phase = phaseFadeOut
		r.schedule(r.cfg.FadeDuration)

	case phaseFadeOut:
		r.next()

	case phaseNext:
		r.begin()
	}
}

// enter runs the entry action of the current pair's effect.
func (r *Rotator) enter() {
	switch r.cfg.Effects[r.effect] {
	case EffectScramble:
		r.el.SetOpacity(1)
		r.phase = phaseScrambling
	case EffectFade:
		r.el.SetOpacity(0)
		r.phase = phaseFadeIn
		r.schedule(r.cfg.FadeDuration)
		return
	default:
		r.el.SetOpacity(1)
		r.phase = phaseTyping
	}
	r.tick()
}

// next advances text and effect together and waits NextDelay before the
// following pair begins.
func (r *Rotator) next() {
	r.pairs++
	r.text = (r.text + 1) % len(r.texts)
	r.effect = (r.effect + 1) % len(r.cfg.Effects)
	r.phase = phaseNext
	r.schedule(r.cfg.NextDelay)
}

func (r *Rotator) typeDelay() time.Duration {
	if r.cfg.Jitter <= 0 {
		return r.cfg.TypeSpeed
	}
	return r.cfg.TypeSpeed + time.Duration(r.cfg.Rand.Float64()*float64(r.cfg.Jitter))
}

// Scramble renders target with its first k runes intact and every
// remaining rune replaced by a random rune from alphabet.
func Scramble(target []rune, k int, alphabet []rune, rng *rand.Rand) string {
	if k < 0 {
		k = 0
	}
	if k > len(target) {
		k = len(target)
	}
	if len(alphabet) == 0 {
		alphabet = []rune(DefaultAlphabet)
	}
	var b strings.Builder
	b.Grow(len(target))
	for i, c := range target {
		if i < k {
			b.WriteRune(c)
			continue
		}
		var n int
		if rng != nil {
			n = rng.IntN(len(alphabet))
		} else {
			n = rand.IntN(len(alphabet))
		}
		b.WriteRune(alphabet[n])
	}
	return b.String()
}
