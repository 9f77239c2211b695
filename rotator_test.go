package folio

import (
	"strings"
	"testing"
	"time"
)

// fakeElement records every mutation a text effect makes.
type fakeElement struct {
	text    string
	opacity float64
	history []string
	fades   []float64
}

func newFakeElement(text string) *fakeElement {
	return &fakeElement{text: text, opacity: 1}
}

func (e *fakeElement) SetText(s string) {
	e.text = s
	e.history = append(e.history, s)
}

func (e *fakeElement) Text() string         { return e.text }
func (e *fakeElement) SetOpacity(a float64) { e.opacity = a }

func (e *fakeElement) FadeTo(a float64, d time.Duration) {
	e.opacity = a
	e.fades = append(e.fades, a)
}

func typeOnly(cfg RotatorConfig) RotatorConfig {
	cfg.Effects = []Effect{EffectType}
	cfg.NoJitter = true
	cfg.Rand = seeded()
	return cfg
}

func TestRotatorTypeDeleteCycle(t *testing.T) {
	s := NewScheduler()
	el := newFakeElement("")
	r := NewRotator(s, el, []string{"hi"}, typeOnly(RotatorConfig{}))

	if el.text != "h" {
		t.Fatalf("text = %q, want first rune typed immediately", el.text)
	}
	s.Advance(80 * time.Millisecond)
	if el.text != "hi" {
		t.Fatalf("text = %q, want hi", el.text)
	}
	s.Advance(2 * time.Second)
	if el.text != "h" {
		t.Fatalf("text = %q, want deletion to have started", el.text)
	}
	s.Advance(40 * time.Millisecond)
	if el.text != "" {
		t.Fatalf("text = %q, want empty", el.text)
	}
	if r.Pairs() != 1 {
		t.Errorf("pairs = %d, want 1", r.Pairs())
	}
	s.Advance(299 * time.Millisecond)
	if el.text != "" {
		t.Errorf("next pair started before NextDelay")
	}
	s.Advance(time.Millisecond)
	if el.text != "h" {
		t.Errorf("text = %q, want next pair typing", el.text)
	}
}

func TestRotatorTypeJitterBounded(t *testing.T) {
	s := NewScheduler()
	el := newFakeElement("")
	cfg := RotatorConfig{Effects: []Effect{EffectType}, Rand: seeded()}
	NewRotator(s, el, []string{"abcdef"}, cfg)

	// Five more runes at 80ms + up to 50ms jitter each.
	s.Advance(5 * 80 * time.Millisecond)
	if n := len(el.text); n > 6 {
		t.Fatalf("typed %d runes", n)
	}
	s.Advance(5 * 50 * time.Millisecond)
	if el.text != "abcdef" {
		t.Errorf("text = %q, want fully typed within the jitter bound", el.text)
	}
}

func TestRotatorReturnsToStartAfterAllPairs(t *testing.T) {
	s := NewScheduler()
	el := newFakeElement("")
	texts := []string{"ab", "cde"}
	r := NewRotator(s, el, texts, RotatorConfig{NoJitter: true, Rand: seeded()})

	want := len(texts) * 3
	for i := 0; i < 100000 && r.Pairs() < want; i++ {
		s.Advance(10 * time.Millisecond)
	}
	if r.Pairs() != want {
		t.Fatalf("pairs = %d, want %d", r.Pairs(), want)
	}
	if ti, ei := r.State(); ti != 0 || ei != 0 {
		t.Errorf("State = (%d, %d), want (0, 0)", ti, ei)
	}
}

func TestRotatorIndicesAdvanceTogether(t *testing.T) {
	s := NewScheduler()
	el := newFakeElement("")
	type pair struct {
		text   string
		effect Effect
	}
	var seen []pair
	cfg := RotatorConfig{
		NoJitter:     true,
		Rand:         seeded(),
		OnTextChange: func(text string, e Effect) { seen = append(seen, pair{text, e}) },
	}
	NewRotator(s, el, []string{"a", "b"}, cfg)
	for i := 0; i < 100000 && len(seen) < 4; i++ {
		s.Advance(10 * time.Millisecond)
	}
	want := []pair{{"a", EffectType}, {"b", EffectScramble}, {"a", EffectFade}, {"b", EffectType}}
	for i, p := range want {
		if i >= len(seen) || seen[i] != p {
			t.Fatalf("pairs = %v, want prefix %v", seen, want)
		}
	}
}

func TestScrambleKeepsPrefix(t *testing.T) {
	target := []rune("spider")
	alphabet := []rune(DefaultAlphabet)
	rng := seeded()
	for k := 0; k <= len(target); k++ {
		got := []rune(Scramble(target, k, alphabet, rng))
		if len(got) != len(target) {
			t.Fatalf("k=%d: len = %d, want %d", k, len(got), len(target))
		}
		if string(got[:k]) != string(target[:k]) {
			t.Errorf("k=%d: %q does not keep prefix %q", k, string(got), string(target[:k]))
		}
		for _, c := range got[k:] {
			if !strings.ContainsRune(DefaultAlphabet, c) {
				t.Errorf("k=%d: rune %q not from alphabet", k, c)
			}
		}
	}
	if got := Scramble(target, 99, alphabet, rng); got != "spider" {
		t.Errorf("k past end = %q, want target", got)
	}
}

func TestRotatorScrambleResolves(t *testing.T) {
	s := NewScheduler()
	el := newFakeElement("")
	cfg := RotatorConfig{Effects: []Effect{EffectScramble}, Rand: seeded()}
	NewRotator(s, el, []string{"abc"}, cfg)

	s.Advance(3 * 50 * time.Millisecond)
	if el.text != "abc" {
		t.Fatalf("text = %q, want resolved after len iterations", el.text)
	}
	for k, h := range el.history {
		if !strings.HasPrefix(h, "abc"[:k]) {
			t.Errorf("iteration %d = %q, want prefix %q", k, h, "abc"[:k])
		}
	}
	s.Advance(2 * time.Second)
	if el.text != "ab" {
		t.Errorf("text = %q, want deletion after the hold", el.text)
	}
}

func TestRotatorFade(t *testing.T) {
	s := NewScheduler()
	el := newFakeElement("")
	cfg := RotatorConfig{Effects: []Effect{EffectFade}, Rand: seeded()}
	r := NewRotator(s, el, []string{"ab"}, cfg)

	if el.opacity != 0 {
		t.Fatalf("opacity = %v, want 0 at fade start", el.opacity)
	}
	s.Advance(500 * time.Millisecond)
	if el.text != "ab" || el.opacity != 1 {
		t.Fatalf("text = %q opacity = %v, want ab faded in", el.text, el.opacity)
	}
	s.Advance(2 * time.Second)
	if el.opacity != 0 {
		t.Errorf("opacity = %v, want fade out after the hold", el.opacity)
	}
	s.Advance(500 * time.Millisecond)
	if r.Pairs() != 1 {
		t.Errorf("pairs = %d, want 1", r.Pairs())
	}
}

func TestRotatorOpacityRestoredAfterFade(t *testing.T) {
	s := NewScheduler()
	el := newFakeElement("")
	cfg := RotatorConfig{Effects: []Effect{EffectFade, EffectType}, NoJitter: true, Rand: seeded()}
	r := NewRotator(s, el, []string{"a", "b"}, cfg)
	for i := 0; i < 10000 && r.Pairs() < 1; i++ {
		s.Advance(10 * time.Millisecond)
	}
	s.Advance(300 * time.Millisecond)
	if el.opacity != 1 {
		t.Errorf("opacity = %v, want 1 once a type pair begins", el.opacity)
	}
}

func TestRotatorDestroy(t *testing.T) {
	s := NewScheduler()
	el := newFakeElement("")
	called := 0
	cfg := typeOnly(RotatorConfig{OnTextChange: func(string, Effect) { called++ }})
	r := NewRotator(s, el, []string{"hello", "world"}, cfg)
	s.Advance(100 * time.Millisecond)

	r.Destroy()
	if el.text != "" {
		t.Fatalf("text = %q, want empty after Destroy", el.text)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending = %d, want 0 after Destroy", s.Pending())
	}
	n := len(el.history)
	s.Advance(time.Minute)
	if len(el.history) != n {
		t.Errorf("element mutated after Destroy: %v", el.history[n:])
	}
	if called != 1 {
		t.Errorf("callbacks = %d, want 1", called)
	}
	if !r.Destroyed() {
		t.Error("Destroyed() = false")
	}
	r.Resume()
	r.UpdateTexts([]string{"x"})
	s.Advance(time.Second)
	if el.text != "" {
		t.Error("destroyed rotator revived")
	}
}

func TestRotatorPauseResume(t *testing.T) {
	s := NewScheduler()
	el := newFakeElement("")
	r := NewRotator(s, el, []string{"hi"}, typeOnly(RotatorConfig{}))

	r.Pause()
	if !r.Paused() {
		t.Fatal("Paused() = false")
	}
	s.Advance(time.Second)
	if el.text != "h" {
		t.Fatalf("text = %q, paused rotator advanced", el.text)
	}

	r.Resume()
	s.Advance(79 * time.Millisecond)
	if el.text != "h" {
		t.Fatalf("text = %q, resumed early", el.text)
	}
	s.Advance(time.Millisecond)
	if el.text != "hi" {
		t.Errorf("text = %q, want hi after the remaining delay", el.text)
	}
}

func TestRotatorPauseFromCallback(t *testing.T) {
	s := NewScheduler()
	el := newFakeElement("")
	var r *Rotator
	cfg := typeOnly(RotatorConfig{OnTextChange: func(string, Effect) { r.Pause() }})
	r = NewRotator(s, el, nil, cfg)
	r.UpdateTexts([]string{"go"})
	if el.text != "" {
		t.Fatalf("text = %q, rotator paused in its callback still typed", el.text)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", s.Pending())
	}
}

func TestRotatorUpdateTextsFromCallback(t *testing.T) {
	s := NewScheduler()
	el := newFakeElement("")
	var r *Rotator
	starts := 0
	cfg := typeOnly(RotatorConfig{OnTextChange: func(string, Effect) {
		starts++
		if starts == 2 {
			r.UpdateTexts([]string{"abcd"})
		}
	}})
	r = NewRotator(s, el, []string{"x"}, cfg)
	// Stop at the instant the second pair begins.
	for starts < 2 {
		s.Advance(time.Millisecond)
	}
	if el.text != "a" {
		t.Errorf("text = %q after restart from the callback, want one rune", el.text)
	}
	if s.Pending() != 1 {
		t.Errorf("Pending = %d, want a single advancement chain", s.Pending())
	}
}

func TestRotatorJitterDefaults(t *testing.T) {
	var zero RotatorConfig
	zero.defaults()
	if zero.Jitter != 50*time.Millisecond {
		t.Errorf("zero Jitter = %v, want the 50ms default", zero.Jitter)
	}
	off := RotatorConfig{Jitter: 30 * time.Millisecond, NoJitter: true}
	off.defaults()
	if off.Jitter != 0 {
		t.Errorf("NoJitter Jitter = %v, want 0", off.Jitter)
	}
}

func TestRotatorEmptyTexts(t *testing.T) {
	s := NewScheduler()
	el := newFakeElement("static")
	r := NewRotator(s, el, nil, typeOnly(RotatorConfig{}))
	s.Advance(time.Minute)
	if el.text != "static" || len(el.history) != 0 {
		t.Errorf("empty rotator touched the element: %v", el.history)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", s.Pending())
	}

	r.UpdateTexts([]string{"go"})
	if el.text != "g" {
		t.Errorf("text = %q, want typing after UpdateTexts", el.text)
	}
}

func TestRotatorUpdateTextsResets(t *testing.T) {
	s := NewScheduler()
	el := newFakeElement("")
	r := NewRotator(s, el, []string{"a", "b", "c"}, RotatorConfig{NoJitter: true, Rand: seeded()})
	for i := 0; i < 10000 && r.Pairs() < 2; i++ {
		s.Advance(10 * time.Millisecond)
	}
	r.UpdateTexts([]string{"zz"})
	if ti, ei := r.State(); ti != 0 || ei != 0 {
		t.Errorf("State = (%d, %d), want (0, 0)", ti, ei)
	}
	if el.text != "z" {
		t.Errorf("text = %q, want new list typing", el.text)
	}
	if s.Pending() != 1 {
		t.Errorf("Pending = %d, want a single pending tick", s.Pending())
	}
}

func TestRotatorUpdateTextsWhilePaused(t *testing.T) {
	s := NewScheduler()
	el := newFakeElement("")
	var got []string
	cfg := typeOnly(RotatorConfig{OnTextChange: func(text string, _ Effect) { got = append(got, text) }})
	r := NewRotator(s, el, []string{"a"}, cfg)
	r.Pause()
	r.UpdateTexts([]string{"next"})
	s.Advance(time.Second)
	if len(got) != 1 {
		t.Fatalf("callbacks while paused = %v", got)
	}
	r.Resume()
	s.Advance(0)
	if len(got) != 2 || got[1] != "next" {
		t.Errorf("callbacks = %v, want next after Resume", got)
	}
}

func TestNilRotator(t *testing.T) {
	r := NewRotator(NewScheduler(), nil, []string{"a"}, RotatorConfig{})
	if r != nil {
		t.Fatal("nil element should yield a nil rotator")
	}
	r.Pause()
	r.Resume()
	r.Destroy()
	r.UpdateTexts([]string{"b"})
	if ti, ei := r.State(); ti != 0 || ei != 0 || r.Pairs() != 0 || r.Paused() {
		t.Error("nil rotator should report zero state")
	}
}

func TestRotatorSinglePendingTick(t *testing.T) {
	s := NewScheduler()
	el := newFakeElement("")
	r := NewRotator(s, el, []string{"abc", "de"}, RotatorConfig{Rand: seeded()})
	for i := 0; i < 2000; i++ {
		s.Advance(7 * time.Millisecond)
		if s.Pending() > 1 {
			t.Fatalf("step %d: %d pending ticks", i, s.Pending())
		}
		if i%97 == 0 {
			r.Pause()
			r.Resume()
		}
	}
}
