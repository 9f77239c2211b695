package folio

import (
	"strings"
	"testing"
	"time"
)

func TestGlitchCorruptsAndRestores(t *testing.T) {
	s := NewScheduler()
	el := newFakeElement("Rudra")
	g := NewGlitch(s, el, "Rudra", GlitchConfig{Intensity: 1, Rand: seeded()})

	g.Start()
	if !g.Active() {
		t.Fatal("glitch should be active")
	}
	s.Advance(120 * time.Millisecond)
	if el.text == "Rudra" {
		t.Fatal("text unchanged at full intensity")
	}
	for _, c := range el.text {
		if !strings.ContainsRune(glitchRunes, c) {
			t.Errorf("rune %q not a glitch rune", c)
		}
	}

	s.Advance(480 * time.Millisecond)
	if g.Active() {
		t.Error("glitch still active after its duration")
	}
	if el.text != "Rudra" {
		t.Errorf("text = %q, want restored", el.text)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", s.Pending())
	}
}

func TestGlitchStartWhileActive(t *testing.T) {
	s := NewScheduler()
	el := newFakeElement("abc")
	g := NewGlitch(s, el, "abc", GlitchConfig{Rand: seeded()})
	g.Start()
	g.Start()
	if s.Pending() != 2 {
		t.Errorf("Pending = %d, want 2", s.Pending())
	}
	g.Stop()
	if s.Pending() != 0 || el.text != "abc" {
		t.Errorf("Stop left %d timers and text %q", s.Pending(), el.text)
	}
}

func TestGlitchZeroIntensityDefaults(t *testing.T) {
	g := NewGlitch(NewScheduler(), newFakeElement(""), "x", GlitchConfig{})
	if g.cfg.Intensity != 0.04 || g.cfg.Speed != 120*time.Millisecond || g.cfg.Duration != 600*time.Millisecond {
		t.Errorf("defaults = %+v", g.cfg)
	}
	var nilGlitch *Glitch
	nilGlitch.Start()
	nilGlitch.Stop()
	if nilGlitch.Active() {
		t.Error("nil glitch active")
	}
}
