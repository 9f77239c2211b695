package folio

import (
	"strconv"

	"github.com/phanxgames/folio/site"
)

// Preference keys. No other keys are ever persisted.
const (
	KeyMode    = "theme"
	KeyPalette = "spider-theme"
)

// Mode is the light/dark display mode.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// PrefStore persists string preferences. prefs.Store and prefs.Memory
// implement it.
type PrefStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Themes tracks the display mode and the palette position, persisting both
// through a PrefStore. A nil store keeps state in memory only.
type Themes struct {
	store   PrefStore
	palette []site.Theme
	index   int

	mode        Mode
	explicit    bool // mode came from a saved choice
	prefersDark bool
}

// NewThemes restores saved state. The mode is the saved value, else dark
// when the system prefers dark, else light. An unreadable or out of range
// palette index starts at 0. The first store error is returned alongside a
// usable Themes.
func NewThemes(store PrefStore, palette []site.Theme, prefersDark bool) (*Themes, error) {
	t := &Themes{store: store, palette: palette, prefersDark: prefersDark}
	t.mode = t.systemMode()

	var firstErr error
	keep := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}
	if store == nil {
		return t, nil
	}

	if v, ok, err := store.Get(KeyMode); err != nil {
		keep(err)
	} else if ok && (Mode(v) == ModeDark || Mode(v) == ModeLight) {
		t.mode = Mode(v)
		t.explicit = true
	}

	if v, ok, err := store.Get(KeyPalette); err != nil {
		keep(err)
	} else if ok {
		if i, err := strconv.Atoi(v); err == nil && i >= 0 && i < len(palette) {
			t.index = i
		}
	}
	return t, firstErr
}

func (t *Themes) systemMode() Mode {
	if t.prefersDark {
		return ModeDark
	}
	return ModeLight
}

// Mode returns the active display mode.
func (t *Themes) Mode() Mode {
	return t.mode
}

// ToggleMode flips between light and dark and saves the choice.
func (t *Themes) ToggleMode() (Mode, error) {
	if t.mode == ModeDark {
		t.mode = ModeLight
	} else {
		t.mode = ModeDark
	}
	t.explicit = true
	return t.mode, t.save(KeyMode, string(t.mode))
}

// SetSystemPreference follows a change of the system color scheme. It only
// takes effect while no explicit choice has been saved.
func (t *Themes) SetSystemPreference(dark bool) {
	t.prefersDark = dark
	if !t.explicit {
		t.mode = t.systemMode()
	}
}

// Index returns the palette position.
func (t *Themes) Index() int {
	return t.index
}

// Current returns the active palette entry, or the zero Theme when the
// palette is empty.
func (t *Themes) Current() site.Theme {
	if len(t.palette) == 0 {
		return site.Theme{}
	}
	return t.palette[t.index]
}

// Cycle advances to the next palette entry, wrapping around, saves the
// position and returns the new entry.
func (t *Themes) Cycle() (site.Theme, error) {
	if len(t.palette) == 0 {
		return site.Theme{}, nil
	}
	t.index = (t.index + 1) % len(t.palette)
	return t.palette[t.index], t.save(KeyPalette, strconv.Itoa(t.index))
}

// Primary returns the active entry's primary color, or ColorWeb when it is
// missing or malformed.
func (t *Themes) Primary() Color {
	c, err := ParseHex(t.Current().Primary)
	if err != nil {
		return ColorWeb
	}
	return c
}

func (t *Themes) save(key, value string) error {
	if t.store == nil {
		return nil
	}
	return t.store.Set(key, value)
}
