package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// boundKeys are polled every frame, in this order.
var boundKeys = []ebiten.Key{
	ebiten.KeyTab,
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyT, ebiten.KeyM, ebiten.KeyP, ebiten.KeySpace,
	ebiten.KeyEscape, ebiten.KeyQ,
}

// keyNames maps test script key names to keys.
var keyNames = map[string]ebiten.Key{
	"tab":    ebiten.KeyTab,
	"1":      ebiten.KeyDigit1,
	"2":      ebiten.KeyDigit2,
	"3":      ebiten.KeyDigit3,
	"4":      ebiten.KeyDigit4,
	"5":      ebiten.KeyDigit5,
	"6":      ebiten.KeyDigit6,
	"t":      ebiten.KeyT,
	"m":      ebiten.KeyM,
	"p":      ebiten.KeyP,
	"space":  ebiten.KeySpace,
	"escape": ebiten.KeyEscape,
	"q":      ebiten.KeyQ,
}

// pressedKeys returns the bound keys pressed this frame on the keyboard.
func pressedKeys(buf []ebiten.Key) []ebiten.Key {
	buf = buf[:0]
	for _, k := range boundKeys {
		if inpututil.IsKeyJustPressed(k) {
			buf = append(buf, k)
		}
	}
	return buf
}

// handleKey applies the key binding for k.
func (g *Game) handleKey(k ebiten.Key) {
	switch k {
	case ebiten.KeyTab:
		g.SelectPanel((g.panel + 1) % panelCount)
	case ebiten.KeyDigit1:
		g.SelectPanel(PanelAbout)
	case ebiten.KeyDigit2:
		g.SelectPanel(PanelProjects)
	case ebiten.KeyDigit3:
		g.SelectPanel(PanelResearch)
	case ebiten.KeyDigit4:
		g.SelectPanel(PanelMusic)
	case ebiten.KeyDigit5:
		g.SelectPanel(PanelRepos)
	case ebiten.KeyDigit6:
		g.SelectPanel(PanelPosts)
	case ebiten.KeyT:
		g.CycleTheme()
	case ebiten.KeyM:
		g.ToggleMode()
	case ebiten.KeyP:
		g.ToggleWeb()
	case ebiten.KeySpace:
		g.ToggleRotator()
	case ebiten.KeyEscape, ebiten.KeyQ:
		g.Quit()
	}
}
