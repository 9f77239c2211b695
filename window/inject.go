package window

import "github.com/hajimehoshi/ebiten/v2"

// InjectKey queues a synthetic key press. One queued key is consumed per
// frame, before real keyboard input, and handled exactly like a press.
func (g *Game) InjectKey(k ebiten.Key) {
	g.injectQueue = append(g.injectQueue, k)
}

// InjectKeys queues several presses, one per frame.
func (g *Game) InjectKeys(keys ...ebiten.Key) {
	g.injectQueue = append(g.injectQueue, keys...)
}

// processInjectedInput pops one key from the inject queue and handles it.
// Returns true if a key was consumed (real keyboard input is skipped).
func (g *Game) processInjectedInput() bool {
	if len(g.injectQueue) == 0 {
		return false
	}
	k := g.injectQueue[0]
	copy(g.injectQueue, g.injectQueue[1:])
	g.injectQueue = g.injectQueue[:len(g.injectQueue)-1]
	g.handleKey(k)
	return true
}
