package window

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
}

// Run opens a window and runs game until it quits or the window closes.
func Run(game *Game, cfg RunConfig) error {
	if cfg.Title == "" {
		cfg.Title = "folio"
	}
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	// Keep ticking while unfocused so visibility changes are observed.
	ebiten.SetRunnableOnUnfocused(true)
	return ebiten.RunGame(game)
}
