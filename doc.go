// Package folio is the animation core of an interactive personal portfolio.
//
// It has no rendering dependency of its own. Front ends supply a [Surface]
// for the web animation and [TextElement] values for the text effects; the
// Ebitengine window lives in folio/window and the terminal renderer in
// folio/term.
//
// # Quick start
//
// Everything is driven from the host frame loop. Create a [Scheduler], bind
// the effects, and advance both once per frame:
//
//	sched := folio.NewScheduler()
//	web := folio.NewWeb(surface, 1280, 720, folio.WebConfig{})
//	rot := folio.NewRotator(sched, label, []string{"Developer", "Researcher"}, folio.RotatorConfig{})
//
//	// every frame:
//	sched.Advance(dt)
//	web.Frame()
//
// # Web
//
// [Web] moves a fixed set of points with constant velocity, reflects them at
// the viewport bounds and strokes a line between every pair closer than the
// threshold. Line alpha falls linearly from 1 at distance zero to 0 at the
// threshold ([EdgeAlpha]). Under reduced motion a static grid is drawn once
// instead. A nil surface yields a nil *Web, and every method on a nil *Web
// does nothing.
//
// # Text rotation
//
// [Rotator] cycles a text element through strings, presenting each with one
// of three effects (type, scramble, fade). Text and effect advance together,
// so after len(texts) x len(effects) pairs it is back at the first pair.
// It keeps at most one pending tick on the scheduler, which makes [Rotator.Pause],
// [Rotator.Destroy] and [Rotator.UpdateTexts] exact.
//
// [Glitch] and [Cycler] are smaller decorations built on the same scheduler;
// [Fader] animates opacity with [gween] tweens for element implementations.
//
// # Themes
//
// [Themes] keeps the light/dark mode and the palette position and persists
// them through a [PrefStore] under the keys "theme" and "spider-theme".
//
// [gween]: https://github.com/tanema/gween
package folio
