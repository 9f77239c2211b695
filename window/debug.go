package window

import (
	"fmt"
	"io"
	"time"
)

// debugStats holds per-frame timing and web metrics. Only populated when
// debug mode is on.
type debugStats struct {
	updateTime time.Duration
	webTime    time.Duration
	drawTime   time.Duration
	edges      int
	pending    int
}

// debugEvery is the frame interval between debug lines.
const debugEvery = 60

// debugLog prints stats to w every debugEvery frames.
func (g *Game) debugLog(w io.Writer, stats debugStats) {
	if !g.debug || g.frame%debugEvery != 0 {
		return
	}
	total := stats.updateTime + stats.webTime + stats.drawTime
	_, _ = fmt.Fprintf(w,
		"[folio] update: %v | web: %v | draw: %v | total: %v\n",
		stats.updateTime, stats.webTime, stats.drawTime, total)
	_, _ = fmt.Fprintf(w,
		"[folio] edges: %d | timers: %d | web running: %v\n",
		stats.edges, stats.pending, g.web.Running())
}
