package folio

import "time"

// Cycler shows items one after another in a text element at a fixed
// interval, optionally fading out before each swap and back in after it.
// It backs the "now playing" label and the quote rotation.
type Cycler struct {
	sched    *Scheduler
	el       TextElement
	items    []string
	interval time.Duration
	fade     time.Duration

	index int
	every *Timer
	swap  *Timer
}

// NewCycler shows the first item immediately and the next one every
// interval. A positive fade fades out, swaps after fade and fades in.
// A nil element or empty items returns nil.
func NewCycler(sched *Scheduler, el TextElement, items []string, interval, fade time.Duration) *Cycler {
	if el == nil || sched == nil || len(items) == 0 {
		return nil
	}
	c := &Cycler{
		sched:    sched,
		el:       el,
		items:    append([]string(nil), items...),
		interval: interval,
		fade:     fade,
	}
	c.show()
	c.every = sched.Every(interval, c.advance)
	return c
}

// Index returns the index of the item that will be shown next.
func (c *Cycler) Index() int {
	if c == nil {
		return 0
	}
	return c.index
}

// Stop cancels the rotation. The element keeps its last item.
func (c *Cycler) Stop() {
	if c == nil {
		return
	}
	c.every.Stop()
	c.swap.Stop()
}

func (c *Cycler) advance() {
	if c.fade <= 0 {
		c.show()
		return
	}
	c.el.FadeTo(0, c.fade)
	c.swap.Stop()
	c.swap = c.sched.After(c.fade, func() {
		c.show()
		c.el.FadeTo(1, c.fade)
	})
}

func (c *Cycler) show() {
	c.el.SetText(c.items[c.index])
	c.index = (c.index + 1) % len(c.items)
}
