package folio

import (
	"container/heap"
	"time"
)

// Scheduler is a cooperative timer queue driven by the host frame loop.
// It never spawns goroutines: timers fire from inside Advance, on the caller's
// goroutine, in deadline order. Everything scheduled through one Scheduler
// must be touched from a single goroutine.
type Scheduler struct {
	now    time.Duration
	seq    uint64
	timers timerHeap
}

// Timer is a cancellation token for a scheduled callback.
type Timer struct {
	s      *Scheduler
	at     time.Duration
	period time.Duration
	seq    uint64
	fn     func()
	index  int // heap index, -1 when not queued
}

// NewScheduler creates an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler's virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of queued timers.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// After schedules fn to run once, d after the current virtual time.
// Negative delays are treated as zero.
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	return s.schedule(d, 0, fn)
}

// Every schedules fn to run every d until the returned timer is stopped.
// A non-positive period is rejected by returning a stopped timer.
func (s *Scheduler) Every(d time.Duration, fn func()) *Timer {
	if d <= 0 {
		return &Timer{s: s, index: -1}
	}
	return s.schedule(d, d, fn)
}

func (s *Scheduler) schedule(d, period time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &Timer{s: s, at: s.now + d, period: period, seq: s.seq, fn: fn, index: -1}
	heap.Push(&s.timers, t)
	return t
}

// Advance moves virtual time forward by dt and fires every timer whose
// deadline falls inside the window, including timers scheduled by callbacks
// during this call.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	for len(s.timers) > 0 {
		t := s.timers[0]
		if t.at > target {
			break
		}
		heap.Pop(&s.timers)
		s.now = t.at
		if t.period > 0 {
			s.seq++
			t.seq = s.seq
			t.at += t.period
			heap.Push(&s.timers, t)
		}
		if t.fn != nil {
			t.fn()
		}
	}
	s.now = target
}

// Stop cancels the timer. It reports whether the call removed a pending
// timer. Stopping a nil or already fired timer is a no-op.
func (t *Timer) Stop() bool {
	if t == nil || t.s == nil || t.index < 0 {
		return false
	}
	heap.Remove(&t.s.timers, t.index)
	return true
}

// Active reports whether the timer is still queued.
func (t *Timer) Active() bool {
	return t != nil && t.index >= 0
}

type timerHeap []*Timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*Timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
