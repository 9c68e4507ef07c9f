package loop

import (
	"cmp"
	"slices"
	"time"
)

type TimerID uint64

type timer struct {
	id TimerID
	at time.Duration
	fn func()
}

// Timers are one-shot callbacks on frame time. They fire from Advance on
// the loop goroutine, never concurrently with a tick.
type Timers struct {
	now     time.Duration
	next    TimerID
	pending map[TimerID]timer
}

func NewTimers() *Timers {
	return &Timers{pending: make(map[TimerID]timer)}
}

// After schedules fn to run once d has elapsed from the last advanced time.
func (t *Timers) After(d time.Duration, fn func()) TimerID {
	t.next++
	t.pending[t.next] = timer{id: t.next, at: t.now + d, fn: fn}
	return t.next
}

// Cancel drops a pending timer. It reports whether the timer was pending.
func (t *Timers) Cancel(id TimerID) bool {
	if _, ok := t.pending[id]; !ok {
		return false
	}
	delete(t.pending, id)
	return true
}

func (t *Timers) CancelAll() {
	clear(t.pending)
}

func (t *Timers) Len() int { return len(t.pending) }

// Advance moves the clock to now and runs every due timer, earliest first.
// Timers scheduled by a callback are measured from now.
func (t *Timers) Advance(now time.Duration) {
	if now > t.now {
		t.now = now
	}
	var due []timer
	for id, tmr := range t.pending {
		if tmr.at <= t.now {
			due = append(due, tmr)
			delete(t.pending, id)
		}
	}
	slices.SortFunc(due, func(a, b timer) int {
		if c := cmp.Compare(a.at, b.at); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
	for _, tmr := range due {
		tmr.fn()
	}
}
