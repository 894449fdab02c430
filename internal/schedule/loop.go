// Package schedule is the cooperative task model the page runs on: animation
// frames, one-shot delays and intervals, all fired from a single host loop.
package schedule

import (
	"sort"
	"time"
)

// Scheduler is the surface components use to acquire frame and timer callbacks.
type Scheduler interface {
	Now() time.Time
	RequestFrame(fn func(now time.Time)) Handle
	After(d time.Duration, fn func(now time.Time)) Handle
	Every(d time.Duration, fn func(now time.Time)) Handle
}

type taskKind int

const (
	kindFrame taskKind = iota
	kindAfter
	kindEvery
)

type task struct {
	id     uint64
	kind   taskKind
	due    time.Time
	period time.Duration
	fn     func(time.Time)
}

// Handle identifies one scheduled callback. The zero Handle is valid and
// cancelling it does nothing.
type Handle struct {
	loop *Loop
	id   uint64
}

// Cancel removes the callback if it has not fired yet (or, for intervals,
// stops further firings). Cancelling twice is harmless.
func (h Handle) Cancel() {
	if h.loop == nil {
		return
	}
	delete(h.loop.tasks, h.id)
}

// Active reports whether the callback is still scheduled.
func (h Handle) Active() bool {
	if h.loop == nil {
		return false
	}
	_, ok := h.loop.tasks[h.id]
	return ok
}

// Loop is a single-threaded scheduler. The host calls Advance once per tick;
// due timers fire first, then every frame callback that was requested before
// the tick began. Frames requested from inside a callback run on the next tick.
// Loop is not safe for concurrent use.
type Loop struct {
	clock  Clock
	nextID uint64
	tasks  map[uint64]*task
	frames uint64
}

func NewLoop(clock Clock) *Loop {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Loop{
		clock: clock,
		tasks: make(map[uint64]*task),
	}
}

func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

func (l *Loop) add(t *task) Handle {
	l.nextID++
	t.id = l.nextID
	l.tasks[t.id] = t
	return Handle{loop: l, id: t.id}
}

func (l *Loop) RequestFrame(fn func(time.Time)) Handle {
	return l.add(&task{kind: kindFrame, fn: fn})
}

func (l *Loop) After(d time.Duration, fn func(time.Time)) Handle {
	return l.add(&task{kind: kindAfter, due: l.clock.Now().Add(d), fn: fn})
}

func (l *Loop) Every(d time.Duration, fn func(time.Time)) Handle {
	if d <= 0 {
		d = time.Millisecond
	}
	return l.add(&task{kind: kindEvery, due: l.clock.Now().Add(d), period: d, fn: fn})
}

// Pending counts callbacks still scheduled.
func (l *Loop) Pending() int {
	return len(l.tasks)
}

// PendingFrames counts frame callbacks waiting for the next tick.
func (l *Loop) PendingFrames() int {
	n := 0
	for _, t := range l.tasks {
		if t.kind == kindFrame {
			n++
		}
	}
	return n
}

// Frames returns how many ticks ran at least one frame callback.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Advance runs everything due at now and returns the number of callbacks fired.
func (l *Loop) Advance(now time.Time) int {
	cutoff := l.nextID
	var timers, frames []*task
	for _, t := range l.tasks {
		switch {
		case t.kind == kindFrame && t.id <= cutoff:
			frames = append(frames, t)
		case t.kind != kindFrame && !t.due.After(now):
			timers = append(timers, t)
		}
	}
	sort.Slice(timers, func(i, j int) bool {
		if timers[i].due.Equal(timers[j].due) {
			return timers[i].id < timers[j].id
		}
		return timers[i].due.Before(timers[j].due)
	})
	sort.Slice(frames, func(i, j int) bool { return frames[i].id < frames[j].id })

	fired := 0
	for _, t := range timers {
		// an earlier callback may have cancelled this one
		if _, ok := l.tasks[t.id]; !ok {
			continue
		}
		if t.kind == kindAfter {
			delete(l.tasks, t.id)
		} else {
			t.due = t.due.Add(t.period)
			if !t.due.After(now) {
				t.due = now.Add(t.period)
			}
		}
		t.fn(now)
		fired++
	}

	ranFrame := false
	for _, t := range frames {
		if _, ok := l.tasks[t.id]; !ok {
			continue
		}
		delete(l.tasks, t.id)
		t.fn(now)
		fired++
		ranFrame = true
	}
	if ranFrame {
		l.frames++
	}
	return fired
}
