package engine

import (
	"sort"
	"time"
)

// timer is an interval or one-shot registration
type timer struct {
	id        uint64
	deadline  time.Time
	interval  time.Duration // Zero for one-shot
	fn        func()
	cancelled bool
}

// frameRequest is a one-shot callback for the next frame
type frameRequest struct {
	fn        func(now time.Time)
	cancelled bool
}

// Scheduler is the host scheduler for component callbacks: intervals, timeouts and frame callbacks
// Not safe for concurrent use; every method runs on the loop goroutine
type Scheduler struct {
	clock  TimeProvider
	timers []*timer
	frames []*frameRequest
	nextID uint64
}

// NewScheduler creates a scheduler reading deadlines from clock
func NewScheduler(clock TimeProvider) *Scheduler {
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	return &Scheduler{clock: clock}
}

// Now returns the scheduler's current time
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// Every runs fn every d until cancelled
// The returned cancel func is idempotent
func (s *Scheduler) Every(d time.Duration, fn func()) (cancel func()) {
	if d <= 0 {
		d = time.Millisecond
	}
	return s.add(d, d, fn)
}

// After runs fn once after d unless cancelled first
func (s *Scheduler) After(d time.Duration, fn func()) (cancel func()) {
	return s.add(d, 0, fn)
}

func (s *Scheduler) add(d, interval time.Duration, fn func()) func() {
	if fn == nil {
		return func() {}
	}
	s.nextID++
	t := &timer{
		id:       s.nextID,
		deadline: s.clock.Now().Add(d),
		interval: interval,
		fn:       fn,
	}
	s.timers = append(s.timers, t)
	return func() { t.cancelled = true }
}

// RequestFrame runs fn once on the next frame
// Callbacks that want to keep running request the following frame themselves
func (s *Scheduler) RequestFrame(fn func(now time.Time)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	r := &frameRequest{fn: fn}
	s.frames = append(s.frames, r)
	return func() { r.cancelled = true }
}

// Advance fires every timer due at now, in deadline order
// An interval fires at most once per call; missed periods are skipped rather than replayed
func (s *Scheduler) Advance(now time.Time) int {
	var due []*timer
	for _, t := range s.timers {
		if !t.cancelled && !t.deadline.After(now) {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].id < due[j].id
		}
		return due[i].deadline.Before(due[j].deadline)
	})

	fired := 0
	for _, t := range due {
		// A callback earlier in this pass may cancel a later one
		if t.cancelled {
			continue
		}
		if t.interval > 0 {
			t.deadline = t.deadline.Add(t.interval)
			if !t.deadline.After(now) {
				t.deadline = now.Add(t.interval)
			}
		} else {
			t.cancelled = true
		}
		t.fn()
		fired++
	}

	s.compactTimers()
	return fired
}

// RunFrame runs the frame callbacks queued before this call
func (s *Scheduler) RunFrame(now time.Time) int {
	if len(s.frames) == 0 {
		return 0
	}
	batch := s.frames
	s.frames = nil

	ran := 0
	for _, r := range batch {
		if r.cancelled {
			continue
		}
		r.cancelled = true
		r.fn(now)
		ran++
	}
	return ran
}

// NextDeadline returns the earliest pending timer deadline
func (s *Scheduler) NextDeadline() (time.Time, bool) {
	var next time.Time
	found := false
	for _, t := range s.timers {
		if t.cancelled {
			continue
		}
		if !found || t.deadline.Before(next) {
			next = t.deadline
			found = true
		}
	}
	return next, found
}

// Pending returns the number of live registrations, timers and frame callbacks
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.cancelled {
			n++
		}
	}
	for _, r := range s.frames {
		if !r.cancelled {
			n++
		}
	}
	return n
}

// Clear cancels every registration
func (s *Scheduler) Clear() {
	for _, t := range s.timers {
		t.cancelled = true
	}
	for _, r := range s.frames {
		r.cancelled = true
	}
	s.timers = nil
	s.frames = nil
}

func (s *Scheduler) compactTimers() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = live
}
