package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock provides simulation time that stops while paused
// Only the physics step follows it; timers and frame callbacks stay on wall time
type PausableClock struct {
	mu sync.RWMutex

	real      TimeProvider
	realStart time.Time
	simStart  time.Time

	isPaused        atomic.Bool
	pauseStart      time.Time
	totalPausedTime time.Duration
}

// NewPausableClock creates a clock driven by real time
func NewPausableClock(real TimeProvider) *PausableClock {
	if real == nil {
		real = NewMonotonicTimeProvider()
	}
	now := real.Now()
	return &PausableClock{
		real:      real,
		realStart: now,
		simStart:  now,
	}
}

// Now returns simulation time (frozen while paused)
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.isPaused.Load() {
		return pc.simStart.Add(pc.pauseStart.Sub(pc.realStart) - pc.totalPausedTime)
	}
	elapsed := pc.real.Now().Sub(pc.realStart) - pc.totalPausedTime
	return pc.simStart.Add(elapsed)
}

// RealTime returns the underlying wall time
func (pc *PausableClock) RealTime() time.Time {
	return pc.real.Now()
}

// Pause freezes simulation time
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.isPaused.CompareAndSwap(false, true) {
		pc.pauseStart = pc.real.Now()
	}
}

// Resume continues simulation time, excluding the paused span
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.isPaused.CompareAndSwap(true, false) {
		if !pc.pauseStart.IsZero() {
			pc.totalPausedTime += pc.real.Now().Sub(pc.pauseStart)
			pc.pauseStart = time.Time{}
		}
	}
}

// Toggle flips the pause state and reports whether the clock is now paused
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused reports the pause state
func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused.Load()
}

// TotalPauseDuration returns cumulative pause time including a pause in progress
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.isPaused.Load() && !pc.pauseStart.IsZero() {
		total += pc.real.Now().Sub(pc.pauseStart)
	}
	return total
}
