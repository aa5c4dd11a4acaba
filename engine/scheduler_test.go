package engine

import (
	"testing"
	"time"
)

var epoch = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func TestAfterFiresOnce(t *testing.T) {
	clock := NewMockTimeProvider(epoch)
	s := NewScheduler(clock)

	calls := 0
	s.After(800*time.Millisecond, func() { calls++ })

	clock.Advance(799 * time.Millisecond)
	s.Advance(clock.Now())
	if calls != 0 {
		t.Fatalf("Expected no call before deadline, got %d", calls)
	}

	clock.Advance(time.Millisecond)
	s.Advance(clock.Now())
	clock.Advance(time.Second)
	s.Advance(clock.Now())
	if calls != 1 {
		t.Errorf("Expected exactly 1 call, got %d", calls)
	}
	if s.Pending() != 0 {
		t.Errorf("Expected no pending registrations, got %d", s.Pending())
	}
}

func TestEveryRepeatsAndSkipsBacklog(t *testing.T) {
	clock := NewMockTimeProvider(epoch)
	s := NewScheduler(clock)

	calls := 0
	cancel := s.Every(100*time.Millisecond, func() { calls++ })

	for i := 0; i < 10; i++ {
		clock.Advance(100 * time.Millisecond)
		s.Advance(clock.Now())
	}
	if calls != 10 {
		t.Errorf("Expected 10 interval calls, got %d", calls)
	}

	// A long stall fires once, not once per missed period
	clock.Advance(time.Second)
	s.Advance(clock.Now())
	if calls != 11 {
		t.Errorf("Expected 11 calls after stall, got %d", calls)
	}

	cancel()
	cancel()
	clock.Advance(time.Second)
	s.Advance(clock.Now())
	if calls != 11 {
		t.Errorf("Expected no calls after cancel, got %d", calls)
	}
	if s.Pending() != 0 {
		t.Errorf("Expected no pending registrations, got %d", s.Pending())
	}
}

func TestAdvanceFiresInDeadlineOrder(t *testing.T) {
	clock := NewMockTimeProvider(epoch)
	s := NewScheduler(clock)

	var order []string
	s.After(300*time.Millisecond, func() { order = append(order, "c") })
	s.After(100*time.Millisecond, func() { order = append(order, "a") })
	s.After(200*time.Millisecond, func() { order = append(order, "b") })

	clock.Advance(time.Second)
	s.Advance(clock.Now())

	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Errorf("Expected [a b c], got %v", order)
	}
}

func TestCallbackCancelsLaterTimer(t *testing.T) {
	clock := NewMockTimeProvider(epoch)
	s := NewScheduler(clock)

	var cancelB func()
	fired := false
	s.After(10*time.Millisecond, func() { cancelB() })
	cancelB = s.After(20*time.Millisecond, func() { fired = true })

	clock.Advance(time.Second)
	s.Advance(clock.Now())
	if fired {
		t.Error("Expected timer cancelled by an earlier callback in the same pass not to fire")
	}
}

func TestRequestFrameRunsOnce(t *testing.T) {
	clock := NewMockTimeProvider(epoch)
	s := NewScheduler(clock)

	var frames int
	var loop func(now time.Time)
	cancel := func() {}
	loop = func(now time.Time) {
		frames++
		cancel = s.RequestFrame(loop)
	}
	cancel = s.RequestFrame(loop)

	for i := 0; i < 5; i++ {
		if ran := s.RunFrame(clock.Now()); ran != 1 {
			t.Fatalf("Expected 1 frame callback per frame, got %d", ran)
		}
	}
	if frames != 5 {
		t.Errorf("Expected 5 frames, got %d", frames)
	}

	cancel()
	if ran := s.RunFrame(clock.Now()); ran != 0 {
		t.Errorf("Expected cancelled chain to stop, got %d", ran)
	}
	if s.Pending() != 0 {
		t.Errorf("Expected no pending registrations, got %d", s.Pending())
	}
}

func TestNextDeadlineAndClear(t *testing.T) {
	clock := NewMockTimeProvider(epoch)
	s := NewScheduler(clock)

	if _, ok := s.NextDeadline(); ok {
		t.Error("Expected no deadline on empty scheduler")
	}
	s.After(time.Second, func() {})
	s.Every(250*time.Millisecond, func() {})
	s.RequestFrame(func(time.Time) {})

	next, ok := s.NextDeadline()
	if !ok || !next.Equal(epoch.Add(250*time.Millisecond)) {
		t.Errorf("Expected next deadline at +250ms, got %v", next)
	}
	if s.Pending() != 3 {
		t.Errorf("Expected 3 pending, got %d", s.Pending())
	}
	s.Clear()
	if s.Pending() != 0 {
		t.Errorf("Expected 0 pending after clear, got %d", s.Pending())
	}
}

func TestNilCallbacksAreIgnored(t *testing.T) {
	s := NewScheduler(NewMockTimeProvider(epoch))
	s.After(0, nil)()
	s.Every(time.Second, nil)()
	s.RequestFrame(nil)()
	if s.Pending() != 0 {
		t.Errorf("Expected nil callbacks not to register, got %d", s.Pending())
	}
}
