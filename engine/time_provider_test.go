package engine

import (
	"testing"
	"time"
)

func TestMonotonicTimeProvider(t *testing.T) {
	provider := NewMonotonicTimeProvider()

	t1 := provider.Now()
	time.Sleep(10 * time.Millisecond)
	t2 := provider.Now()

	if diff := t2.Sub(t1); diff < 10*time.Millisecond {
		t.Errorf("Expected at least 10ms difference, got %v", diff)
	}
}

func TestMockTimeProvider(t *testing.T) {
	mock := NewMockTimeProvider(epoch)
	if !mock.Now().Equal(epoch) {
		t.Errorf("Expected initial time %v, got %v", epoch, mock.Now())
	}

	next := epoch.Add(24 * time.Hour)
	mock.SetTime(next)
	mock.Advance(30 * time.Minute)
	mock.Advance(15 * time.Minute)
	if want := next.Add(45 * time.Minute); !mock.Now().Equal(want) {
		t.Errorf("Expected %v after advances, got %v", want, mock.Now())
	}
}

func TestPausableClock(t *testing.T) {
	real := NewMockTimeProvider(epoch)
	pc := NewPausableClock(real)

	real.Advance(time.Second)
	if got := pc.Now().Sub(epoch); got != time.Second {
		t.Errorf("Expected 1s of simulation time, got %v", got)
	}

	if !pc.Toggle() {
		t.Fatal("Expected toggle to pause")
	}
	real.Advance(5 * time.Second)
	if got := pc.Now().Sub(epoch); got != time.Second {
		t.Errorf("Expected simulation time frozen at 1s, got %v", got)
	}
	if got := pc.TotalPauseDuration(); got != 5*time.Second {
		t.Errorf("Expected 5s of pause in progress, got %v", got)
	}

	if pc.Toggle() {
		t.Fatal("Expected toggle to resume")
	}
	real.Advance(time.Second)
	if got := pc.Now().Sub(epoch); got != 2*time.Second {
		t.Errorf("Expected 2s of simulation time, got %v", got)
	}
	if !pc.RealTime().Equal(epoch.Add(7 * time.Second)) {
		t.Errorf("Expected real time unaffected by pause, got %v", pc.RealTime())
	}

	pc.Resume()
	if pc.IsPaused() {
		t.Error("Expected resume on running clock to be a no-op")
	}
}
