package status

import (
	"sync"
	"testing"
)

func TestCachedPointers(t *testing.T) {
	r := NewRegistry()
	c := r.Counter(BodiesSpawned)
	c.Add(2)
	if r.Counter(BodiesSpawned) != c {
		t.Error("Expected the same counter pointer on repeated lookup")
	}
	if got := r.Counter(BodiesSpawned).Load(); got != 2 {
		t.Errorf("Expected counter 2, got %d", got)
	}
}

func TestSnapshotAndFormat(t *testing.T) {
	r := NewRegistry()
	r.Counter(BodiesLive).Store(3)
	r.Gauge(TimelineProgress).Set(0.5)
	r.Label(TimelineClock).Set("14:00")
	r.Flag(DetailVisible).Store(true)

	snap := r.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("Expected 4 metrics, got %d", len(snap))
	}
	for i := 1; i < len(snap); i++ {
		if snap[i-1].Name > snap[i].Name {
			t.Errorf("Expected sorted snapshot, got %q before %q", snap[i-1].Name, snap[i].Name)
		}
	}

	got := r.Format(TimelineClock, BodiesLive, "missing", TimelineProgress)
	want := "timeline.clock=14:00 bodies.live=3 timeline.progress=0.50"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestLabelTruncates(t *testing.T) {
	var l Label
	if l.Get() != "" {
		t.Error("Expected zero label to be empty")
	}
	l.Set("0123456789012345678901234567890")
	if len(l.Get()) != MaxLabelLen {
		t.Errorf("Expected label truncated to %d, got %d", MaxLabelLen, len(l.Get()))
	}
}

func TestNilRegistryIsUsable(t *testing.T) {
	var r *Registry
	r.Counter("x").Add(1)
	r.Gauge("y").Set(1)
	r.Label("z").Set("v")
	r.Flag("f").Store(true)
	if r.Snapshot() != nil || r.Format("x") != "" {
		t.Error("Expected nil registry to report nothing")
	}
}

func TestConcurrentRegistration(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				r.Counter(EngineFrames).Add(1)
			}
		}()
	}
	wg.Wait()
	if got := r.Counter(EngineFrames).Load(); got != 8000 {
		t.Errorf("Expected 8000, got %d", got)
	}
}
