package audio

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/taskfall/event"
)

// CuePlayer mixes feedback cues onto the speaker
// Every method is safe before Initialize and after Cleanup; audio is optional
type CuePlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	enabled     atomic.Bool
	volume      float64
	played      atomic.Int64

	// sink receives started cues; nil until the speaker is up
	sink func(s beep.Streamer)
}

// NewCuePlayer creates a player with cues enabled at volume vol
func NewCuePlayer(vol float64) *CuePlayer {
	if vol < 0 {
		vol = 0
	}
	if vol > 1 {
		vol = 1
	}
	p := &CuePlayer{
		mixer:  &beep.Mixer{},
		volume: vol,
	}
	p.enabled.Store(true)
	return p
}

// Initialize opens the speaker; a missing audio device returns an error and leaves cues silent
func (p *CuePlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.sink = p.mix
	p.initialized = true
	return nil
}

// IsInitialized reports whether the speaker is open
func (p *CuePlayer) IsInitialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Cleanup stops all cues
func (p *CuePlayer) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.sink = nil
	p.initialized = false
}

// SetEnabled toggles cue playback
func (p *CuePlayer) SetEnabled(on bool) {
	p.enabled.Store(on)
}

// Enabled reports whether cues play
func (p *CuePlayer) Enabled() bool {
	return p.enabled.Load()
}

// Toggle flips playback and returns the new state
func (p *CuePlayer) Toggle() bool {
	on := !p.enabled.Load()
	p.enabled.Store(on)
	return on
}

// Played returns the number of cues started
func (p *CuePlayer) Played() int64 {
	return p.played.Load()
}

// Play starts cue c; no-op when disabled or without a speaker
func (p *CuePlayer) Play(c Cue) {
	if p == nil || c == CueNone || !p.enabled.Load() {
		return
	}
	p.mu.Lock()
	sink := p.sink
	p.mu.Unlock()
	if sink == nil {
		return
	}
	s := Streamer(c, p.volume)
	if s == nil {
		return
	}
	p.played.Add(1)
	sink(s)
}

func (p *CuePlayer) mix(s beep.Streamer) {
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// CueFor maps a UI event to its cue
func CueFor(t event.Type) Cue {
	switch t {
	case event.EventOpenDetail:
		return CueOpen
	case event.EventMarkDelete:
		return CueMark
	case event.EventClearDelete:
		return CueClear
	case event.EventTaskRemoved:
		return CueRemove
	case event.EventTaskSpawned:
		return CueSpawn
	}
	return CueNone
}

// HandleEvent plays the cue for ev
func (p *CuePlayer) HandleEvent(ev event.Event) {
	if c := CueFor(ev.Type); c != CueNone {
		p.Play(c)
	}
}

// Register subscribes the player to every event with a cue
func (p *CuePlayer) Register(r *event.Router) {
	r.On(p.HandleEvent,
		event.EventOpenDetail,
		event.EventMarkDelete,
		event.EventClearDelete,
		event.EventTaskRemoved,
		event.EventTaskSpawned,
	)
	log.Printf("audio: cues registered")
}
