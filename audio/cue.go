// Package audio plays short feedback cues for task interactions
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

const sampleRate = beep.SampleRate(44100)

// Cue is a feedback sound
type Cue uint8

const (
	CueNone Cue = iota
	// CueOpen is a rising two-note chime for a long press
	CueOpen
	// CueMark is a low tone when a body leaves the scene
	CueMark
	// CueClear is a short high tone when it returns
	CueClear
	// CueRemove is a crackle when a task is deleted
	CueRemove
	// CueSpawn is a soft blip for a new body
	CueSpawn
)

func (c Cue) String() string {
	switch c {
	case CueOpen:
		return "open"
	case CueMark:
		return "mark"
	case CueClear:
		return "clear"
	case CueRemove:
		return "remove"
	case CueSpawn:
		return "spawn"
	}
	return "none"
}

// Cue durations
const (
	openNoteDuration  = 90 * time.Millisecond
	markDuration      = 220 * time.Millisecond
	clearDuration     = 110 * time.Millisecond
	removeDuration    = 300 * time.Millisecond
	spawnDuration     = 60 * time.Millisecond
	attackDuration    = 5 * time.Millisecond
	releaseDuration   = 40 * time.Millisecond
	defaultCueVolume  = 0.35
	removeDecayFactor = 9.0
)

// tone is a sine at freq lasting d with a short attack and release
func tone(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return beep.Silence(sr.N(d))
	}
	return newFade(beep.Take(sr.N(d), sine), sr.N(d), sr.N(attackDuration), sr.N(releaseDuration))
}

// newVolume scales s linearly; zero or negative volume is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Streamer builds the finite streamer for c; CueNone yields nil
func Streamer(c Cue, vol float64) beep.Streamer {
	sr := sampleRate
	var s beep.Streamer
	switch c {
	case CueOpen:
		// E5 then A5
		s = beep.Seq(tone(sr, 659.25, openNoteDuration), tone(sr, 880, openNoteDuration))
	case CueMark:
		s = beep.Mix(
			newVolume(tone(sr, 196, markDuration), 0.7),
			newVolume(tone(sr, 392, markDuration), 0.3),
		)
	case CueClear:
		s = tone(sr, 1046.5, clearDuration)
	case CueRemove:
		s = &crackle{sr: sr, total: sr.N(removeDuration), seed: 1}
	case CueSpawn:
		s = tone(sr, 523.25, spawnDuration)
	default:
		return nil
	}
	return newVolume(s, vol)
}

// fade applies a linear attack and release envelope
type fade struct {
	s     beep.Streamer
	pos   int
	total int
	atk   int
	rel   int
}

func newFade(s beep.Streamer, total, atk, rel int) *fade {
	return &fade{s: s, total: total, atk: atk, rel: rel}
}

func (f *fade) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.s.Stream(samples)
	for i := 0; i < n; i++ {
		g := 1.0
		if f.atk > 0 && f.pos < f.atk {
			g = float64(f.pos) / float64(f.atk)
		}
		if left := f.total - f.pos; f.rel > 0 && left < f.rel {
			g = math.Min(g, float64(left)/float64(f.rel))
		}
		samples[i][0] *= g
		samples[i][1] *= g
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.s.Err() }

// crackle is decaying noise over a low rumble
type crackle struct {
	sr    beep.SampleRate
	pos   int
	total int
	seed  int64
}

func (c *crackle) Stream(samples [][2]float64) (int, bool) {
	if c.pos >= c.total {
		return 0, false
	}
	n := 0
	for i := range samples {
		if c.pos >= c.total {
			break
		}
		t := float64(c.pos) / float64(c.sr)
		env := math.Exp(-t * removeDecayFactor)
		c.seed = (c.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(c.seed)/float64(0x7fffffff)*2 - 1
		v := env * (0.25*noise + 0.3*math.Sin(2*math.Pi*80*t))
		samples[i][0] = v
		samples[i][1] = v
		c.pos++
		n++
	}
	return n, true
}

func (c *crackle) Err() error { return nil }
