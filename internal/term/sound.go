package term

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/Garsondee/fortuna-invaders/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// cue is the tone played for one kind of event.
type cue struct {
	freq float64
	dur  time.Duration
	drop float64 // frequency lost per second, for falling tones
}

// cues is keyed by category/key.
var cues = map[string]cue{
	"spawn/shot":         {freq: 880, dur: 40 * time.Millisecond},
	"hit/monster":        {freq: 220, dur: 120 * time.Millisecond, drop: 800},
	"hit/astro":          {freq: 660, dur: 250 * time.Millisecond, drop: 1600},
	"life/lost":          {freq: 330, dur: 600 * time.Millisecond, drop: 400},
	"life/invaded":       {freq: 330, dur: 600 * time.Millisecond, drop: 400},
	"round/won":          {freq: 523, dur: 300 * time.Millisecond},
	"hit/shield":         {freq: 110, dur: 20 * time.Millisecond},
	"spawn/monster_shot": {freq: 160, dur: 15 * time.Millisecond},
}

// Sound plays short square-wave cues for game events.
type Sound struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSound creates a silent sound player; Initialize opens the speaker.
func NewSound() *Sound {
	return &Sound{mixer: &beep.Mixer{}}
}

// Initialize opens the audio device.
func (s *Sound) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Close stops all cues and closes the device.
func (s *Sound) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}

// Event plays the cue of e, if it has one. It is meant as a SimLog.OnAdd
// hook.
func (s *Sound) Event(e game.SimLogEntry) {
	c, ok := cues[e.Category+"/"+e.Key]
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Add(beep.Take(sampleRate.N(c.dur), newSquare(sampleRate, c.freq, c.drop)))
	speaker.Unlock()
}

// square is a square-wave generator whose pitch may fall over time.
type square struct {
	sr    beep.SampleRate
	freq  float64
	drop  float64
	phase float64
}

func newSquare(sr beep.SampleRate, freq, drop float64) *square {
	return &square{sr: sr, freq: freq, drop: drop}
}

const volume = 0.12

func (g *square) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		v := volume
		if g.phase >= 0.5 {
			v = -volume
		}
		samples[i][0], samples[i][1] = v, v
		g.phase += g.freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)
		if g.drop > 0 {
			g.freq = math.Max(40, g.freq-g.drop/float64(g.sr))
		}
	}
	return len(samples), true
}

func (g *square) Err() error { return nil }
