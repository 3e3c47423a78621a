// Package encoder debounces the switch wheel and decodes its rotary
// encoder. ScanSwitches and ScanEncoder are meant to be called from the
// fast input-sampling source (every 2 ms); the getters are called from the
// game handlers. All of them must run on the same goroutine.
package encoder

import "github.com/Garsondee/fortuna-invaders/internal/hal"

// Key repeat timing, in ScanSwitches calls.
const (
	RepeatStart = 60
	RepeatNext  = 10
)

// Wheel is the debounced state of the switch wheel. It implements hal.Input.
type Wheel struct {
	// debounced state, bit = 1: pressed
	state hal.Switch
	// 0->1 transitions not yet consumed
	press hal.Switch
	// long-press and repeat latches not yet consumed
	rpt hal.Switch

	// two-bit vertical counters, one per switch
	ct0, ct1 hal.Switch
	repeatCountdown uint8

	last  int8
	delta int8
}

// New returns a wheel with every switch released.
func New() *Wheel {
	return &Wheel{
		ct0:             0xFF,
		ct1:             0xFF,
		repeatCountdown: RepeatStart,
	}
}

// ScanSwitches samples the raw switch levels (bit = 1: pressed). A change
// is accepted after it has been stable for four consecutive samples.
func (w *Wheel) ScanSwitches(raw hal.Switch) {
	i := w.state ^ raw // switch has changed
	w.ct0 = ^(w.ct0 & i)
	w.ct1 = w.ct0 ^ (w.ct1 & i)
	i &= w.ct0 & w.ct1 // counted until roll over
	w.state ^= i
	w.press |= w.state & i

	if w.state&hal.SwitchAll == 0 {
		w.repeatCountdown = RepeatStart
	}
	w.repeatCountdown--
	if w.repeatCountdown == 0 {
		w.repeatCountdown = RepeatNext
		w.rpt |= w.state & hal.SwitchAll
	}
}

// ScanEncoder samples the two quadrature outputs of the rotary encoder and
// accumulates steps. Two steps make one detent.
func (w *Wheel) ScanEncoder(a, b bool) {
	var phase int8
	if b {
		phase = 3
	}
	if a {
		phase ^= 1 // gray to binary
	}
	diff := w.last - phase
	if diff&1 != 0 {
		w.last = phase
		w.delta += (diff & 2) - 1
	}
}

// RotaryDelta implements hal.Input. An odd half-detent remainder is kept.
func (w *Wheel) RotaryDelta() int {
	v := w.delta
	w.delta &= 1
	return int(v >> 1)
}

// Press reports and consumes any press of the switches in mask.
func (w *Wheel) Press(mask hal.Switch) bool {
	mask &= w.press
	w.press ^= mask
	return mask != 0
}

// ShortPress implements hal.Input: only switches that are released again
// are reported.
func (w *Wheel) ShortPress(mask hal.Switch) bool {
	return w.Press(^w.state & mask)
}

// Repeat implements hal.Input.
func (w *Wheel) Repeat(mask hal.Switch) bool {
	mask &= w.rpt
	w.rpt ^= mask
	return mask != 0
}

// Held reports whether any switch in mask is pressed right now.
func (w *Wheel) Held(mask hal.Switch) bool {
	return w.state&mask != 0
}

// LongPress reports a press held long enough for repeat to trigger.
func (w *Wheel) LongPress(mask hal.Switch) bool {
	mask &= w.rpt
	w.rpt ^= mask
	return w.Press(mask)
}

// ClearLatches implements hal.Input.
func (w *Wheel) ClearLatches() {
	w.press = 0
	w.rpt = 0
}
