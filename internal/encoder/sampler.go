package encoder

import (
	"sync/atomic"

	"github.com/Garsondee/fortuna-invaders/internal/hal"
)

// Sampler connects a key-driven frontend to the wheel. Frontends call
// SetRaw and Turn from any goroutine; Sample runs on the scheduler's input
// source and is the only code that touches the Wheel.
type Sampler struct {
	wheel *Wheel
	rotor Rotor

	raw     atomic.Uint32
	pending atomic.Int32 // quadrature phases still to play back
}

// NewSampler returns a sampler feeding w.
func NewSampler(w *Wheel) *Sampler {
	return &Sampler{wheel: w}
}

// Wheel returns the debounced wheel.
func (s *Sampler) Wheel() *Wheel { return s.wheel }

// SetRaw replaces the raw switch levels.
func (s *Sampler) SetRaw(sw hal.Switch) {
	s.raw.Store(uint32(sw))
}

// Raw returns the raw switch levels last set.
func (s *Sampler) Raw() hal.Switch {
	return hal.Switch(s.raw.Load())
}

// Turn queues detents of rotation (two quadrature steps each).
func (s *Sampler) Turn(detents int) {
	s.pending.Add(int32(detents * 2))
}

// Sample scans the switches and plays back at most one pending encoder
// phase.
func (s *Sampler) Sample() {
	s.wheel.ScanSwitches(s.Raw())

	dir := 0
	for {
		p := s.pending.Load()
		if p == 0 {
			break
		}
		step := int32(1)
		if p < 0 {
			step = -1
		}
		if s.pending.CompareAndSwap(p, p-step) {
			dir = int(step)
			break
		}
	}
	a, b := s.rotor.Step(dir)
	s.wheel.ScanEncoder(a, b)
}
