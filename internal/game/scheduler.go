package game

import (
	"context"
	"fmt"
	"time"
)

// Source identifies one periodic event source of the scheduler.
type Source uint8

// Sources in tie-break order: at the same instant input runs first, then
// the tick, then the vblank.
const (
	SourceInput Source = iota
	SourceTick
	SourceVBlank
	sourceCount
)

func (s Source) String() string {
	switch s {
	case SourceInput:
		return "input"
	case SourceTick:
		return "tick"
	case SourceVBlank:
		return "vblank"
	}
	return fmt.Sprintf("source(%d)", uint8(s))
}

type source struct {
	period  time.Duration
	next    time.Duration
	handler func()
	count   int
}

// Scheduler dispatches the periodic handlers in virtual time. Handlers run
// to completion one after the other and never overlap.
type Scheduler struct {
	now     time.Duration
	sources [sourceCount]source

	// Trace, if set, is called before each dispatched event.
	Trace func(at time.Duration, s Source)
}

// NewScheduler returns a scheduler running input, tick and vblank at the
// periods of cfg. A nil handler is skipped but still counted.
func NewScheduler(cfg Config, input, tick, vblank func()) *Scheduler {
	s := &Scheduler{}
	s.set(SourceInput, cfg.InputPeriod, input)
	s.set(SourceTick, cfg.TickPeriod, tick)
	s.set(SourceVBlank, cfg.VBlankPeriod, vblank)
	return s
}

func (s *Scheduler) set(id Source, period time.Duration, h func()) {
	if period <= 0 {
		panic(fmt.Sprintf("game: %s period %v", id, period))
	}
	s.sources[id] = source{period: period, next: period, handler: h}
}

// Now returns the virtual time elapsed.
func (s *Scheduler) Now() time.Duration { return s.now }

// Count returns how many events of src have fired.
func (s *Scheduler) Count(src Source) int { return s.sources[src].count }

// Period returns the period of src.
func (s *Scheduler) Period(src Source) time.Duration { return s.sources[src].period }

// Advance moves virtual time forward by d, firing every event that falls
// due in timestamp order.
func (s *Scheduler) Advance(d time.Duration) {
	end := s.now + d
	for {
		id, at := s.due()
		if at > end {
			break
		}
		s.now = at
		src := &s.sources[id]
		src.next += src.period
		src.count++
		if s.Trace != nil {
			s.Trace(at, id)
		}
		if src.handler != nil {
			src.handler()
		}
	}
	s.now = end
}

// Step moves to the next instant with a pending event, fires every event
// due then and returns the source of the first.
func (s *Scheduler) Step() Source {
	id, at := s.due()
	s.Advance(at - s.now)
	return id
}

// due returns the earliest pending event; ties go to the lower source.
func (s *Scheduler) due() (Source, time.Duration) {
	best := SourceInput
	for id := SourceTick; id < sourceCount; id++ {
		if s.sources[id].next < s.sources[best].next {
			best = id
		}
	}
	return best, s.sources[best].next
}

// Run drives the scheduler in real time until ctx is done. Every frame it
// advances by the wall time elapsed and calls present, if set.
func (s *Scheduler) Run(ctx context.Context, frame time.Duration, present func()) error {
	t := time.NewTicker(frame)
	defer t.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			s.Advance(now.Sub(last))
			last = now
			if present != nil {
				present()
			}
		}
	}
}
