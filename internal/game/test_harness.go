package game

import (
	"time"

	"github.com/Garsondee/fortuna-invaders/internal/eeprom"
	"github.com/Garsondee/fortuna-invaders/internal/encoder"
	"github.com/Garsondee/fortuna-invaders/internal/hal"
	"github.com/Garsondee/fortuna-invaders/internal/keyboard"
	"github.com/Garsondee/fortuna-invaders/internal/lcd"
)

// TestSim is a headless machine harness used by tests and by
// cmd/headless-report. It runs the real machine on an emulated panel and
// EEPROM in virtual time, with deterministic seeding and structured
// logging.
type TestSim struct {
	Machine *Machine
	Panel   *lcd.Panel
	EEPROM  *eeprom.Image
	SimLog  *SimLog
	Sched   *Scheduler

	// Script is the scripted input, unless another input was chosen.
	Script *ScriptInput
	// Sampler feeds the real debouncer when WithWheel is used.
	Sampler *encoder.Sampler

	// Frames counts vblanks.
	Frames int
	// OnFrame, if set, runs after every vblank.
	OnFrame func(*TestSim)

	cfg       Config
	input     hal.Input
	autopilot bool
	wheel     bool
	verbose   bool
	overdraw  bool
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // seed, periods, verbose, storage: applied first
	simOptStore                      // table contents: applied after storage exists
	simOptInput                      // input choice: applied before the machine is built
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSeed sets the LFSR seed for deterministic runs.
func WithSeed(seed uint16) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.Seed = seed
	}}
}

// WithTickPeriod sets the game tick period.
func WithTickPeriod(d time.Duration) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.TickPeriod = d
	}}
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg = cfg
	}}
}

// WithVerbose enables verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.verbose = v
	}}
}

// WithOverdraw counts writes per pixel on the panel.
func WithOverdraw() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.overdraw = true
	}}
}

// WithEEPROM runs on an existing EEPROM image.
func WithEEPROM(im *eeprom.Image) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.EEPROM = im
	}}
}

// WithHighScores stores a valid table holding scores, best first.
func WithHighScores(scores ...uint16) SimOption {
	return SimOption{simOptStore, func(ts *TestSim) {
		n := ts.cfg.HighScoreSlots
		for i := 0; i < n; i++ {
			var s uint16
			if i < len(scores) {
				s = scores[i]
			}
			ts.EEPROM.UpdateWord(i, s)
		}
		ts.EEPROM.UpdateWord(n, ScoreCanary)
	}}
}

// WithAutopilot lets the Autopilot play.
func WithAutopilot() SimOption {
	return SimOption{simOptInput, func(ts *TestSim) {
		ts.autopilot = true
	}}
}

// WithInput runs the machine on in.
func WithInput(in hal.Input) SimOption {
	return SimOption{simOptInput, func(ts *TestSim) {
		ts.input = in
	}}
}

// WithWheel routes the scripted switches through the real debouncer and
// rotary decoder, sampled on the input source.
func WithWheel() SimOption {
	return SimOption{simOptInput, func(ts *TestSim) {
		ts.wheel = true
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (seed, periods, verbose, EEPROM)
//  2. Stored table contents
//  3. Input
//
// and starts the machine on the home screen.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		Panel:  lcd.New(),
		EEPROM: eeprom.New(),
		cfg:    DefaultConfig(),
		Script: &ScriptInput{},
	}
	ts.cfg.Seed = 1
	for _, kind := range []simOptionKind{simOptInfra, simOptStore, simOptInput} {
		for _, o := range opts {
			if o.kind == kind {
				o.fn(ts)
			}
		}
	}
	ts.SimLog = NewSimLog(ts.verbose)
	ts.Panel.TrackOverdraw(ts.overdraw)

	in := ts.input
	var sample func()
	switch {
	case in != nil:
	case ts.wheel:
		ts.Sampler = encoder.NewSampler(encoder.New())
		in = ts.Sampler.Wheel()
		sample = ts.Sampler.Sample
	default:
		in = ts.Script
	}
	var pilot *Autopilot
	if ts.autopilot {
		pilot = &Autopilot{}
		in = pilot
	}
	ts.input = in

	ts.Machine = NewMachine(ts.cfg, ts.Panel, in, ts.EEPROM, ts.SimLog)
	if pilot != nil {
		pilot.Attach(ts.Machine)
	}
	ts.Sched = NewScheduler(ts.cfg, sample, ts.Machine.Tick, ts.vblank)
	ts.Machine.Start()
	return ts
}

func (ts *TestSim) vblank() {
	ts.Machine.VBlank()
	ts.Frames++
	if ts.OnFrame != nil {
		ts.OnFrame(ts)
	}
}

// World returns the round state.
func (ts *TestSim) World() *World { return ts.Machine.World() }

// Input returns the input the machine reads.
func (ts *TestSim) Input() hal.Input { return ts.input }

// CurrentTick returns the number of ticks run.
func (ts *TestSim) CurrentTick() int { return ts.Machine.Ticks() }

// RunTicks advances virtual time until n more ticks have run, with the
// input and vblank events that fall in between.
func (ts *TestSim) RunTicks(n int) {
	target := ts.Sched.Count(SourceTick) + n
	for ts.Sched.Count(SourceTick) < target {
		ts.Sched.Step()
	}
}

// RunFrames advances virtual time until n more vblanks have run.
func (ts *TestSim) RunFrames(n int) {
	target := ts.Sched.Count(SourceVBlank) + n
	for ts.Sched.Count(SourceVBlank) < target {
		ts.Sched.Step()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.RunTicks(1)
		if predicate(ts) {
			return ts.CurrentTick()
		}
	}
	return -1
}

// Press short-presses the switches in mask. With WithWheel the press is
// held long enough to debounce and then released.
func (ts *TestSim) Press(mask hal.Switch) {
	if ts.Sampler == nil {
		ts.Script.Press(mask)
		return
	}
	ts.Sampler.SetRaw(ts.Sampler.Raw() | mask)
	ts.Sched.Advance(8 * ts.cfg.InputPeriod)
	ts.Sampler.SetRaw(ts.Sampler.Raw() &^ mask)
	ts.Sched.Advance(8 * ts.cfg.InputPeriod)
}

// Turn rotates the wheel by detents.
func (ts *TestSim) Turn(detents int) {
	if ts.Sampler == nil {
		ts.Script.Turn(detents)
		return
	}
	ts.Sampler.Turn(detents)
}

// StartRound selects Play on the home screen and runs until the round has
// begun. It reports false if the machine never got there.
func (ts *TestSim) StartRound() bool {
	if ts.Machine.State() != StateHome {
		return false
	}
	ts.Machine.selected = 0
	ts.Press(hal.SwitchCentre)
	return ts.RunUntil(func(ts *TestSim) bool { return ts.Machine.State() == StatePlay }, 100) >= 0
}

// RepaintDiff paints the drawn scene onto a fresh panel and returns the
// first pixel where it differs from the incrementally painted one.
func (ts *TestSim) RepaintDiff() (x, y int, differ bool) {
	fresh := lcd.New()
	ts.Machine.Painter().Repaint(fresh)
	return ts.Panel.FirstDifference(fresh)
}

// SimSnapshot is a lightweight copy of the machine's state.
type SimSnapshot struct {
	Tick        int
	State       StateID
	Outcome     Outcome
	Score       int
	Lives       int
	Alive       int
	ShieldCells int
	Stats       RoundStats
}

// Snapshot returns the current state summary.
func (ts *TestSim) Snapshot() SimSnapshot {
	w := ts.World()
	return SimSnapshot{
		Tick:        ts.CurrentTick(),
		State:       ts.Machine.State(),
		Outcome:     w.Outcome,
		Score:       w.Current.Score,
		Lives:       w.Current.Lives,
		Alive:       w.AliveMonsters(),
		ShieldCells: w.ShieldCells(),
		Stats:       w.Stats,
	}
}

// ScriptInput is a hal.Input driven by the test: presses latch until read,
// held switches repeat on every read, turns accumulate.
type ScriptInput struct {
	presses hal.Switch
	held    hal.Switch
	rotary  int

	// Clears counts ClearLatches calls.
	Clears int
}

// Press latches a short press of mask.
func (s *ScriptInput) Press(mask hal.Switch) { s.presses |= mask }

// Hold makes Repeat report mask until released.
func (s *ScriptInput) Hold(mask hal.Switch, on bool) {
	if on {
		s.held |= mask
	} else {
		s.held &^= mask
	}
}

// Turn adds detents of rotation.
func (s *ScriptInput) Turn(detents int) { s.rotary += detents }

// Pending returns the latched presses not yet read.
func (s *ScriptInput) Pending() hal.Switch { return s.presses }

func (s *ScriptInput) ShortPress(mask hal.Switch) bool {
	hit := s.presses & mask
	s.presses &^= hit
	return hit != 0
}

func (s *ScriptInput) Repeat(mask hal.Switch) bool {
	return s.held&mask != 0
}

func (s *ScriptInput) RotaryDelta() int {
	v := s.rotary
	s.rotary = 0
	return v
}

func (s *ScriptInput) ClearLatches() {
	s.presses = 0
	s.rotary = 0
	s.Clears++
}

// Autopilot plays from the machine's own state: it fires whenever it can,
// steers the cannon under the lowest standing monster, sidesteps shots
// about to land and walks every menu back into a new round.
type Autopilot struct {
	m *Machine
}

// Attach sets the machine the autopilot watches.
func (a *Autopilot) Attach(m *Machine) { a.m = m }

func (a *Autopilot) ShortPress(mask hal.Switch) bool {
	m := a.m
	switch m.State() {
	case StatePlay, StateGameOver:
		return mask&hal.SwitchCentre != 0
	case StateHome:
		return mask&hal.SwitchCentre != 0 && m.Selected() == 0
	case StateHighScores, StateAbout:
		return mask&hal.SwitchWest != 0
	case StateNewHighScore:
		return mask&hal.SwitchCentre != 0 && m.kb.Selected() == keyboard.Keys-1
	}
	return false
}

func (a *Autopilot) Repeat(hal.Switch) bool { return false }

func (a *Autopilot) RotaryDelta() int {
	m := a.m
	switch m.State() {
	case StateHome:
		if m.Selected() != 0 {
			return 1
		}
	case StateNewHighScore:
		if m.kb.Selected() != keyboard.Keys-1 {
			return 1
		}
	case StatePlay:
		return a.steer()
	}
	return 0
}

func (a *Autopilot) ClearLatches() {}

// dodgeRange is how far above the cannon a falling shot is avoided.
const dodgeRange = 40

func (a *Autopilot) steer() int {
	cur := &a.m.World().Current
	c := cur.Cannon
	mid := c.X + CannonWidth/2

	for i := range cur.MonsterShots {
		s := &cur.MonsterShots[i]
		if !s.Life.IsAlive() || c.Y-s.Y > dodgeRange || s.Y > c.Y {
			continue
		}
		if s.X >= c.X-CannonSpeed && s.X <= c.X+CannonWidth+CannonSpeed {
			if s.X < mid {
				return 1
			}
			return -1
		}
	}

	target, best := -1, -1
	for row := range cur.Monsters {
		for col := range cur.Monsters[row] {
			m := &cur.Monsters[row][col]
			if m.Life.IsAlive() && m.Y >= best {
				best = m.Y
				target = m.X + MonsterWidth/2
			}
		}
	}
	switch {
	case target < 0:
	case target < mid-CannonSpeed/2:
		return -1
	case target > mid+CannonSpeed/2:
		return 1
	}
	return 0
}
