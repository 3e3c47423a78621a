package game

import (
	"fmt"

	"github.com/Garsondee/fortuna-invaders/internal/hal"
	"github.com/Garsondee/fortuna-invaders/internal/keyboard"
)

// StateID names a screen of the game.
type StateID uint8

const (
	StateHome StateID = iota
	StatePlay
	StateHighScores
	StateAbout
	StateGameOver
	StateNewHighScore
	stateCount
)

func (s StateID) String() string {
	switch s {
	case StateHome:
		return "home"
	case StatePlay:
		return "play"
	case StateHighScores:
		return "high_scores"
	case StateAbout:
		return "about"
	case StateGameOver:
		return "game_over"
	case StateNewHighScore:
		return "new_high_score"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Screen is one screen. Tick runs on the game tick, VBlank on every vertical
// blank; Enter and Exit run on transitions.
type Screen interface {
	Enter()
	Tick()
	VBlank()
	Exit()
}

// Machine routes ticks and vblanks to the active screen and owns the
// round, the high-score table and the name-entry keyboard.
type Machine struct {
	cfg  Config
	disp hal.Display
	in   hal.Input
	ee   hal.EEPROM
	log  *SimLog

	rng     *LFSR
	world   *World
	engine  *Engine
	painter *Painter
	scores  *HighScores
	kb      *keyboard.Keyboard

	states  [stateCount]Screen
	id      StateID
	current Screen

	// selected is the highlighted home menu item.
	selected int
	ticks    int
	names    []string

	// OnTransition, if set, is called after every state change.
	OnTransition func(from, to StateID)
}

// NewMachine wires a machine to its collaborators. log may be nil. The
// machine starts on the home screen once Start is called.
func NewMachine(cfg Config, d hal.Display, in hal.Input, ee hal.EEPROM, log *SimLog) *Machine {
	if cfg.HighScoreSlots == 0 {
		cfg.HighScoreSlots = MaxHighScores
	}
	m := &Machine{
		cfg:    cfg,
		disp:   d,
		in:     in,
		ee:     ee,
		log:    log,
		rng:    NewLFSR(cfg.Seed),
		world:  NewWorld(),
		scores: NewHighScores(cfg.HighScoreSlots),
		kb:     keyboard.New(),
	}
	m.scores.SetLog(log)
	m.engine = NewEngine(m.world, in, m.rng, log)
	m.painter = NewPainter(m.world, d)
	m.states = [stateCount]Screen{
		StateHome:         &homeState{m: m},
		StatePlay:         &playState{m: m},
		StateHighScores:   &highScoresState{m: m},
		StateAbout:        &aboutState{m: m},
		StateGameOver:     &gameOverState{m: m},
		StateNewHighScore: &newHighScoreState{m: m},
	}
	m.id = StateHome
	return m
}

// Start enters the home screen.
func (m *Machine) Start() {
	m.current = m.states[StateHome]
	m.id = StateHome
	m.current.Enter()
}

// SetState leaves the active screen and enters id.
func (m *Machine) SetState(id StateID) {
	from := m.id
	if m.current != nil {
		m.current.Exit()
	}
	m.id = id
	m.current = m.states[id]
	m.log.Add(m.ticks, "--", "state", "enter", fmt.Sprintf("%s -> %s", from, id), float64(id))
	m.current.Enter()
	if m.OnTransition != nil {
		m.OnTransition(from, id)
	}
}

// Tick runs one game tick on the active screen.
func (m *Machine) Tick() {
	if m.current == nil {
		m.Start()
	}
	m.ticks++
	m.current.Tick()
}

// VBlank runs one redraw on the active screen.
func (m *Machine) VBlank() {
	if m.current == nil {
		m.Start()
	}
	m.current.VBlank()
}

// SetInput replaces the input every screen reads.
func (m *Machine) SetInput(in hal.Input) {
	m.in = in
	m.engine.SetInput(in)
}

// State returns the active screen.
func (m *Machine) State() StateID { return m.id }

// World returns the round state.
func (m *Machine) World() *World { return m.world }

// Painter returns the redraw engine of the play screen.
func (m *Machine) Painter() *Painter { return m.painter }

// HighScores returns the table.
func (m *Machine) HighScores() *HighScores { return m.scores }

// Selected returns the highlighted home menu item.
func (m *Machine) Selected() int { return m.selected }

// Ticks returns the number of ticks run.
func (m *Machine) Ticks() int { return m.ticks }

// Names returns every name entered on the new-high-score screen.
func (m *Machine) Names() []string { return m.names }

// Config returns the machine's configuration.
func (m *Machine) Config() Config { return m.cfg }

// Log returns the event log, which may be nil.
func (m *Machine) Log() *SimLog { return m.log }
