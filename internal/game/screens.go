package game

import (
	"fmt"

	"github.com/Garsondee/fortuna-invaders/internal/hal"
)

var menuItems = [MenuItems]struct {
	label string
	y     int
	next  StateID
}{
	{"Play!", 90, StatePlay},
	{"High scores", 115, StateHighScores},
	{"About", 140, StateAbout},
}

// homeState is the main menu. The wheel is read every MenuReadDivisor
// ticks; turning forward past the last item wraps to the first.
type homeState struct {
	m     *Machine
	tick  int
	drawn int // selection on the panel, -1 to force a redraw
}

func (s *homeState) Enter() {
	s.tick = MenuReadDivisor - 1
	s.drawn = -1
}

func (s *homeState) Tick() {
	m := s.m
	if s.tick == MenuReadDivisor {
		switch rot := m.in.RotaryDelta(); {
		case rot < 0 && m.selected > 0:
			m.selected--
		case rot > 0:
			m.selected = (m.selected + 1) % MenuItems
		}
		s.tick = 0
	}
	s.tick++

	if m.in.ShortPress(hal.SwitchCentre) {
		m.in.ClearLatches()
		m.SetState(menuItems[m.selected].next)
	}
}

func (s *homeState) VBlank() {
	m := s.m
	if s.drawn == m.selected {
		return
	}
	m.disp.Clear()
	for i, it := range menuItems {
		c := TextColor
		if i == m.selected {
			c = SelectColor
		}
		m.disp.DrawText(it.label, MenuX, it.y, c, Background)
	}
	y := menuItems[m.selected].y
	m.disp.Blit(MenuX-TriangleWidth*2, y, TriangleWidth, TriangleHeight, triangleBitmap)
	s.drawn = m.selected
}

func (s *homeState) Exit() {}

// playState runs a round.
type playState struct {
	m *Machine
}

func (s *playState) Enter() {
	m := s.m
	m.disp.Clear()
	m.world.Reset()
	m.engine.Reset()
	m.painter.Reset()
	m.log.Add(m.ticks, "--", "round", "start", fmt.Sprintf("round %d, seed %#04x", m.world.Round(), m.cfg.Seed), float64(m.world.Round()))
}

func (s *playState) Tick() {
	m := s.m
	m.engine.Tick()
	w := m.world
	switch w.Outcome {
	case Lost:
		m.SetState(StateGameOver)
	case Won:
		m.scores.Load(m.ee)
		if m.scores.Insert(uint16(w.Current.Score)) {
			m.scores.Store(m.ee)
			m.SetState(StateNewHighScore)
			return
		}
		m.SetState(StateHome)
	}
}

func (s *playState) VBlank() { s.m.painter.VBlank() }

func (s *playState) Exit() {
	m := s.m
	m.log.Add(m.ticks, "--", "round", "end", m.world.Outcome.String(), float64(m.world.Current.Score))
}

// gameOverState waits for a centre press after a lost round.
type gameOverState struct {
	m *Machine
}

func (s *gameOverState) Enter() {
	s.m.disp.Clear()
	s.m.disp.DrawText("Game Over", 90, 150, TextColor, Background)
}

func (s *gameOverState) Tick() {
	if s.m.in.ShortPress(hal.SwitchCentre) {
		s.m.in.ClearLatches()
		s.m.SetState(StateHome)
	}
}

func (s *gameOverState) VBlank() {}
func (s *gameOverState) Exit()   {}

// Colours of the first three ranks.
var rankColors = [3]hal.Color{hal.Gold, hal.Silver, hal.Tan}

const (
	highScoreTop = 20
	highScoreRow = 11
)

// highScoresState shows the table once.
type highScoresState struct {
	m     *Machine
	drawn bool
}

func (s *highScoresState) Enter() {
	s.m.disp.Clear()
	s.m.scores.Load(s.m.ee)
	s.drawn = false
}

func (s *highScoresState) Tick() {
	m := s.m
	if m.in.ShortPress(hal.SwitchWest) {
		m.in.ClearLatches()
		m.selected = 1
		m.SetState(StateHome)
	}
}

func (s *highScoresState) VBlank() {
	if s.drawn {
		return
	}
	d := s.m.disp
	d.DrawText("HIGH SCORES", MenuX, 5, TextColor, Background)
	for i, sc := range s.m.scores.slots {
		c := TextColor
		if i < len(rankColors) {
			c = rankColors[i]
		}
		d.DrawText(fmt.Sprintf("%2d.    %04d", i+1, sc), MenuX, highScoreTop+i*highScoreRow, c, Background)
	}
	s.drawn = true
}

func (s *highScoresState) Exit() {}

var aboutLines = []string{
	"FORTUNA INVADERS",
	"",
	"Turn the wheel to move.",
	"Press the centre to fire.",
	"",
	"Shields crumble block by",
	"block. Clear the formation",
	"before it lands.",
	"",
	"West: back",
}

// aboutState is a static credits page.
type aboutState struct {
	m     *Machine
	drawn bool
}

func (s *aboutState) Enter() {
	s.m.disp.Clear()
	s.drawn = false
}

func (s *aboutState) Tick() {
	m := s.m
	if m.in.ShortPress(hal.SwitchWest) {
		m.in.ClearLatches()
		m.selected = 2
		m.SetState(StateHome)
	}
}

func (s *aboutState) VBlank() {
	if s.drawn {
		return
	}
	for i, l := range aboutLines {
		if l != "" {
			s.m.disp.DrawText(l, 70, 40+i*15, TextColor, Background)
		}
	}
	s.drawn = true
}

func (s *aboutState) Exit() {}

// newHighScoreState takes the player's name on the soft keyboard.
type newHighScoreState struct {
	m     *Machine
	drawn bool
}

func (s *newHighScoreState) Enter() {
	s.m.disp.Clear()
	s.m.kb.Reset()
	s.drawn = false
}

func (s *newHighScoreState) Tick() {
	m := s.m
	if !m.kb.Advance(m.in) {
		return
	}
	name := m.kb.Text()
	m.names = append(m.names, name)
	m.log.Add(m.ticks, "--", "score", "name", fmt.Sprintf("%q scored %d", name, m.world.Current.Score), float64(m.world.Current.Score))
	m.selected = 1
	m.SetState(StateHome)
}

func (s *newHighScoreState) VBlank() {
	m := s.m
	m.kb.Draw(m.disp)
	if s.drawn {
		return
	}
	m.disp.DrawText("New High Score!!!", 65, 20, TextColor, Background)
	m.disp.DrawText("Enter your name:", 0, 50, TextColor, Background)
	s.drawn = true
}

func (s *newHighScoreState) Exit() {}
