// Package term runs the game in a terminal. Two panel rows share one
// character cell through the upper half block; the panel is sampled every
// other pixel in both directions.
package term

import (
	"context"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/fortuna-invaders/internal/encoder"
	"github.com/Garsondee/fortuna-invaders/internal/game"
	"github.com/Garsondee/fortuna-invaders/internal/hal"
	"github.com/Garsondee/fortuna-invaders/internal/lcd"
)

// Terminal size the panel needs.
const (
	Step    = 2
	Columns = hal.ScreenWidth / Step
	Rows    = hal.ScreenHeight / Step / 2
)

// A terminal reports key presses but no releases, so a press holds its
// switch for HoldTime.
const HoldTime = 120 * time.Millisecond

// FramePeriod is the real-time step of the scheduler.
const FramePeriod = time.Second / 60

// Term is the terminal frontend.
type Term struct {
	screen  tcell.Screen
	panel   *lcd.Panel
	sampler *encoder.Sampler
	sched   *game.Scheduler

	mu    sync.Mutex
	holds map[hal.Switch]time.Time

	now func() time.Time
}

// New returns a frontend drawing p on screen and feeding s. The screen must
// be initialised.
func New(screen tcell.Screen, p *lcd.Panel, s *encoder.Sampler, sched *game.Scheduler) *Term {
	return &Term{
		screen:  screen,
		panel:   p,
		sampler: s,
		sched:   sched,
		holds:   make(map[hal.Switch]time.Time),
		now:     time.Now,
	}
}

// Run plays until ctx is done or the player presses Ctrl-C.
func (t *Term) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go t.poll(cancel)
	err := t.sched.Run(ctx, FramePeriod, t.present)
	if err == context.Canceled {
		return nil
	}
	return err
}

func (t *Term) poll(quit context.CancelFunc) {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		if !t.handle(ev) {
			quit()
			return
		}
	}
}

// handle applies one terminal event. It returns false to quit.
func (t *Term) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.key(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *Term) key(k tcell.Key, r rune) bool {
	switch k {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		t.sampler.Turn(-1)
	case tcell.KeyRight:
		t.sampler.Turn(1)
	case tcell.KeyUp:
		t.hold(hal.SwitchNorth)
	case tcell.KeyDown:
		t.hold(hal.SwitchSouth)
	case tcell.KeyEnter:
		t.hold(hal.SwitchCentre)
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyEscape:
		t.hold(hal.SwitchWest)
	case tcell.KeyTab:
		t.hold(hal.SwitchEast)
	case tcell.KeyRune:
		if r == ' ' {
			t.hold(hal.SwitchCentre)
		}
	}
	return true
}

func (t *Term) hold(sw hal.Switch) {
	t.mu.Lock()
	t.holds[sw] = t.now().Add(HoldTime)
	t.mu.Unlock()
}

// switches returns the switches still held and forgets the expired ones.
func (t *Term) switches() hal.Switch {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	var raw hal.Switch
	for sw, until := range t.holds {
		if now.Before(until) {
			raw |= sw
		} else {
			delete(t.holds, sw)
		}
	}
	return raw
}

// present runs once per real-time frame on the scheduler goroutine.
func (t *Term) present() {
	t.sampler.SetRaw(t.switches())
	t.draw()
	t.screen.Show()
}

func cellColor(c hal.Color) tcell.Color {
	r, g, b := c.RGB()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (t *Term) draw() {
	for row := 0; row < Rows; row++ {
		y := row * Step * 2
		for col := 0; col < Columns; col++ {
			x := col * Step
			top := t.panel.At(x, y)
			bottom := t.panel.At(x, y+Step)
			st := tcell.StyleDefault.Foreground(cellColor(top)).Background(cellColor(bottom))
			t.screen.SetContent(col, row, '▀', nil, st)
		}
	}
}
