// Package window runs the game in an Ebitengine window. The emulated panel
// is uploaded as a texture every frame; keys stand in for the switch wheel.
package window

import (
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/fortuna-invaders/internal/encoder"
	"github.com/Garsondee/fortuna-invaders/internal/game"
	"github.com/Garsondee/fortuna-invaders/internal/hal"
	"github.com/Garsondee/fortuna-invaders/internal/lcd"
)

// DefaultScale is the integer upscale of the panel in the window.
const DefaultScale = 2

// Size returns the window size for an upscale factor. Factors below one
// select DefaultScale.
func Size(scale int) (w, h int) {
	if scale < 1 {
		scale = DefaultScale
	}
	return hal.ScreenWidth * scale, hal.ScreenHeight * scale
}

// Held arrow keys keep turning the wheel after turnDelay frames, one
// detent every turnEvery frames.
const (
	turnDelay = 15
	turnEvery = 4
)

// switchKeys maps keyboard keys to wheel switches.
var switchKeys = []struct {
	key ebiten.Key
	sw  hal.Switch
}{
	{ebiten.KeySpace, hal.SwitchCentre},
	{ebiten.KeyEnter, hal.SwitchCentre},
	{ebiten.KeyArrowUp, hal.SwitchNorth},
	{ebiten.KeyArrowDown, hal.SwitchSouth},
	{ebiten.KeyBackspace, hal.SwitchWest},
	{ebiten.KeyEscape, hal.SwitchWest},
	{ebiten.KeyTab, hal.SwitchEast},
}

// App is the ebiten.Game of the window frontend.
type App struct {
	machine *game.Machine
	panel   *lcd.Panel
	sampler *encoder.Sampler
	sched   *game.Scheduler
	feed    *EventFeed

	img *ebiten.Image
	pix []byte
	op  ebiten.DrawImageOptions

	w, h int

	showFeed bool
}

// New returns an app presenting p upscaled by scale and feeding s. The
// scheduler drives the machine; feed may be nil.
func New(m *game.Machine, p *lcd.Panel, s *encoder.Sampler, sched *game.Scheduler, feed *EventFeed, scale int) *App {
	a := &App{
		machine: m,
		panel:   p,
		sampler: s,
		sched:   sched,
		feed:    feed,
		img:     ebiten.NewImage(hal.ScreenWidth, hal.ScreenHeight),
		pix:     make([]byte, 4*hal.ScreenWidth*hal.ScreenHeight),
	}
	a.w, a.h = Size(scale)
	f := float64(a.w) / hal.ScreenWidth
	a.op.GeoM.Scale(f, f)
	return a
}

// Update feeds the keys to the wheel and advances the scheduler by one
// frame of virtual time.
func (a *App) Update() error {
	a.handleInput()
	a.sched.Advance(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (a *App) handleInput() {
	var raw hal.Switch
	for _, k := range switchKeys {
		if ebiten.IsKeyPressed(k.key) {
			raw |= k.sw
		}
	}
	a.sampler.SetRaw(raw)

	a.sampler.Turn(turns(ebiten.KeyArrowRight) - turns(ebiten.KeyArrowLeft))

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) && a.feed != nil {
		a.showFeed = !a.showFeed
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) && a.machine.State() == game.StateHighScores {
		if err := clipboard.WriteAll(a.machine.HighScores().Format()); err != nil {
			log.Printf("copy high scores: %v", err)
		}
	}
}

// turns returns the detents a held key asks for this frame.
func turns(k ebiten.Key) int {
	d := inpututil.KeyPressDuration(k)
	switch {
	case d == 1:
		return 1
	case d > turnDelay && (d-turnDelay)%turnEvery == 0:
		return 1
	}
	return 0
}

// Draw uploads the panel and draws the event feed over it.
func (a *App) Draw(screen *ebiten.Image) {
	a.panel.FillRGBA(a.pix)
	a.img.WritePixels(a.pix)
	screen.DrawImage(a.img, &a.op)
	if a.showFeed {
		a.feed.Draw(screen)
	}
}

// Layout implements ebiten.Game.
func (a *App) Layout(_, _ int) (int, int) {
	return a.w, a.h
}
