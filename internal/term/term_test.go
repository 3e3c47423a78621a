package term

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/fortuna-invaders/internal/encoder"
	"github.com/Garsondee/fortuna-invaders/internal/game"
	"github.com/Garsondee/fortuna-invaders/internal/hal"
	"github.com/Garsondee/fortuna-invaders/internal/lcd"
)

func newTerm(t *testing.T) (*Term, tcell.SimulationScreen, *lcd.Panel) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(Columns, Rows)
	t.Cleanup(screen.Fini)

	p := lcd.New()
	s := encoder.NewSampler(encoder.New())
	sched := game.NewScheduler(game.DefaultConfig(), s.Sample, nil, nil)
	return New(screen, p, s, sched), screen, p
}

func TestKeysHoldSwitches(t *testing.T) {
	tm, _, _ := newTerm(t)
	clock := time.Unix(0, 0)
	tm.now = func() time.Time { return clock }

	assert.True(t, tm.key(tcell.KeyRune, ' '))
	assert.True(t, tm.key(tcell.KeyTab, 0))
	assert.Equal(t, hal.SwitchCentre|hal.SwitchEast, tm.switches())

	clock = clock.Add(HoldTime)
	assert.Zero(t, tm.switches())
	assert.Empty(t, tm.holds)
}

func TestCtrlCQuits(t *testing.T) {
	tm, _, _ := newTerm(t)
	assert.False(t, tm.key(tcell.KeyCtrlC, 0))
}

func TestArrowsTurnTheWheel(t *testing.T) {
	tm, _, _ := newTerm(t)
	tm.key(tcell.KeyRight, 0)
	for i := 0; i < 4; i++ {
		tm.sampler.Sample()
	}
	assert.Equal(t, 1, tm.sampler.Wheel().RotaryDelta())
}

func TestPresentDrawsHalfBlocks(t *testing.T) {
	tm, screen, p := newTerm(t)
	p.FillRect(0, 0, 2, 2, hal.Red)
	p.FillRect(0, 2, 2, 2, hal.Blue)
	tm.present()

	cells, w, h := screen.GetContents()
	require.Equal(t, Columns, w)
	require.Equal(t, Rows, h)
	fg, bg, _ := cells[0].Style.Decompose()
	assert.Equal(t, []rune{'▀'}, cells[0].Runes)
	assert.Equal(t, cellColor(hal.Red), fg)
	assert.Equal(t, cellColor(hal.Blue), bg)
}

func TestSquareToneAlternates(t *testing.T) {
	g := newSquare(sampleRate, float64(sampleRate)/4, 0)
	buf := make([][2]float64, 8)
	n, ok := g.Stream(buf)
	require.True(t, ok)
	require.Equal(t, len(buf), n)
	assert.Equal(t, volume, buf[0][0])
	assert.Equal(t, volume, buf[1][0])
	assert.Equal(t, -volume, buf[2][0])
	assert.Equal(t, -volume, buf[3][0])
	assert.Equal(t, volume, buf[4][0])
}

func TestSoundIgnoresEventsUntilInitialized(t *testing.T) {
	s := NewSound()
	s.Event(game.SimLogEntry{Category: "hit", Key: "monster"})
	assert.Zero(t, s.mixer.Len())
}
