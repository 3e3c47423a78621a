package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Garsondee/fortuna-invaders/internal/hal"
	"github.com/Garsondee/fortuna-invaders/internal/lcd"
)

// pressInput reports each queued switch once.
type pressInput struct {
	pending hal.Switch
	rot     int
	cleared bool
}

func (p *pressInput) ShortPress(mask hal.Switch) bool {
	hit := p.pending&mask != 0
	p.pending &^= mask
	return hit
}

func (p *pressInput) Repeat(hal.Switch) bool { return false }

func (p *pressInput) RotaryDelta() int {
	v := p.rot
	p.rot = 0
	return v
}

func (p *pressInput) ClearLatches() {
	p.pending = 0
	p.cleared = true
}

func press(k *Keyboard, sw hal.Switch) bool {
	return k.Advance(&pressInput{pending: sw})
}

func moveTo(k *Keyboard, target int) {
	for k.Selected() != target {
		rot := 1
		if k.Selected() > target {
			rot = -1
		}
		k.Advance(&pressInput{rot: rot})
	}
}

func TestTypeAndBackspace(t *testing.T) {
	k := New()
	moveTo(k, 16) // h
	press(k, hal.SwitchCentre)
	moveTo(k, 7) // i
	press(k, hal.SwitchCentre)
	assert.Equal(t, "hi", k.Text())

	moveTo(k, 20)
	press(k, hal.SwitchCentre)
	assert.Equal(t, "h", k.Text())
}

func TestTextIsBounded(t *testing.T) {
	k := New()
	for i := 0; i < MaxLen+5; i++ {
		press(k, hal.SwitchCentre)
	}
	assert.Equal(t, "qqqqqqqqqq", k.Text())
}

func TestNavigationLimits(t *testing.T) {
	k := New()
	press(k, hal.SwitchNorth)
	press(k, hal.SwitchWest)
	k.Advance(&pressInput{rot: -1})
	assert.Equal(t, 0, k.Selected())

	press(k, hal.SwitchSouth)
	press(k, hal.SwitchSouth)
	press(k, hal.SwitchSouth)
	assert.Equal(t, 20, k.Selected())

	moveTo(k, Keys-1)
	press(k, hal.SwitchEast)
	assert.Equal(t, Keys-1, k.Selected())

	press(k, hal.SwitchNorth)
	assert.Equal(t, Keys-1-Columns, k.Selected())
}

func TestLayers(t *testing.T) {
	k := New()
	moveTo(k, 10)
	press(k, hal.SwitchCentre)
	assert.Equal(t, byte('A'), k.Key(11))

	press(k, hal.SwitchCentre)
	assert.Equal(t, byte('a'), k.Key(11))

	moveTo(k, 21)
	press(k, hal.SwitchCentre)
	assert.Equal(t, byte('1'), k.Key(0))

	press(k, hal.SwitchCentre)
	assert.Equal(t, byte('q'), k.Key(0))
}

func TestEnterFinishesAndClearsLatches(t *testing.T) {
	k := New()
	moveTo(k, Keys-1)
	in := &pressInput{pending: hal.SwitchCentre | hal.SwitchWest}
	assert.True(t, k.Advance(in))
	assert.True(t, in.cleared)
	assert.Equal(t, Keys-1, k.Selected(), "west press was dropped")
}

func TestDrawIsIncremental(t *testing.T) {
	p := lcd.New()
	k := New()
	k.Draw(p)

	x, y := KeyOrigin(0)
	assert.Equal(t, SelectedColor, p.At(x+squareOffset, y+squareOffset))
	x, y = KeyOrigin(Keys - 1)
	assert.Equal(t, KeyColor, p.At(x+squareOffset, y+squareOffset))

	p.ResetStats()
	k.Draw(p)
	assert.Zero(t, p.Stats().Ops, "nothing changed")

	k.Advance(&pressInput{rot: 1})
	k.Draw(p)
	x, y = KeyOrigin(0)
	assert.Equal(t, KeyColor, p.At(x+squareOffset, y+squareOffset))
	x, y = KeyOrigin(1)
	assert.Equal(t, SelectedColor, p.At(x+squareOffset, y+squareOffset))
	assert.Equal(t, 4, p.Stats().Ops, "two keys repainted")
}

func TestDrawClearsShortenedText(t *testing.T) {
	p := lcd.New()
	k := New()
	press(k, hal.SwitchCentre)
	press(k, hal.SwitchCentre)
	k.Draw(p)

	moveTo(k, 20)
	press(k, hal.SwitchCentre)
	press(k, hal.SwitchCentre)
	k.Draw(p)

	for y := TextY; y < TextY+hal.GlyphHeight; y++ {
		for x := TextX; x < TextX+MaxLen*hal.GlyphWidth; x++ {
			if p.At(x, y) != hal.Black {
				t.Fatalf("text pixel (%d,%d) left behind", x, y)
			}
		}
	}
}
