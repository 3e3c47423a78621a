package lcd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/fortuna-invaders/internal/hal"
)

func TestFillRectClips(t *testing.T) {
	p := New()
	p.FillRect(-5, -5, 10, 10, hal.Red)

	assert.Equal(t, hal.Red, p.At(0, 0))
	assert.Equal(t, hal.Red, p.At(4, 4))
	assert.Equal(t, hal.Black, p.At(5, 5))
	assert.Equal(t, 25, p.Stats().Pixels)
	assert.Equal(t, 1, p.Stats().Ops)
}

func TestFillRectOffPanelIsNoop(t *testing.T) {
	p := New()
	p.FillRect(hal.ScreenWidth, 0, 10, 10, hal.Red)
	assert.Zero(t, p.Stats().Pixels)
}

func TestBlitWideDoublesColumns(t *testing.T) {
	p := New()
	img := []hal.Color{hal.Red, hal.Blue, hal.White, hal.Gold}
	p.BlitWide(10, 20, 4, 2, img)

	assert.Equal(t, hal.Red, p.At(10, 20))
	assert.Equal(t, hal.Red, p.At(11, 20))
	assert.Equal(t, hal.Blue, p.At(12, 20))
	assert.Equal(t, hal.Blue, p.At(13, 20))
	assert.Equal(t, hal.White, p.At(10, 21))
	assert.Equal(t, hal.Gold, p.At(13, 21))
}

func TestBlitWidePanicsOnShortImage(t *testing.T) {
	p := New()
	assert.Panics(t, func() { p.BlitWide(0, 0, 4, 2, make([]hal.Color, 3)) })
}

func TestBlit(t *testing.T) {
	p := New()
	p.Blit(318, 0, 3, 1, []hal.Color{hal.Red, hal.Blue, hal.White})

	assert.Equal(t, hal.Red, p.At(318, 0))
	assert.Equal(t, hal.Blue, p.At(319, 0))
	assert.Equal(t, 2, p.Stats().Pixels)
}

func TestDrawTextPaintsWholeCells(t *testing.T) {
	p := New()
	p.FillRect(0, 0, 30, 20, hal.Red)
	p.ResetStats()

	p.DrawText("ab", 0, 0, hal.White, hal.Blue)
	assert.Equal(t, 2*hal.GlyphWidth*hal.GlyphHeight, p.Stats().Pixels)

	var fg, bg int
	for y := 0; y < hal.GlyphHeight; y++ {
		for x := 0; x < 2*hal.GlyphWidth; x++ {
			switch p.At(x, y) {
			case hal.White:
				fg++
			case hal.Blue:
				bg++
			default:
				t.Fatalf("pixel (%d,%d) not painted by text", x, y)
			}
		}
	}
	assert.Positive(t, fg)
	assert.Positive(t, bg)
	assert.Equal(t, hal.Red, p.At(2*hal.GlyphWidth, 0), "next cell untouched")
}

func TestClear(t *testing.T) {
	p := New()
	p.FillRect(0, 0, 5, 5, hal.White)
	p.Clear()
	assert.Equal(t, hal.Black, p.At(2, 2))
}

func TestOverdrawTracking(t *testing.T) {
	p := New()
	p.TrackOverdraw(true)
	p.FillRect(0, 0, 2, 2, hal.White)
	p.FillRect(0, 0, 1, 1, hal.Red)
	p.FillRect(0, 0, 1, 1, hal.Blue)

	touched, max := p.Overdraw()
	assert.Equal(t, 4, touched)
	assert.Equal(t, uint32(3), max)

	p.TrackOverdraw(false)
	touched, max = p.Overdraw()
	assert.Zero(t, touched)
	assert.Zero(t, max)
}

func TestOverdrawCountsClears(t *testing.T) {
	p := New()
	p.TrackOverdraw(true)
	p.FillRect(10, 10, 1, 1, hal.White)
	p.Clear()

	touched, max := p.Overdraw()
	assert.Equal(t, hal.ScreenWidth*hal.ScreenHeight, touched)
	assert.Equal(t, uint32(2), max)
	assert.Equal(t, hal.ScreenWidth*hal.ScreenHeight+1, p.Stats().Pixels)
}

func TestFirstDifferenceAndCopy(t *testing.T) {
	a, b := New(), New()
	_, _, differ := a.FirstDifference(b)
	assert.False(t, differ)

	a.FillRect(7, 3, 1, 1, hal.Gold)
	x, y, differ := a.FirstDifference(b)
	require.True(t, differ)
	assert.Equal(t, 7, x)
	assert.Equal(t, 3, y)

	b.CopyFrom(a)
	_, _, differ = a.FirstDifference(b)
	assert.False(t, differ)
}

func TestFillRGBA(t *testing.T) {
	p := New()
	p.FillRect(1, 0, 1, 1, hal.Red)
	dst := make([]byte, 4*hal.ScreenWidth*hal.ScreenHeight)
	p.FillRGBA(dst)

	assert.Equal(t, []byte{0, 0, 0, 0xFF}, dst[0:4])
	assert.Equal(t, []byte{0xFF, 0, 0, 0xFF}, dst[4:8])
}

func TestRGB565RoundTrip(t *testing.T) {
	for _, c := range []hal.Color{hal.Black, hal.White, hal.Red, hal.LimeGreen, hal.Tan} {
		r, g, b := c.RGB()
		assert.Equal(t, c, hal.RGB565(r, g, b))
	}
}
