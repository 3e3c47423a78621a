// Package lcd emulates the 320×240 RGB565 TFT panel. Like the real
// controller's GRAM it retains every pixel until it is overwritten, so only
// code that repaints what changed produces a correct picture.
package lcd

import (
	"image"

	"github.com/kamstrup/intmap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Garsondee/fortuna-invaders/internal/hal"
)

const (
	width  = hal.ScreenWidth
	height = hal.ScreenHeight
)

// Stats counts the pixel-transfer work done since the last reset.
type Stats struct {
	Ops    int // driver calls
	Pixels int // pixels written (after clipping)
}

// Panel is an in-memory TFT panel implementing hal.Display.
type Panel struct {
	pix        []hal.Color
	background hal.Color
	face       font.Face
	ascent     int

	stats Stats

	// Optional per-pixel write counter (pixel index → writes).
	writes    *intmap.Map[uint32, uint32]
	maxWrites uint32
}

// New returns a panel cleared to black.
func New() *Panel {
	p := &Panel{
		pix:        make([]hal.Color, width*height),
		background: hal.Black,
		face:       basicfont.Face7x13,
	}
	p.ascent = p.face.Metrics().Ascent.Ceil()
	return p
}

// Bounds returns the panel size.
func (p *Panel) Bounds() (int, int) { return width, height }

// At returns the colour of one pixel; out-of-range reads return black.
func (p *Panel) At(x, y int) hal.Color {
	if x < 0 || y < 0 || x >= width || y >= height {
		return hal.Black
	}
	return p.pix[y*width+x]
}

// TrackOverdraw enables or disables the per-pixel write counter. Enabling
// it resets previous counts.
func (p *Panel) TrackOverdraw(on bool) {
	if !on {
		p.writes = nil
		p.maxWrites = 0
		return
	}
	p.writes = intmap.New[uint32, uint32](4096)
	p.maxWrites = 0
}

// Overdraw reports how many distinct pixels were written and the largest
// write count of any one pixel since tracking started.
func (p *Panel) Overdraw() (touched int, max uint32) {
	if p.writes == nil {
		return 0, 0
	}
	return p.writes.Len(), p.maxWrites
}

// Stats returns the work counters.
func (p *Panel) Stats() Stats { return p.stats }

// ResetStats zeroes the work counters.
func (p *Panel) ResetStats() { p.stats = Stats{} }

func (p *Panel) set(x, y int, c hal.Color) {
	idx := y*width + x
	p.pix[idx] = c
	p.stats.Pixels++
	if p.writes != nil {
		n, _ := p.writes.Get(uint32(idx))
		n++
		p.writes.Put(uint32(idx), n)
		if n > p.maxWrites {
			p.maxWrites = n
		}
	}
}

// clip intersects a rectangle with the panel.
func clip(x, y, w, h int) (x0, y0, x1, y1 int, ok bool) {
	x0, y0, x1, y1 = x, y, x+w, y+h
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > width {
		x1 = width
	}
	if y1 > height {
		y1 = height
	}
	return x0, y0, x1, y1, x0 < x1 && y0 < y1
}

// FillRect implements hal.Display.
func (p *Panel) FillRect(x, y, w, h int, c hal.Color) {
	p.stats.Ops++
	x0, y0, x1, y1, ok := clip(x, y, w, h)
	if !ok {
		return
	}
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			p.set(px, py, c)
		}
	}
}

// BlitWide implements hal.Display. Each colour covers two adjacent pixels.
func (p *Panel) BlitWide(x, y, w, h int, img []hal.Color) {
	p.stats.Ops++
	half := w / 2
	if len(img) < half*h {
		panic("lcd: wide sprite shorter than its rectangle")
	}
	for row := 0; row < h; row++ {
		py := y + row
		if py < 0 || py >= height {
			continue
		}
		for col := 0; col < w; col++ {
			px := x + col
			if px < 0 || px >= width {
				continue
			}
			p.set(px, py, img[row*half+col/2])
		}
	}
}

// Blit implements hal.Display.
func (p *Panel) Blit(x, y, w, h int, img []hal.Color) {
	p.stats.Ops++
	if len(img) < w*h {
		panic("lcd: sprite shorter than its rectangle")
	}
	for row := 0; row < h; row++ {
		py := y + row
		if py < 0 || py >= height {
			continue
		}
		for col := 0; col < w; col++ {
			px := x + col
			if px < 0 || px >= width {
				continue
			}
			p.set(px, py, img[row*w+col])
		}
	}
}

// DrawText implements hal.Display. New text cleanly overwrites old text of
// the same length.
func (p *Panel) DrawText(s string, x, y int, fg, bg hal.Color) {
	p.stats.Ops++
	cx := x
	for _, r := range s {
		p.drawGlyph(r, cx, y, fg, bg)
		cx += hal.GlyphWidth
	}
}

func (p *Panel) drawGlyph(r rune, x, y int, fg, bg hal.Color) {
	dr, mask, maskp, _, ok := p.face.Glyph(fixed.P(x, y+p.ascent), r)
	if !ok {
		mask = nil
	}
	for py := y; py < y+hal.GlyphHeight; py++ {
		if py < 0 || py >= height {
			continue
		}
		for px := x; px < x+hal.GlyphWidth; px++ {
			if px < 0 || px >= width {
				continue
			}
			c := bg
			pt := image.Pt(px, py)
			if mask != nil && pt.In(dr) && opaque(mask, maskp.X+px-dr.Min.X, maskp.Y+py-dr.Min.Y) {
				c = fg
			}
			p.set(px, py, c)
		}
	}
}

func opaque(mask image.Image, x, y int) bool {
	_, _, _, a := mask.At(x, y).RGBA()
	return a >= 0x8000
}

// Clear implements hal.Display.
func (p *Panel) Clear() {
	p.stats.Ops++
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p.set(x, y, p.background)
		}
	}
}

// CopyFrom overwrites the panel contents with another panel's.
func (p *Panel) CopyFrom(o *Panel) {
	copy(p.pix, o.pix)
}

// FirstDifference returns the first pixel (row-major) where the two panels
// disagree.
func (p *Panel) FirstDifference(o *Panel) (x, y int, differ bool) {
	for i := range p.pix {
		if p.pix[i] != o.pix[i] {
			return i % width, i / width, true
		}
	}
	return 0, 0, false
}

// FillRGBA writes the panel as 8-bit RGBA into dst, which must hold
// 4*320*240 bytes.
func (p *Panel) FillRGBA(dst []byte) {
	for i, c := range p.pix {
		r, g, b := c.RGB()
		o := i * 4
		dst[o] = r
		dst[o+1] = g
		dst[o+2] = b
		dst[o+3] = 0xFF
	}
}
