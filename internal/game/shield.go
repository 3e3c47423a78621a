package game

import "math/bits"

// Mask is a shield bitmap at half resolution: one bit per 2×2 pixel block,
// 12 rows of 16 columns, two bytes per row, most significant bit leftmost.
type Mask [MaskBytes]byte

// maskIndex returns the byte and bit holding cell (row, col).
func maskIndex(row, col int) (int, byte) {
	if row < 0 || row >= MaskRows || col < 0 || col >= MaskCols {
		panic("game: shield mask cell out of range")
	}
	return row*2 + col>>3, 128 >> (col & 7)
}

// Bit reports whether cell (row, col) is wall.
func (m *Mask) Bit(row, col int) bool {
	i, b := maskIndex(row, col)
	return m[i]&b != 0
}

// Set makes cell (row, col) wall.
func (m *Mask) Set(row, col int) {
	i, b := maskIndex(row, col)
	m[i] |= b
}

// Clear destroys cell (row, col).
func (m *Mask) Clear(row, col int) {
	i, b := maskIndex(row, col)
	m[i] &^= b
}

// Count returns the number of wall cells.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m {
		n += bits.OnesCount8(b)
	}
	return n
}

// archMask is the shape of a fresh shield. The right-most two bits of each
// row and the bottom row fall outside the 31×23 shield.
var archMask = Mask{
	0xFF, 0xFC,
	0xFF, 0xFC,
	0xFF, 0xFC,
	0xF8, 0x7C,
	0xF0, 0x3C,
	0xE0, 0x1C,
	0xE0, 0x1C,
	0xE0, 0x1C,
	0xE0, 0x1C,
	0xE0, 0x1C,
	0xE0, 0x1C,
	0x00, 0x00,
}

// Shield is one destructible house. Mask is written by the tick engine;
// Shadow holds the cells as last painted and is written by the redraw
// engine only.
type Shield struct {
	X, Y   int
	Mask   Mask
	Shadow Mask
}

// Rect returns the shield's box.
func (s *Shield) Rect() Rect {
	return Rect{X: s.X, Y: s.Y, W: ShieldWidth, H: ShieldHeight}
}

// CellRect returns the 2×2 pixel block of cell (row, col).
func (s *Shield) CellRect(row, col int) Rect {
	return Rect{X: s.X + col<<1, Y: s.Y + row<<1, W: 2, H: 2}
}

// reset restores the arch shape and forgets what was painted, so the next
// redraw paints the whole shield through the normal diff.
func (s *Shield) reset(i int) {
	s.X = ShieldStartX + (ShieldWidth+ShieldPaddingX)*i
	s.Y = ShieldStartY
	s.Mask = archMask
	s.Shadow = Mask{}
}
