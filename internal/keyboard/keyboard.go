// Package keyboard is the on-screen keyboard used to type a name with the
// switch wheel. The centre switch types the selected key, the compass
// switches and the rotary encoder move the selection.
package keyboard

import "github.com/Garsondee/fortuna-invaders/internal/hal"

// MaxLen is the longest text the keyboard accepts.
const MaxLen = 10

// Grid layout.
const (
	Columns  = 10
	Rows     = 3
	Keys     = Columns * Rows
	GridSize = 30

	StartX = 10
	StartY = hal.ScreenHeight - 100

	TextX = 150
	TextY = 50

	squareOffset = 2
	noSelection  = 0xFF
)

// Control keys.
const (
	keyShift     byte = 0x7
	keyBackspace byte = 0x8
	keySymbols   byte = 0x6
	keyEnter     byte = 0xD
)

var (
	lower = [Keys]byte{
		'q', 'w', 'e', 'r', 't', 'y', 'u', 'i', 'o', 'p',
		keyShift, 'a', 's', 'd', 'f', 'g', 'h', 'j', 'k', 'l',
		keyBackspace, keySymbols, 'z', 'x', 'c', 'v', 'b', 'n', 'm', keyEnter,
	}
	symbols = [Keys]byte{
		'1', '2', '3', '4', '5', '6', '7', '8', '9', '0',
		'!', '"', '#', '$', '%', '&', '\'', '(', ')', '*',
		keyBackspace, keySymbols, '-', '_', '?', '>', '<', '=', '.', keyEnter,
	}
	upper = [Keys]byte{
		'Q', 'W', 'E', 'R', 'T', 'Y', 'U', 'I', 'O', 'P',
		keyShift, 'A', 'S', 'D', 'F', 'G', 'H', 'J', 'K', 'L',
		keyBackspace, keySymbols, 'Z', 'X', 'C', 'V', 'B', 'N', 'M', keyEnter,
	}
)

// Colours of the key squares.
const (
	KeyColor      = hal.Gray
	SelectedColor = hal.Blue
	TextColor     = hal.White
)

// Keyboard holds the typed text and the selection. Advance runs on the game
// tick and Draw on the vertical blank; Draw repaints only what changed since
// its previous call.
type Keyboard struct {
	layer *[Keys]byte

	sel     int
	lastSel int

	text  [MaxLen]byte
	n     int
	lastN int
}

// New returns a keyboard showing the lower-case layer with an empty text.
func New() *Keyboard {
	k := &Keyboard{}
	k.Reset()
	return k
}

// Reset clears the text, selects the first key and schedules a full redraw.
func (k *Keyboard) Reset() {
	k.layer = &lower
	k.sel = 0
	k.lastSel = noSelection
	k.n = 0
	k.lastN = 0
	k.text = [MaxLen]byte{}
}

// Text returns the typed text.
func (k *Keyboard) Text() string {
	return string(k.text[:k.n])
}

// Selected returns the index of the selected key, row-major.
func (k *Keyboard) Selected() int { return k.sel }

// Key returns the character of key i on the visible layer.
func (k *Keyboard) Key(i int) byte { return k.layer[i] }

// Advance consumes pending input. It returns true when Enter was typed.
func (k *Keyboard) Advance(in hal.Input) bool {
	if in.ShortPress(hal.SwitchCentre) {
		switch data := k.layer[k.sel]; data {
		case keyBackspace:
			if k.n > 0 {
				k.n--
				k.text[k.n] = 0
			}
		case keyEnter:
			in.ClearLatches()
			return true
		case keySymbols:
			if k.layer == &symbols {
				k.layer = &lower
			} else {
				k.layer = &symbols
			}
			k.lastSel = noSelection
		case keyShift:
			if k.layer == &lower {
				k.layer = &upper
			} else {
				k.layer = &lower
			}
			k.lastSel = noSelection
		default:
			if k.n < MaxLen {
				k.text[k.n] = data
				k.n++
			}
		}
	}
	if in.ShortPress(hal.SwitchNorth) && k.sel >= Columns {
		k.sel -= Columns
	}
	if in.ShortPress(hal.SwitchEast) && k.sel < Keys-1 {
		k.sel++
	}
	if in.ShortPress(hal.SwitchSouth) && k.sel < Columns*(Rows-1) {
		k.sel += Columns
	}
	if in.ShortPress(hal.SwitchWest) && k.sel > 0 {
		k.sel--
	}
	switch rot := in.RotaryDelta(); {
	case rot < 0 && k.sel > 0:
		k.sel--
	case rot > 0 && k.sel < Keys-1:
		k.sel++
	}
	return false
}

// Draw paints the grid and the text. After Reset or a layer change the whole
// grid is repainted; otherwise only the previous and the new selection.
func (k *Keyboard) Draw(d hal.Display) {
	if k.sel != k.lastSel {
		if k.lastSel == noSelection {
			for i := 0; i < Keys; i++ {
				k.drawKey(d, i)
			}
		} else {
			k.drawKey(d, k.lastSel)
			k.drawKey(d, k.sel)
		}
		k.lastSel = k.sel
	}
	if k.n < k.lastN {
		d.FillRect(TextX, TextY, MaxLen*hal.GlyphWidth, hal.GlyphHeight, hal.Black)
	}
	if k.n != k.lastN {
		d.DrawText(k.Text(), TextX, TextY, TextColor, hal.Black)
		k.lastN = k.n
	}
}

// KeyOrigin returns the top-left corner of key i's cell.
func KeyOrigin(i int) (x, y int) {
	return StartX + (i%Columns)*GridSize, StartY + (i/Columns)*GridSize
}

func (k *Keyboard) drawKey(d hal.Display, i int) {
	x, y := KeyOrigin(i)
	c := KeyColor
	if i == k.sel {
		c = SelectedColor
	}
	x += squareOffset
	y += squareOffset
	side := GridSize - squareOffset
	d.FillRect(x, y, side, side, c)

	label := k.label(k.layer[i])
	tx := x + (side-len(label)*hal.GlyphWidth)/2
	ty := y + (side-hal.GlyphHeight)/2
	d.DrawText(label, tx, ty, TextColor, c)
}

func (k *Keyboard) label(data byte) string {
	switch data {
	case keyBackspace:
		return "<-"
	case keyEnter:
		return "Ent"
	case keySymbols:
		if k.layer == &symbols {
			return "abc"
		}
		return ".?*"
	case keyShift:
		if k.layer == &lower {
			return "ABC"
		}
		return "abc"
	}
	return string(rune(data))
}
