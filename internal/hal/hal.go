// Package hal describes the hardware the game core drives: an RGB565 TFT
// panel, the switch wheel with its rotary encoder, and the EEPROM.
//
// The core never talks to hardware directly. Frontends (window, terminal,
// headless) supply implementations of these interfaces.
package hal

// Panel geometry in landscape orientation.
const (
	ScreenWidth  = 320
	ScreenHeight = 240
)

// Cell size of the driver's fixed-width font, used for text layout.
const (
	GlyphWidth  = 7
	GlyphHeight = 13
)

// Color is a 16-bit RGB565 pixel value, the panel's native format.
type Color uint16

// Palette used by the game screens.
const (
	Black     Color = 0x0000
	White     Color = 0xFFFF
	Red       Color = 0xF800
	Blue      Color = 0x001F
	LimeGreen Color = 0x07E0
	Gold      Color = 0xFEA0
	Silver    Color = 0xC618
	Tan       Color = 0xD5B1
	Gray      Color = 0x8410
)

// RGB565 packs 8-bit channels into a panel colour.
func RGB565(r, g, b uint8) Color {
	return Color(uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3))
}

// RGB expands a panel colour back to 8-bit channels.
func (c Color) RGB() (r, g, b uint8) {
	r5 := uint8(c >> 11 & 0x1F)
	g6 := uint8(c >> 5 & 0x3F)
	b5 := uint8(c & 0x1F)
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

// Display is the pixel-transfer contract of the panel driver.
// Coordinates outside the panel are clipped by the implementation.
type Display interface {
	// FillRect paints a solid w×h rectangle.
	FillRect(x, y, w, h int, c Color)
	// BlitWide paints a sprite stored with one colour per horizontal pixel
	// pair, so img holds w/2*h entries in row-major order.
	BlitWide(x, y, w, h int, img []Color)
	// Blit paints a sprite stored with one colour per pixel.
	Blit(x, y, w, h int, img []Color)
	// DrawText renders s with its top-left corner at (x, y). Every
	// character cell is painted in full, fg on bg.
	DrawText(s string, x, y int, fg, bg Color)
	// Clear fills the whole panel with the background colour.
	Clear()
}

// Switch is a bit mask over the switch wheel's buttons.
type Switch uint8

// Switch wheel buttons. Bit positions match the port pins of the board.
const (
	SwitchNorth  Switch = 1 << 2
	SwitchEast   Switch = 1 << 3
	SwitchSouth  Switch = 1 << 4
	SwitchWest   Switch = 1 << 5
	SwitchCard   Switch = 1 << 6 // SD card detect
	SwitchCentre Switch = 1 << 7

	SwitchCompass = SwitchNorth | SwitchEast | SwitchSouth | SwitchWest
	SwitchAll     = SwitchCentre | SwitchCompass | SwitchCard
)

// Input is the contract of the debounced switch wheel driver.
type Input interface {
	// ShortPress reports (and consumes) a press of any switch in mask that
	// has since been released.
	ShortPress(mask Switch) bool
	// Repeat reports (and consumes) the auto-repeat latch of a held switch.
	Repeat(mask Switch) bool
	// RotaryDelta returns the detents turned since the last call.
	RotaryDelta() int
	// ClearLatches drops every pending press and repeat.
	ClearLatches()
}

// EEPROM is word-addressed non-volatile storage.
type EEPROM interface {
	ReadWord(addr int) uint16
	// UpdateWord writes v only if it differs from the stored word.
	UpdateWord(addr int, v uint16)
}
