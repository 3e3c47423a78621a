// Package eeprom emulates the microcontroller's 4 KiB EEPROM as a byte
// image that can be persisted to a file verbatim.
package eeprom

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Size is the EEPROM size in bytes.
const Size = 4096

// Words is the number of 16-bit words.
const Words = Size / 2

// Image is an erased-to-0xFF EEPROM. Words are little-endian. It
// implements hal.EEPROM.
type Image struct {
	data   [Size]byte
	writes int
	dirty  bool
}

// New returns an erased image.
func New() *Image {
	im := &Image{}
	for i := range im.data {
		im.data[i] = 0xFF
	}
	return im
}

func checkAddr(addr int) {
	if addr < 0 || addr >= Words {
		panic(fmt.Sprintf("eeprom: word address %d out of range", addr))
	}
}

// ReadWord implements hal.EEPROM.
func (im *Image) ReadWord(addr int) uint16 {
	checkAddr(addr)
	return binary.LittleEndian.Uint16(im.data[addr*2:])
}

// UpdateWord implements hal.EEPROM. Cells are only written when the value
// changes, which is what limits wear on the real part.
func (im *Image) UpdateWord(addr int, v uint16) {
	checkAddr(addr)
	if im.ReadWord(addr) == v {
		return
	}
	binary.LittleEndian.PutUint16(im.data[addr*2:], v)
	im.writes++
	im.dirty = true
}

// Writes returns how many word writes changed the image.
func (im *Image) Writes() int { return im.writes }

// Dirty reports whether the image changed since it was loaded or saved.
func (im *Image) Dirty() bool { return im.dirty }

// Bytes returns a copy of the raw image.
func (im *Image) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, im.data[:])
	return b
}

// Load reads an image file. A missing file yields an erased image.
func Load(path string) (*Image, error) {
	im := New()
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return im, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read eeprom image: %w", err)
	}
	if len(b) != Size {
		return nil, fmt.Errorf("eeprom image %s: got %d bytes, want %d", path, len(b), Size)
	}
	copy(im.data[:], b)
	return im, nil
}

// Save writes the image to path.
func (im *Image) Save(path string) error {
	if err := os.WriteFile(path, im.data[:], 0o644); err != nil {
		return fmt.Errorf("write eeprom image: %w", err)
	}
	im.dirty = false
	return nil
}
