package eeprom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsErased(t *testing.T) {
	im := New()
	assert.Equal(t, uint16(0xFFFF), im.ReadWord(0))
	assert.Equal(t, uint16(0xFFFF), im.ReadWord(Words-1))
	assert.False(t, im.Dirty())
}

func TestUpdateWordLittleEndian(t *testing.T) {
	im := New()
	im.UpdateWord(20, 0xABCD)
	b := im.Bytes()
	assert.Equal(t, byte(0xCD), b[40])
	assert.Equal(t, byte(0xAB), b[41])
	assert.Equal(t, uint16(0xABCD), im.ReadWord(20))
}

func TestUpdateWordSkipsUnchanged(t *testing.T) {
	im := New()
	im.UpdateWord(3, 7)
	im.UpdateWord(3, 7)
	im.UpdateWord(3, 8)
	assert.Equal(t, 2, im.Writes())
	assert.True(t, im.Dirty())
}

func TestReadWordOutOfRangePanics(t *testing.T) {
	im := New()
	assert.Panics(t, func() { im.ReadWord(Words) })
	assert.Panics(t, func() { im.UpdateWord(-1, 0) })
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eeprom.bin")

	im := New()
	for i := 0; i < 21; i++ {
		im.UpdateWord(i, uint16(1000-i))
	}
	require.NoError(t, im.Save(path))
	assert.False(t, im.Dirty())

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, im.Bytes(), got.Bytes())
}

func TestLoadMissingFileIsErased(t *testing.T) {
	im, err := Load(filepath.Join(t.TempDir(), "absent.bin"))
	require.NoError(t, err)
	assert.Equal(t, uint16(0xFFFF), im.ReadWord(20))
}

func TestLoadRejectsWrongSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
