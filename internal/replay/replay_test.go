package replay

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/fortuna-invaders/internal/hal"
)

// fakeInput answers presses from a set and rotary from a queue.
type fakeInput struct {
	pressed hal.Switch
	turns   []int
	clears  int
}

func (f *fakeInput) ShortPress(mask hal.Switch) bool {
	hit := f.pressed&mask != 0
	f.pressed &^= mask
	return hit
}

func (f *fakeInput) Repeat(mask hal.Switch) bool { return false }

func (f *fakeInput) RotaryDelta() int {
	if len(f.turns) == 0 {
		return 0
	}
	v := f.turns[0]
	f.turns = f.turns[1:]
	return v
}

func (f *fakeInput) ClearLatches() { f.clears++ }

func session(in hal.Input) []any {
	return []any{
		in.ShortPress(hal.SwitchCentre),
		in.ShortPress(hal.SwitchCentre),
		in.Repeat(hal.SwitchCentre),
		in.RotaryDelta(),
		in.RotaryDelta(),
		in.ShortPress(hal.SwitchWest),
	}
}

func TestRecorderPassesThroughAndRecords(t *testing.T) {
	in := &fakeInput{pressed: hal.SwitchCentre, turns: []int{-2, 1}}
	r := NewRecorder(in, 0x1234, 6192*time.Microsecond)

	got := session(r)
	r.ClearLatches()

	assert.Equal(t, []any{true, false, false, -2, 1, false}, got)
	assert.Equal(t, 1, in.clears)

	rec := r.Recording()
	assert.Equal(t, Version, rec.Version)
	assert.Equal(t, uint16(0x1234), rec.Seed)
	require.Len(t, rec.Calls, 7)
	assert.Equal(t, Call{Kind: KindShortPress, Mask: uint8(hal.SwitchCentre), Value: 1}, rec.Calls[0])
	assert.Equal(t, Call{Kind: KindRotary, Value: -2}, rec.Calls[3])
	assert.Equal(t, KindClear, rec.Calls[6].Kind)
}

func TestPlayerReproducesSession(t *testing.T) {
	r := NewRecorder(&fakeInput{pressed: hal.SwitchCentre, turns: []int{3}}, 1, time.Millisecond)
	want := session(r)

	p := NewPlayer(r.Recording())
	got := session(p)

	assert.Equal(t, want, got)
	assert.Zero(t, p.Desyncs())
	assert.Equal(t, -1, p.FirstDesync())
	assert.True(t, p.Done())
}

func TestPlayerCountsDesyncs(t *testing.T) {
	r := NewRecorder(&fakeInput{pressed: hal.SwitchCentre}, 1, time.Millisecond)
	r.ShortPress(hal.SwitchCentre)
	r.RotaryDelta()

	p := NewPlayer(r.Recording())
	assert.False(t, p.ShortPress(hal.SwitchWest), "mask mismatch returns zero")
	assert.Equal(t, 0, p.RotaryDelta())
	assert.Equal(t, 1, p.Desyncs())
	assert.Equal(t, 0, p.FirstDesync())

	// Past the end every call returns zero without counting as a desync.
	assert.False(t, p.ShortPress(hal.SwitchCentre))
	assert.Equal(t, 1, p.Desyncs())
}

func TestEncodeDecodeFile(t *testing.T) {
	r := NewRecorder(&fakeInput{pressed: hal.SwitchCentre, turns: []int{-1}}, 0xBEEF, 6192*time.Microsecond)
	session(r)

	path := filepath.Join(t.TempDir(), "run.replay")
	require.NoError(t, Save(path, r.Recording()))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, r.Recording().Seed, got.Seed)
	assert.Equal(t, r.Recording().TickPeriod, got.TickPeriod)
	assert.Equal(t, r.Recording().Calls, got.Calls)
}

func TestDecodeRejectsOtherVersion(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, &Recording{Version: Version + 1}))

	_, err := Decode(&buf)
	assert.Error(t, err)
}
