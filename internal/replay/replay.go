// Package replay records the results of every input call the game makes and
// plays them back. With the same seed and tick period the game core is
// deterministic, so a recording reproduces a session exactly.
package replay

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/Garsondee/fortuna-invaders/internal/hal"
)

// Version of the file format.
const Version = 1

// Kind identifies the input method a Call stands for.
type Kind uint8

const (
	KindShortPress Kind = iota + 1
	KindRepeat
	KindRotary
	KindClear
)

func (k Kind) String() string {
	switch k {
	case KindShortPress:
		return "short-press"
	case KindRepeat:
		return "repeat"
	case KindRotary:
		return "rotary"
	case KindClear:
		return "clear"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Call is one input call and its result.
type Call struct {
	Kind  Kind  `msgpack:"k"`
	Mask  uint8 `msgpack:"m,omitempty"`
	Value int32 `msgpack:"v,omitempty"` // 1/0 for presses, detents for rotary
}

// Recording is a whole session.
type Recording struct {
	Version    int           `msgpack:"version"`
	Seed       uint16        `msgpack:"seed"`
	TickPeriod time.Duration `msgpack:"tick_period"`
	Calls      []Call        `msgpack:"calls"`
}

// Recorder wraps an input and appends every call to a recording.
type Recorder struct {
	in  hal.Input
	rec Recording
}

// NewRecorder records calls made to in.
func NewRecorder(in hal.Input, seed uint16, tickPeriod time.Duration) *Recorder {
	return &Recorder{
		in: in,
		rec: Recording{
			Version:    Version,
			Seed:       seed,
			TickPeriod: tickPeriod,
		},
	}
}

// Recording returns the calls recorded so far.
func (r *Recorder) Recording() *Recording { return &r.rec }

func boolValue(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// ShortPress implements hal.Input.
func (r *Recorder) ShortPress(mask hal.Switch) bool {
	v := r.in.ShortPress(mask)
	r.rec.Calls = append(r.rec.Calls, Call{Kind: KindShortPress, Mask: uint8(mask), Value: boolValue(v)})
	return v
}

// Repeat implements hal.Input.
func (r *Recorder) Repeat(mask hal.Switch) bool {
	v := r.in.Repeat(mask)
	r.rec.Calls = append(r.rec.Calls, Call{Kind: KindRepeat, Mask: uint8(mask), Value: boolValue(v)})
	return v
}

// RotaryDelta implements hal.Input.
func (r *Recorder) RotaryDelta() int {
	v := r.in.RotaryDelta()
	r.rec.Calls = append(r.rec.Calls, Call{Kind: KindRotary, Value: int32(v)})
	return v
}

// ClearLatches implements hal.Input.
func (r *Recorder) ClearLatches() {
	r.in.ClearLatches()
	r.rec.Calls = append(r.rec.Calls, Call{Kind: KindClear})
}

// Player implements hal.Input by returning recorded results in order. A
// call whose kind or mask differs from the recorded one is a desync: the
// recorded entry is consumed and a zero result returned.
type Player struct {
	rec     *Recording
	pos     int
	desyncs int
	first   int // index of the first desync, -1 if none
}

// NewPlayer plays rec from the start.
func NewPlayer(rec *Recording) *Player {
	return &Player{rec: rec, first: -1}
}

// Desyncs returns how many calls did not match the recording.
func (p *Player) Desyncs() int { return p.desyncs }

// FirstDesync returns the call index of the first desync, or -1.
func (p *Player) FirstDesync() int { return p.first }

// Done reports whether every recorded call has been played.
func (p *Player) Done() bool { return p.pos >= len(p.rec.Calls) }

// Remaining returns how many recorded calls are left.
func (p *Player) Remaining() int { return len(p.rec.Calls) - p.pos }

func (p *Player) next(kind Kind, mask hal.Switch) (int32, bool) {
	if p.Done() {
		return 0, false
	}
	c := p.rec.Calls[p.pos]
	p.pos++
	if c.Kind != kind || c.Mask != uint8(mask) {
		if p.first < 0 {
			p.first = p.pos - 1
		}
		p.desyncs++
		return 0, false
	}
	return c.Value, true
}

// ShortPress implements hal.Input.
func (p *Player) ShortPress(mask hal.Switch) bool {
	v, _ := p.next(KindShortPress, mask)
	return v != 0
}

// Repeat implements hal.Input.
func (p *Player) Repeat(mask hal.Switch) bool {
	v, _ := p.next(KindRepeat, mask)
	return v != 0
}

// RotaryDelta implements hal.Input.
func (p *Player) RotaryDelta() int {
	v, _ := p.next(KindRotary, 0)
	return int(v)
}

// ClearLatches implements hal.Input.
func (p *Player) ClearLatches() {
	p.next(KindClear, 0)
}

// Encode writes rec to w.
func Encode(w io.Writer, rec *Recording) error {
	if err := msgpack.NewEncoder(w).Encode(rec); err != nil {
		return fmt.Errorf("encode recording: %w", err)
	}
	return nil
}

// Decode reads a recording from r.
func Decode(r io.Reader) (*Recording, error) {
	var rec Recording
	if err := msgpack.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode recording: %w", err)
	}
	if rec.Version != Version {
		return nil, fmt.Errorf("recording version %d, want %d", rec.Version, Version)
	}
	return &rec, nil
}

// Save writes rec to a file.
func Save(path string, rec *Recording) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create recording: %w", err)
	}
	w := bufio.NewWriter(f)
	if err := Encode(w, rec); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write recording: %w", err)
	}
	return f.Close()
}

// Load reads a recording file.
func Load(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()
	return Decode(bufio.NewReader(f))
}
