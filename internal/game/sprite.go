package game

import "fmt"

// State is the liveness of a sprite.
type State uint8

const (
	Dead State = iota
	Alive
	Exploding
)

func (s State) String() string {
	switch s {
	case Dead:
		return "dead"
	case Alive:
		return "alive"
	case Exploding:
		return "exploding"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Life is a sprite's liveness together with its explosion frame. Frame is
// only meaningful while exploding and runs from 1 to ExplosionFrames.
//
// The only transitions are Spawn (dead → alive), Hit (alive → exploding 1),
// Advance (exploding k → k+1, and the last frame → dead) and Kill (→ dead).
type Life struct {
	State State
	Frame uint8
}

// IsAlive reports whether the sprite takes part in movement and collisions.
func (l Life) IsAlive() bool { return l.State == Alive }

// IsDead reports whether the sprite is gone.
func (l Life) IsDead() bool { return l.State == Dead }

// IsExploding reports whether the sprite shows its explosion.
func (l Life) IsExploding() bool { return l.State == Exploding }

func (l Life) String() string {
	if l.State == Exploding {
		return fmt.Sprintf("exploding(%d)", l.Frame)
	}
	return l.State.String()
}

// Spawn brings a dead sprite to life.
func (l *Life) Spawn() {
	if l.State != Dead {
		panic(fmt.Sprintf("game: spawn from %s", l))
	}
	*l = Life{State: Alive}
}

// Hit starts the explosion of a live sprite.
func (l *Life) Hit() {
	if l.State != Alive {
		panic(fmt.Sprintf("game: hit while %s", l))
	}
	*l = Life{State: Exploding, Frame: 1}
}

// Advance moves the explosion on by one frame. It reports whether the sprite
// just died.
func (l *Life) Advance() bool {
	if l.State != Exploding {
		return false
	}
	if l.Frame >= ExplosionFrames {
		*l = Life{}
		return true
	}
	l.Frame++
	return false
}

// Kill retires the sprite immediately.
func (l *Life) Kill() { *l = Life{} }

// Species selects one of the three monster bitmaps.
type Species uint8

const (
	Squid Species = iota
	Crab
	Octopus
)

func (s Species) String() string {
	switch s {
	case Squid:
		return "squid"
	case Crab:
		return "crab"
	case Octopus:
		return "octopus"
	}
	return fmt.Sprintf("species(%d)", uint8(s))
}

// Sprite is one actor: its top-left corner, liveness and visual variant.
type Sprite struct {
	X, Y int
	Life Life
	Kind Species
}

// Rect returns the sprite's box for a w×h bitmap.
func (s Sprite) Rect(w, h int) Rect {
	return Rect{X: s.X, Y: s.Y, W: w, H: h}
}
