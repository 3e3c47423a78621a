package encoder

// quadrature holds the (A, B) levels of one encoder revolution in order of
// increasing position.
var quadrature = [4][2]bool{
	{false, false},
	{true, false},
	{true, true},
	{false, true},
}

// Rotor simulates the mechanical encoder for frontends that only have
// keys: each Step moves the shaft one quadrature phase.
type Rotor struct {
	phase int
}

// Step moves the rotor one phase in direction dir (<0 anticlockwise, >0
// clockwise) and returns the new output levels.
func (r *Rotor) Step(dir int) (a, b bool) {
	switch {
	case dir > 0:
		r.phase = (r.phase + 1) & 3
	case dir < 0:
		r.phase = (r.phase + 3) & 3
	}
	return r.Levels()
}

// Levels returns the current output levels without moving.
func (r *Rotor) Levels() (a, b bool) {
	q := quadrature[r.phase]
	return q[0], q[1]
}
