package game

// lockupReplacement replaces a zero seed, the one state a Galois LFSR
// never leaves.
const lockupReplacement = 0xACE1

// lfsrToggle is the Galois toggle mask of x¹⁶ + x¹⁴ + x¹³ + x¹¹ + 1.
const lfsrToggle = 0xB400

// LFSR is a 16-bit maximal-length linear-feedback shift register. It visits
// every non-zero 16-bit value once before repeating.
type LFSR struct {
	state uint16
}

// NewLFSR returns a generator seeded with seed.
func NewLFSR(seed uint16) *LFSR {
	r := &LFSR{}
	r.Seed(seed)
	return r
}

// Seed restarts the sequence.
func (r *LFSR) Seed(seed uint16) {
	if seed == 0 {
		seed = lockupReplacement
	}
	r.state = seed
}

// State returns the current register value.
func (r *LFSR) State() uint16 { return r.state }

// Next advances the register one step and returns the new value.
func (r *LFSR) Next() uint16 {
	lsb := r.state & 1
	r.state >>= 1
	if lsb == 1 {
		r.state ^= lfsrToggle
	}
	return r.state
}
