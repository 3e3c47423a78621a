package game

import (
	"fmt"

	"github.com/Garsondee/fortuna-invaders/internal/hal"
)

// HighScores is the table of best winning scores, highest first. It is
// persisted as one EEPROM word per slot followed by a canary word; an image
// without the canary reads as an empty table.
type HighScores struct {
	slots  []uint16
	loaded bool
	log    *SimLog
}

// NewHighScores returns an unloaded table of n slots.
func NewHighScores(n int) *HighScores {
	if n < 1 {
		panic(fmt.Sprintf("game: high-score table of %d slots", n))
	}
	return &HighScores{slots: make([]uint16, n)}
}

// SetLog sets where table events are recorded.
func (h *HighScores) SetLog(log *SimLog) { h.log = log }

// Len returns the number of slots.
func (h *HighScores) Len() int { return len(h.slots) }

// Loaded reports whether the table has been read from storage.
func (h *HighScores) Loaded() bool { return h.loaded }

// Scores returns a copy of the table.
func (h *HighScores) Scores() []uint16 {
	return append([]uint16(nil), h.slots...)
}

// canaryAddr is the word address of the canary, right after the table.
func (h *HighScores) canaryAddr() int { return len(h.slots) }

// Load reads the table from ee once. Later calls are no-ops.
func (h *HighScores) Load(ee hal.EEPROM) {
	if h.loaded {
		return
	}
	h.loaded = true
	if c := ee.ReadWord(h.canaryAddr()); c != ScoreCanary {
		clear(h.slots)
		h.log.Add(0, "--", "store", "canary_reset", fmt.Sprintf("canary %#04x, table reset", c), float64(c))
		return
	}
	for i := range h.slots {
		h.slots[i] = ee.ReadWord(i)
	}
	h.log.Add(0, "--", "store", "load", fmt.Sprintf("best %d", h.slots[0]), float64(h.slots[0]))
}

// Store writes the table and the canary to ee. Unchanged words are not
// rewritten.
func (h *HighScores) Store(ee hal.EEPROM) {
	for i, s := range h.slots {
		ee.UpdateWord(i, s)
	}
	ee.UpdateWord(h.canaryAddr(), ScoreCanary)
	h.log.Add(0, "--", "store", "save", fmt.Sprintf("best %d", h.slots[0]), float64(h.slots[0]))
}

// Insert puts score into the table if it is at least the last entry,
// shifting the lower entries down. It reports whether the score went in.
// A tie goes below the equal entries, so the table is non-increasing and
// an older score keeps its rank.
func (h *HighScores) Insert(score uint16) bool {
	i := len(h.slots) - 1
	if score < h.slots[i] {
		return false
	}
	for i > 0 && score > h.slots[i-1] {
		h.slots[i] = h.slots[i-1]
		i--
	}
	h.slots[i] = score
	h.log.Add(0, "--", "score", "insert", fmt.Sprintf("%d at rank %d", score, i+1), float64(score))
	return true
}

// Rank returns the 1-based rank score would take, or 0 if it would not
// enter the table.
func (h *HighScores) Rank(score uint16) int {
	i := len(h.slots) - 1
	if score < h.slots[i] {
		return 0
	}
	for i > 0 && score > h.slots[i-1] {
		i--
	}
	return i + 1
}

// Format renders the table one "rank. score" line per slot.
func (h *HighScores) Format() string {
	var b []byte
	for i, s := range h.slots {
		b = fmt.Appendf(b, "%2d.    %04d\n", i+1, s)
	}
	return string(b)
}
