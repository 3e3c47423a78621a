package game

import (
	"fmt"
	"slices"
	"strings"
)

// SimLogEntry is one recorded game event.
type SimLogEntry struct {
	Tick     int
	Actor    string  // label e.g. "cannon", "r2c4", "mshot1", or "--" for global events
	Category string  // round, life, hit, spawn, formation, state, score, store
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042] cannon life      lost            hit by shot 2, 2 lives left
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-6s %-9s %-15s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// SimLog collects structured events. It is unbounded and machine-readable;
// the window's EventFeed shows the recent tail to the player.
//
// A nil *SimLog discards everything.
type SimLog struct {
	entries []SimLogEntry
	verbose bool

	// OnAdd, if set, is called with every recorded entry.
	OnAdd func(SimLogEntry)
}

// NewSimLog creates a SimLog. If verbose is true, AddVerbose entries are
// recorded as well.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, actor, category, key, value string, numVal float64) {
	if sl == nil {
		return
	}
	e := SimLogEntry{
		Tick:     tick,
		Actor:    actor,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	}
	sl.entries = append(sl.entries, e)
	if sl.OnAdd != nil {
		sl.OnAdd(e)
	}
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, actor, category, key, value string, numVal float64) {
	if sl == nil || !sl.verbose {
		return
	}
	sl.Add(tick, actor, category, key, value, numVal)
}

// Verbose reports whether AddVerbose records.
func (sl *SimLog) Verbose() bool { return sl != nil && sl.verbose }

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	if sl == nil {
		return nil
	}
	return sl.entries
}

// Len returns the number of entries.
func (sl *SimLog) Len() int {
	if sl == nil {
		return 0
	}
	return len(sl.entries)
}

// where returns the entries keep accepts, oldest first.
func (sl *SimLog) where(keep func(SimLogEntry) bool) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.Entries() {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// is matches category and key, either of which may be empty for "any".
func (e SimLogEntry) is(category, key string) bool {
	return (category == "" || e.Category == category) && (key == "" || e.Key == key)
}

// Filter returns entries matching category and key ("" matches anything).
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	return sl.where(func(e SimLogEntry) bool { return e.is(category, key) })
}

// FilterActor returns entries for one actor label.
func (sl *SimLog) FilterActor(label string) []SimLogEntry {
	return sl.where(func(e SimLogEntry) bool { return e.Actor == label })
}

// FilterTickRange returns entries with from <= Tick <= to.
func (sl *SimLog) FilterTickRange(from, to int) []SimLogEntry {
	return sl.where(func(e SimLogEntry) bool { return e.Tick >= from && e.Tick <= to })
}

func (sl *SimLog) CountCategory(category, key string) int {
	n := 0
	for _, e := range sl.Entries() {
		if e.is(category, key) {
			n++
		}
	}
	return n
}

// LastOf returns the newest entry matching category and key.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Entries()
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].is(category, key) {
			return entries[i], true
		}
	}
	return SimLogEntry{}, false
}

// HasEntry reports whether some entry matches category and key and carries
// sub in its value.
func (sl *SimLog) HasEntry(category, key, sub string) bool {
	return slices.ContainsFunc(sl.Entries(), func(e SimLogEntry) bool {
		return e.is(category, key) && strings.Contains(e.Value, sub)
	})
}

func lines(entries []SimLogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintln(&sb, e)
	}
	return sb.String()
}

// Format renders the whole log, one entry per line.
func (sl *SimLog) Format() string { return lines(sl.Entries()) }

// FormatRange renders the entries between two ticks.
func (sl *SimLog) FormatRange(from, to int) string {
	return lines(sl.FilterTickRange(from, to))
}

// Summary returns a short human-readable summary of a round.
func (sl *SimLog) Summary(w *World) string {
	var sb strings.Builder
	s := w.Stats
	fmt.Fprintf(&sb, "--- Round %d at T=%04d: %s ---\n", w.Round(), s.Ticks, w.Outcome)
	fmt.Fprintf(&sb, "Score: %d  lives: %d\n", w.Current.Score, w.Current.Lives)
	fmt.Fprintf(&sb, "Formation: %d steps, %d reversals, %d alive\n", s.FormationSteps, s.Reversals, w.AliveMonsters())
	fmt.Fprintf(&sb, "Shots: %d fired, %d by monsters\n", s.ShotsFired, s.MonsterShots)
	fmt.Fprintf(&sb, "Kills: %d monsters, %d astros\n", s.MonstersKilled, s.AstrosKilled)
	fmt.Fprintf(&sb, "Shields: %d blocks destroyed, %d left\n", s.BlocksDestroyed, w.ShieldCells())
	fmt.Fprintf(&sb, "Events: %d logged\n", sl.Len())
	return sb.String()
}
