package game

import (
	"strings"
	"testing"
)

func sampleLog() *SimLog {
	sl := NewSimLog(false)
	sl.Add(1, "cannon", "spawn", "shot", "fired at x=160", 160)
	sl.Add(5, "r4c0", "hit", "monster", "octopus down, score 50", 50)
	sl.Add(9, "cannon", "spawn", "shot", "fired at x=165", 165)
	sl.AddVerbose(9, "cannon", "move", "x", "165", 165)
	return sl
}

func TestSimLog_Filters(t *testing.T) {
	sl := sampleLog()
	if sl.Len() != 3 {
		t.Fatalf("verbose entry recorded in quiet mode: %d entries", sl.Len())
	}
	if got := sl.CountCategory("spawn", "shot"); got != 2 {
		t.Fatalf("expected 2 shots, got %d", got)
	}
	if got := len(sl.FilterActor("cannon")); got != 2 {
		t.Fatalf("expected 2 cannon entries, got %d", got)
	}
	if got := len(sl.FilterTickRange(2, 9)); got != 2 {
		t.Fatalf("expected 2 entries in [2,9], got %d", got)
	}
	last, ok := sl.LastOf("spawn", "shot")
	if !ok || last.NumVal != 165 {
		t.Fatalf("unexpected last shot %+v", last)
	}
	if !sl.HasEntry("hit", "", "score 50") || sl.HasEntry("hit", "", "score 60") {
		t.Fatal("HasEntry substring match is wrong")
	}
}

func TestSimLog_VerboseAndFormat(t *testing.T) {
	sl := NewSimLog(true)
	sl.AddVerbose(42, "cannon", "move", "x", "152", 152)
	if sl.Len() != 1 {
		t.Fatal("expected the verbose entry")
	}
	line := sl.Format()
	if !strings.HasPrefix(line, "[T=0042] cannon move") {
		t.Fatalf("unexpected line %q", line)
	}
	if sl.FormatRange(0, 10) != "" {
		t.Fatal("expected nothing before tick 42")
	}
}

func TestSimLog_NilDiscards(t *testing.T) {
	var sl *SimLog
	sl.Add(1, "--", "round", "start", "", 0)
	if sl.Len() != 0 || sl.Entries() != nil || sl.Verbose() {
		t.Fatal("a nil log must stay empty")
	}
	if _, ok := sl.LastOf("round", "start"); ok {
		t.Fatal("a nil log has no entries")
	}
}

func TestSimLog_OnAddSeesEveryEntry(t *testing.T) {
	sl := NewSimLog(false)
	var keys []string
	sl.OnAdd = func(e SimLogEntry) { keys = append(keys, e.Key) }
	sl.Add(0, "--", "round", "start", "", 0)
	sl.Add(0, "--", "round", "won", "", 0)
	if strings.Join(keys, ",") != "start,won" {
		t.Fatalf("unexpected callbacks %v", keys)
	}
}

func TestSimLog_Summary(t *testing.T) {
	w := NewWorld()
	w.Reset()
	w.Stats.ShotsFired = 4
	out := sampleLog().Summary(w)
	for _, want := range []string{"Round 1", "4 fired", "25 alive", "Events: 3"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}
