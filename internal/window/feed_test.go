package window

import (
	"testing"

	"github.com/Garsondee/fortuna-invaders/internal/game"
)

func TestEventFeed_KeepsNewestInOrder(t *testing.T) {
	f := NewEventFeed()
	for i := 0; i < feedMaxEntries+5; i++ {
		f.Add(game.SimLogEntry{Tick: i})
	}
	if f.Len() != feedMaxEntries {
		t.Fatalf("expected %d entries, got %d", feedMaxEntries, f.Len())
	}
	recent := f.Recent()
	if recent[0].Tick != 5 || recent[len(recent)-1].Tick != feedMaxEntries+4 {
		t.Fatalf("expected ticks 5..%d, got %d..%d", feedMaxEntries+4, recent[0].Tick, recent[len(recent)-1].Tick)
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].Tick != recent[i-1].Tick+1 {
			t.Fatalf("entries out of order at %d", i)
		}
	}
}

func TestEventFeed_AttachFollowsLog(t *testing.T) {
	f := NewEventFeed()
	log := game.NewSimLog(false)
	f.Attach(log)
	log.Add(3, "cannon", "life", "lost", "hit", 2)
	if f.Len() != 1 || f.Recent()[0].Key != "lost" {
		t.Fatalf("expected the logged entry in the feed, got %+v", f.Recent())
	}
}
