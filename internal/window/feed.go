package window

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/fortuna-invaders/internal/game"
)

const (
	feedPanelWidth = 300
	feedMaxEntries = 60
	feedLineHeight = 14
	feedTitleH     = 16
)

// categoryColors marks each event category with a dot.
var categoryColors = map[string]color.RGBA{
	"round": {R: 230, G: 230, B: 230, A: 255},
	"life":  {R: 210, G: 70, B: 70, A: 255},
	"hit":   {R: 230, G: 190, B: 40, A: 255},
	"spawn": {R: 70, G: 110, B: 210, A: 255},
	"state": {R: 120, G: 200, B: 120, A: 255},
	"score": {R: 230, G: 190, B: 40, A: 255},
	"store": {R: 150, G: 150, B: 150, A: 255},
}

// EventFeed is a ring buffer of the latest game events rendered on-screen.
type EventFeed struct {
	entries []game.SimLogEntry
	head    int
	count   int
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{
		entries: make([]game.SimLogEntry, feedMaxEntries),
	}
}

// Attach makes every entry recorded in log appear in the feed.
func (f *EventFeed) Attach(log *game.SimLog) {
	log.OnAdd = f.Add
}

// Add appends an entry to the feed.
func (f *EventFeed) Add(e game.SimLogEntry) {
	f.entries[f.head] = e
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Len returns the number of entries held.
func (f *EventFeed) Len() int { return f.count }

// Recent returns entries in chronological order (oldest first).
func (f *EventFeed) Recent() []game.SimLogEntry {
	result := make([]game.SimLogEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

// Draw renders the feed as a panel on the right side of the screen.
func (f *EventFeed) Draw(screen *ebiten.Image) {
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	panelX := sw - feedPanelWidth

	vector.FillRect(screen, float32(panelX), 0, feedPanelWidth, float32(sh), color.RGBA{R: 10, G: 12, B: 10, A: 220}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(sh), 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, feedPanelWidth, feedTitleH, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, 0)

	entries := f.Recent()
	maxVisible := (sh - feedTitleH - 4) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := feedTitleH + 2
	for i, e := range entries {
		if i >= len(entries)-3 {
			vector.FillRect(screen, float32(panelX+2), float32(y), feedPanelWidth-4, feedLineHeight, color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		dot, ok := categoryColors[e.Category]
		if !ok {
			dot = color.RGBA{R: 100, G: 100, B: 100, A: 255}
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 5, dot, false)

		line := fmt.Sprintf("%5d %-6s %s", e.Tick, e.Actor, e.Key)
		ebitenutil.DebugPrintAt(screen, line, panelX+12, y-1)
		y += feedLineHeight
	}
}
