package game

import (
	"testing"

	"github.com/Garsondee/fortuna-invaders/internal/lcd"
)

// newPainted returns a reset world painted once onto a fresh panel.
func newPainted(t *testing.T) (*World, *Painter, *lcd.Panel) {
	t.Helper()
	w := NewWorld()
	w.Reset()
	panel := lcd.New()
	p := NewPainter(w, panel)
	p.VBlank()
	return w, p, panel
}

// checkRepaint fails the test if the incrementally drawn panel differs from
// a from-scratch repaint of the drawn scene.
func checkRepaint(t *testing.T, p *Painter, panel *lcd.Panel, when string) {
	t.Helper()
	fresh := lcd.New()
	p.Repaint(fresh)
	if x, y, differ := panel.FirstDifference(fresh); differ {
		t.Fatalf("%s: panel differs from repaint at (%d,%d): got %v, want %v", when, x, y, panel.At(x, y), fresh.At(x, y))
	}
}

func TestVBlank_CommitsDrawnScene(t *testing.T) {
	w, _, _ := newPainted(t)
	if w.Drawn.Score != 0 || w.Drawn.Lives != StartLives {
		t.Fatalf("expected score and lives committed, got score=%d lives=%d", w.Drawn.Score, w.Drawn.Lives)
	}
	if w.Drawn.Monsters != w.Current.Monsters || w.Drawn.Cannon != w.Current.Cannon {
		t.Fatal("expected monsters and cannon committed")
	}
	for i := range w.Shields {
		if w.Shields[i].Shadow != w.Shields[i].Mask {
			t.Fatalf("shield %d shadow not committed", i)
		}
	}
}

func TestVBlank_FirstPaintMatchesRepaint(t *testing.T) {
	_, p, panel := newPainted(t)
	checkRepaint(t, p, panel, "first paint")
}

func TestVBlank_SecondPassIsIdle(t *testing.T) {
	_, p, panel := newPainted(t)
	panel.ResetStats()
	p.VBlank()
	if st := panel.Stats(); st.Ops != 0 {
		t.Fatalf("an unchanged scene issued %d draw calls", st.Ops)
	}
}

func TestVBlank_WalkFlipsOnHorizontalMove(t *testing.T) {
	w, p, panel := newPainted(t)
	walk := p.Walk()
	w.Current.OriginX += MonsterSpeed
	for row := range w.Current.Monsters {
		for col := range w.Current.Monsters[row] {
			w.Current.Monsters[row][col].X += MonsterSpeed
		}
	}
	p.VBlank()
	if p.Walk() == walk {
		t.Fatal("expected the walk frame to flip")
	}
	checkRepaint(t, p, panel, "after a step")
}

func TestVBlank_ShotAndShieldDamage(t *testing.T) {
	w, p, panel := newPainted(t)
	w.Current.CannonShot = Sprite{X: 100, Y: 150, Life: Life{State: Alive}}
	p.VBlank()
	w.Current.CannonShot.Y -= CannonShotSpeed
	w.Shields[1].Mask.Clear(0, 4)
	w.Current.Score = 250
	p.VBlank()
	checkRepaint(t, p, panel, "after shot and shield changes")
	if w.Shields[1].Shadow.Bit(0, 4) {
		t.Fatal("expected the destroyed cell in the shadow")
	}

	w.Current.CannonShot.Life.Kill()
	p.VBlank()
	checkRepaint(t, p, panel, "after the shot died")
}

func TestLifeLost_AnimationReleasesEngine(t *testing.T) {
	w, p, panel := newPainted(t)
	w.Current.Cannon.X += 2 * CannonSpeed
	w.Current.Lives--
	w.LifeLost = true
	w.LifeLostSeq++

	frames := 0
	for w.LifeLostDone != w.LifeLostSeq {
		p.VBlank()
		frames++
		if frames > 2*lifeLostFrames {
			t.Fatal("animation never finished")
		}
		if w.LifeLostDone != w.LifeLostSeq && !p.LifeLostPlaying() {
			t.Fatalf("frame %d: wreck not on the panel", frames)
		}
		checkRepaint(t, p, panel, "during the animation")
	}
	if frames != lifeLostFrames+1 {
		t.Fatalf("expected %d vblanks, got %d", lifeLostFrames+1, frames)
	}
	if p.LifeLostPlaying() || !w.Drawn.Cannon.Life.IsDead() {
		t.Fatal("expected the wreck cleared")
	}

	// Done but not yet resumed: nothing happens.
	panel.ResetStats()
	p.VBlank()
	if panel.Stats().Ops != 0 {
		t.Fatal("a finished sequence should not be replayed")
	}
}

func TestLifeLost_OnlyFinishesOncePerSequence(t *testing.T) {
	w, p, _ := newPainted(t)
	for seq := 1; seq <= 2; seq++ {
		w.LifeLost = true
		w.LifeLostSeq = seq
		for i := 0; i <= lifeLostFrames; i++ {
			p.VBlank()
		}
		if w.LifeLostDone != seq {
			t.Fatalf("sequence %d: done=%d", seq, w.LifeLostDone)
		}
		w.LifeLost = false
		w.Current.Cannon = startCannon()
		p.VBlank()
	}
}

func TestRepaint_IncrementalMatchesAutopilotRound(t *testing.T) {
	ts := NewTestSim(WithSeed(3), WithAutopilot())
	if !ts.StartRound() {
		t.Fatal("round did not start")
	}
	checked := 0
	ts.OnFrame = func(ts *TestSim) {
		if ts.Machine.State() != StatePlay || ts.Frames%4 != 0 {
			return
		}
		checked++
		if x, y, differ := ts.RepaintDiff(); differ {
			t.Fatalf("frame %d tick %d: panel differs from repaint at (%d,%d)", ts.Frames, ts.CurrentTick(), x, y)
		}
	}
	ts.RunUntil(func(ts *TestSim) bool { return ts.Machine.State() != StatePlay }, 6000)
	if checked == 0 {
		t.Fatal("no frames checked")
	}
	if ts.World().Stats.ShotsFired == 0 {
		t.Fatal("autopilot never fired")
	}
}
