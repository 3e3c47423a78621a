package game

import (
	"fmt"

	"github.com/Garsondee/fortuna-invaders/internal/hal"
)

// Slot spacing of the monster grid.
const (
	slotSpacingX = MonsterWidth + MonsterPaddingX
	slotSpacingY = MonsterHeight + MonsterPaddingY
)

// Where the formation's origin starts each round.
const (
	formationStartX = MonsterPaddingX
	formationStartY = MonsterTop
)

// slotOffset returns the offset of cell (row, col) from the formation
// origin. Cells never move relative to each other.
func slotOffset(row, col int) (dx, dy int) {
	return col * slotSpacingX, row * slotSpacingY
}

// slotPosition returns the position of cell (row, col) at round start.
func slotPosition(row, col int) (x, y int) {
	dx, dy := slotOffset(row, col)
	return formationStartX + dx, formationStartY + dy
}

// Formation is the shared motion state of the monster grid. The edges are
// those of the alive monsters as of the previous step.
type Formation struct {
	Dir                      int // horizontal step, ±MonsterSpeed
	Left, Right, Top, Bottom int

	// ShotThreshold is the LFSR value a column must beat to fire. It drops
	// at every reversal.
	ShotThreshold uint16

	Steps int
	tick  int
}

func (f *Formation) reset() {
	*f = Formation{
		Dir:           MonsterSpeed,
		Left:          formationStartX,
		Right:         Columns * slotSpacingX,
		Top:           formationStartY,
		Bottom:        formationStartY + Rows*slotSpacingY - MonsterPaddingY,
		ShotThreshold: StartShotThreshold,
	}
}

// Origin returns the formation origin at round start.
func (f *Formation) Origin() (x, y int) {
	return formationStartX, formationStartY
}

// due advances the step counter and reports whether this tick moves the
// formation.
func (f *Formation) due() bool {
	f.tick = (f.tick + 1) % FormationTickDivisor
	return f.tick == 0
}

// atEdge reports whether the formation has reached a side margin.
func (f *Formation) atEdge() bool {
	return f.Left < MonsterPaddingX || f.Right > hal.ScreenWidth-MonsterPaddingX
}

// stepFormation moves every alive monster one step, reversing and dropping
// at the margins, then lets each column's lowest monster fire.
func (e *Engine) stepFormation() {
	w := e.world
	f := &w.Formation
	cur := &w.Current

	dy := 0
	if f.atEdge() {
		f.Dir = -f.Dir
		dy = MonsterSpeed
		f.ShotThreshold -= ShotThresholdStep
		w.Stats.Reversals++
		e.logf("--", "formation", "reverse", float64(f.ShotThreshold), "dir=%+d threshold=%d", f.Dir, f.ShotThreshold)
	}
	f.Steps++
	w.Stats.FormationSteps++

	alive := false
	f.Left, f.Top = hal.ScreenWidth, hal.ScreenWidth
	f.Right, f.Bottom = 0, 0

	for col := 0; col < Columns; col++ {
		lowest := -1
		for row := 0; row < Rows; row++ {
			m := &cur.Monsters[row][col]
			if !m.Life.IsAlive() {
				continue
			}
			lowest = row
			alive = true
			m.X += f.Dir
			m.Y += dy
			if m.Y+MonsterHeight >= cur.Cannon.Y {
				cur.OriginX += f.Dir
				cur.OriginY += dy
				e.invade(row, col)
				return
			}
			f.Left = min(f.Left, m.X)
			f.Right = max(f.Right, m.X+MonsterWidth)
			f.Top = min(f.Top, m.Y)
			f.Bottom = max(f.Bottom, m.Y+MonsterHeight)
		}
		if lowest >= 0 && e.rng.Next() > f.ShotThreshold {
			e.monsterFire(&cur.Monsters[lowest][col])
		}
	}
	cur.OriginX += f.Dir
	cur.OriginY += dy
	e.verbosef("--", "formation", "step", float64(f.Steps), "origin=(%d,%d)", cur.OriginX, cur.OriginY)

	if !alive {
		w.Outcome = Won
		e.logf("--", "round", "won", float64(cur.Score), "score=%d", cur.Score)
	}
}

// monsterFire spawns a shot below m in the first slot that is free in both
// snapshots. A full pool drops the shot.
func (e *Engine) monsterFire(m *Sprite) {
	w := e.world
	for i := range w.Current.MonsterShots {
		s := &w.Current.MonsterShots[i]
		if !s.Life.IsDead() || !w.Drawn.MonsterShots[i].Life.IsDead() {
			continue
		}
		s.X = m.X + MonsterWidth/2
		s.Y = m.Y + MonsterHeight + 1
		s.Life.Spawn()
		w.Stats.MonsterShots++
		e.logf(monsterShotLabels[i], "spawn", "monster_shot", float64(i), "slot %d at (%d,%d)", i, s.X, s.Y)
		return
	}
}

// invade ends the round: the formation has reached the cannon's row.
func (e *Engine) invade(row, col int) {
	e.world.Current.Lives = 0
	e.logf(cellLabel(row, col), "life", "invaded", 0, "formation reached the cannon")
	e.suspend()
}

func cellLabel(row, col int) string {
	return fmt.Sprintf("r%dc%d", row, col)
}
