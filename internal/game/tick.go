package game

import (
	"fmt"

	"github.com/Garsondee/fortuna-invaders/internal/hal"
)

var monsterShotLabels = [MaxMonsterShots]string{"mshot0", "mshot1", "mshot2", "mshot3", "mshot4"}

// Engine is the tick update engine. Each Tick advances the current scene by
// one fixed period: shots, collisions, the formation, the bonus actor and
// the cannon.
type Engine struct {
	world *World
	in    hal.Input
	rng   *LFSR
	log   *SimLog

	explosionTick int
}

// NewEngine returns an engine advancing w. log may be nil.
func NewEngine(w *World, in hal.Input, rng *LFSR, log *SimLog) *Engine {
	return &Engine{world: w, in: in, rng: rng, log: log}
}

// SetInput replaces the input the engine reads.
func (e *Engine) SetInput(in hal.Input) { e.in = in }

// Reset restarts the engine's own counters for a new round.
func (e *Engine) Reset() {
	e.explosionTick = 0
}

// Tick advances the round by one tick. While a life-lost sequence is
// pending every tick is a no-op; the first tick after the redraw engine
// finishes it performs the recovery.
func (e *Engine) Tick() {
	w := e.world
	if w.Outcome != Playing {
		return
	}
	if w.LifeLost {
		if w.LifeLostDone != w.LifeLostSeq {
			return
		}
		e.recoverLife()
		return
	}

	w.Stats.Ticks++
	formationDue := w.Formation.due()

	if e.moveMonsterShots() {
		return
	}
	e.moveCannonShot()
	e.hitMonsters()
	if formationDue {
		e.stepFormation()
		if w.LifeLost || w.Outcome != Playing {
			return
		}
	}
	e.moveAstro()
	e.moveCannon()
	e.advanceExplosions()
}

// moveMonsterShots drops every live monster shot. It reports whether one hit
// the cannon, which ends the tick.
func (e *Engine) moveMonsterShots() bool {
	w := e.world
	cur := &w.Current
	cannon := cur.Cannon.Rect(CannonWidth, CannonHeight)

	for i := range cur.MonsterShots {
		s := &cur.MonsterShots[i]
		if !s.Life.IsAlive() {
			continue
		}
		s.Y += MonsterShotSpeed
		if s.Y >= hal.ScreenHeight-ShotHeight {
			s.Life.Kill()
			continue
		}
		r := s.Rect(ShotWidth, ShotHeight)
		if Intersects(cannon, r) {
			cur.Lives--
			w.Stats.LivesLost++
			e.logf("cannon", "life", "lost", float64(cur.Lives), "hit by shot %d, %d lives left", i, cur.Lives)
			e.suspend()
			return true
		}
		e.hitShields(s, r, monsterShotLabels[i])
	}
	return false
}

// moveCannonShot raises the cannon shot, or fires a new one. A new shot
// needs the previous one's death to have been painted.
func (e *Engine) moveCannonShot() {
	w := e.world
	cur := &w.Current

	// Both latches are read so neither stays pending.
	fire := e.in.ShortPress(hal.SwitchCentre)
	if e.in.Repeat(hal.SwitchCentre) {
		fire = true
	}

	shot := &cur.CannonShot
	switch {
	case shot.Life.IsAlive():
		shot.Y -= CannonShotSpeed
		if shot.Y <= AstroY {
			shot.Life.Kill()
			return
		}
		e.hitShields(shot, shot.Rect(ShotWidth, ShotHeight), "shot")
	case fire && w.Drawn.CannonShot.Life.IsDead():
		shot.X = cur.Cannon.X + CannonWidth/2 - ShotWidth/2
		shot.Y = cur.Cannon.Y - ShotHeight
		shot.Life.Spawn()
		w.Stats.ShotsFired++
		e.logf("cannon", "spawn", "shot", float64(shot.X), "fired at x=%d", shot.X)
	}
}

// hitShields tests a live shot against every shield and erases the first
// wall cell it touches.
func (e *Engine) hitShields(s *Sprite, r Rect, actor string) {
	w := e.world
	for i := range w.Shields {
		sh := &w.Shields[i]
		sr := sh.Rect()
		if !Intersects(sr, r) {
			continue
		}
		hit, ok := IntersectPixels(r, sr, &sh.Mask)
		if !ok {
			continue
		}
		sh.Mask.Clear(hit.Row, hit.Col)
		s.Life.Kill()
		w.Stats.BlocksDestroyed++
		e.logf(actor, "hit", "shield", float64(i), "shield %d cell (%d,%d)", i, hit.Row, hit.Col)
		return
	}
}

// hitMonsters tests every alive monster against the cannon shot.
func (e *Engine) hitMonsters() {
	w := e.world
	cur := &w.Current
	shot := &cur.CannonShot
	if !shot.Life.IsAlive() {
		return
	}
	r := shot.Rect(ShotWidth, ShotHeight)
	for row := range cur.Monsters {
		for col := range cur.Monsters[row] {
			m := &cur.Monsters[row][col]
			if !m.Life.IsAlive() || !Intersects(r, m.Rect(MonsterWidth, MonsterHeight)) {
				continue
			}
			shot.Life.Kill()
			m.Life.Hit()
			cur.Score += MonsterPoints
			w.Stats.MonstersKilled++
			e.logf(cellLabel(row, col), "hit", "monster", float64(cur.Score), "%s down, score %d", m.Kind, cur.Score)
			return
		}
	}
}

// moveAstro flies the bonus actor across the top of the screen, or spawns
// it with a low probability.
func (e *Engine) moveAstro() {
	w := e.world
	cur := &w.Current
	a := &cur.Astro
	shot := &cur.CannonShot

	switch {
	case a.Life.IsAlive():
		if shot.Life.IsAlive() && Intersects(shot.Rect(ShotWidth, ShotHeight), a.Rect(AstroWidth, AstroHeight)) {
			shot.Life.Kill()
			a.Life.Hit()
			cur.Score += AstroPoints
			w.Stats.AstrosKilled++
			e.logf("astro", "hit", "astro", float64(cur.Score), "bonus, score %d", cur.Score)
			return
		}
		a.X += AstroSpeed
		if a.X+AstroWidth >= hal.ScreenWidth {
			a.Life.Kill()
		}
	case a.Life.IsDead() && w.Drawn.Astro.Life.IsDead():
		if e.rng.Next() > AstroThreshold {
			a.X, a.Y = 0, AstroY
			a.Life.Spawn()
			e.logf("astro", "spawn", "astro", 0, "enters")
		}
	}
}

// moveCannon follows the rotary encoder, one step per tick.
func (e *Engine) moveCannon() {
	c := &e.world.Current.Cannon
	switch rot := e.in.RotaryDelta(); {
	case rot < 0 && c.X > CannonSpeed:
		c.X -= CannonSpeed
	case rot > 0 && c.X+CannonWidth+CannonSpeed < hal.ScreenWidth:
		c.X += CannonSpeed
	default:
		return
	}
	e.verbosef("cannon", "move", "x", float64(c.X), "%d", c.X)
}

// advanceExplosions moves every explosion on by one frame every
// ExplosionTickDivisor ticks.
func (e *Engine) advanceExplosions() {
	e.explosionTick = (e.explosionTick + 1) % ExplosionTickDivisor
	if e.explosionTick != 0 {
		return
	}
	cur := &e.world.Current
	for row := range cur.Monsters {
		for col := range cur.Monsters[row] {
			cur.Monsters[row][col].Life.Advance()
		}
	}
	cur.Astro.Life.Advance()
}

// suspend stops the engine until the life-lost sequence has been painted.
func (e *Engine) suspend() {
	w := e.world
	w.LifeLost = true
	w.LifeLostSeq++
}

// recoverLife ends a life-lost sequence: the round is over when no lives
// are left, otherwise the cannon restarts and every shot is cleared.
func (e *Engine) recoverLife() {
	w := e.world
	cur := &w.Current
	if cur.Lives <= 0 {
		w.Outcome = Lost
		e.logf("--", "round", "lost", float64(cur.Score), "score=%d", cur.Score)
		return
	}
	cur.Cannon = startCannon()
	cur.CannonShot.Life.Kill()
	for i := range cur.MonsterShots {
		cur.MonsterShots[i].Life.Kill()
	}
	cur.Astro.Life.Kill()
	e.in.ClearLatches()
	w.LifeLost = false
	e.logf("cannon", "life", "resume", float64(cur.Lives), "%d lives left", cur.Lives)
}

func (e *Engine) logf(actor, category, key string, num float64, format string, args ...any) {
	if e.log == nil {
		return
	}
	e.log.Add(e.world.Stats.Ticks, actor, category, key, fmt.Sprintf(format, args...), num)
}

// verbosef is logf for per-tick detail, recorded only by a verbose log.
func (e *Engine) verbosef(actor, category, key string, num float64, format string, args ...any) {
	if !e.log.Verbose() {
		return
	}
	e.log.AddVerbose(e.world.Stats.Ticks, actor, category, key, fmt.Sprintf(format, args...), num)
}
