package game

import (
	"fmt"

	"github.com/Garsondee/fortuna-invaders/internal/hal"
)

// Painter is the incremental redraw engine. Each VBlank compares the
// current scene with the drawn one, paints only what changed and commits
// Drawn := Current for every category it visits.
type Painter struct {
	world *World
	disp  hal.Display

	// walk is the monster frame on the panel; it flips on every
	// horizontal formation move.
	walk uint8

	anim lifeLostAnim

	damage   [maxDamage]damage
	nDamage  int
	overflow bool

	scratch [AstroWidth * MonsterHeight]hal.Color
}

// NewPainter returns a painter drawing w onto d.
func NewPainter(w *World, d hal.Display) *Painter {
	return &Painter{world: w, disp: d}
}

// Reset forgets per-round painter state. The caller clears the panel.
func (p *Painter) Reset() {
	p.walk = 0
	p.anim = lifeLostAnim{}
	p.nDamage = 0
	p.overflow = false
}

// Walk returns the monster frame currently on the panel.
func (p *Painter) Walk() uint8 { return p.walk }

// VBlank runs one redraw pass.
func (p *Painter) VBlank() {
	w := p.world
	p.nDamage = 0
	p.overflow = false

	p.drawScore()
	p.drawHearts()
	if w.LifeLost {
		if w.LifeLostDone != w.LifeLostSeq {
			p.lifeLostFrame()
			p.repair()
		}
		return
	}
	p.drawMonsterShots()
	p.drawFormation()
	p.drawCannonShot()
	p.drawCannon()
	p.drawAstro()
	p.drawShields()
	p.repair()
}

func (p *Painter) fill(r Rect, c hal.Color) {
	if r.Empty() {
		return
	}
	p.disp.FillRect(r.X, r.Y, r.W, r.H, c)
}

func (p *Painter) clearStrips(strips [4]Rect) {
	for _, r := range strips {
		p.fill(r, Background)
	}
}

func scoreText(score int) string {
	return fmt.Sprintf("%04d", score)
}

func scoreRect(score int) Rect {
	return Rect{X: ScoreX, Y: ScoreY, W: len(scoreText(score)) * hal.GlyphWidth, H: hal.GlyphHeight}
}

func (p *Painter) drawScore() {
	cur, drawn := &p.world.Current, &p.world.Drawn
	if cur.Score == drawn.Score {
		return
	}
	p.disp.DrawText(scoreText(cur.Score), ScoreX, ScoreY, TextColor, Background)
	r := scoreRect(cur.Score)
	if drawn.Score >= 0 {
		r = r.Union(scoreRect(drawn.Score))
	}
	drawn.Score = cur.Score
	p.addDamage(r, itemScore)
}

func heartRect(i int) Rect {
	return Rect{X: HeartsX + i*HeartSpacing, Y: HeartsY, W: HeartWidth, H: HeartHeight}
}

func (p *Painter) drawHearts() {
	cur, drawn := &p.world.Current, &p.world.Drawn
	if cur.Lives == drawn.Lives {
		return
	}
	var dirty Rect
	for i := 0; i < StartLives; i++ {
		r := heartRect(i)
		if i < cur.Lives {
			p.disp.Blit(r.X, r.Y, r.W, r.H, heartBitmap)
		} else {
			p.fill(r, Background)
		}
		dirty = dirty.Union(r)
	}
	drawn.Lives = cur.Lives
	p.addDamage(dirty, itemHearts)
}

func (p *Painter) drawMonsterShots() {
	cur, drawn := &p.world.Current, &p.world.Drawn
	for i := range cur.MonsterShots {
		p.drawShot(&cur.MonsterShots[i], &drawn.MonsterShots[i], MonsterShotColor, itemMonsterShot+item(i))
	}
}

func (p *Painter) drawCannonShot() {
	cur, drawn := &p.world.Current, &p.world.Drawn
	p.drawShot(&cur.CannonShot, &drawn.CannonShot, CannonShotColor, itemCannonShot)
}

// drawShot clears the span a shot vacated and fills the span it newly
// covers.
func (p *Painter) drawShot(cur, drawn *Sprite, c hal.Color, id item) {
	n := cur.Rect(ShotWidth, ShotHeight)
	o := drawn.Rect(ShotWidth, ShotHeight)
	switch {
	case cur.Life.IsAlive() && drawn.Life.IsAlive():
		if n == o {
			break
		}
		p.clearStrips(Subtract(o, n))
		for _, r := range Subtract(n, o) {
			p.fill(r, c)
		}
		p.addDamage(o.Union(n), id)
	case cur.Life.IsAlive():
		p.fill(n, c)
		p.addDamage(n, id)
	case drawn.Life.IsAlive():
		p.fill(o, Background)
		p.addDamage(o, id)
	}
	*drawn = *cur
}

// drawFormation moves the whole grid by the shared origin delta. Every
// vacated strip is cleared before any sprite is painted, since a vertical
// step is larger than the gap between rows.
func (p *Painter) drawFormation() {
	cur, drawn := &p.world.Current, &p.world.Drawn
	walk := p.walk
	if cur.OriginX != drawn.OriginX {
		walk ^= 1
	}

	for row := range cur.Monsters {
		for col := range cur.Monsters[row] {
			c, d := &cur.Monsters[row][col], &drawn.Monsters[row][col]
			cr := c.Rect(MonsterWidth, MonsterHeight)
			dr := d.Rect(MonsterWidth, MonsterHeight)
			switch {
			case c.Life.IsDead():
				if !d.Life.IsDead() {
					p.fill(dr, Background)
					p.addDamage(dr, monsterItem(row, col))
				}
			case d.Life.IsAlive() && cr != dr:
				p.clearStrips(Subtract(dr, cr))
			}
		}
	}

	for row := range cur.Monsters {
		for col := range cur.Monsters[row] {
			c, d := &cur.Monsters[row][col], &drawn.Monsters[row][col]
			cr := c.Rect(MonsterWidth, MonsterHeight)
			dirty := cr
			if d.Life.IsAlive() {
				dirty = dirty.Union(d.Rect(MonsterWidth, MonsterHeight))
			}
			switch {
			case c.Life.IsAlive():
				if d.Life.IsAlive() && c.X == d.X && c.Y == d.Y && walk == p.walk {
					continue
				}
				p.disp.BlitWide(cr.X, cr.Y, cr.W, cr.H, monsterBitmaps[c.Kind][walk])
			case c.Life.IsExploding():
				if d.Life.IsExploding() {
					continue
				}
				p.disp.BlitWide(cr.X, cr.Y, cr.W, cr.H, explosionBitmap)
			default:
				continue
			}
			p.addDamage(dirty, monsterItem(row, col))
		}
	}

	drawn.Monsters = cur.Monsters
	drawn.OriginX, drawn.OriginY = cur.OriginX, cur.OriginY
	p.walk = walk
}

func (p *Painter) drawCannon() {
	cur, drawn := &p.world.Current, &p.world.Drawn
	c, d := cur.Cannon, drawn.Cannon
	cr := c.Rect(CannonWidth, CannonHeight)
	dr := d.Rect(CannonWidth, CannonHeight)
	switch {
	case c.Life.IsAlive() && d.Life.IsAlive():
		if cr == dr {
			break
		}
		p.clearStrips(Subtract(dr, cr))
		p.disp.Blit(cr.X, cr.Y, cr.W, cr.H, cannonBitmap)
		p.addDamage(cr.Union(dr), itemCannon)
	case c.Life.IsAlive():
		p.disp.Blit(cr.X, cr.Y, cr.W, cr.H, cannonBitmap)
		p.addDamage(cr, itemCannon)
	case d.Life.IsAlive():
		p.fill(dr, Background)
		p.addDamage(dr, itemCannon)
	}
	drawn.Cannon = c
}

// drawAstro paints the bonus actor. Its explosion uses the monster-sized
// explosion bitmap, so both boxes are cleared when it dies.
func (p *Painter) drawAstro() {
	cur, drawn := &p.world.Current, &p.world.Drawn
	c, d := cur.Astro, drawn.Astro
	cr := c.Rect(AstroWidth, AstroHeight)
	ce := c.Rect(MonsterWidth, MonsterHeight)
	dr := d.Rect(AstroWidth, AstroHeight)
	de := d.Rect(MonsterWidth, MonsterHeight)

	switch c.Life.State {
	case Alive:
		switch {
		case d.Life.IsAlive() && cr == dr:
		case d.Life.IsAlive():
			p.clearStrips(Subtract(dr, cr))
			p.disp.BlitWide(cr.X, cr.Y, cr.W, cr.H, astroBitmap)
			p.addDamage(cr.Union(dr), itemAstro)
		default:
			p.disp.BlitWide(cr.X, cr.Y, cr.W, cr.H, astroBitmap)
			p.addDamage(cr, itemAstro)
		}
	case Exploding:
		if d.Life.IsExploding() {
			break
		}
		dirty := ce
		if d.Life.IsAlive() {
			p.clearStrips(Subtract(dr, ce))
			dirty = dirty.Union(dr)
		}
		p.disp.BlitWide(ce.X, ce.Y, ce.W, ce.H, explosionBitmap)
		p.addDamage(dirty, itemAstro)
	case Dead:
		switch {
		case d.Life.IsAlive():
			p.fill(dr, Background)
			p.addDamage(dr, itemAstro)
		case d.Life.IsExploding():
			p.fill(de, Background)
			p.fill(dr, Background)
			p.addDamage(de.Union(dr), itemAstro)
		}
	}
	drawn.Astro = c
}

// drawShields repaints the 2×2 blocks whose mask bit differs from the
// shadow, then records them in the shadow.
func (p *Painter) drawShields() {
	for i := range p.world.Shields {
		sh := &p.world.Shields[i]
		if sh.Mask == sh.Shadow {
			continue
		}
		var dirty Rect
		for row := 0; row < MaskRows; row++ {
			for col := 0; col < MaskCols; col++ {
				wall := sh.Mask.Bit(row, col)
				if wall == sh.Shadow.Bit(row, col) {
					continue
				}
				r := sh.CellRect(row, col)
				if wall {
					p.fill(r, ShieldColor)
					sh.Shadow.Set(row, col)
				} else {
					p.fill(r, Background)
					sh.Shadow.Clear(row, col)
				}
				dirty = dirty.Union(r)
			}
		}
		p.addDamage(dirty, itemShield+item(i))
	}
}
