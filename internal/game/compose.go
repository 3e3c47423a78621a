package game

import "github.com/Garsondee/fortuna-invaders/internal/hal"

// item names one paintable thing. Items are ordered bottom to top: when
// two overlap, the higher one is painted last.
type item uint8

const (
	itemShield      item = 0
	itemMonster     item = itemShield + ShieldCount
	itemMonsterShot item = itemMonster + Rows*Columns
	itemCannonShot  item = itemMonsterShot + MaxMonsterShots
	itemCannon      item = itemCannonShot + 1
	itemAstro       item = itemCannon + 1
	itemScore       item = itemAstro + 1
	itemHearts      item = itemScore + 1
	itemCount       item = itemHearts + 1
)

// maxDamage bounds the damage list of one frame. A pass that records more
// falls back to a full repaint.
const maxDamage = 2 * int(itemCount)

func monsterItem(row, col int) item {
	return itemMonster + item(row*Columns+col)
}

// damage is a box a category painted during this frame.
type damage struct {
	r   Rect
	src item
}

func (p *Painter) addDamage(r Rect, src item) {
	if r.Empty() {
		return
	}
	if p.nDamage == len(p.damage) {
		p.overflow = true
		return
	}
	p.damage[p.nDamage] = damage{r: r, src: src}
	p.nDamage++
}

// repair makes overlapping items correct. Each category diffs on its own,
// so a box painted by one item may have wiped part of another. Such a box
// is recomposed from the drawn scene in z-order.
func (p *Painter) repair() {
	if p.overflow {
		p.Repaint(p.disp)
		return
	}
	for i := 0; i < p.nDamage; i++ {
		d := p.damage[i]
		if p.contested(d) {
			p.compose(p.disp, d.r)
		}
	}
	p.nDamage = 0
}

func (p *Painter) contested(d damage) bool {
	for id := item(0); id < itemCount; id++ {
		if id == d.src {
			continue
		}
		if r, ok := p.itemRect(id); ok && r.Overlaps(d.r) {
			return true
		}
	}
	return false
}

// compose repaints clip from the drawn scene alone.
func (p *Painter) compose(d hal.Display, clip Rect) {
	d.FillRect(clip.X, clip.Y, clip.W, clip.H, Background)
	for id := item(0); id < itemCount; id++ {
		if r, ok := p.itemRect(id); ok && r.Overlaps(clip) {
			p.paintItem(d, id, clip)
		}
	}
}

// Repaint draws the drawn scene onto d from scratch. Painted onto a second
// panel after any VBlank it matches the incrementally drawn one.
func (p *Painter) Repaint(d hal.Display) {
	d.Clear()
	full := Rect{W: hal.ScreenWidth, H: hal.ScreenHeight}
	for id := item(0); id < itemCount; id++ {
		if _, ok := p.itemRect(id); ok {
			p.paintItem(d, id, full)
		}
	}
}

// itemRect returns the box item id covers on the panel, if it is visible.
func (p *Painter) itemRect(id item) (Rect, bool) {
	w := p.world
	drawn := &w.Drawn
	switch {
	case id < itemMonster:
		sh := &w.Shields[id-itemShield]
		return sh.Rect(), sh.Shadow != Mask{}
	case id < itemMonsterShot:
		n := int(id - itemMonster)
		m := &drawn.Monsters[n/Columns][n%Columns]
		return m.Rect(MonsterWidth, MonsterHeight), !m.Life.IsDead()
	case id < itemCannonShot:
		s := &drawn.MonsterShots[id-itemMonsterShot]
		return s.Rect(ShotWidth, ShotHeight), s.Life.IsAlive()
	}
	switch id {
	case itemCannonShot:
		s := &drawn.CannonShot
		return s.Rect(ShotWidth, ShotHeight), s.Life.IsAlive()
	case itemCannon:
		c := &drawn.Cannon
		return c.Rect(CannonWidth, CannonHeight), c.Life.IsAlive() || p.anim.wrecking
	case itemAstro:
		a := &drawn.Astro
		if a.Life.IsExploding() {
			return a.Rect(MonsterWidth, MonsterHeight), true
		}
		return a.Rect(AstroWidth, AstroHeight), a.Life.IsAlive()
	case itemScore:
		return scoreRect(drawn.Score), drawn.Score >= 0
	case itemHearts:
		if drawn.Lives <= 0 {
			return Rect{}, false
		}
		r := heartRect(0).Union(heartRect(drawn.Lives - 1))
		return r, true
	}
	return Rect{}, false
}

// paintItem paints the part of item id inside clip. The score text cannot
// be clipped and is drawn whole.
func (p *Painter) paintItem(d hal.Display, id item, clip Rect) {
	w := p.world
	drawn := &w.Drawn
	switch {
	case id < itemMonster:
		sh := &w.Shields[id-itemShield]
		for row := 0; row < MaskRows; row++ {
			for col := 0; col < MaskCols; col++ {
				if !sh.Shadow.Bit(row, col) {
					continue
				}
				if r := sh.CellRect(row, col).Intersect(clip); !r.Empty() {
					d.FillRect(r.X, r.Y, r.W, r.H, ShieldColor)
				}
			}
		}
		return
	case id < itemMonsterShot:
		n := int(id - itemMonster)
		m := &drawn.Monsters[n/Columns][n%Columns]
		img := explosionBitmap
		if m.Life.IsAlive() {
			img = monsterBitmaps[m.Kind][p.walk]
		}
		p.blitWideClip(d, m.Rect(MonsterWidth, MonsterHeight), img, clip)
		return
	case id < itemCannonShot:
		s := &drawn.MonsterShots[id-itemMonsterShot]
		fillClip(d, s.Rect(ShotWidth, ShotHeight), MonsterShotColor, clip)
		return
	}
	switch id {
	case itemCannonShot:
		fillClip(d, drawn.CannonShot.Rect(ShotWidth, ShotHeight), CannonShotColor, clip)
	case itemCannon:
		img := cannonBitmap
		if p.anim.wrecking {
			img = wreckBitmaps[p.anim.wreck]
		}
		p.blitClip(d, drawn.Cannon.Rect(CannonWidth, CannonHeight), img, clip)
	case itemAstro:
		a := &drawn.Astro
		if a.Life.IsExploding() {
			p.blitWideClip(d, a.Rect(MonsterWidth, MonsterHeight), explosionBitmap, clip)
		} else {
			p.blitWideClip(d, a.Rect(AstroWidth, AstroHeight), astroBitmap, clip)
		}
	case itemScore:
		d.DrawText(scoreText(drawn.Score), ScoreX, ScoreY, TextColor, Background)
	case itemHearts:
		for i := 0; i < drawn.Lives; i++ {
			p.blitClip(d, heartRect(i), heartBitmap, clip)
		}
	}
}

func fillClip(d hal.Display, r Rect, c hal.Color, clip Rect) {
	if r = r.Intersect(clip); !r.Empty() {
		d.FillRect(r.X, r.Y, r.W, r.H, c)
	}
}

// blitClip draws the part of img (one entry per pixel) inside clip.
func (p *Painter) blitClip(d hal.Display, r Rect, img []hal.Color, clip Rect) {
	in := r.Intersect(clip)
	if in.Empty() {
		return
	}
	if in == r {
		d.Blit(r.X, r.Y, r.W, r.H, img)
		return
	}
	n := 0
	for y := in.Y; y < in.Bottom(); y++ {
		row := img[(y-r.Y)*r.W:]
		for x := in.X; x < in.Right(); x++ {
			p.scratch[n] = row[x-r.X]
			n++
		}
	}
	d.Blit(in.X, in.Y, in.W, in.H, p.scratch[:n])
}

// blitWideClip is blitClip for wide images, one entry per two pixels.
func (p *Painter) blitWideClip(d hal.Display, r Rect, img []hal.Color, clip Rect) {
	in := r.Intersect(clip)
	if in.Empty() {
		return
	}
	if in == r {
		d.BlitWide(r.X, r.Y, r.W, r.H, img)
		return
	}
	half := r.W / 2
	n := 0
	for y := in.Y; y < in.Bottom(); y++ {
		row := img[(y-r.Y)*half:]
		for x := in.X; x < in.Right(); x++ {
			p.scratch[n] = row[(x-r.X)/2]
			n++
		}
	}
	d.Blit(in.X, in.Y, in.W, in.H, p.scratch[:n])
}
