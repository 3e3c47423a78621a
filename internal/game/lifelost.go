package game

// lifeLostFrames is the length of the cannon's death animation in vblanks.
const lifeLostFrames = LifeLostCycles * 2 * LifeLostHoldFrames

// lifeLostAnim is the redraw engine's progress through one life-lost
// sequence.
type lifeLostAnim struct {
	seq      int // sequence being played
	frame    int // vblanks since it started
	wrecking bool
	wreck    int // wreck bitmap on the panel
}

// lifeLostFrame plays one vblank of the death animation. The wreck is
// painted at the cannon's current position; the first frame clears the
// cannon where it was last drawn. The last frame clears the wreck and
// releases the tick engine.
func (p *Painter) lifeLostFrame() {
	w := p.world
	a := &p.anim
	drawn := &w.Drawn

	if a.seq != w.LifeLostSeq {
		*a = lifeLostAnim{seq: w.LifeLostSeq}
		old := drawn.Cannon.Rect(CannonWidth, CannonHeight)
		now := w.Current.Cannon.Rect(CannonWidth, CannonHeight)
		if drawn.Cannon.Life.IsAlive() && old != now {
			p.fill(old, Background)
			p.addDamage(old, itemCannon)
		}
		drawn.Cannon = w.Current.Cannon
	}

	r := drawn.Cannon.Rect(CannonWidth, CannonHeight)
	if a.frame == lifeLostFrames {
		p.fill(r, Background)
		p.addDamage(r, itemCannon)
		a.wrecking = false
		drawn.Cannon.Life.Kill()
		w.LifeLostDone = w.LifeLostSeq
		return
	}
	if a.frame%LifeLostHoldFrames == 0 {
		a.wrecking = true
		a.wreck = a.frame / LifeLostHoldFrames % 2
		p.disp.Blit(r.X, r.Y, r.W, r.H, wreckBitmaps[a.wreck])
		p.addDamage(r, itemCannon)
	}
	a.frame++
}

// LifeLostPlaying reports whether the death animation is on the panel.
func (p *Painter) LifeLostPlaying() bool { return p.anim.wrecking }
