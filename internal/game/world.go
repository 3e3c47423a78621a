package game

// Scene is everything the redraw engine paints during play. The world keeps
// two of them: Current, advanced by the tick engine, and Drawn, what the
// panel shows.
type Scene struct {
	Cannon       Sprite
	CannonShot   Sprite
	Monsters     [Rows][Columns]Sprite
	OriginX      int // formation offset shared by every cell
	OriginY      int
	MonsterShots [MaxMonsterShots]Sprite
	Astro        Sprite
	Score        int
	Lives        int
}

// Outcome is how a round ended.
type Outcome uint8

const (
	Playing Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return "playing"
}

// RoundStats counts what happened during a round.
type RoundStats struct {
	Ticks           int
	FormationSteps  int
	Reversals       int
	ShotsFired      int
	MonsterShots    int
	MonstersKilled  int
	AstrosKilled    int
	BlocksDestroyed int
	LivesLost       int
}

// World is the state of one round.
//
// Writers are split by field group. The tick engine writes Current, the
// shield masks, Formation, Outcome, Stats and the LifeLost fields. The
// redraw engine writes Drawn, the shield shadows and LifeLostDone.
type World struct {
	Current Scene
	Drawn   Scene
	Shields [ShieldCount]Shield

	Formation Formation
	Outcome   Outcome
	Stats     RoundStats

	// LifeLost suspends the tick engine until the redraw engine has played
	// the loss animation for LifeLostSeq and set LifeLostDone to match.
	LifeLost     bool
	LifeLostSeq  int
	LifeLostDone int

	round int
}

// NewWorld returns a world with no round set up.
func NewWorld() *World {
	return &World{}
}

// Round returns the number of rounds set up so far.
func (w *World) Round() int { return w.round }

// startCannon is the cannon at the start of a round and after a life loss.
func startCannon() Sprite {
	return Sprite{X: CannonStartX, Y: CannonStartY, Life: Life{State: Alive}}
}

// Reset sets up a new round: full formation, fresh shields, three lives,
// no score. Drawn is cleared so the first redraw paints everything.
func (w *World) Reset() {
	w.round++
	w.Current = Scene{
		Cannon: startCannon(),
		Lives:  StartLives,
	}
	w.Formation.reset()
	w.Current.OriginX, w.Current.OriginY = w.Formation.Origin()
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			x, y := slotPosition(row, col)
			m := &w.Current.Monsters[row][col]
			*m = Sprite{X: x, Y: y, Kind: Species(row >> 1)}
			m.Life.Spawn()
		}
	}
	for i := range w.Shields {
		w.Shields[i].reset(i)
	}

	w.Drawn = Scene{
		OriginX: w.Current.OriginX,
		OriginY: w.Current.OriginY,
		Score:   -1,
		Lives:   -1,
	}
	w.Outcome = Playing
	w.Stats = RoundStats{}
	w.LifeLost = false
	w.LifeLostSeq = 0
	w.LifeLostDone = 0
}

// AliveMonsters counts the monsters still standing.
func (w *World) AliveMonsters() int {
	n := 0
	for row := range w.Current.Monsters {
		for col := range w.Current.Monsters[row] {
			if w.Current.Monsters[row][col].Life.IsAlive() {
				n++
			}
		}
	}
	return n
}

// ShieldCells counts the wall cells left over all shields.
func (w *World) ShieldCells() int {
	n := 0
	for i := range w.Shields {
		n += w.Shields[i].Mask.Count()
	}
	return n
}
