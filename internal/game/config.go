package game

import (
	"time"

	"github.com/Garsondee/fortuna-invaders/internal/hal"
)

// Cannon and shots.
const (
	CannonWidth  = 26
	CannonHeight = 10
	CannonSpeed  = 5
	CannonStartX = (hal.ScreenWidth - CannonWidth) / 2
	CannonStartY = hal.ScreenHeight - CannonHeight - 1

	ShotWidth        = 1
	ShotHeight       = 4
	CannonShotSpeed  = 2
	MonsterShotSpeed = 1
	MaxMonsterShots  = 5
)

// Monster formation.
const (
	Columns = 5
	Rows    = 5

	MonsterWidth    = 26
	MonsterHeight   = 16
	MonsterTop      = 32
	MonsterPaddingX = 10 // gap between columns, and the side margin
	MonsterPaddingY = 3
	MonsterSpeed    = 8 // horizontal step and vertical drop, px
	MonsterPoints   = 50

	FormationTickDivisor = 50
	StartShotThreshold   = 62000
	ShotThresholdStep    = 50
)

// Bonus actor.
const (
	AstroWidth     = 32
	AstroHeight    = 14
	AstroSpeed     = 1
	AstroPoints    = 200
	AstroY         = 16
	AstroThreshold = 65519
)

// Explosion animation. A hit sprite shows ExplosionFrames frames, advancing
// one frame every ExplosionTickDivisor ticks.
const (
	ExplosionFrames      = 8
	ExplosionTickDivisor = 4
)

// Shields.
const (
	ShieldCount    = 4
	ShieldWidth    = 31
	ShieldHeight   = 23
	ShieldStartX   = 20
	ShieldStartY   = 180
	ShieldPaddingX = 50

	MaskRows  = 12
	MaskCols  = 16
	MaskBytes = MaskRows * 2
)

// Score, lives and the life-lost animation.
const (
	StartLives = 3

	ScoreX = 250
	ScoreY = 5

	HeartWidth   = 8
	HeartHeight  = 7
	HeartsX      = 280
	HeartsY      = 5
	HeartSpacing = 13

	LifeLostCycles     = 7
	LifeLostHoldFrames = 5
)

// Menus and the high-score table.
const (
	MenuItems       = 3
	MenuX           = 105
	MenuReadDivisor = 10
	TriangleWidth   = 3
	TriangleHeight  = 6

	MaxHighScores = 20
	ScoreCanary   = 0xABCD
)

// Palette.
const (
	Background       = hal.Black
	ShieldColor      = hal.LimeGreen
	CannonShotColor  = hal.Blue
	MonsterShotColor = hal.Red
	TextColor        = hal.White
	SelectColor      = hal.Blue
)

// Default timing of the three periodic sources.
const (
	DefaultTickPeriod   = 6192 * time.Microsecond
	DefaultVBlankPeriod = time.Second / 60
	DefaultInputPeriod  = 2 * time.Millisecond
)

// Config is the run-time configuration of a machine.
type Config struct {
	TickPeriod   time.Duration
	VBlankPeriod time.Duration
	InputPeriod  time.Duration

	// Seed for the LFSR. Zero selects the lock-up replacement seed.
	Seed uint16

	// HighScoreSlots is the size of the high-score table.
	HighScoreSlots int
}

// DefaultConfig returns the board's timing.
func DefaultConfig() Config {
	return Config{
		TickPeriod:     DefaultTickPeriod,
		VBlankPeriod:   DefaultVBlankPeriod,
		InputPeriod:    DefaultInputPeriod,
		HighScoreSlots: MaxHighScores,
	}
}
