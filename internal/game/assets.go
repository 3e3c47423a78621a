package game

import (
	"fmt"

	"github.com/Garsondee/fortuna-invaders/internal/hal"
)

// bitmap turns ASCII art into sprite data: '#' is fg, anything else the
// background. Each art cell becomes sx×sy entries. Wide sprites use sx = 1
// because the panel doubles every entry horizontally.
func bitmap(fg hal.Color, sx, sy int, art ...string) []hal.Color {
	w := len(art[0])
	out := make([]hal.Color, 0, w*sx*len(art)*sy)
	for _, line := range art {
		if len(line) != w {
			panic(fmt.Sprintf("game: ragged sprite art %q", line))
		}
		for r := 0; r < sy; r++ {
			for _, ch := range []byte(line) {
				c := Background
				if ch == '#' {
					c = fg
				}
				for i := 0; i < sx; i++ {
					out = append(out, c)
				}
			}
		}
	}
	return out
}

func sized(img []hal.Color, n int) []hal.Color {
	if len(img) != n {
		panic(fmt.Sprintf("game: sprite has %d entries, want %d", len(img), n))
	}
	return img
}

// Colours of the sprites.
var speciesColors = [3]hal.Color{hal.White, hal.Gold, hal.Tan}

const (
	explosionColor = hal.Gold
	astroColor     = hal.Red
	cannonColor    = hal.LimeGreen
	heartColor     = hal.Red
)

const (
	wideMonster = MonsterWidth / 2 * MonsterHeight
	wideAstro   = AstroWidth / 2 * AstroHeight
)

// monsterBitmaps holds both walk frames of each species, wide format.
var monsterBitmaps = [3][2][]hal.Color{
	Squid: {
		sized(bitmap(speciesColors[Squid], 1, 2,
			"......#......",
			".....###.....",
			"....#####....",
			"...##.#.##...",
			"...#######...",
			".....#.#.....",
			"....#.#.#....",
			"...#.#.#.#...",
		), wideMonster),
		sized(bitmap(speciesColors[Squid], 1, 2,
			"......#......",
			".....###.....",
			"....#####....",
			"...##.#.##...",
			"...#######...",
			"....#...#....",
			"...#.#.#.#...",
			"....#...#....",
		), wideMonster),
	},
	Crab: {
		sized(bitmap(speciesColors[Crab], 1, 2,
			"...#.....#...",
			"....#...#....",
			"...#######...",
			"..##.###.##..",
			".###########.",
			".#.#######.#.",
			".#.#.....#.#.",
			"....##.##....",
		), wideMonster),
		sized(bitmap(speciesColors[Crab], 1, 2,
			"...#.....#...",
			".#..#...#..#.",
			".#.#######.#.",
			".###.###.###.",
			".###########.",
			"...#######...",
			"...#.....#...",
			"..#.......#..",
		), wideMonster),
	},
	Octopus: {
		sized(bitmap(speciesColors[Octopus], 1, 2,
			"....#####....",
			".###########.",
			"#############",
			"###..###..###",
			"#############",
			"...###.###...",
			"..##..#..##..",
			"##.........##",
		), wideMonster),
		sized(bitmap(speciesColors[Octopus], 1, 2,
			"....#####....",
			".###########.",
			"#############",
			"###..###..###",
			"#############",
			"....##.##....",
			"...##.#.##...",
			".##.......##.",
		), wideMonster),
	},
}

// explosionBitmap replaces a monster, or the astro, while it explodes.
var explosionBitmap = sized(bitmap(explosionColor, 1, 2,
	"#...#...#...#",
	".#...#.#...#.",
	"..#.......#..",
	"##...#.#...##",
	"...#.....#...",
	"..#..#.#..#..",
	".#...#.#...#.",
	"#...#...#...#",
), wideMonster)

var astroBitmap = sized(bitmap(astroColor, 1, 2,
	".....######.....",
	"...##########...",
	"..############..",
	".##.##.##.##.##.",
	"################",
	"..###..##..###..",
	"...#........#...",
), wideAstro)

var cannonBitmap = sized(bitmap(cannonColor, 2, 2,
	"......#......",
	".....###.....",
	".###########.",
	"#############",
	"#############",
), CannonWidth*CannonHeight)

// wreckBitmaps alternate while the cannon explodes.
var wreckBitmaps = [2][]hal.Color{
	sized(bitmap(cannonColor, 2, 2,
		"...#....#....",
		".#...##...#..",
		"..#.####.#...",
		".####.#####..",
		"#############",
	), CannonWidth*CannonHeight),
	sized(bitmap(hal.Red, 2, 2,
		"#.....#...#..",
		"...#.....#..#",
		".#..###.#....",
		"..#######.##.",
		"#############",
	), CannonWidth*CannonHeight),
}

var heartBitmap = sized(bitmap(heartColor, 1, 1,
	".##..##.",
	"########",
	"########",
	"########",
	".######.",
	"..####..",
	"...##...",
), HeartWidth*HeartHeight)

var triangleBitmap = sized(bitmap(TextColor, 1, 1,
	"#..",
	"##.",
	"###",
	"###",
	"##.",
	"#..",
), TriangleWidth*TriangleHeight)
