package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/fortuna-invaders/internal/game"
	"github.com/Garsondee/fortuna-invaders/internal/replay"
)

// repaintEvery is how often, in frames, the panel is checked against a
// full repaint.
const repaintEvery = 8

type runStats struct {
	runIndex int
	seed     uint16

	outcome  game.Outcome
	endState game.StateID
	ticks    int
	frames   int
	score    int
	alive    int
	shields  int
	round    game.RoundStats

	firstKillTick int
	firstLossTick int

	paintOps     int
	paintPixels  int
	touched      int
	maxOverdraw  uint32
	repaintDiffs int
}

func main() {
	var runs int
	var ticks int
	var seedBase uint
	var seedStep uint
	var replayPath string
	var copyOut bool

	flag.IntVar(&runs, "runs", 5, "number of headless rounds")
	flag.IntVar(&ticks, "ticks", 60000, "tick budget per round")
	flag.UintVar(&seedBase, "seed-base", 42, "LFSR seed for run 1")
	flag.UintVar(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&replayPath, "replay", "", "replay an input recording instead of the autopilot")
	flag.BoolVar(&copyOut, "copy", false, "copy the report to the clipboard")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}

	var b strings.Builder
	if replayPath != "" {
		if err := reportReplay(&b, replayPath, ticks); err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
	} else {
		fmt.Fprintf(&b, "=== Headless Round Report ===\n")
		fmt.Fprintf(&b, "runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", runs, ticks, seedBase, seedStep)

		all := make([]runStats, 0, runs)
		for i := 0; i < runs; i++ {
			seed := uint16(seedBase + uint(i)*seedStep)
			if seed == 0 {
				seed = 1
			}
			rs := runRound(i+1, seed, ticks)
			all = append(all, rs)
			printRun(&b, rs)
		}
		printAggregate(&b, all)
	}

	fmt.Print(b.String())
	if copyOut {
		if err := clipboard.WriteAll(b.String()); err != nil {
			fmt.Printf("error: copy report: %v\n", err)
		}
	}
}

func runRound(runIndex int, seed uint16, ticks int) runStats {
	ts := game.NewTestSim(
		game.WithSeed(seed),
		game.WithAutopilot(),
		game.WithOverdraw(),
	)
	rs := runStats{runIndex: runIndex, seed: seed, firstKillTick: -1, firstLossTick: -1}
	if !ts.StartRound() {
		rs.endState = ts.Machine.State()
		return rs
	}
	ts.Panel.ResetStats()
	startFrames := ts.Frames
	ts.OnFrame = func(ts *game.TestSim) {
		if ts.Machine.State() != game.StatePlay || ts.Frames%repaintEvery != 0 {
			return
		}
		if _, _, differ := ts.RepaintDiff(); differ {
			rs.repaintDiffs++
		}
	}
	ts.RunUntil(func(ts *game.TestSim) bool { return ts.Machine.State() != game.StatePlay }, ticks)

	snap := ts.Snapshot()
	st := ts.Panel.Stats()
	rs.outcome = snap.Outcome
	rs.endState = snap.State
	rs.ticks = snap.Stats.Ticks
	rs.frames = ts.Frames - startFrames
	rs.score = snap.Score
	rs.alive = snap.Alive
	rs.shields = snap.ShieldCells
	rs.round = snap.Stats
	rs.paintOps = st.Ops
	rs.paintPixels = st.Pixels
	rs.touched, rs.maxOverdraw = ts.Panel.Overdraw()
	rs.firstKillTick = firstTick(ts.SimLog.Entries(), "hit", "monster")
	rs.firstLossTick = firstTick(ts.SimLog.Entries(), "life", "lost")
	return rs
}

func firstTick(entries []game.SimLogEntry, category, key string) int {
	for _, e := range entries {
		if e.Category == category && e.Key == key {
			return e.Tick
		}
	}
	return -1
}

func reportReplay(b *strings.Builder, path string, ticks int) error {
	rec, err := replay.Load(path)
	if err != nil {
		return err
	}
	player := replay.NewPlayer(rec)
	cfg := game.DefaultConfig()
	cfg.Seed = rec.Seed
	if rec.TickPeriod > 0 {
		cfg.TickPeriod = rec.TickPeriod
	}
	ts := game.NewTestSim(game.WithConfig(cfg), game.WithInput(player))
	ts.RunUntil(func(*game.TestSim) bool { return player.Done() }, ticks)

	snap := ts.Snapshot()
	fmt.Fprintf(b, "=== Replay Report ===\n")
	fmt.Fprintf(b, "file=%s seed=%d tick_period=%s calls=%d\n", path, rec.Seed, cfg.TickPeriod, len(rec.Calls))
	fmt.Fprintf(b, "ticks=%d state=%s outcome=%s score=%d lives=%d\n",
		snap.Tick, snap.State, snap.Outcome, snap.Score, snap.Lives)
	fmt.Fprintf(b, "remaining_calls=%d desyncs=%d first_desync=%d\n",
		player.Remaining(), player.Desyncs(), player.FirstDesync())
	fmt.Fprint(b, ts.SimLog.Summary(ts.World()))
	return nil
}

func perFrame(n, frames int) float64 {
	return avg(n, frames)
}

func printRun(b *strings.Builder, rs runStats) {
	fmt.Fprintf(b, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Fprintf(b, "result: outcome=%s end_state=%s ticks=%d frames=%d score=%d\n",
		rs.outcome, rs.endState, rs.ticks, rs.frames, rs.score)
	fmt.Fprintf(b, "round: steps=%d reversals=%d shots=%d monster_shots=%d kills=%d astros=%d blocks=%d lives_lost=%d\n",
		rs.round.FormationSteps, rs.round.Reversals, rs.round.ShotsFired, rs.round.MonsterShots,
		rs.round.MonstersKilled, rs.round.AstrosKilled, rs.round.BlocksDestroyed, rs.round.LivesLost)
	fmt.Fprintf(b, "field: monsters_left=%d shield_cells=%d first_kill=%d first_loss=%d\n",
		rs.alive, rs.shields, rs.firstKillTick, rs.firstLossTick)
	fmt.Fprintf(b, "paint: ops/frame=%.1f pixels/frame=%.1f touched=%d max_overdraw=%d repaint_diffs=%d\n",
		perFrame(rs.paintOps, rs.frames), perFrame(rs.paintPixels, rs.frames), rs.touched, rs.maxOverdraw, rs.repaintDiffs)
	fmt.Fprintln(b)
}

func outcomeCounts(all []runStats) map[game.Outcome]int {
	counts := make(map[game.Outcome]int)
	for _, rs := range all {
		counts[rs.outcome]++
	}
	return counts
}

func printAggregate(b *strings.Builder, all []runStats) {
	totalScore := 0
	totalTicks := 0
	totalKills := 0
	totalLives := 0
	totalOps := 0
	totalPixels := 0
	totalFrames := 0
	totalDiffs := 0
	var maxOverdraw uint32
	killTicks := make([]int, 0, len(all))
	scores := make([]int, 0, len(all))

	for _, rs := range all {
		totalScore += rs.score
		totalTicks += rs.ticks
		totalKills += rs.round.MonstersKilled
		totalLives += rs.round.LivesLost
		totalOps += rs.paintOps
		totalPixels += rs.paintPixels
		totalFrames += rs.frames
		totalDiffs += rs.repaintDiffs
		if rs.maxOverdraw > maxOverdraw {
			maxOverdraw = rs.maxOverdraw
		}
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
		scores = append(scores, rs.score)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(scores)))
	counts := outcomeCounts(all)

	fmt.Fprintln(b, "=== Aggregate ===")
	fmt.Fprintf(b, "runs=%d won=%d lost=%d unfinished=%d\n",
		len(all), counts[game.Won], counts[game.Lost], counts[game.Playing])
	fmt.Fprintf(b, "avg_per_run: score=%.1f ticks=%.1f kills=%.1f lives_lost=%.1f\n",
		avg(totalScore, len(all)), avg(totalTicks, len(all)), avg(totalKills, len(all)), avg(totalLives, len(all)))
	fmt.Fprintf(b, "first_kill_avg_tick=%s\n", avgTickString(killTicks))
	fmt.Fprintf(b, "paint: ops/frame=%.1f pixels/frame=%.1f max_overdraw=%d repaint_diffs=%d\n",
		perFrame(totalOps, totalFrames), perFrame(totalPixels, totalFrames), maxOverdraw, totalDiffs)
	fmt.Fprintf(b, "scores: %s\n", joinScores(scores))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinScores(scores []int) string {
	if len(scores) == 0 {
		return "none"
	}
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = fmt.Sprintf("%04d", s)
	}
	return strings.Join(parts, ",")
}
