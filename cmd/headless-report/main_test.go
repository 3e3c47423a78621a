package main

import (
	"strings"
	"testing"

	"github.com/Garsondee/fortuna-invaders/internal/game"
)

func TestOutcomeCounts(t *testing.T) {
	all := []runStats{
		{outcome: game.Won},
		{outcome: game.Lost},
		{outcome: game.Lost},
		{outcome: game.Playing},
	}

	counts := outcomeCounts(all)
	if counts[game.Won] != 1 || counts[game.Lost] != 2 || counts[game.Playing] != 1 {
		t.Fatalf("expected won=1 lost=2 playing=1, got %v", counts)
	}
}

func TestAvg_ZeroRunsIsZero(t *testing.T) {
	if got := avg(10, 0); got != 0 {
		t.Fatalf("expected 0, got %f", got)
	}
	if got := avg(9, 2); got != 4.5 {
		t.Fatalf("expected 4.5, got %f", got)
	}
}

func TestAvgTickString(t *testing.T) {
	if got := avgTickString(nil); got != "n/a" {
		t.Fatalf("expected n/a, got %s", got)
	}
	if got := avgTickString([]int{10, 20}); got != "15.0" {
		t.Fatalf("expected 15.0, got %s", got)
	}
}

func TestJoinScores_PadsToFourDigits(t *testing.T) {
	if got := joinScores([]int{500, 40}); got != "0500,0040" {
		t.Fatalf("unexpected scores %q", got)
	}
	if got := joinScores(nil); got != "none" {
		t.Fatalf("expected none, got %q", got)
	}
}

func TestRunRound_AutopilotPlaysCleanly(t *testing.T) {
	rs := runRound(1, 7, 4000)
	if rs.ticks == 0 || rs.frames == 0 {
		t.Fatalf("round never ran (ticks=%d frames=%d)", rs.ticks, rs.frames)
	}
	if rs.round.ShotsFired == 0 {
		t.Fatal("autopilot never fired")
	}
	if rs.repaintDiffs != 0 {
		t.Fatalf("incremental panel diverged from repaint on %d frames", rs.repaintDiffs)
	}

	var b strings.Builder
	printRun(&b, rs)
	if !strings.Contains(b.String(), "seed=7") {
		t.Fatalf("run header missing seed: %s", b.String())
	}
}
