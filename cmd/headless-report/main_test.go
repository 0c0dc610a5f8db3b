package main

import (
	"strings"
	"testing"

	"github.com/Garsondee/tank-ctf/internal/config"
	"github.com/Garsondee/tank-ctf/internal/game"
)

func TestCollectRound_CountsDecisions(t *testing.T) {
	entries := []game.SimLogEntry{
		{Tick: 11, Agent: "P1", Category: "plan", Key: "replan"},
		{Tick: 12, Agent: "P1", Category: "plan", Key: "no_path"},
		{Tick: 13, Agent: "P1", Category: "plan", Key: "metal_box"},
		{Tick: 14, Agent: "P1", Category: "align", Key: "commit"},
		{Tick: 15, Agent: "P2", Category: "threat", Key: "fire"},
		{Tick: 20, Agent: "P2", Category: "round", Key: "flag_grab"},
		{Tick: 30, Agent: "P1", Category: "round", Key: "flag_grab"},
		{Tick: 31, Agent: "--", Category: "round", Key: "box_destroyed"},
	}
	rs := collectRound("m", 2, entries, 10)
	if rs.replans != 1 || rs.noPath != 1 || rs.metalFallbacks != 1 || rs.commits != 1 || rs.fireDecisions != 1 {
		t.Fatalf("counts = %+v", rs)
	}
	if rs.firstGrabFrame != 10 {
		t.Fatalf("first grab = %d, want 10", rs.firstGrabFrame)
	}
	if rs.boxesDestroyed != 1 || rs.winner != -1 || rs.round != 2 {
		t.Fatalf("stats = %+v", rs)
	}
}

func openDef() *config.MapDef {
	return &config.MapDef{
		Name:           "open",
		Width:          6,
		Height:         3,
		Boxes:          [][]int{{0, 0, 0, 0, 0, 0}, {0, 0, 0, 0, 0, 0}, {0, 0, 0, 0, 0, 0}},
		StartPositions: [][]float64{{0.5, 1.5, -90}},
		FlagPosition:   []float64{5.5, 1.5},
	}
}

func TestRunMap_RoundsReplayIdentically(t *testing.T) {
	stats, err := runMap(openDef(), 2, 3000, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 2 {
		t.Fatalf("rounds = %d", len(stats))
	}
	a, b := stats[0], stats[1]
	if a.timedOut || a.winner != 0 || a.frames == 0 || a.replans == 0 || a.firstGrabFrame < 0 {
		t.Fatalf("round 1 = %+v", a)
	}
	if a.frames != b.frames || a.replans != b.replans || a.firstGrabFrame != b.firstGrabFrame {
		t.Fatalf("rounds differ: %+v vs %+v", a, b)
	}
	if b.round != 2 {
		t.Fatalf("second round numbered %d", b.round)
	}
}

func TestRunMap_FrameCap(t *testing.T) {
	stats, err := runMap(openDef(), 3, 20, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 1 || !stats[0].timedOut || stats[0].frames != 20 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestPrintAggregate(t *testing.T) {
	all := []roundStats{
		{winner: 0, frames: 100, replans: 4},
		{winner: 1, frames: 300, replans: 6, metalFallbacks: 2},
		{winner: -1, timedOut: true, frames: 50},
	}
	var sb strings.Builder
	printAggregate(&sb, all)
	out := sb.String()
	for _, want := range []string{
		"rounds=3 captured=2 frame_capped=1",
		"avg_frames_to_capture=200.0",
		"replan=3.3",
		"wins: P1=1 P2=1",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("aggregate missing %q:\n%s", want, out)
		}
	}
}
