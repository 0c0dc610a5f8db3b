package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"

	"github.com/Garsondee/tank-ctf/internal/arena"
	"github.com/Garsondee/tank-ctf/internal/config"
	"github.com/Garsondee/tank-ctf/internal/game"
)

type roundStats struct {
	mapName  string
	round    int
	winner   int // player index, -1 when the round hit the frame cap
	frames   int
	timedOut bool

	firstGrabFrame int // relative to the round start, -1 if never
	shots          int
	boxesDestroyed int
	tanksDestroyed int

	replans        int
	noPath         int
	metalFallbacks int
	commits        int
	fireDecisions  int
}

func main() {
	var rounds int
	var ticks int
	var mapRef string
	var copyReport bool
	var logLevel string

	flag.IntVar(&rounds, "rounds", 3, "rounds per map")
	flag.IntVar(&ticks, "ticks", 6000, "frame cap per round")
	flag.StringVar(&mapRef, "map", "all", "builtin map name, map file, or \"all\" for every builtin map")
	flag.BoolVar(&copyReport, "copy", false, "copy the report to the clipboard")
	flag.StringVar(&logLevel, "log-level", "warn", "operator log level")
	flag.Parse()

	logger, err := arena.NewLogger(os.Stderr, logLevel)
	if err != nil {
		log.Fatal("logger", "err", err)
	}
	if rounds <= 0 {
		logger.Fatal("-rounds must be > 0")
	}
	if ticks <= 0 {
		logger.Fatal("-ticks must be > 0")
	}

	refs := []string{mapRef}
	if mapRef == "all" {
		refs = config.BuiltinMapNames()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Headless CTF Report ===\n")
	fmt.Fprintf(&sb, "maps=%s rounds=%d ticks=%d\n\n", strings.Join(refs, ","), rounds, ticks)

	var all []roundStats
	for _, ref := range refs {
		def, err := config.ResolveMap(ref)
		if err != nil {
			logger.Fatal("map", "err", err)
		}
		stats, err := runMap(def, rounds, ticks, logger)
		if err != nil {
			logger.Fatal("run", "map", def.Name, "err", err)
		}
		for _, rs := range stats {
			printRound(&sb, rs)
		}
		all = append(all, stats...)
	}
	printAggregate(&sb, all)

	fmt.Print(sb.String())
	if copyReport {
		if err := clipboard.WriteAll(sb.String()); err != nil {
			logger.Error("clipboard copy failed", "err", err)
			os.Exit(1)
		}
		logger.Info("report copied to clipboard")
	}
}

// runMap plays up to rounds all-AI rounds of def. A round that reaches the
// frame cap ends the run, since the next round would replay it.
func runMap(def *config.MapDef, rounds, ticks int, logger *log.Logger) ([]roundStats, error) {
	settings := config.DefaultSettings()
	settings.Map = def.Name
	settings.Win = config.WinCondition{Mode: config.WinBestOf, Limit: rounds}
	m, err := arena.NewMatch(def, settings, logger)
	if err != nil {
		return nil, err
	}
	m.SimLog.SetLimit(0)

	var out []roundStats
	for !m.Done() && len(out) < rounds {
		start := m.Frame()
		played := m.Rounds()
		for m.Rounds() == played && !m.Done() && m.RoundFrame() < ticks {
			m.Step()
		}
		entries := m.SimLog.FilterTickRange(start+1, m.Frame())
		if m.Rounds() == played {
			rs := collectRound(def.Name, played+1, entries, start)
			rs.timedOut = true
			rs.frames = m.RoundFrame()
			rs.shots = m.World.Fired()
			out = append(out, rs)
			break
		}
		h := m.History()
		res := h[len(h)-1]
		rs := collectRound(def.Name, res.Round, entries, start)
		rs.winner = res.Winner
		rs.frames = res.Frames
		rs.shots = res.Shots
		rs.boxesDestroyed = res.BoxesDestroyed
		rs.tanksDestroyed = res.TanksDestroyed
		out = append(out, rs)
	}
	return out, nil
}

// collectRound counts the agent decisions of one round from its log entries.
func collectRound(mapName string, round int, entries []game.SimLogEntry, start int) roundStats {
	rs := roundStats{mapName: mapName, round: round, winner: -1, firstGrabFrame: -1}
	for _, e := range entries {
		switch e.Category {
		case "plan":
			switch e.Key {
			case "replan":
				rs.replans++
			case "no_path":
				rs.noPath++
			case "metal_box":
				rs.metalFallbacks++
			}
		case "align":
			if e.Key == "commit" {
				rs.commits++
			}
		case "threat":
			if e.Key == "fire" {
				rs.fireDecisions++
			}
		case "round":
			switch e.Key {
			case "flag_grab":
				if rs.firstGrabFrame < 0 {
					rs.firstGrabFrame = e.Tick - start
				}
			case "box_destroyed":
				rs.boxesDestroyed++
			case "respawn":
				rs.tanksDestroyed++
			}
		}
	}
	return rs
}

func printRound(w io.Writer, rs roundStats) {
	winner := "none"
	if rs.winner >= 0 {
		winner = arena.PlayerLabel(rs.winner)
	}
	outcome := "captured"
	if rs.timedOut {
		outcome = "frame cap"
	}
	fmt.Fprintf(w, "--- %s round %d (%s) ---\n", rs.mapName, rs.round, outcome)
	fmt.Fprintf(w, "winner=%s frames=%d first_grab=%d\n", winner, rs.frames, rs.firstGrabFrame)
	fmt.Fprintf(w, "plan_events: replan=%d no_path=%d metal_fallback=%d commits=%d\n",
		rs.replans, rs.noPath, rs.metalFallbacks, rs.commits)
	fmt.Fprintf(w, "combat: fire_decisions=%d shots=%d boxes_destroyed=%d tanks_destroyed=%d\n\n",
		rs.fireDecisions, rs.shots, rs.boxesDestroyed, rs.tanksDestroyed)
}

func printAggregate(w io.Writer, all []roundStats) {
	captured := 0
	captureFrames := 0
	totalReplans := 0
	totalFallbacks := 0
	totalShots := 0
	wins := map[string]int{}
	for _, rs := range all {
		totalReplans += rs.replans
		totalFallbacks += rs.metalFallbacks
		totalShots += rs.shots
		if rs.timedOut {
			continue
		}
		captured++
		captureFrames += rs.frames
		wins[arena.PlayerLabel(rs.winner)]++
	}

	fmt.Fprintln(w, "=== Aggregate ===")
	fmt.Fprintf(w, "rounds=%d captured=%d frame_capped=%d\n", len(all), captured, len(all)-captured)
	fmt.Fprintf(w, "avg_frames_to_capture=%s\n", avgString(captureFrames, captured))
	fmt.Fprintf(w, "avg_per_round: replan=%.1f metal_fallback=%.1f shots=%.1f\n",
		avg(totalReplans, len(all)), avg(totalFallbacks, len(all)), avg(totalShots, len(all)))
	fmt.Fprintf(w, "wins: %s\n", formatWins(wins))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgString(sum, n int) string {
	if n == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", avg(sum, n))
}

func formatWins(wins map[string]int) string {
	if len(wins) == 0 {
		return "none"
	}
	var parts []string
	for i := 0; len(parts) < len(wins); i++ {
		label := arena.PlayerLabel(i)
		if n, ok := wins[label]; ok {
			parts = append(parts, fmt.Sprintf("%s=%d", label, n))
		}
	}
	return strings.Join(parts, " ")
}
