package game

import (
	"math/rand"
	"testing"
)

func allOpen(Cell) bool { return true }

// relaxDistances computes 4-connected step counts from start by repeated
// relaxation, independently of the queue-based search.
func relaxDistances(m *TileMap, start Cell, allowMetal bool) map[Cell]int {
	dist := map[Cell]int{start: 0}
	for changed := true; changed; {
		changed = false
		for y := 0; y < m.Rows; y++ {
			for x := 0; x < m.Cols; x++ {
				c := Cell{x, y}
				if c != start && !Passable(m.Classify(x, y), allowMetal) {
					continue
				}
				for _, d := range neighbourOffsets {
					n := c.Add(d[0], d[1])
					dn, ok := dist[n]
					if !ok || !m.InBounds(n) {
						continue
					}
					if cur, seen := dist[c]; !seen || dn+1 < cur {
						dist[c] = dn + 1
						changed = true
					}
				}
			}
		}
	}
	return dist
}

func assertValidPath(t *testing.T, path []Cell, start, goal Cell, passable func(Cell) bool) {
	t.Helper()
	prev := start
	for i, c := range path {
		if prev.Manhattan(c) != 1 {
			t.Fatalf("step %d: %v -> %v is not a grid step", i, prev, c)
		}
		if !passable(c) {
			t.Fatalf("step %d: %v is not passable", i, c)
		}
		prev = c
	}
	if len(path) > 0 && path[len(path)-1] != goal {
		t.Fatalf("path ends at %v, want %v", path[len(path)-1], goal)
	}
}

func TestFindShortestPath_OpenGrid(t *testing.T) {
	path := FindShortestPath(Cell{0, 0}, Cell{4, 4}, 5, 5, allOpen)
	if len(path) != 8 {
		t.Fatalf("path length = %d, want 8: %v", len(path), path)
	}
	assertValidPath(t, path, Cell{0, 0}, Cell{4, 4}, allOpen)
}

func TestFindShortestPath_StartEqualsGoal(t *testing.T) {
	path := FindShortestPath(Cell{2, 2}, Cell{2, 2}, 5, 5, allOpen)
	if path == nil || len(path) != 0 {
		t.Fatalf("want empty non-nil path, got %#v", path)
	}
}

func TestFindShortestPath_GoalOutOfBounds(t *testing.T) {
	for _, g := range []Cell{{-1, 0}, {5, 0}, {0, 5}, {0, -3}} {
		if path := FindShortestPath(Cell{0, 0}, g, 5, 5, allOpen); path != nil {
			t.Errorf("goal %v: want nil, got %v", g, path)
		}
	}
}

func TestFindShortestPath_WalledOffGoal(t *testing.T) {
	m := ParseTileRows(
		".....",
		".###.",
		".#.#.",
		".###.",
		".....",
	)
	path := FindShortestPath(Cell{0, 0}, Cell{2, 2}, m.Cols, m.Rows, PassabilityFor(m, true))
	if path != nil {
		t.Fatalf("goal inside rock ring should be unreachable, got %v", path)
	}
}

func TestFindShortestPath_StartNeverTested(t *testing.T) {
	// The agent may stand on a cell the policy rejects (a box it pushed).
	m := ParseTileRows("m..")
	path := FindShortestPath(Cell{0, 0}, Cell{2, 0}, m.Cols, m.Rows, PassabilityFor(m, false))
	if len(path) != 2 {
		t.Fatalf("path = %v, want two steps", path)
	}
}

func TestFindShortestPath_DeterministicTieBreak(t *testing.T) {
	// Left, right, up, down expansion makes the first step toward (1,1)
	// from (0,0) go right before down.
	path := FindShortestPath(Cell{0, 0}, Cell{1, 1}, 2, 2, allOpen)
	want := []Cell{{1, 0}, {1, 1}}
	if len(path) != 2 || path[0] != want[0] || path[1] != want[1] {
		t.Fatalf("path = %v, want %v", path, want)
	}
}

func TestFindShortestPath_MetalBoxPolicy(t *testing.T) {
	m := ParseTileRows(
		"..m..",
		"#####",
	)
	start, goal := Cell{0, 0}, Cell{4, 0}
	if p := FindShortestPath(start, goal, m.Cols, m.Rows, PassabilityFor(m, false)); p != nil {
		t.Fatalf("metal forbidden: want nil, got %v", p)
	}
	p := FindShortestPath(start, goal, m.Cols, m.Rows, PassabilityFor(m, true))
	if len(p) != 4 {
		t.Fatalf("metal allowed: path = %v, want 4 steps", p)
	}
}

func TestFindShortestPath_WoodIsPassable(t *testing.T) {
	m := ParseTileRows(
		".w.",
		"###",
	)
	p := FindShortestPath(Cell{0, 0}, Cell{2, 0}, m.Cols, m.Rows, PassabilityFor(m, false))
	if len(p) != 2 || p[0] != (Cell{1, 0}) {
		t.Fatalf("path = %v, want through the wooden box", p)
	}
}

func TestFindShortestPath_MatchesRelaxation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	classes := []TileClass{TileEmpty, TileEmpty, TileEmpty, TileIndestructibleBox, TileDestructibleBox, TileMetalBox}
	for trial := 0; trial < 40; trial++ {
		m := NewTileMap(8, 6)
		for i := range m.Tiles {
			m.Tiles[i] = classes[rng.Intn(len(classes))]
		}
		start := Cell{rng.Intn(m.Cols), rng.Intn(m.Rows)}
		allowMetal := trial%2 == 0
		pass := PassabilityFor(m, allowMetal)
		dist := relaxDistances(m, start, allowMetal)

		for y := 0; y < m.Rows; y++ {
			for x := 0; x < m.Cols; x++ {
				goal := Cell{x, y}
				path := FindShortestPath(start, goal, m.Cols, m.Rows, pass)
				want, reachable := dist[goal]
				if !reachable {
					if path != nil {
						t.Fatalf("trial %d: %v -> %v should be unreachable, got %v", trial, start, goal, path)
					}
					continue
				}
				if path == nil || len(path) != want {
					t.Fatalf("trial %d: %v -> %v length %d, want %d", trial, start, goal, len(path), want)
				}
				assertValidPath(t, path, start, goal, pass)
			}
		}
	}
}

func TestPassable_Policy(t *testing.T) {
	cases := []struct {
		tc         TileClass
		allowMetal bool
		want       bool
	}{
		{TileEmpty, false, true},
		{TileDestructibleBox, false, true},
		{TileMetalBox, false, false},
		{TileMetalBox, true, true},
		{TileIndestructibleBox, true, false},
	}
	for _, c := range cases {
		if got := Passable(c.tc, c.allowMetal); got != c.want {
			t.Errorf("Passable(%v, %v) = %v, want %v", c.tc, c.allowMetal, got, c.want)
		}
	}
}
