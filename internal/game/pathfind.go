package game

// neighbourOffsets is the expansion order of the 4-connected grid.
// Keeping it fixed keeps searches deterministic.
var neighbourOffsets = [4][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
}

// FindShortestPath runs a breadth-first search from start to goal over a
// cols×rows grid. A neighbour is considered only when it lies in bounds and
// passable accepts it; the start cell itself is never tested.
//
// The returned path excludes start and ends with goal. It is nil when the
// goal cannot be reached, including when it lies off the grid. When start
// equals goal the path is empty.
func FindShortestPath(start, goal Cell, cols, rows int, passable func(Cell) bool) []Cell {
	inBounds := func(c Cell) bool {
		return c.X >= 0 && c.X < cols && c.Y >= 0 && c.Y < rows
	}
	if !inBounds(goal) {
		return nil
	}
	if start == goal {
		return []Cell{}
	}

	// parent doubles as the visited set; the first discovery wins.
	parent := map[Cell]Cell{start: start}
	queue := []Cell{start}

	for head := 0; head < len(queue); head++ {
		node := queue[head]
		if node == goal {
			return buildCellPath(parent, start, goal)
		}
		for _, d := range neighbourOffsets {
			n := node.Add(d[0], d[1])
			if _, seen := parent[n]; seen {
				continue
			}
			if !inBounds(n) || !passable(n) {
				continue
			}
			parent[n] = node
			queue = append(queue, n)
		}
	}
	return nil
}

func buildCellPath(parent map[Cell]Cell, start, goal Cell) []Cell {
	var path []Cell
	for n := goal; n != start; n = parent[n] {
		path = append(path, n)
	}
	// Reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Passable is the agent's passability policy: empty ground and wooden boxes
// are always traversable, metal boxes only when allowMetal is set, anything
// else never.
func Passable(tc TileClass, allowMetal bool) bool {
	switch tc {
	case TileEmpty, TileDestructibleBox:
		return true
	case TileMetalBox:
		return allowMetal
	default:
		return false
	}
}

// PassabilityFor binds the policy to a map. Classification is read at call
// time so destroyed boxes are seen by the next search.
func PassabilityFor(m GridMap, allowMetal bool) func(Cell) bool {
	return func(c Cell) bool {
		return Passable(m.Classify(c.X, c.Y), allowMetal)
	}
}
