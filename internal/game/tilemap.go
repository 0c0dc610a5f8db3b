package game

// TileClass identifies what occupies a grid cell.
type TileClass uint8

const (
	TileEmpty             TileClass = iota // Grass, nothing on it
	TileIndestructibleBox                  // Rock, blocks movement and bullets
	TileDestructibleBox                    // Wooden crate, destroyed by one bullet
	TileMetalBox                           // Heavy metal box, can be pushed
	tileClassCount                         // sentinel
)

func (tc TileClass) String() string {
	switch tc {
	case TileEmpty:
		return "empty"
	case TileIndestructibleBox:
		return "rock"
	case TileDestructibleBox:
		return "wood"
	case TileMetalBox:
		return "metal"
	default:
		return "unknown"
	}
}

// Valid reports whether tc is one of the known classes.
func (tc TileClass) Valid() bool { return tc < tileClassCount }

// IsBox returns true for every class that places a box on the tile.
func (tc TileClass) IsBox() bool { return tc != TileEmpty && tc.Valid() }

// GridMap is the read-only view of the arena the agent plans against.
// Classification must be re-queried on every search; boxes get destroyed.
type GridMap interface {
	Width() int
	Height() int
	Classify(x, y int) TileClass
}

// TileMap is the authoritative per-cell classification of the arena.
type TileMap struct {
	Cols  int
	Rows  int
	Tiles []TileClass // row-major: index = row*Cols + col
}

// NewTileMap creates an empty tile map.
func NewTileMap(cols, rows int) *TileMap {
	return &TileMap{Cols: cols, Rows: rows, Tiles: make([]TileClass, cols*rows)}
}

// TileMapFromRows builds a map from rows of tile classes. Short rows are
// padded with TileEmpty.
func TileMapFromRows(rows [][]TileClass) *TileMap {
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	tm := NewTileMap(cols, len(rows))
	for y, r := range rows {
		for x, c := range r {
			tm.Set(x, y, c)
		}
	}
	return tm
}

// inBounds returns true if (col, row) is within the tile map.
func (tm *TileMap) inBounds(col, row int) bool {
	return col >= 0 && col < tm.Cols && row >= 0 && row < tm.Rows
}

func (tm *TileMap) Width() int  { return tm.Cols }
func (tm *TileMap) Height() int { return tm.Rows }

// InBounds reports whether the cell lies on the map.
func (tm *TileMap) InBounds(c Cell) bool { return tm.inBounds(c.X, c.Y) }

// Classify returns the class at (col, row). Out-of-bounds cells read as rock
// so that nothing treats the outside of the arena as open ground.
func (tm *TileMap) Classify(col, row int) TileClass {
	if !tm.inBounds(col, row) {
		return TileIndestructibleBox
	}
	return tm.Tiles[row*tm.Cols+col]
}

// Set places a class on a tile. Invalid classes and out-of-bounds cells are ignored.
func (tm *TileMap) Set(col, row int, tc TileClass) {
	if !tm.inBounds(col, row) || !tc.Valid() {
		return
	}
	tm.Tiles[row*tm.Cols+col] = tc
}

// Clear empties a tile after its box has been destroyed.
func (tm *TileMap) Clear(col, row int) {
	tm.Set(col, row, TileEmpty)
}

// Boxes returns every cell holding a box, in row-major order.
func (tm *TileMap) Boxes() []Cell {
	var out []Cell
	for row := 0; row < tm.Rows; row++ {
		for col := 0; col < tm.Cols; col++ {
			if tm.Tiles[row*tm.Cols+col].IsBox() {
				out = append(out, Cell{col, row})
			}
		}
	}
	return out
}

// Count returns how many tiles carry the given class.
func (tm *TileMap) Count(tc TileClass) int {
	n := 0
	for _, t := range tm.Tiles {
		if t == tc {
			n++
		}
	}
	return n
}

// Clone returns an independent copy, used to reset a round.
func (tm *TileMap) Clone() *TileMap {
	out := &TileMap{Cols: tm.Cols, Rows: tm.Rows, Tiles: make([]TileClass, len(tm.Tiles))}
	copy(out.Tiles, tm.Tiles)
	return out
}
