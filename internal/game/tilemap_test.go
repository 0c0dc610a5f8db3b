package game

import "testing"

func TestNewTileMap_AllEmpty(t *testing.T) {
	tm := NewTileMap(10, 8)
	if tm.Width() != 10 || tm.Height() != 8 {
		t.Fatalf("expected 10x8, got %dx%d", tm.Width(), tm.Height())
	}
	if n := tm.Count(TileEmpty); n != 80 {
		t.Fatalf("empty tiles = %d, want 80", n)
	}
	if len(tm.Boxes()) != 0 {
		t.Fatal("fresh map should have no boxes")
	}
}

func TestTileMap_OutOfBoundsIsRock(t *testing.T) {
	tm := NewTileMap(3, 3)
	for _, c := range []Cell{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		if got := tm.Classify(c.X, c.Y); got != TileIndestructibleBox {
			t.Errorf("Classify%v = %v, want rock", c, got)
		}
	}
}

func TestTileMap_SetAndClear(t *testing.T) {
	tm := NewTileMap(4, 4)
	tm.Set(1, 2, TileDestructibleBox)
	tm.Set(9, 9, TileMetalBox)     // ignored
	tm.Set(0, 0, tileClassCount+1) // ignored
	if got := tm.Classify(1, 2); got != TileDestructibleBox {
		t.Fatalf("Classify(1,2) = %v, want wood", got)
	}
	if got := tm.Classify(0, 0); got != TileEmpty {
		t.Fatalf("invalid class was stored: %v", got)
	}
	tm.Clear(1, 2)
	if got := tm.Classify(1, 2); got != TileEmpty {
		t.Fatalf("after Clear got %v", got)
	}
}

func TestTileMap_CloneIsIndependent(t *testing.T) {
	tm := ParseTileRows(
		"#w.",
		".m.",
	)
	cp := tm.Clone()
	cp.Clear(1, 0)
	if tm.Classify(1, 0) != TileDestructibleBox {
		t.Fatal("clearing the clone changed the original")
	}
	if got := tm.Boxes(); len(got) != 3 || got[0] != (Cell{0, 0}) || got[2] != (Cell{1, 1}) {
		t.Fatalf("Boxes = %v", got)
	}
}

func TestTileClass_Strings(t *testing.T) {
	want := map[TileClass]string{
		TileEmpty:             "empty",
		TileIndestructibleBox: "rock",
		TileDestructibleBox:   "wood",
		TileMetalBox:          "metal",
	}
	for tc, s := range want {
		if tc.String() != s {
			t.Errorf("%d.String() = %q, want %q", tc, tc.String(), s)
		}
		if tc.IsBox() == (tc == TileEmpty) {
			t.Errorf("%v.IsBox() = %v", tc, tc.IsBox())
		}
	}
}

func TestParseTileRows_PadsShortRows(t *testing.T) {
	tm := ParseTileRows("..#", ".")
	if tm.Width() != 3 || tm.Height() != 2 {
		t.Fatalf("size %dx%d, want 3x2", tm.Width(), tm.Height())
	}
	if tm.Classify(2, 1) != TileEmpty {
		t.Fatal("padded cell should be empty")
	}
}
