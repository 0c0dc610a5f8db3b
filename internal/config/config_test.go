package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Garsondee/tank-ctf/internal/game"
)

func TestBuiltinMaps_AllValid(t *testing.T) {
	names := BuiltinMapNames()
	if len(names) != 3 {
		t.Fatalf("builtin maps = %v, want 3", names)
	}
	for _, n := range names {
		md, err := BuiltinMap(n)
		if err != nil {
			t.Fatalf("%s: %v", n, err)
		}
		if md.Name != n {
			t.Errorf("%s: name field %q", n, md.Name)
		}
		tm := md.TileMap()
		for i, sp := range md.Starts() {
			c := game.CellOf(sp.Pos)
			if tm.Classify(c.X, c.Y) != game.TileEmpty {
				t.Errorf("%s: start %d on %v", n, i, tm.Classify(c.X, c.Y))
			}
			// Every base must be able to reach the flag with metal boxes allowed.
			goal := game.CellOf(md.Flag())
			if game.FindShortestPath(c, goal, tm.Cols, tm.Rows, game.PassabilityFor(tm, true)) == nil {
				t.Errorf("%s: start %d cannot reach the flag", n, i)
			}
		}
	}
}

func TestBuiltinMap_Unknown(t *testing.T) {
	_, err := BuiltinMap("nope")
	if err == nil || !strings.Contains(err.Error(), "map0") {
		t.Fatalf("err = %v, want list of available maps", err)
	}
}

func TestMapDef_TileCodes(t *testing.T) {
	md, err := ParseMap([]byte(`
name: tiny
width: 4
height: 1
boxes:
  - [0, 1, 2, 3]
start_positions:
  - [0.5, 0.5, 90]
flag_position: [3.5, 0.5]
`))
	if err != nil {
		t.Fatal(err)
	}
	tm := md.TileMap()
	want := []game.TileClass{game.TileEmpty, game.TileIndestructibleBox, game.TileDestructibleBox, game.TileMetalBox}
	for x, w := range want {
		if got := tm.Classify(x, 0); got != w {
			t.Errorf("tile %d = %v, want %v", x, got, w)
		}
	}
	if a := md.Starts()[0].Angle; math.Abs(a-math.Pi/2) > 1e-12 {
		t.Fatalf("angle = %f, want π/2", a)
	}
}

func TestParseMap_JSON(t *testing.T) {
	md, err := ParseMap([]byte(`{"name":"j","width":2,"height":1,"boxes":[[0,0]],
		"start_positions":[[0.5,0.5,0]],"flag_position":[1.5,0.5]}`))
	if err != nil {
		t.Fatal(err)
	}
	if !md.Flag().Eq(game.V(1.5, 0.5), 0) {
		t.Fatalf("flag = %+v", md.Flag())
	}
}

func TestParseMap_Invalid(t *testing.T) {
	cases := map[string]string{
		"row count":  "name: x\nwidth: 2\nheight: 2\nboxes: [[0,0]]\nstart_positions: [[0.5,0.5,0]]\nflag_position: [1.5,0.5]\n",
		"row width":  "name: x\nwidth: 2\nheight: 1\nboxes: [[0]]\nstart_positions: [[0.5,0.5,0]]\nflag_position: [1.5,0.5]\n",
		"tile code":  "name: x\nwidth: 2\nheight: 1\nboxes: [[0,7]]\nstart_positions: [[0.5,0.5,0]]\nflag_position: [1.5,0.5]\n",
		"no starts":  "name: x\nwidth: 2\nheight: 1\nboxes: [[0,0]]\nstart_positions: []\nflag_position: [1.5,0.5]\n",
		"start off":  "name: x\nwidth: 2\nheight: 1\nboxes: [[0,0]]\nstart_positions: [[5,0.5,0]]\nflag_position: [1.5,0.5]\n",
		"start box":  "name: x\nwidth: 2\nheight: 1\nboxes: [[1,0]]\nstart_positions: [[0.5,0.5,0]]\nflag_position: [1.5,0.5]\n",
		"flag off":   "name: x\nwidth: 2\nheight: 1\nboxes: [[0,0]]\nstart_positions: [[0.5,0.5,0]]\nflag_position: [1.5,3]\n",
		"short pose": "name: x\nwidth: 2\nheight: 1\nboxes: [[0,0]]\nstart_positions: [[0.5,0.5]]\nflag_position: [1.5,0.5]\n",
		"not yaml":   "name: [x\n",
	}
	for name, src := range cases {
		if _, err := ParseMap([]byte(src)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestResolveMap_FileFallback(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "arena.yaml")
	src := "name: arena\nwidth: 2\nheight: 1\nboxes: [[0,0]]\nstart_positions: [[0.5,0.5,0]]\nflag_position: [1.5,0.5]\n"
	if err := os.WriteFile(p, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	md, err := ResolveMap(p)
	if err != nil || md.Name != "arena" {
		t.Fatalf("ResolveMap = %v, %v", md, err)
	}
	if _, err := ResolveMap(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for a missing file")
	}
	if md, err := ResolveMap("map1"); err != nil || md.Width != 15 {
		t.Fatalf("builtin map1: %v %v", md, err)
	}
}

func TestLoadSettings_DefaultsAndOverrides(t *testing.T) {
	s, err := LoadSettings("")
	if err != nil {
		t.Fatal(err)
	}
	if s.Framerate != 50 || s.Win.Mode != WinFirstTo || s.Win.Limit != 5 {
		t.Fatalf("defaults = %+v", s)
	}

	p := filepath.Join(t.TempDir(), "match.yaml")
	if err := os.WriteFile(p, []byte("win:\n  mode: time\nhumans: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err = LoadSettings(p)
	if err != nil {
		t.Fatal(err)
	}
	if s.Win.Mode != WinTime || s.Win.Limit != 10 || s.Humans != 1 || s.Map != "map0" {
		t.Fatalf("loaded = %+v", s)
	}
	if s.Win.String() != "10 second time limit" {
		t.Fatalf("String = %q", s.Win.String())
	}
}

func TestSettings_Validate(t *testing.T) {
	bad := []func(*Settings){
		func(s *Settings) { s.Framerate = 0 },
		func(s *Settings) { s.Win.Mode = "sudden-death" },
		func(s *Settings) { s.Win.Limit = -1 },
		func(s *Settings) { s.Humans = 3 },
		func(s *Settings) { s.LogLevel = "loud" },
	}
	for i, mutate := range bad {
		s := DefaultSettings()
		mutate(&s)
		if err := s.Validate(); err == nil {
			t.Errorf("case %d: expected an error", i)
		}
	}
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestOverrides_Apply(t *testing.T) {
	base := DefaultSettings()

	s := Overrides{Humans: -1}.Apply(base)
	if s != base {
		t.Fatalf("empty overrides changed settings: %+v", s)
	}

	s = Overrides{Map: "map2", Humans: 0, Win: "best-of", LogLevel: "debug"}.Apply(base)
	if s.Map != "map2" || s.Humans != 0 || s.LogLevel != "debug" {
		t.Fatalf("applied = %+v", s)
	}
	if s.Win != (WinCondition{Mode: WinBestOf, Limit: 5}) {
		t.Fatalf("win = %+v", s.Win)
	}

	s = Overrides{Humans: 2, Win: "time", Limit: 30, Framerate: 60}.Apply(base)
	if s.Humans != 2 || s.Win != (WinCondition{Mode: WinTime, Limit: 30}) || s.Framerate != 60 {
		t.Fatalf("applied = %+v", s)
	}
}

func TestOverrides_LoadValidates(t *testing.T) {
	if _, err := (Overrides{Humans: -1, Win: "sudden-death"}).Load(); err == nil {
		t.Fatal("expected unknown win mode error")
	}
	s, err := Overrides{Humans: 1, Limit: 3}.Load()
	if err != nil {
		t.Fatal(err)
	}
	if s.Humans != 1 || s.Win.Limit != 3 {
		t.Fatalf("loaded = %+v", s)
	}
}
