// Package config loads arena maps and match settings.
package config

import (
	"embed"
	"fmt"
	"math"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/tank-ctf/internal/game"
)

//go:embed maps/*.yaml maps/*.json
var builtinMaps embed.FS

// Tile codes used in map files.
const (
	codeEmpty = 0
	codeRock  = 1
	codeWood  = 2
	codeMetal = 3
)

// MapDef is an arena definition as stored on disk. JSON files are read
// through the same decoder, JSON being a subset of YAML.
type MapDef struct {
	Name           string      `yaml:"name"`
	Width          int         `yaml:"width"`
	Height         int         `yaml:"height"`
	Boxes          [][]int     `yaml:"boxes"`
	StartPositions [][]float64 `yaml:"start_positions"` // x, y, angle in degrees
	FlagPosition   []float64   `yaml:"flag_position"`
}

// StartPose is a tank spawn point with its heading in radians.
type StartPose struct {
	Pos   game.Vec2
	Angle float64
}

func loadYAML(b []byte, out any) error {
	return yaml.Unmarshal(b, out)
}

// ParseMap decodes and validates a map definition.
func ParseMap(b []byte) (*MapDef, error) {
	var md MapDef
	if err := loadYAML(b, &md); err != nil {
		return nil, fmt.Errorf("decode map: %w", err)
	}
	if err := md.Validate(); err != nil {
		return nil, err
	}
	return &md, nil
}

// LoadMap reads a map file from disk.
func LoadMap(p string) (*MapDef, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read map: %w", err)
	}
	md, err := ParseMap(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return md, nil
}

// BuiltinMap returns one of the maps shipped with the binary, by name
// ("map0", "map1", ...).
func BuiltinMap(name string) (*MapDef, error) {
	for _, ext := range []string{".yaml", ".json"} {
		b, err := builtinMaps.ReadFile(path.Join("maps", name+ext))
		if err != nil {
			continue
		}
		return ParseMap(b)
	}
	return nil, fmt.Errorf("unknown map %q (available: %s)", name, strings.Join(BuiltinMapNames(), ", "))
}

// BuiltinMapNames lists the embedded maps in name order.
func BuiltinMapNames() []string {
	entries, err := builtinMaps.ReadDir("maps")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		n := e.Name()
		names = append(names, strings.TrimSuffix(n, path.Ext(n)))
	}
	sort.Strings(names)
	return names
}

// ResolveMap treats ref as a builtin map name first and a file path second.
func ResolveMap(ref string) (*MapDef, error) {
	if md, err := BuiltinMap(ref); err == nil {
		return md, nil
	}
	if _, err := os.Stat(ref); err != nil {
		return nil, fmt.Errorf("map %q is neither builtin nor a readable file", ref)
	}
	return LoadMap(ref)
}

// Validate checks the definition is self-consistent.
func (md *MapDef) Validate() error {
	if md.Width <= 0 || md.Height <= 0 {
		return fmt.Errorf("invalid map %q: size %dx%d", md.Name, md.Width, md.Height)
	}
	if len(md.Boxes) != md.Height {
		return fmt.Errorf("invalid map %q: %d box rows, want %d", md.Name, len(md.Boxes), md.Height)
	}
	for y, row := range md.Boxes {
		if len(row) != md.Width {
			return fmt.Errorf("invalid map %q: row %d has %d cells, want %d", md.Name, y, len(row), md.Width)
		}
		for x, code := range row {
			if code < codeEmpty || code > codeMetal {
				return fmt.Errorf("invalid map %q: unknown tile code %d at (%d,%d)", md.Name, code, x, y)
			}
		}
	}
	if len(md.StartPositions) == 0 {
		return fmt.Errorf("invalid map %q: no start positions", md.Name)
	}
	for i, sp := range md.StartPositions {
		if len(sp) != 3 {
			return fmt.Errorf("invalid map %q: start position %d needs [x, y, angle]", md.Name, i)
		}
		if !md.inside(sp[0], sp[1]) {
			return fmt.Errorf("invalid map %q: start position %d (%.1f,%.1f) is off the map", md.Name, i, sp[0], sp[1])
		}
		if md.Boxes[int(sp[1])][int(sp[0])] != codeEmpty {
			return fmt.Errorf("invalid map %q: start position %d is on a box", md.Name, i)
		}
	}
	if len(md.FlagPosition) != 2 {
		return fmt.Errorf("invalid map %q: flag position needs [x, y]", md.Name)
	}
	if !md.inside(md.FlagPosition[0], md.FlagPosition[1]) {
		return fmt.Errorf("invalid map %q: flag (%.1f,%.1f) is off the map", md.Name, md.FlagPosition[0], md.FlagPosition[1])
	}
	return nil
}

func (md *MapDef) inside(x, y float64) bool {
	return x >= 0 && y >= 0 && x < float64(md.Width) && y < float64(md.Height)
}

// TileMap builds a fresh tile classification for a round.
func (md *MapDef) TileMap() *game.TileMap {
	tm := game.NewTileMap(md.Width, md.Height)
	for y, row := range md.Boxes {
		for x, code := range row {
			tm.Set(x, y, tileClass(code))
		}
	}
	return tm
}

func tileClass(code int) game.TileClass {
	switch code {
	case codeRock:
		return game.TileIndestructibleBox
	case codeWood:
		return game.TileDestructibleBox
	case codeMetal:
		return game.TileMetalBox
	default:
		return game.TileEmpty
	}
}

// Starts returns the spawn poses, headings converted to radians.
func (md *MapDef) Starts() []StartPose {
	out := make([]StartPose, len(md.StartPositions))
	for i, sp := range md.StartPositions {
		out[i] = StartPose{Pos: game.V(sp[0], sp[1]), Angle: sp[2] * math.Pi / 180}
	}
	return out
}

// Flag returns the flag's starting position.
func (md *MapDef) Flag() game.Vec2 {
	return game.V(md.FlagPosition[0], md.FlagPosition[1])
}
