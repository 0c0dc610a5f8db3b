package game

import (
	"fmt"
	"strings"
)

const (
	defaultKinematicTurnRate = 0.04 // radians per tick, under MinAngleDif
	defaultKinematicSpeed    = 0.05 // tiles per tick
	kinematicHalfSize        = 0.3
	flagGrabDistance         = 0.5
)

// KinematicTank is a deterministic stand-in for a physics tank. Commands
// latch like the real actuator; Step applies one tick of motion. It records
// every command it receives so tests can assert on the exact sequence.
type KinematicTank struct {
	Label    string
	Pos      Vec2
	Heading  float64
	Home     Vec2
	HasFlag  bool
	TurnRate float64
	Speed    float64

	Shots    int
	Commands []string

	turning int // -1 left, +1 right
	moving  int // -1 reverse, +1 forward
	fire    bool
}

// NewKinematicTank places a tank whose home base is its start position.
func NewKinematicTank(label string, x, y, heading float64) *KinematicTank {
	return &KinematicTank{
		Label:    label,
		Pos:      V(x, y),
		Heading:  heading,
		Home:     V(x, y),
		TurnRate: defaultKinematicTurnRate,
		Speed:    defaultKinematicSpeed,
	}
}

func (kt *KinematicTank) Kind() ObjectKind  { return ObjectTank }
func (kt *KinematicTank) Position() Vec2    { return kt.Pos }
func (kt *KinematicTank) Angle() float64    { return kt.Heading }
func (kt *KinematicTank) CarriesFlag() bool { return kt.HasFlag }
func (kt *KinematicTank) HomeBase() Vec2    { return kt.Home }

func (kt *KinematicTank) TurnLeft()    { kt.turning = -1; kt.record("turn_left") }
func (kt *KinematicTank) TurnRight()   { kt.turning = 1; kt.record("turn_right") }
func (kt *KinematicTank) StopTurning() { kt.turning = 0; kt.record("stop_turning") }
func (kt *KinematicTank) Accelerate()  { kt.moving = 1; kt.record("accelerate") }
func (kt *KinematicTank) Decelerate()  { kt.moving = -1; kt.record("decelerate") }
func (kt *KinematicTank) StopMoving()  { kt.moving = 0; kt.record("stop_moving") }
func (kt *KinematicTank) Shoot()       { kt.fire = true; kt.Shots++; kt.record("shoot") }

func (kt *KinematicTank) record(cmd string) {
	kt.Commands = append(kt.Commands, cmd)
}

// Turning returns -1, 0 or +1 for left, none, right.
func (kt *KinematicTank) Turning() int { return kt.turning }

// Moving returns -1, 0 or +1 for reverse, stopped, forward.
func (kt *KinematicTank) Moving() int { return kt.moving }

// Step applies one tick of rotation and translation. Moves into rock,
// wooden boxes or off the map are refused. Metal boxes are shoved out of
// the way, which the harness models by clearing the tile.
func (kt *KinematicTank) Step(m *TileMap) {
	kt.Heading += float64(kt.turning) * kt.TurnRate
	if kt.moving == 0 {
		return
	}
	next := kt.Pos.Add(Forward(kt.Heading).Scale(kt.Speed * float64(kt.moving)))
	c := CellOf(next)
	if next.X < 0 || next.Y < 0 || !m.InBounds(c) {
		return
	}
	switch m.Classify(c.X, c.Y) {
	case TileIndestructibleBox, TileDestructibleBox:
		return
	case TileMetalBox:
		m.Clear(c.X, c.Y)
	}
	kt.Pos = next
}

// SimFlag is the flag used by TestSim.
type SimFlag struct {
	Pos     Vec2
	Start   Vec2 // where the flag returns after a capture
	Carrier *KinematicTank
}

func (f *SimFlag) Kind() ObjectKind { return ObjectFlag }
func (f *SimFlag) Position() Vec2   { return f.Pos }

// TestSim is a headless simulation harness used by tests. It mirrors the
// arena tick order (agents decide, flag logic, motion) with kinematic tanks
// and tile raycasting, so it needs neither box2d nor ebiten.
type TestSim struct {
	Map      *TileMap
	Tanks    []*KinematicTank
	AIs      []*AI
	Flag     *SimFlag
	SimLog   *SimLog
	Captures map[string]int

	world *TileRaycaster
	tick  int

	aiLabels map[string]bool
	turnRate float64
	speed    float64
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // map, flag, verbose, tuning: applied first
	simOptTank                       // add tanks
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithMap sets the arena from ASCII rows: '.' empty, '#' rock, 'w' wood, 'm' metal.
func WithMap(rows ...string) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Map = ParseTileRows(rows...)
	}}
}

// WithTileMap uses an existing tile map.
func WithTileMap(tm *TileMap) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Map = tm
	}}
}

// WithFlag places the flag.
func WithFlag(x, y float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Flag = &SimFlag{Pos: V(x, y), Start: V(x, y)}
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithKinematics overrides the per-tick turn rate and speed of every tank.
func WithKinematics(turnRate, speed float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.turnRate = turnRate
		ts.speed = speed
	}}
}

// WithTank adds an uncontrolled tank, e.g. a target for the threat scanner.
func WithTank(label string, x, y, heading float64) SimOption {
	return SimOption{simOptTank, func(ts *TestSim) {
		ts.addTank(label, x, y, heading)
	}}
}

// WithAITank adds a tank driven by an AI controller.
func WithAITank(label string, x, y, heading float64) SimOption {
	return SimOption{simOptTank, func(ts *TestSim) {
		ts.addTank(label, x, y, heading)
		ts.aiLabels[label] = true
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (map, flag, verbose, kinematics)
//  2. Tanks
//  3. Controllers, which see every tank through the shared raycaster
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		Map:      NewTileMap(5, 5),
		SimLog:   NewSimLog(false),
		Captures: map[string]int{},
		aiLabels: map[string]bool{},
		turnRate: defaultKinematicTurnRate,
		speed:    defaultKinematicSpeed,
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.world = &TileRaycaster{Map: ts.Map, Tanks: ts.tankPositions, HalfSize: kinematicHalfSize}
	for _, o := range opts {
		if o.kind == simOptTank {
			o.fn(ts)
		}
	}
	env := Env{
		Map:      ts.Map,
		World:    ts.world,
		Registry: ts,
		Log:      ts.SimLog,
		Clock:    ts.CurrentTick,
	}
	for _, kt := range ts.Tanks {
		if ts.aiLabels[kt.Label] {
			ts.AIs = append(ts.AIs, NewAI(kt.Label, kt, env))
		}
	}
	return ts
}

func (ts *TestSim) addTank(label string, x, y, heading float64) {
	kt := NewKinematicTank(label, x, y, heading)
	kt.TurnRate = ts.turnRate
	kt.Speed = ts.speed
	ts.Tanks = append(ts.Tanks, kt)
}

func (ts *TestSim) tankPositions() []Vec2 {
	out := make([]Vec2, len(ts.Tanks))
	for i, kt := range ts.Tanks {
		out[i] = kt.Pos
	}
	return out
}

// Objects implements Registry.
func (ts *TestSim) Objects() []Object {
	var out []Object
	if ts.Flag != nil {
		out = append(out, ts.Flag)
	}
	for _, kt := range ts.Tanks {
		out = append(out, kt)
	}
	return out
}

// World returns the raycaster the agents query.
func (ts *TestSim) World() PhysicsWorld { return ts.world }

// Tank returns the tank with the given label, or nil.
func (ts *TestSim) Tank(label string) *KinematicTank {
	for _, kt := range ts.Tanks {
		if kt.Label == label {
			return kt
		}
	}
	return nil
}

// Agent returns the controller with the given label, or nil.
func (ts *TestSim) Agent(label string) *AI {
	for _, ai := range ts.AIs {
		if ai.Label == label {
			return ai
		}
	}
	return nil
}

// RunTicks advances the simulation n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.runOneTick()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.runOneTick()
		if predicate(ts) {
			return ts.tick
		}
	}
	return -1
}

// runOneTick mirrors arena.Match.Step for the headless harness.
func (ts *TestSim) runOneTick() {
	ts.tick++

	// 1. DECIDE
	for _, ai := range ts.AIs {
		ai.Decide()
	}

	// 2. FLAG
	for _, kt := range ts.Tanks {
		ts.tryCapture(kt)
		ts.tryGrabFlag(kt)
	}

	// 3. SHOTS are hitscan: a wooden box in line of fire is gone at once.
	for _, kt := range ts.Tanks {
		if !kt.fire {
			continue
		}
		kt.fire = false
		from, to := ThreatRay(kt.Pos, kt.Heading, ts.Map)
		hit := ts.world.RaycastFirst(from, to)
		if hit.Kind == HitBox && hit.Destructible {
			c := CellOf(hit.Point.Add(Forward(kt.Heading).Scale(1e-6)))
			ts.Map.Clear(c.X, c.Y)
			ts.SimLog.Add(ts.tick, kt.Label, "round", "box_destroyed", c.String(), 0)
		}
	}

	// 4. MOVE
	for _, kt := range ts.Tanks {
		kt.Step(ts.Map)
	}
	if ts.Flag != nil && ts.Flag.Carrier != nil {
		ts.Flag.Pos = ts.Flag.Carrier.Pos
	}
}

func (ts *TestSim) tryGrabFlag(kt *KinematicTank) {
	if ts.Flag == nil || ts.Flag.Carrier != nil {
		return
	}
	if kt.Pos.Dist(ts.Flag.Pos) < flagGrabDistance {
		ts.Flag.Carrier = kt
		kt.HasFlag = true
		ts.SimLog.Add(ts.tick, kt.Label, "round", "flag_grab", fmt.Sprintf("(%.2f,%.2f)", kt.Pos.X, kt.Pos.Y), 0)
	}
}

// tryCapture counts a capture when the carrier is back in its home cell.
// The kinematic tank steers by cells, so the check is cell based.
func (ts *TestSim) tryCapture(kt *KinematicTank) {
	if !kt.HasFlag || CellOf(kt.Pos) != CellOf(kt.Home) {
		return
	}
	ts.Captures[kt.Label]++
	ts.SimLog.Add(ts.tick, kt.Label, "round", "capture", "", float64(ts.Captures[kt.Label]))
	kt.HasFlag = false
	ts.Flag.Carrier = nil
	ts.Flag.Pos = ts.Flag.Start
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.tick
}

// ParseTileRows builds a tile map from ASCII rows:
// '.' empty, '#' rock, 'w' wood, 'm' metal. Unknown characters read as empty.
func ParseTileRows(rows ...string) *TileMap {
	grid := make([][]TileClass, len(rows))
	for y, r := range rows {
		r = strings.TrimSpace(r)
		grid[y] = make([]TileClass, len(r))
		for x, ch := range r {
			switch ch {
			case '#':
				grid[y][x] = TileIndestructibleBox
			case 'w':
				grid[y][x] = TileDestructibleBox
			case 'm':
				grid[y][x] = TileMetalBox
			}
		}
	}
	return TileMapFromRows(grid)
}
