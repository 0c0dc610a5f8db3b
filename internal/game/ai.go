package game

import (
	"fmt"
	"math"
)

// Tank is the actuator surface of a tank as seen by its controller.
// Commands latch until replaced: TurnLeft keeps turning until StopTurning.
type Tank interface {
	Position() Vec2
	Angle() float64 // radians, see Forward for the orientation convention

	TurnLeft()
	TurnRight()
	StopTurning()
	Accelerate()
	Decelerate()
	StopMoving()
	Shoot()

	CarriesFlag() bool
	HomeBase() Vec2
}

// ObjectKind tags the entries of a Registry.
type ObjectKind uint8

const (
	ObjectTank ObjectKind = iota
	ObjectBox
	ObjectFlag
	ObjectBase
	ObjectBullet
)

func (k ObjectKind) String() string {
	switch k {
	case ObjectTank:
		return "tank"
	case ObjectBox:
		return "box"
	case ObjectFlag:
		return "flag"
	case ObjectBase:
		return "base"
	case ObjectBullet:
		return "bullet"
	default:
		return "unknown"
	}
}

// Object is anything the arena keeps track of.
type Object interface {
	Kind() ObjectKind
	Position() Vec2
}

// Registry enumerates the live game objects of a round.
type Registry interface {
	Objects() []Object
}

// Env bundles the shared, externally mutated resources an agent reads.
// Log and Clock may be nil; without a clock, log entries are stamped with
// the agent's own Decide count.
type Env struct {
	Map      GridMap
	World    PhysicsWorld
	Registry Registry
	Log      *SimLog
	Clock    func() int
}

// AIState is the position of an agent inside its move cycle.
type AIState uint8

const (
	StateReplan AIState = iota // refresh grid position and search a path
	StateTurn                  // pick a turn direction toward the waypoint
	StateAlign                 // poll heading until within MinAngleDif
	StateCommit                // stop turning and drive forward
)

func (s AIState) String() string {
	switch s {
	case StateReplan:
		return "replan"
	case StateTurn:
		return "turn"
	case StateAlign:
		return "align"
	case StateCommit:
		return "commit"
	default:
		return "unknown"
	}
}

// TurnDir is the rotation an agent commands in StateTurn.
type TurnDir uint8

const (
	TurnLeftDir TurnDir = iota
	TurnRightDir
)

func (d TurnDir) String() string {
	if d == TurnLeftDir {
		return "left"
	}
	return "right"
}

// TurnDirection picks the rotation for a heading difference produced by
// AngleDelta(current, target). The bands are evaluated in order and every
// boundary value (0, ±π) falls through to a right turn.
func TurnDirection(diff float64) TurnDir {
	switch {
	case diff < -math.Pi:
		return TurnLeftDir
	case diff > -math.Pi && diff < 0:
		return TurnRightDir
	case diff > 0 && diff < math.Pi:
		return TurnLeftDir
	default:
		return TurnRightDir
	}
}

// AI drives one tank toward the flag, and back home once it carries it.
// Every Decide call performs exactly one step of the move cycle:
//
//	replan -> turn -> align (zero or more ticks) -> commit -> replan ...
//
// All state lives on the struct so the cycle resumes where it left off.
type AI struct {
	Label string

	tank Tank
	env  Env
	flag Object // cached after the first registry lookup

	state         AIState
	gridPos       Cell
	path          []Cell // remaining waypoints after next
	next          Cell
	allowMetalBox bool
	targetAngle   float64
	diff          float64
	aligning      bool // StopMoving already issued for this waypoint
	lastTurn      TurnDir
	tick          int
}

// NewAI creates a controller for tank. It starts in StateReplan with its
// grid position taken from the tank.
func NewAI(label string, tank Tank, env Env) *AI {
	ai := &AI{
		Label: label,
		tank:  tank,
		env:   env,
		state: StateReplan,
	}
	ai.updateGridPos()
	return ai
}

// Decide is called once per game tick: scan for threats, then advance the
// move cycle by one step.
func (ai *AI) Decide() {
	ai.tick++
	ai.maybeShoot()
	switch ai.state {
	case StateReplan:
		ai.replan()
	case StateTurn:
		ai.turn()
	case StateAlign:
		ai.align()
	case StateCommit:
		ai.commit()
	}
}

func (ai *AI) maybeShoot() {
	if ai.env.World == nil || ai.env.Map == nil {
		return
	}
	if ShouldShoot(ai.tank, ai.env.World, ai.env.Map) {
		ai.tank.Shoot()
		ai.log("threat", "fire", "", 0)
	}
}

func (ai *AI) replan() {
	ai.updateGridPos()
	target, ok := ai.TargetTile()
	var path []Cell
	if ok {
		path = FindShortestPath(ai.gridPos, target, ai.env.Map.Width(), ai.env.Map.Height(),
			PassabilityFor(ai.env.Map, ai.allowMetalBox))
	}
	if len(path) == 0 {
		// Retry next tick with metal boxes allowed; this breaks deadlocks
		// where pushable boxes wall the target off.
		detail := fmt.Sprintf("%v -> %v", ai.gridPos, target)
		if ai.allowMetalBox {
			ai.logVerbose("plan", "no_path", detail, 1)
		} else {
			ai.log("plan", "no_path", detail, 0)
		}
		ai.allowMetalBox = true
		return
	}
	if ai.allowMetalBox {
		ai.log("plan", "metal_box", "forbidden", 0)
	}
	ai.allowMetalBox = false
	ai.next = path[0]
	ai.path = path[1:]
	ai.log("plan", "replan", fmt.Sprintf("%v -> %v via %v", ai.gridPos, target, ai.next), float64(len(path)))
	ai.state = StateTurn
}

func (ai *AI) turn() {
	ai.targetAngle = HeadingTo(ai.tank.Position(), ai.next.Center())
	ai.diff = AngleDelta(ai.tank.Angle(), ai.targetAngle)
	ai.lastTurn = TurnDirection(ai.diff)
	if ai.lastTurn == TurnLeftDir {
		ai.tank.TurnLeft()
	} else {
		ai.tank.TurnRight()
	}
	ai.log("turn", ai.lastTurn.String(), fmt.Sprintf("diff=%.3f", ai.diff), ai.diff)

	ai.aligning = false
	if math.Abs(ai.diff) >= MinAngleDif {
		ai.state = StateAlign
	} else {
		ai.state = StateCommit
	}
}

func (ai *AI) align() {
	if !ai.aligning {
		ai.tank.StopMoving()
		ai.aligning = true
	}
	ai.diff = AngleDelta(ai.tank.Angle(), ai.targetAngle)
	ai.logVerbose("align", "wait", fmt.Sprintf("diff=%.3f", ai.diff), ai.diff)
	if math.Abs(ai.diff) < MinAngleDif {
		ai.state = StateCommit
	}
}

func (ai *AI) commit() {
	ai.tank.StopTurning()
	ai.tank.Accelerate()
	ai.log("align", "commit", ai.next.String(), 0)
	ai.state = StateReplan
}

func (ai *AI) updateGridPos() {
	ai.gridPos = CellOf(ai.tank.Position())
}

// TargetTile is the flag's cell, or the home base cell while carrying the flag.
// It reports false when no flag can be found.
func (ai *AI) TargetTile() (Cell, bool) {
	if ai.tank.CarriesFlag() {
		return CellOf(ai.tank.HomeBase()), true
	}
	flag := ai.findFlag()
	if flag == nil {
		return Cell{}, false
	}
	return CellOf(flag.Position()), true
}

func (ai *AI) findFlag() Object {
	if ai.flag != nil || ai.env.Registry == nil {
		return ai.flag
	}
	for _, obj := range ai.env.Registry.Objects() {
		if obj.Kind() == ObjectFlag {
			ai.flag = obj
			break
		}
	}
	return ai.flag
}

// State returns the step the next Decide call will run.
func (ai *AI) State() AIState { return ai.state }

// GridPos is the cell cached at the last replan.
func (ai *AI) GridPos() Cell { return ai.gridPos }

// NextWaypoint is the cell the agent is currently steering toward.
func (ai *AI) NextWaypoint() Cell { return ai.next }

// Path returns the waypoints remaining after NextWaypoint.
func (ai *AI) Path() []Cell {
	out := make([]Cell, len(ai.path))
	copy(out, ai.path)
	return out
}

// AllowMetalBox reports whether the passability policy currently admits metal boxes.
func (ai *AI) AllowMetalBox() bool { return ai.allowMetalBox }

// HeadingError is the last computed AngleDelta against the waypoint heading.
func (ai *AI) HeadingError() float64 { return ai.diff }

// LastTurn is the direction chosen at the most recent turn step.
func (ai *AI) LastTurn() TurnDir { return ai.lastTurn }

// Tank returns the controlled tank.
func (ai *AI) Tank() Tank { return ai.tank }

// Ticks counts Decide calls.
func (ai *AI) Ticks() int { return ai.tick }

func (ai *AI) now() int {
	if ai.env.Clock != nil {
		return ai.env.Clock()
	}
	return ai.tick
}

func (ai *AI) log(category, key, value string, num float64) {
	if ai.env.Log == nil {
		return
	}
	ai.env.Log.Add(ai.now(), ai.Label, category, key, value, num)
}

func (ai *AI) logVerbose(category, key, value string, num float64) {
	if ai.env.Log == nil {
		return
	}
	ai.env.Log.AddVerbose(ai.now(), ai.Label, category, key, value, num)
}
