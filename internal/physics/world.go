// Package physics wraps a box2d world holding the arena's tanks, boxes and
// bullets. Units are tiles; the vertical axis grows downward.
package physics

import (
	"github.com/ByteArena/box2d"

	"github.com/Garsondee/tank-ctf/internal/game"
)

// Solver iterations; the box2d testbed defaults.
const (
	velocityIterations = 8
	positionIterations = 3
)

// BodyKind tags the user data of every body in the world.
type BodyKind uint8

const (
	KindBorder BodyKind = iota
	KindTank
	KindBox
	KindBullet
)

func (k BodyKind) String() string {
	switch k {
	case KindBorder:
		return "border"
	case KindTank:
		return "tank"
	case KindBox:
		return "box"
	case KindBullet:
		return "bullet"
	default:
		return "unknown"
	}
}

// Descriptor is attached to each body as user data so that contacts and ray
// hits can be resolved without type switches on engine objects.
type Descriptor struct {
	Kind   BodyKind
	Tank   *Tank
	Box    *Box
	Bullet *Bullet
}

// World is the physics side of one round.
type World struct {
	b2       *box2d.B2World
	listener *contactListener
	width    float64
	height   float64

	tanks   []*Tank
	boxes   []*Box
	bullets []*Bullet
	doomed  []*box2d.B2Body
	fired   int
}

// NewWorld creates a zero-gravity world enclosed by a border loop.
func NewWorld(width, height int) *World {
	gravity := box2d.MakeB2Vec2(0.0, 0.0) // seen from the top
	b2 := box2d.MakeB2World(gravity)
	w := &World{
		b2:       &b2,
		listener: &contactListener{},
		width:    float64(width),
		height:   float64(height),
	}
	w.b2.SetContactListener(w.listener)
	w.addBorder()
	return w
}

func (w *World) addBorder() {
	bodydef := box2d.MakeB2BodyDef()
	bodydef.Type = box2d.B2BodyType.B2_staticBody
	body := w.b2.CreateBody(&bodydef)

	vertices := []box2d.B2Vec2{
		box2d.MakeB2Vec2(0, 0),
		box2d.MakeB2Vec2(w.width, 0),
		box2d.MakeB2Vec2(w.width, w.height),
		box2d.MakeB2Vec2(0, w.height),
	}
	shape := box2d.MakeB2ChainShape()
	shape.CreateLoop(vertices, len(vertices))
	body.CreateFixture(&shape, 0.0)
	body.SetUserData(&Descriptor{Kind: KindBorder})
}

// Size returns the arena extent in tiles.
func (w *World) Size() (float64, float64) { return w.width, w.height }

// Tanks returns the live tanks.
func (w *World) Tanks() []*Tank { return w.tanks }

// Boxes returns the boxes still standing.
func (w *World) Boxes() []*Box { return w.boxes }

// Bullets returns the bullets in flight.
func (w *World) Bullets() []*Bullet { return w.bullets }

// Fired counts every bullet created in this world.
func (w *World) Fired() int { return w.fired }

// Step advances the simulation by dt seconds, ages bullets and cooldowns,
// and returns the contacts that began during the step. Bodies removed
// during the previous call are destroyed first, outside the solver.
func (w *World) Step(dt float64) []Contact {
	w.flush()
	for _, t := range w.tanks {
		if t.cooldown > 0 {
			t.cooldown--
		}
	}
	var expired []*Bullet
	for _, b := range w.bullets {
		b.ttl--
		if b.ttl <= 0 {
			expired = append(expired, b)
		}
	}
	for _, b := range expired {
		w.RemoveBullet(b)
	}
	w.flush()

	w.b2.Step(dt, velocityIterations, positionIterations)
	return w.listener.pop()
}

// flush destroys bodies queued by the Remove calls.
func (w *World) flush() {
	for _, body := range w.doomed {
		w.b2.DestroyBody(body)
	}
	w.doomed = w.doomed[:0]
}

func (w *World) destroyLater(body *box2d.B2Body) {
	body.SetUserData(nil)
	w.doomed = append(w.doomed, body)
}

// RemoveTank takes a tank out of the world. Safe to call twice.
func (w *World) RemoveTank(t *Tank) {
	if t.removed {
		return
	}
	t.removed = true
	w.tanks = removeItem(w.tanks, t)
	w.destroyLater(t.body)
}

// RemoveBox takes a box out of the world. Safe to call twice.
func (w *World) RemoveBox(b *Box) {
	if b.removed {
		return
	}
	b.removed = true
	w.boxes = removeItem(w.boxes, b)
	w.destroyLater(b.body)
}

// RemoveBullet takes a bullet out of the world. Safe to call twice.
func (w *World) RemoveBullet(b *Bullet) {
	if b.removed {
		return
	}
	b.removed = true
	w.bullets = removeItem(w.bullets, b)
	w.destroyLater(b.body)
}

// removeItem returns a new slice without item, leaving s untouched for
// callers still ranging over it.
func removeItem[T comparable](s []T, item T) []T {
	out := make([]T, 0, len(s))
	for _, v := range s {
		if v != item {
			out = append(out, v)
		}
	}
	return out
}

func toB2(v game.Vec2) box2d.B2Vec2 { return box2d.MakeB2Vec2(v.X, v.Y) }

func fromB2(v box2d.B2Vec2) game.Vec2 { return game.V(v.X, v.Y) }
