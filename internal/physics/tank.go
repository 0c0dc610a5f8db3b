package physics

import (
	"github.com/ByteArena/box2d"

	"github.com/Garsondee/tank-ctf/internal/game"
)

// Tank tuning, in tiles, seconds and frames.
const (
	TankHalfSize  = 0.25
	TurnRate      = 2.0 // rad/s; one 50 fps frame stays under game.MinAngleDif
	Acceleration  = 0.4 // speed gained per Update
	MaxSpeed      = 2.0
	ShootCooldown = 50 // frames between shots
	BulletSpeed   = 5.0
	BulletTTL     = 150 // frames
	BulletRadius  = 0.05
	muzzleOffset  = 0.5
)

// Tank is a physics-driven tank. It implements game.Tank: commands latch,
// Update turns the latched acceleration into velocity.
type Tank struct {
	Index      int // player slot, also the start position index
	Home       game.Vec2
	StartAngle float64

	world        *World
	body         *box2d.B2Body
	acceleration float64
	speed        float64
	turning      int
	cooldown     int
	carrying     bool
	removed      bool
	shots        int
}

// AddTank spawns a tank at its start position.
func (w *World) AddTank(index int, home game.Vec2, angle float64) *Tank {
	bodydef := box2d.MakeB2BodyDef()
	bodydef.Type = box2d.B2BodyType.B2_dynamicBody
	bodydef.Position.Set(home.X, home.Y)
	bodydef.Angle = angle
	bodydef.AllowSleep = false
	bodydef.FixedRotation = true // rotation comes from the actuator only

	body := w.b2.CreateBody(&bodydef)

	shape := box2d.MakeB2PolygonShape()
	shape.SetAsBox(TankHalfSize, TankHalfSize)

	fixturedef := box2d.MakeB2FixtureDef()
	fixturedef.Shape = &shape
	fixturedef.Density = 4.0
	fixturedef.Friction = 0.3
	body.CreateFixtureFromDef(&fixturedef)

	t := &Tank{
		Index:      index,
		Home:       home,
		StartAngle: angle,
		world:      w,
		body:       body,
	}
	body.SetUserData(&Descriptor{Kind: KindTank, Tank: t})
	w.tanks = append(w.tanks, t)
	return t
}

func (t *Tank) Kind() game.ObjectKind { return game.ObjectTank }
func (t *Tank) Position() game.Vec2   { return fromB2(t.body.GetPosition()) }
func (t *Tank) Angle() float64        { return t.body.GetAngle() }
func (t *Tank) HomeBase() game.Vec2   { return t.Home }
func (t *Tank) CarriesFlag() bool     { return t.carrying }

// SetCarrying records flag possession; a carrier drives at half speed.
func (t *Tank) SetCarrying(v bool) { t.carrying = v }

// Removed reports whether the tank has been taken out of the world.
func (t *Tank) Removed() bool { return t.removed }

// Turning returns -1, 0 or +1 for left, none, right.
func (t *Tank) Turning() int { return t.turning }

// Speed is the current signed forward speed.
func (t *Tank) Speed() float64 { return t.speed }

// Shots counts bullets actually fired.
func (t *Tank) Shots() int { return t.shots }

func (t *Tank) TurnLeft() {
	t.turning = -1
	t.body.SetAngularVelocity(-TurnRate)
}

func (t *Tank) TurnRight() {
	t.turning = 1
	t.body.SetAngularVelocity(TurnRate)
}

func (t *Tank) StopTurning() {
	t.turning = 0
	t.body.SetAngularVelocity(0)
}

func (t *Tank) Accelerate() { t.acceleration = Acceleration }
func (t *Tank) Decelerate() { t.acceleration = -Acceleration }

func (t *Tank) StopMoving() {
	t.acceleration = 0
	t.speed = 0
	t.body.SetLinearVelocity(box2d.MakeB2Vec2(0, 0))
}

func (t *Tank) maxSpeed() float64 {
	if t.carrying {
		return MaxSpeed / 2
	}
	return MaxSpeed
}

// Update applies the latched acceleration and points the velocity along
// the current heading.
func (t *Tank) Update() {
	limit := t.maxSpeed()
	t.speed += t.acceleration
	if t.speed > limit {
		t.speed = limit
	} else if t.speed < -limit {
		t.speed = -limit
	}
	t.body.SetLinearVelocity(toB2(game.Forward(t.Angle()).Scale(t.speed)))
}

// Shoot fires a bullet from the muzzle unless the cooldown is running.
func (t *Tank) Shoot() {
	if t.removed || t.cooldown > 0 {
		return
	}
	t.cooldown = ShootCooldown
	t.shots++
	fwd := game.Forward(t.Angle())
	t.world.addBullet(t, t.Position().Add(fwd.Scale(muzzleOffset)), fwd.Scale(BulletSpeed))
}

// Respawn puts the tank back on its start position, at rest.
func (t *Tank) Respawn() {
	t.StopMoving()
	t.StopTurning()
	t.carrying = false
	t.body.SetTransform(toB2(t.Home), t.StartAngle)
}
