package physics

import (
	"github.com/ByteArena/box2d"

	"github.com/Garsondee/tank-ctf/internal/game"
)

// Box is a crate occupying one tile.
type Box struct {
	Class game.TileClass
	Cell  game.Cell // tile the box was placed on

	body    *box2d.B2Body
	removed bool
}

// AddBox places a box of the given class centred on a tile. Rock and wood
// are static; metal boxes are heavy dynamic bodies that tanks can push.
func (w *World) AddBox(cell game.Cell, class game.TileClass) *Box {
	bodydef := box2d.MakeB2BodyDef()
	center := cell.Center()
	bodydef.Position.Set(center.X, center.Y)
	if class == game.TileMetalBox {
		bodydef.Type = box2d.B2BodyType.B2_dynamicBody
		bodydef.LinearDamping = 8.0
		bodydef.AngularDamping = 8.0
	} else {
		bodydef.Type = box2d.B2BodyType.B2_staticBody
	}
	body := w.b2.CreateBody(&bodydef)

	shape := box2d.MakeB2PolygonShape()
	shape.SetAsBox(0.5, 0.5)

	fixturedef := box2d.MakeB2FixtureDef()
	fixturedef.Shape = &shape
	fixturedef.Density = 20.0
	fixturedef.Friction = 0.6
	body.CreateFixtureFromDef(&fixturedef)

	b := &Box{Class: class, Cell: cell, body: body}
	body.SetUserData(&Descriptor{Kind: KindBox, Box: b})
	w.boxes = append(w.boxes, b)
	return b
}

func (b *Box) Kind() game.ObjectKind { return game.ObjectBox }
func (b *Box) Position() game.Vec2   { return fromB2(b.body.GetPosition()) }
func (b *Box) Angle() float64        { return b.body.GetAngle() }

// Removed reports whether the box has been destroyed.
func (b *Box) Removed() bool { return b.removed }

// Destructible reports whether one bullet destroys the box.
func (b *Box) Destructible() bool { return b.Class == game.TileDestructibleBox }

// Bullet is a projectile in flight.
type Bullet struct {
	Owner *Tank

	body    *box2d.B2Body
	ttl     int
	removed bool
}

func (w *World) addBullet(owner *Tank, pos, velocity game.Vec2) *Bullet {
	bodydef := box2d.MakeB2BodyDef()
	bodydef.Type = box2d.B2BodyType.B2_dynamicBody
	bodydef.AllowSleep = true
	bodydef.FixedRotation = true
	bodydef.Position.Set(pos.X, pos.Y)
	bodydef.LinearVelocity = toB2(velocity)

	body := w.b2.CreateBody(&bodydef)
	body.SetLinearDamping(0.0)

	shape := box2d.MakeB2CircleShape()
	shape.SetRadius(BulletRadius)

	fixturedef := box2d.MakeB2FixtureDef()
	fixturedef.Shape = &shape
	fixturedef.Density = 1.0
	body.CreateFixtureFromDef(&fixturedef)
	body.SetBullet(true)

	w.fired++
	b := &Bullet{Owner: owner, body: body, ttl: BulletTTL}
	body.SetUserData(&Descriptor{Kind: KindBullet, Bullet: b})
	w.bullets = append(w.bullets, b)
	return b
}

func (b *Bullet) Kind() game.ObjectKind { return game.ObjectBullet }
func (b *Bullet) Position() game.Vec2   { return fromB2(b.body.GetPosition()) }

// Removed reports whether the bullet has left the world.
func (b *Bullet) Removed() bool { return b.removed }

// Velocity is the bullet's current velocity in tiles per second.
func (b *Bullet) Velocity() game.Vec2 { return fromB2(b.body.GetLinearVelocity()) }
