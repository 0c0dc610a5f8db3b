package physics

import (
	"github.com/ByteArena/box2d"

	"github.com/Garsondee/tank-ctf/internal/game"
)

// RaycastFirst implements game.PhysicsWorld: the closest fixture crossed by
// the segment decides the hit kind.
func (w *World) RaycastFirst(from, to game.Vec2) game.RayHit {
	var (
		closest  *Descriptor
		point    box2d.B2Vec2
		fraction = 1.0
	)
	if from.Eq(to, 1e-12) {
		return game.RayHit{Kind: game.HitNone, Point: to, Fraction: 1}
	}
	w.b2.RayCast(
		func(fixture *box2d.B2Fixture, p box2d.B2Vec2, normal box2d.B2Vec2, f float64) float64 {
			d, ok := fixture.GetBody().GetUserData().(*Descriptor)
			if !ok || d == nil {
				return -1.0 // ignore this fixture
			}
			if f < fraction || closest == nil {
				closest, point, fraction = d, p, f
			}
			return f // clip the ray to this hit
		},
		toB2(from),
		toB2(to),
	)
	if closest == nil {
		return game.RayHit{Kind: game.HitNone, Point: to, Fraction: 1}
	}
	hit := game.RayHit{Point: fromB2(point), Fraction: fraction}
	switch closest.Kind {
	case KindTank:
		hit.Kind = game.HitTank
	case KindBox:
		hit.Kind = game.HitBox
		hit.Box = closest.Box.Class
		hit.Destructible = closest.Box.Destructible()
	default:
		hit.Kind = game.HitOther
	}
	return hit
}
