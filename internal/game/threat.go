package game

import "math"

// HitKind tags what a ray query struck first.
type HitKind uint8

const (
	HitNone  HitKind = iota // ray left the arena without touching anything
	HitTank                 // another tank
	HitBox                  // a box; see RayHit.Destructible
	HitOther                // border, bullet or anything else solid
)

func (k HitKind) String() string {
	switch k {
	case HitNone:
		return "none"
	case HitTank:
		return "tank"
	case HitBox:
		return "box"
	case HitOther:
		return "other"
	default:
		return "unknown"
	}
}

// RayHit is the result of a first-hit segment query.
type RayHit struct {
	Kind         HitKind
	Box          TileClass // class of the box when Kind == HitBox
	Destructible bool      // only meaningful for HitBox
	Point        Vec2
	Fraction     float64 // position of Point along the segment, 0..1
}

// PhysicsWorld answers segment queries against the collidable shapes of the arena.
type PhysicsWorld interface {
	RaycastFirst(from, to Vec2) RayHit
}

// rayStartOffset keeps the ray clear of the shooter's own hull.
const rayStartOffset = 0.5

// ThreatRay returns the segment the scanner casts for a tank: from just in
// front of the hull out past the map diagonal.
func ThreatRay(pos Vec2, angle float64, m GridMap) (from, to Vec2) {
	fwd := Forward(angle)
	diag := math.Hypot(float64(m.Width()), float64(m.Height()))
	return pos.Add(fwd.Scale(rayStartOffset)), pos.Add(fwd.Scale(diag + rayStartOffset))
}

// ShouldShoot casts the threat ray for tank and reports whether the first
// thing in line of fire is worth a bullet: another tank or a destructible box.
// Rate limiting is the actuator's business.
func ShouldShoot(tank Tank, world PhysicsWorld, m GridMap) bool {
	from, to := ThreatRay(tank.Position(), tank.Angle(), m)
	return worthShooting(world.RaycastFirst(from, to))
}

func worthShooting(hit RayHit) bool {
	switch hit.Kind {
	case HitTank:
		return true
	case HitBox:
		return hit.Destructible
	default:
		return false
	}
}
