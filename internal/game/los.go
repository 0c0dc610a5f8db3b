package game

import "math"

// TileRaycaster answers ray queries from the tile map and a set of tank
// hit-boxes, without a physics engine. Boxes fill their whole cell.
type TileRaycaster struct {
	Map      GridMap
	Tanks    func() []Vec2 // centres of every live tank
	HalfSize float64       // tank hit-box half extent
}

// RaycastFirst returns the nearest box or tank crossed by the segment.
// Leaving the arena without touching anything is HitNone.
func (rc *TileRaycaster) RaycastFirst(from, to Vec2) RayHit {
	best := RayHit{Kind: HitNone, Fraction: 1}
	found := false
	consider := func(t float64, hit RayHit) {
		if found && t >= best.Fraction {
			return
		}
		hit.Fraction = t
		hit.Point = from.Add(to.Sub(from).Scale(t))
		best = hit
		found = true
	}

	if rc.Map != nil {
		// Only the cells under the segment's bounding box can be hit.
		minX := max(0, int(math.Floor(math.Min(from.X, to.X))))
		maxX := min(rc.Map.Width()-1, int(math.Floor(math.Max(from.X, to.X))))
		minY := max(0, int(math.Floor(math.Min(from.Y, to.Y))))
		maxY := min(rc.Map.Height()-1, int(math.Floor(math.Max(from.Y, to.Y))))
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				tc := rc.Map.Classify(x, y)
				if !tc.IsBox() {
					continue
				}
				t, ok := rayAABBHitT(from.X, from.Y, to.X, to.Y,
					float64(x), float64(y), float64(x+1), float64(y+1))
				if !ok {
					continue
				}
				consider(t, RayHit{Kind: HitBox, Box: tc, Destructible: tc == TileDestructibleBox})
			}
		}
	}

	if rc.Tanks != nil {
		h := rc.HalfSize
		for _, p := range rc.Tanks() {
			t, ok := rayAABBHitT(from.X, from.Y, to.X, to.Y, p.X-h, p.Y-h, p.X+h, p.Y+h)
			if !ok {
				continue
			}
			consider(t, RayHit{Kind: HitTank})
		}
	}

	if !found {
		return RayHit{Kind: HitNone, Point: to, Fraction: 1}
	}
	return best
}

// rayAABBHitT returns the first segment parameter t in [0,1] where the line
// from (ox,oy)->(ex,ey) enters the AABB. The bool is false when no hit exists.
func rayAABBHitT(ox, oy, ex, ey, minX, minY, maxX, maxY float64) (float64, bool) {
	dx := ex - ox
	dy := ey - oy

	tMin := 0.0
	tMax := 1.0

	// Check X slab
	if math.Abs(dx) < 1e-12 {
		if ox < minX || ox > maxX {
			return 0, false
		}
	} else {
		invD := 1.0 / dx
		t1 := (minX - ox) * invD
		t2 := (maxX - ox) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	// Check Y slab
	if math.Abs(dy) < 1e-12 {
		if oy < minY || oy > maxY {
			return 0, false
		}
	} else {
		invD := 1.0 / dy
		t1 := (minY - oy) * invD
		t2 := (maxY - oy) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	if tMax < 0 || tMin > 1 {
		return 0, false
	}
	return tMin, true
}
