package game

import (
	"math"
	"testing"
)

// stubWorld returns a fixed hit and remembers the last query.
type stubWorld struct {
	hit      RayHit
	from, to Vec2
}

func (w *stubWorld) RaycastFirst(from, to Vec2) RayHit {
	w.from, w.to = from, to
	return w.hit
}

func TestThreatRay_Geometry(t *testing.T) {
	m := NewTileMap(3, 4)
	from, to := ThreatRay(V(1.5, 1.5), 0, m)
	if !from.Eq(V(1.5, 2.0), 1e-9) {
		t.Fatalf("from = %+v, want (1.5,2.0)", from)
	}
	// Diagonal of a 3x4 map is 5.
	if !to.Eq(V(1.5, 1.5+5.5), 1e-9) {
		t.Fatalf("to = %+v, want (1.5,7.0)", to)
	}
}

func TestWorthShooting(t *testing.T) {
	cases := []struct {
		name string
		hit  RayHit
		want bool
	}{
		{"nothing", RayHit{Kind: HitNone}, false},
		{"tank", RayHit{Kind: HitTank}, true},
		{"wood", RayHit{Kind: HitBox, Box: TileDestructibleBox, Destructible: true}, true},
		{"rock", RayHit{Kind: HitBox, Box: TileIndestructibleBox}, false},
		{"metal", RayHit{Kind: HitBox, Box: TileMetalBox}, false},
		{"border", RayHit{Kind: HitOther}, false},
	}
	for _, c := range cases {
		if got := worthShooting(c.hit); got != c.want {
			t.Errorf("%s: worthShooting = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestShouldShoot_UsesTankPose(t *testing.T) {
	tank := NewKinematicTank("A", 2.5, 2.5, math.Pi/2) // facing -X
	w := &stubWorld{hit: RayHit{Kind: HitTank}}
	if !ShouldShoot(tank, w, NewTileMap(5, 5)) {
		t.Fatal("expected fire at a tank")
	}
	if !w.from.Eq(V(2.0, 2.5), 1e-9) {
		t.Fatalf("ray start = %+v, want (2.0,2.5)", w.from)
	}
	if w.to.X >= w.from.X {
		t.Fatalf("ray should point toward -X, got %+v -> %+v", w.from, w.to)
	}
}

func TestShouldShoot_RockInFront(t *testing.T) {
	m := ParseTileRows(
		".....",
		".....",
		"..#..",
		".....",
		".....",
	)
	rc := &TileRaycaster{
		Map:      m,
		Tanks:    func() []Vec2 { return []Vec2{V(2.5, 4.5)} },
		HalfSize: 0.3,
	}
	// Tank at (2,0) looking down: the rock shields the tank behind it.
	shooter := NewKinematicTank("A", 2.5, 0.5, 0)
	if ShouldShoot(shooter, rc, m) {
		t.Fatal("rock is the first hit; must not fire")
	}
}

func TestShouldShoot_TankInFront(t *testing.T) {
	m := NewTileMap(5, 5)
	shooter := NewKinematicTank("A", 2.5, 0.5, 0)
	rc := &TileRaycaster{
		Map:      m,
		Tanks:    func() []Vec2 { return []Vec2{shooter.Pos, V(2.5, 3.5)} },
		HalfSize: 0.3,
	}
	if !ShouldShoot(shooter, rc, m) {
		t.Fatal("tank in line of fire; expected shot")
	}
}

func TestShouldShoot_WoodVersusMetal(t *testing.T) {
	m := ParseTileRows(
		"...",
		"...",
		"...",
	)
	shooter := NewKinematicTank("A", 0.5, 1.5, -math.Pi/2) // facing +X
	rc := &TileRaycaster{Map: m, HalfSize: 0.3}

	m.Set(2, 1, TileDestructibleBox)
	if !ShouldShoot(shooter, rc, m) {
		t.Fatal("wooden box ahead; expected shot")
	}
	m.Set(2, 1, TileMetalBox)
	if ShouldShoot(shooter, rc, m) {
		t.Fatal("metal box ahead; must not fire")
	}
}

func TestTileRaycaster_NearestWins(t *testing.T) {
	m := ParseTileRows("....#w")
	rc := &TileRaycaster{Map: m}
	hit := rc.RaycastFirst(V(0.5, 0.5), V(5.9, 0.5))
	if hit.Kind != HitBox || hit.Box != TileIndestructibleBox {
		t.Fatalf("hit = %+v, want rock", hit)
	}
	if math.Abs(hit.Point.X-4.0) > 1e-9 {
		t.Fatalf("hit point x = %.3f, want 4.0", hit.Point.X)
	}

	miss := rc.RaycastFirst(V(0.5, 0.5), V(3.5, 0.5))
	if miss.Kind != HitNone || miss.Fraction != 1 {
		t.Fatalf("want HitNone, got %+v", miss)
	}
}
