package arena

import (
	"github.com/Garsondee/tank-ctf/internal/game"
	"github.com/Garsondee/tank-ctf/internal/physics"
)

// Round distances, in tiles.
const (
	FlagGrabDistance = 0.5
	CaptureDistance  = 0.2
)

// Flag is the round's single flag. It rests where it was dropped and
// follows its carrier otherwise.
type Flag struct {
	Pos     game.Vec2
	Start   game.Vec2
	Carrier *physics.Tank
}

func (f *Flag) Kind() game.ObjectKind { return game.ObjectFlag }
func (f *Flag) Position() game.Vec2   { return f.Pos }

// Free reports whether nobody carries the flag.
func (f *Flag) Free() bool { return f.Carrier == nil }

// Base marks a player's start position, where the flag must be brought.
type Base struct {
	Player int
	Pos    game.Vec2
}

func (b *Base) Kind() game.ObjectKind { return game.ObjectBase }
func (b *Base) Position() game.Vec2   { return b.Pos }

// tryGrab hands the flag to tank if it is free and within reach.
func (f *Flag) tryGrab(t *physics.Tank) bool {
	if !f.Free() || t.CarriesFlag() {
		return false
	}
	if t.Position().Dist(f.Pos) >= FlagGrabDistance {
		return false
	}
	f.Carrier = t
	t.SetCarrying(true)
	return true
}

// drop leaves the flag where its carrier stands.
func (f *Flag) drop() {
	if f.Carrier == nil {
		return
	}
	f.Pos = f.Carrier.Position()
	f.Carrier.SetCarrying(false)
	f.Carrier = nil
}

// follow moves the flag with its carrier.
func (f *Flag) follow() {
	if f.Carrier != nil {
		f.Pos = f.Carrier.Position()
	}
}

// hasWon reports whether tank carries the flag back to its base.
func hasWon(t *physics.Tank) bool {
	return t.CarriesFlag() && t.Position().Dist(t.HomeBase()) < CaptureDistance
}
