package arena

// Controls is the held state of one player's keys.
type Controls struct {
	Forward, Back bool
	Left, Right   bool
	Fire          bool
}

// Drive applies a human player's held keys to its tank. Releasing both
// movement keys stops the tank and releasing both turn keys stops rotation,
// as a key-up would.
func (m *Match) Drive(player int, c Controls) {
	if m.done || player < 0 || player >= len(m.tanks) || m.ais[player] != nil {
		return
	}
	t := m.tanks[player]
	switch {
	case c.Forward && !c.Back:
		t.Accelerate()
	case c.Back && !c.Forward:
		t.Decelerate()
	default:
		t.StopMoving()
	}
	switch {
	case c.Left && !c.Right:
		t.TurnLeft()
	case c.Right && !c.Left:
		t.TurnRight()
	default:
		t.StopTurning()
	}
	if c.Fire {
		t.Shoot()
	}
}
