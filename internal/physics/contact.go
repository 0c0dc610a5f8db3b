package physics

import "github.com/ByteArena/box2d"

// Contact is a pair of bodies that started touching during a step.
type Contact struct {
	A, B *Descriptor
}

// Involves returns the descriptor of kind k and the other side, if present.
func (c Contact) Involves(k BodyKind) (mine, other *Descriptor, ok bool) {
	switch {
	case c.A.Kind == k:
		return c.A, c.B, true
	case c.B.Kind == k:
		return c.B, c.A, true
	default:
		return nil, nil, false
	}
}

// contactListener implements box2d.B2ContactListenerInterface. Engine
// contacts are reused by box2d after the step, so only descriptors are kept.
type contactListener struct {
	buffer []Contact
}

func (l *contactListener) pop() []Contact {
	out := l.buffer
	l.buffer = nil
	return out
}

// Called when two fixtures begin to touch.
func (l *contactListener) BeginContact(contact box2d.B2ContactInterface) { // contact has to be backed by a pointer
	a, okA := contact.GetFixtureA().GetBody().GetUserData().(*Descriptor)
	b, okB := contact.GetFixtureB().GetBody().GetUserData().(*Descriptor)
	if !okA || !okB || a == nil || b == nil {
		return
	}
	l.buffer = append(l.buffer, Contact{A: a, B: b})
}

func (l *contactListener) EndContact(contact box2d.B2ContactInterface) {}

func (l *contactListener) PreSolve(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold) {}

func (l *contactListener) PostSolve(contact box2d.B2ContactInterface, impulse *box2d.B2ContactImpulse) {}
