package scene

import (
	"math"
	"sync"
)

// Transform holds an actor position. Scene.Tick moves it while event
// handlers read it through PickAt, so access goes through the lock.
type Transform struct {
	owner *Actor
	mu    sync.RWMutex
	x, y  float64
}

// NewTransform creates a transform owned by owner.
func NewTransform(owner *Actor, x, y float64) *Transform {
	return &Transform{owner: owner, x: x, y: y}
}

// Owner returns the owning actor.
func (t *Transform) Owner() *Actor { return t.owner }

// Position returns the current coordinates.
func (t *Transform) Position() (x, y float64) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.x, t.y
}

// Move translates the transform.
func (t *Transform) Move(dx, dy float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.x += dx
	t.y += dy
}

// Collider is a circular hit area centred on the owner's Transform.
type Collider struct {
	owner  *Actor
	Radius float64
}

// NewCollider creates a collider owned by owner.
func NewCollider(owner *Actor, radius float64) *Collider {
	return &Collider{owner: owner, Radius: radius}
}

// Owner returns the owning actor.
func (c *Collider) Owner() *Actor { return c.owner }

// Hit reports whether (x, y) falls inside the collider.
func (c *Collider) Hit(x, y float64) bool {
	cx, cy := c.owner.Position()
	return math.Hypot(x-cx, y-cy) <= c.Radius
}

// Animator moves the owner's Transform at a constant velocity.
type Animator struct {
	owner  *Actor
	VX, VY float64
}

// NewAnimator creates an animator owned by owner.
func NewAnimator(owner *Actor, vx, vy float64) *Animator {
	return &Animator{owner: owner, VX: vx, VY: vy}
}

// Owner returns the owning actor.
func (a *Animator) Owner() *Actor { return a.owner }

// Step advances the owner's Transform by dt seconds. Without a Transform the
// animator has nothing to move.
func (a *Animator) Step(dt float64) {
	if t, ok := SupportOf[*Transform](a.owner); ok {
		t.Move(a.VX*dt, a.VY*dt)
	}
}
