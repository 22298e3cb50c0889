package scene

// Drawable is satisfied by nodes that produce a frame description.
type Drawable interface {
	Draw() string
}

// Pickable is satisfied by objects that can be hit-tested.
type Pickable interface {
	Hit(x, y float64) bool
}

// Animated is satisfied by objects advanced on every tick.
type Animated interface {
	Step(dt float64)
}

// Viewpoint is satisfied by cameras.
type Viewpoint interface {
	Target() *Actor
	Projection() string
}

// Node is satisfied by every actor kind. The base actor carries the name and
// the support registry.
type Node interface {
	Base() *Actor
}

// Support is satisfied by capability objects attached to an actor.
type Support interface {
	Owner() *Actor
}

// Named is satisfied by anything with a display name.
type Named interface {
	Name() string
}
