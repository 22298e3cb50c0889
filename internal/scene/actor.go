package scene

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/specialistvlad/lookupgo/internal/inmemorylookup"
	"github.com/specialistvlad/lookupgo/internal/lookup"
	"github.com/specialistvlad/lookupgo/internal/typeclosure"
)

// ErrForeignSupport indicates a support object constructed against another actor.
var ErrForeignSupport = errors.New("scene: support belongs to another actor")

// Actor is the base of every node. Concrete kinds embed *Actor, so a lookup
// under *Actor in a scene matches every node.
type Actor struct {
	name    string
	kind    string
	support *inmemorylookup.Registry
}

func newActor(name, kind string, w *typeclosure.Walker, logger *slog.Logger) *Actor {
	return &Actor{
		name:    name,
		kind:    kind,
		support: inmemorylookup.New(inmemorylookup.WithWalker(w), inmemorylookup.WithLogger(logger.With("actor", name))),
	}
}

// Base returns the actor itself; it makes every embedding kind a Node.
func (a *Actor) Base() *Actor { return a }

// Name returns the actor name.
func (a *Actor) Name() string { return a.name }

// Kind returns the catalog kind the actor was built from.
func (a *Actor) Kind() string { return a.kind }

// Attach registers s in the actor's support registry. s must have been
// constructed against a.
func (a *Actor) Attach(s Support) error {
	if s == nil {
		return lookup.ErrMissingObject
	}
	if s.Owner() != a {
		return fmt.Errorf("attaching %T to %q: %w", s, a.name, ErrForeignSupport)
	}
	return a.support.Add(s)
}

// Detach removes s from the actor's support registry.
func (a *Actor) Detach(s Support) (bool, error) {
	if s == nil {
		return false, lookup.ErrMissingObject
	}
	return a.support.Remove(s)
}

// Support returns the support object most recently attached under t.
func (a *Actor) Support(t reflect.Type) (any, error) {
	return a.support.Lookup(t)
}

// Supports returns every attached support object, oldest first.
func (a *Actor) Supports() []any {
	return a.support.LookupAll()
}

// Dispose detaches every support object.
func (a *Actor) Dispose() {
	a.support.Clear()
}

// Position returns the actor position from its Transform, or the origin when
// it has none.
func (a *Actor) Position() (x, y float64) {
	if t, ok := SupportOf[*Transform](a); ok {
		return t.Position()
	}
	return 0, 0
}

// SupportOf resolves the support object indexed under T on a.
func SupportOf[T any](a *Actor) (T, bool) {
	v, ok, err := lookup.Get[T](a.support)
	if err != nil {
		var zero T
		return zero, false
	}
	return v, ok
}

// Sprite is a drawable image node.
type Sprite struct {
	*Actor
	Image string
}

// Draw describes the sprite at its current position.
func (s *Sprite) Draw() string {
	x, y := s.Position()
	return fmt.Sprintf("sprite %s [%s] at (%g, %g)", s.Name(), s.Image, x, y)
}

// Text is a drawable text node.
type Text struct {
	*Actor
	Content string
}

// Draw describes the text at its current position.
func (t *Text) Draw() string {
	x, y := t.Position()
	return fmt.Sprintf("text %s %q at (%g, %g)", t.Name(), t.Content, x, y)
}

// Group is a non-drawable node used to carry shared support objects.
type Group struct {
	*Actor
}
