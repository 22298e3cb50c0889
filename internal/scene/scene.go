package scene

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/specialistvlad/lookupgo/internal/inmemorylookup"
	"github.com/specialistvlad/lookupgo/internal/lookup"
	"github.com/specialistvlad/lookupgo/internal/typeclosure"
)

// Camera is a viewpoint onto the scene, optionally following an actor.
type Camera struct {
	name       string
	projection string
	target     *Actor
}

// Name returns the camera name.
func (c *Camera) Name() string { return c.name }

// Projection returns the projection kind ("ortho" or "perspective").
func (c *Camera) Projection() string { return c.projection }

// Target returns the followed actor, or nil.
func (c *Camera) Target() *Actor { return c.target }

// Scene owns a multi-value registry of nodes and cameras.
type Scene struct {
	name    string
	objects *inmemorylookup.MultiRegistry
	logger  *slog.Logger
}

func newScene(name string, w *typeclosure.Walker, logger *slog.Logger) *Scene {
	logger = logger.With("scene", name)
	return &Scene{
		name:    name,
		objects: inmemorylookup.NewMulti(inmemorylookup.WithWalker(w), inmemorylookup.WithLogger(logger)),
		logger:  logger,
	}
}

// Name returns the scene name.
func (s *Scene) Name() string { return s.name }

// AddNode registers n and everything its closure covers.
func (s *Scene) AddNode(n Node) error {
	if n == nil {
		return lookup.ErrMissingObject
	}
	if err := s.objects.Add(n); err != nil {
		return fmt.Errorf("adding node to scene %q: %w", s.name, err)
	}
	return nil
}

// RemoveNode unregisters n. The node keeps its support objects.
func (s *Scene) RemoveNode(n Node) (bool, error) {
	if n == nil {
		return false, lookup.ErrMissingObject
	}
	return s.objects.Remove(n)
}

// AddCamera registers c.
func (s *Scene) AddCamera(c *Camera) error {
	if c == nil {
		return lookup.ErrMissingObject
	}
	return s.objects.Add(c)
}

// RemoveCamera unregisters c.
func (s *Scene) RemoveCamera(c *Camera) (bool, error) {
	if c == nil {
		return false, lookup.ErrMissingObject
	}
	return s.objects.Remove(c)
}

// Find returns the object most recently added under t.
func (s *Scene) Find(t reflect.Type) (any, error) {
	return s.objects.Lookup(t)
}

// FindAll returns every object indexed under t.
func (s *Scene) FindAll(t reflect.Type) ([]any, error) {
	return s.objects.LookupAllOf(t)
}

// Objects exposes the scene registry to collaborators.
func (s *Scene) Objects() lookup.MultiProvider {
	return s.objects
}

// Inspect returns the bucket layout of the scene registry.
func (s *Scene) Inspect() []inmemorylookup.BucketInfo {
	return s.objects.Inspect()
}

// Snapshot returns an independent copy of the scene registry.
func (s *Scene) Snapshot() (*inmemorylookup.MultiRegistry, error) {
	return inmemorylookup.NewMultiFrom(s.objects)
}

// Nodes returns every node, oldest first.
func (s *Scene) Nodes() []Node {
	nodes, err := lookup.All[Node](s.objects)
	if err != nil {
		// Node is an interface key, so every member satisfies it.
		s.logger.Error("Scene index is inconsistent.", "error", err)
		return nil
	}
	return nodes
}

// Tick advances every Animated support object of every node by dt.
func (s *Scene) Tick(dt float64) {
	for _, n := range s.Nodes() {
		if anim, ok := SupportOf[Animated](n.Base()); ok {
			anim.Step(dt)
		}
	}
}

// PickAt returns the nodes whose Pickable support covers (x, y).
func (s *Scene) PickAt(x, y float64) []Node {
	var hits []Node
	for _, n := range s.Nodes() {
		if p, ok := SupportOf[Pickable](n.Base()); ok && p.Hit(x, y) {
			hits = append(hits, n)
		}
	}
	return hits
}

// Dispose detaches the support objects of every node and clears the scene.
func (s *Scene) Dispose() {
	for _, n := range s.Nodes() {
		n.Base().Dispose()
	}
	s.objects.Clear()
	s.logger.Debug("Scene disposed.")
}

// Describe returns a short display label for a registered object.
func Describe(v any) string {
	if n, ok := v.(Named); ok {
		return fmt.Sprintf("%s (%T)", n.Name(), v)
	}
	return fmt.Sprintf("%v (%T)", v, v)
}
