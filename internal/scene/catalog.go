package scene

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"github.com/specialistvlad/lookupgo/internal/typeclosure"
)

var (
	// ErrUnknownKind indicates a manifest kind with no registered constructor.
	ErrUnknownKind = errors.New("scene: unknown kind")
	// ErrDuplicateKind indicates a second registration under the same name.
	ErrDuplicateKind = errors.New("scene: duplicate registration")
	// ErrBadAttribute indicates a missing or mistyped constructor attribute.
	ErrBadAttribute = errors.New("scene: bad attribute")
)

// ActorFactory builds a node kind around its base actor.
type ActorFactory func(base *Actor, attrs map[string]any) (Node, error)

// SupportFactory builds a support object owned by owner.
type SupportFactory func(owner *Actor, attrs map[string]any) (Support, error)

// Catalog maps manifest names to constructors and type keys. It owns the
// walker shared by every registry it creates. A Catalog is populated at
// start-up and is not safe for concurrent registration.
type Catalog struct {
	walker      *typeclosure.Walker
	logger      *slog.Logger
	actors      map[string]ActorFactory
	supports    map[string]SupportFactory
	projections map[string]struct{}
	types       map[string]reflect.Type
}

// NewCatalog creates a catalog with the built-in kinds, capabilities and
// projections registered.
func NewCatalog(logger *slog.Logger) *Catalog {
	c := &Catalog{
		walker:      typeclosure.New(typeclosure.Default.Capabilities()...),
		logger:      logger,
		actors:      make(map[string]ActorFactory),
		supports:    make(map[string]SupportFactory),
		projections: map[string]struct{}{"ortho": {}, "perspective": {}},
		types:       make(map[string]reflect.Type),
	}

	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(c.RegisterType("any", typeclosure.Root))
	must(c.RegisterType("Node", typeclosure.KeyOf[Node]()))
	must(c.RegisterType("Named", typeclosure.KeyOf[Named]()))
	must(c.RegisterType("Drawable", typeclosure.KeyOf[Drawable]()))
	must(c.RegisterType("Pickable", typeclosure.KeyOf[Pickable]()))
	must(c.RegisterType("Animated", typeclosure.KeyOf[Animated]()))
	must(c.RegisterType("Viewpoint", typeclosure.KeyOf[Viewpoint]()))
	must(c.RegisterType("Support", typeclosure.KeyOf[Support]()))
	must(c.RegisterType("Actor", typeclosure.KeyOf[*Actor]()))
	must(c.RegisterType("Sprite", typeclosure.KeyOf[*Sprite]()))
	must(c.RegisterType("Text", typeclosure.KeyOf[*Text]()))
	must(c.RegisterType("Group", typeclosure.KeyOf[*Group]()))
	must(c.RegisterType("Camera", typeclosure.KeyOf[*Camera]()))
	must(c.RegisterType("Transform", typeclosure.KeyOf[*Transform]()))
	must(c.RegisterType("Collider", typeclosure.KeyOf[*Collider]()))
	must(c.RegisterType("Animator", typeclosure.KeyOf[*Animator]()))

	must(c.RegisterActorKind("sprite", func(base *Actor, attrs map[string]any) (Node, error) {
		image, err := stringAttr(attrs, "image", base.Name()+".png")
		if err != nil {
			return nil, err
		}
		return &Sprite{Actor: base, Image: image}, nil
	}))
	must(c.RegisterActorKind("text", func(base *Actor, attrs map[string]any) (Node, error) {
		content, err := stringAttr(attrs, "content", "")
		if err != nil {
			return nil, err
		}
		return &Text{Actor: base, Content: content}, nil
	}))
	must(c.RegisterActorKind("group", func(base *Actor, _ map[string]any) (Node, error) {
		return &Group{Actor: base}, nil
	}))

	must(c.RegisterSupportKind("transform", func(owner *Actor, attrs map[string]any) (Support, error) {
		x, err := floatAttr(attrs, "x", 0)
		if err != nil {
			return nil, err
		}
		y, err := floatAttr(attrs, "y", 0)
		if err != nil {
			return nil, err
		}
		return NewTransform(owner, x, y), nil
	}))
	must(c.RegisterSupportKind("collider", func(owner *Actor, attrs map[string]any) (Support, error) {
		r, err := floatAttr(attrs, "radius", 1)
		if err != nil {
			return nil, err
		}
		return NewCollider(owner, r), nil
	}))
	must(c.RegisterSupportKind("animator", func(owner *Actor, attrs map[string]any) (Support, error) {
		vx, err := floatAttr(attrs, "vx", 0)
		if err != nil {
			return nil, err
		}
		vy, err := floatAttr(attrs, "vy", 0)
		if err != nil {
			return nil, err
		}
		return NewAnimator(owner, vx, vy), nil
	}))

	return c
}

// Walker returns the walker shared by the catalog's registries.
func (c *Catalog) Walker() *typeclosure.Walker { return c.walker }

// RegisterType names a type key for manifest queries. Interface types are
// also declared as capabilities on the catalog walker.
func (c *Catalog) RegisterType(name string, t reflect.Type) error {
	if _, exists := c.types[name]; exists {
		return fmt.Errorf("type %q: %w", name, ErrDuplicateKind)
	}
	if t != nil && t.Kind() == reflect.Interface {
		if err := c.walker.Declare(t); err != nil {
			return err
		}
	}
	c.types[name] = t
	c.logger.Debug("Registering type.", "name", name, "type", fmt.Sprint(t))
	return nil
}

// RegisterActorKind registers a node constructor.
func (c *Catalog) RegisterActorKind(kind string, f ActorFactory) error {
	if _, exists := c.actors[kind]; exists {
		return fmt.Errorf("actor kind %q: %w", kind, ErrDuplicateKind)
	}
	c.actors[kind] = f
	return nil
}

// RegisterSupportKind registers a support constructor.
func (c *Catalog) RegisterSupportKind(kind string, f SupportFactory) error {
	if _, exists := c.supports[kind]; exists {
		return fmt.Errorf("support kind %q: %w", kind, ErrDuplicateKind)
	}
	c.supports[kind] = f
	return nil
}

// Type resolves a registered type name.
func (c *Catalog) Type(name string) (reflect.Type, bool) {
	t, ok := c.types[name]
	return t, ok
}

// TypeNames returns every registered type name, sorted.
func (c *Catalog) TypeNames() []string {
	names := make([]string, 0, len(c.types))
	for n := range c.types {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// NewScene creates an empty scene using the catalog walker.
func (c *Catalog) NewScene(name string) *Scene {
	return newScene(name, c.walker, c.logger)
}

// NewActor builds a node of the given kind.
func (c *Catalog) NewActor(kind, name string, attrs map[string]any) (Node, error) {
	f, ok := c.actors[kind]
	if !ok {
		return nil, fmt.Errorf("actor %q kind %q: %w", name, kind, ErrUnknownKind)
	}
	n, err := f(newActor(name, kind, c.walker, c.logger), attrs)
	if err != nil {
		return nil, fmt.Errorf("actor %q: %w", name, err)
	}
	return n, nil
}

// NewSupport builds a support object of the given kind owned by owner. It
// does not attach it.
func (c *Catalog) NewSupport(kind string, owner *Actor, attrs map[string]any) (Support, error) {
	f, ok := c.supports[kind]
	if !ok {
		return nil, fmt.Errorf("support kind %q on %q: %w", kind, owner.Name(), ErrUnknownKind)
	}
	s, err := f(owner, attrs)
	if err != nil {
		return nil, fmt.Errorf("support %q on %q: %w", kind, owner.Name(), err)
	}
	return s, nil
}

// NewCamera builds a camera. target may be nil.
func (c *Catalog) NewCamera(name, projection string, target *Actor) (*Camera, error) {
	if projection == "" {
		projection = "ortho"
	}
	if _, ok := c.projections[projection]; !ok {
		return nil, fmt.Errorf("camera %q projection %q: %w", name, projection, ErrUnknownKind)
	}
	return &Camera{name: name, projection: projection, target: target}, nil
}

func stringAttr(attrs map[string]any, key, def string) (string, error) {
	v, ok := attrs[key]
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%q must be a string, got %T: %w", key, v, ErrBadAttribute)
	}
	return s, nil
}

func floatAttr(attrs map[string]any, key string, def float64) (float64, error) {
	v, ok := attrs[key]
	if !ok {
		return def, nil
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("%q must be a number, got %T: %w", key, v, ErrBadAttribute)
	}
	return f, nil
}
