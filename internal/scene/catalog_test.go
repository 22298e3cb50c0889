package scene

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/lookupgo/internal/typeclosure"
)

func TestNewCatalog_DeclaresSceneCapabilities(t *testing.T) {
	cat := newTestCatalog()

	caps := cat.Walker().Capabilities()
	for _, want := range []string{"Node", "Named", "Drawable", "Pickable", "Animated", "Viewpoint", "Support"} {
		key, ok := cat.Type(want)
		require.True(t, ok, want)
		assert.Contains(t, caps, key)
	}
	assert.Contains(t, caps, typeclosure.KeyOf[fmt.Stringer](), "default capabilities are inherited")
	assert.NotSame(t, typeclosure.Default, cat.Walker())
}

func TestCatalog_SpriteClosure(t *testing.T) {
	cat := newTestCatalog()
	node, err := cat.NewActor("sprite", "s", nil)
	require.NoError(t, err)

	assert.Equal(t, []reflect.Type{
		typeclosure.KeyOf[*Sprite](),
		typeclosure.KeyOf[Sprite](),
		typeclosure.KeyOf[*Actor](),
		typeclosure.KeyOf[Actor](),
		typeclosure.KeyOf[Node](),
		typeclosure.KeyOf[Named](),
		typeclosure.KeyOf[Drawable](),
		typeclosure.Root,
	}, cat.Walker().Closure(node))
	assert.Equal(t, "s.png", node.(*Sprite).Image, "image defaults to the actor name")
}

func TestCatalog_TypeNamesSorted(t *testing.T) {
	names := newTestCatalog().TypeNames()
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, "any")
	assert.Contains(t, names, "Camera")
}

func TestCatalog_Registration(t *testing.T) {
	cat := newTestCatalog()

	require.ErrorIs(t, cat.RegisterActorKind("sprite", nil), ErrDuplicateKind)
	require.ErrorIs(t, cat.RegisterSupportKind("transform", nil), ErrDuplicateKind)
	require.ErrorIs(t, cat.RegisterType("Node", typeclosure.KeyOf[Node]()), ErrDuplicateKind)

	require.NoError(t, cat.RegisterActorKind("marker", func(base *Actor, _ map[string]any) (Node, error) {
		return &Group{Actor: base}, nil
	}))
	node, err := cat.NewActor("marker", "m", nil)
	require.NoError(t, err)
	assert.Equal(t, "marker", node.Base().Kind())
}

func TestCatalog_ConstructorErrors(t *testing.T) {
	cat := newTestCatalog()

	_, err := cat.NewActor("spaceship", "x", nil)
	require.ErrorIs(t, err, ErrUnknownKind)

	_, err = cat.NewActor("text", "x", map[string]any{"content": 3.0})
	require.ErrorIs(t, err, ErrBadAttribute)

	node, err := cat.NewActor("group", "g", nil)
	require.NoError(t, err)
	_, err = cat.NewSupport("jetpack", node.Base(), nil)
	require.ErrorIs(t, err, ErrUnknownKind)
	_, err = cat.NewSupport("collider", node.Base(), map[string]any{"radius": "big"})
	require.ErrorIs(t, err, ErrBadAttribute)

	_, err = cat.NewCamera("c", "fisheye", nil)
	require.ErrorIs(t, err, ErrUnknownKind)

	cam, err := cat.NewCamera("c", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "ortho", cam.Projection())
	assert.Nil(t, cam.Target())
}
