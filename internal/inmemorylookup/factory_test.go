package inmemorylookup

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/lookupgo/internal/lookup"
	"github.com/specialistvlad/lookupgo/internal/typeclosure"
)

// foreignProvider is a lookup.Provider from outside this package, used to
// exercise the re-add copy path.
type foreignProvider struct {
	lookup.Provider
	objs []any
}

func (f *foreignProvider) LookupAll() []any { return f.objs }

func TestNew_DefaultsToDefaultWalker(t *testing.T) {
	r := New()
	assert.Same(t, typeclosure.Default, r.walker)
	assert.NotNil(t, r.logger)

	m := NewMulti()
	assert.Same(t, typeclosure.Default, m.walker)
}

func TestNewFrom_CopyIsIndependent(t *testing.T) {
	src := newTestRegistry()
	a := &foo{name: "a"}
	require.NoError(t, src.Add(a))

	dup, err := NewFrom(src)
	require.NoError(t, err)
	assert.Same(t, src.walker, dup.walker)
	assert.Equal(t, src.LookupAll(), dup.LookupAll())

	b := &other{id: 1}
	require.NoError(t, src.Add(b))
	assert.Equal(t, []any{a}, dup.LookupAll(), "source mutation leaks into copy")

	removed, err := dup.Remove(a)
	require.NoError(t, err)
	require.True(t, removed)
	assert.Equal(t, []any{a, b}, src.LookupAll(), "copy mutation leaks into source")
}

func TestNewFrom_OptionsOverrideClonedSettings(t *testing.T) {
	src := newTestRegistry()
	w := typeclosure.New()

	dup, err := NewFrom(src, WithWalker(w))
	require.NoError(t, err)
	assert.Same(t, w, dup.walker)
}

func TestNewFrom_MultiSourceClonesSingleIndex(t *testing.T) {
	src := newTestMulti()
	o1, o2 := &foo{}, &other{}
	require.NoError(t, src.AddAll([]any{o1, o2}))

	dup, err := NewFrom(src)
	require.NoError(t, err)

	got, err := dup.Lookup(typeclosure.KeyOf[y]())
	require.NoError(t, err)
	assert.Same(t, o2, got)
	assert.Equal(t, []any{o1, o2}, dup.LookupAll())

	src.Clear()
	assert.Equal(t, 2, dup.Len())
}

func TestNewFrom_ForeignSourceReAdds(t *testing.T) {
	obj := &foo{}
	src := &foreignProvider{objs: []any{label("x"), obj}}

	dup, err := NewFrom(src, WithWalker(testWalker()), WithLogger(quietLogger()))
	require.NoError(t, err)

	got, err := dup.Lookup(typeclosure.KeyOf[ed]())
	require.NoError(t, err)
	assert.Same(t, obj, got)
	assert.Equal(t, []any{label("x"), obj}, dup.LookupAll())
}

func TestNewFrom_ForeignSourceWithInvalidObject(t *testing.T) {
	src := &foreignProvider{objs: []any{typeclosure.KeyOf[foo]()}}

	_, err := NewFrom(src)
	require.ErrorIs(t, err, lookup.ErrInvalidObject)
}

func TestNewFrom_NilSources(t *testing.T) {
	_, err := NewFrom(nil)
	require.ErrorIs(t, err, lookup.ErrMissingObject)

	_, err = NewFrom((*Registry)(nil))
	require.ErrorIs(t, err, lookup.ErrMissingObject)

	_, err = NewFrom((*MultiRegistry)(nil))
	require.ErrorIs(t, err, lookup.ErrMissingObject)

	_, err = NewMultiFrom(nil)
	require.ErrorIs(t, err, lookup.ErrMissingObject)

	_, err = NewMultiFrom((*MultiRegistry)(nil))
	require.ErrorIs(t, err, lookup.ErrMissingObject)

	_, err = NewMultiFrom((*Registry)(nil))
	require.ErrorIs(t, err, lookup.ErrMissingObject)
}

func TestNewMultiFrom_CopyIsIndependent(t *testing.T) {
	src := newTestMulti()
	a, b := label("a"), label("b")
	require.NoError(t, src.AddAll([]any{a, b}))
	require.NoError(t, src.Add(label("solo-key-owner")))

	dup, err := NewMultiFrom(src)
	require.NoError(t, err)
	assert.Equal(t, src.Inspect(), dup.Inspect(), "bucket forms are preserved")

	require.NoError(t, src.Add(label("c")))
	_, err = src.Remove(a)
	require.NoError(t, err)

	all, err := dup.LookupAllOf(typeclosure.KeyOf[label]())
	require.NoError(t, err)
	assert.Equal(t, []any{a, b, label("solo-key-owner")}, all)

	_, err = dup.Remove(b)
	require.NoError(t, err)
	all, err = src.LookupAllOf(typeclosure.KeyOf[label]())
	require.NoError(t, err)
	assert.Equal(t, []any{b, label("solo-key-owner"), label("c")}, all)
}

func TestNewMultiFrom_SingleSourceReAdds(t *testing.T) {
	src := newTestRegistry()
	o1, o2 := &foo{}, &other{}
	require.NoError(t, src.Add(o1))
	require.NoError(t, src.Add(o2))

	dup, err := NewMultiFrom(src, WithWalker(testWalker()), WithLogger(quietLogger()))
	require.NoError(t, err)

	all, err := dup.LookupAllOf(typeclosure.KeyOf[y]())
	require.NoError(t, err)
	assert.Equal(t, []any{o1, o2}, all)
}

func TestNewMultiFrom_EmptySource(t *testing.T) {
	dup, err := NewMultiFrom(newTestRegistry())
	require.NoError(t, err)
	assert.Zero(t, dup.Len())
}

func TestClosureKeysAreSharedAcrossCopies(t *testing.T) {
	src := newTestMulti()
	require.NoError(t, src.Add(&foo{}))

	dup, err := NewMultiFrom(src)
	require.NoError(t, err)

	keys := func(rows []BucketInfo) []reflect.Type {
		out := make([]reflect.Type, 0, len(rows))
		for _, r := range rows {
			out = append(out, r.Key)
		}
		return out
	}
	assert.ElementsMatch(t, keys(src.Inspect()), keys(dup.Inspect()))
}
