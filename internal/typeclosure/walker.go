package typeclosure

import (
	"encoding"
	"fmt"
	"io"
	"reflect"
	"slices"
	"sync"

	"github.com/pkg/errors"
)

// Root is the universal root type. Every closure contains it.
var Root = reflect.TypeFor[any]()

// ErrNotInterface is returned by Declare for nil or non-interface types.
var ErrNotInterface = errors.New("typeclosure: capability must be an interface type")

// KeyOf returns the type key for T. Use it with interface types as
// KeyOf[fmt.Stringer]() since reflect.TypeOf cannot see interface types.
func KeyOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// IsTypeToken reports whether v is itself a type key. Type keys are never
// valid registered objects.
func IsTypeToken(v any) bool {
	_, ok := v.(reflect.Type)
	return ok
}

// Walker computes type closures against a catalog of declared capabilities.
// It is safe for concurrent use.
type Walker struct {
	mu    sync.RWMutex
	caps  []reflect.Type
	known map[reflect.Type]struct{}
	cache map[reflect.Type][]reflect.Type
	gen   uint64 // bumped on every declaration, guards cache writes
}

// New creates a walker with the given capabilities declared in order.
// It panics if any of them is not an interface type.
func New(caps ...reflect.Type) *Walker {
	w := &Walker{
		known: make(map[reflect.Type]struct{}),
		cache: make(map[reflect.Type][]reflect.Type),
	}
	for _, c := range caps {
		if err := w.Declare(c); err != nil {
			panic(err)
		}
	}
	return w
}

// Default is the process-wide walker used by registries created without an
// explicit walker. It comes with a handful of standard library capabilities.
var Default = New(
	KeyOf[fmt.Stringer](),
	KeyOf[error](),
	KeyOf[io.Closer](),
	KeyOf[io.Reader](),
	KeyOf[io.Writer](),
	KeyOf[encoding.TextMarshaler](),
	KeyOf[encoding.BinaryMarshaler](),
)

// Declare adds an interface type to the capability catalog. Declaring the
// same interface twice is a no-op. The root type is implicit and ignored.
func (w *Walker) Declare(iface reflect.Type) error {
	if iface == nil || iface.Kind() != reflect.Interface {
		return errors.Wrapf(ErrNotInterface, "got %v", iface)
	}
	if iface == Root {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.known[iface]; exists {
		return nil
	}
	w.known[iface] = struct{}{}
	w.caps = append(w.caps, iface)
	w.gen++
	clear(w.cache)
	return nil
}

// Capabilities returns the declared capabilities in declaration order.
func (w *Walker) Capabilities() []reflect.Type {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.caps)
}

// Closure returns the closure of the dynamic type of v. It returns nil for a
// nil v; callers are expected to reject nil before asking.
func (w *Walker) Closure(v any) []reflect.Type {
	if v == nil {
		return nil
	}
	return w.ClosureOf(reflect.TypeOf(v))
}

// ClosureOf returns the closure of t as a fresh, caller-owned slice.
func (w *Walker) ClosureOf(t reflect.Type) []reflect.Type {
	if t == nil {
		return nil
	}

	w.mu.RLock()
	cached, ok := w.cache[t]
	caps, gen := w.caps, w.gen
	w.mu.RUnlock()
	if ok {
		return slices.Clone(cached)
	}

	// caps is append-only under the lock, so the captured prefix stays valid.
	closure := walk(t, caps)

	w.mu.Lock()
	if w.gen == gen {
		w.cache[t] = closure
	}
	w.mu.Unlock()

	return slices.Clone(closure)
}

func walk(t reflect.Type, caps []reflect.Type) []reflect.Type {
	seen := make(map[reflect.Type]struct{})
	var out []reflect.Type
	add := func(x reflect.Type) bool {
		if _, dup := seen[x]; dup {
			return false
		}
		seen[x] = struct{}{}
		out = append(out, x)
		return true
	}

	queue := []reflect.Type{t}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if !add(cur) {
			continue
		}
		switch cur.Kind() {
		case reflect.Pointer:
			if elem := cur.Elem(); elem.Kind() == reflect.Struct {
				queue = append(queue, elem)
			}
		case reflect.Struct:
			for i := range cur.NumField() {
				if f := cur.Field(i); f.Anonymous {
					queue = append(queue, f.Type)
				}
			}
		}
	}

	ancestors := len(out)
	for _, c := range caps {
		if _, dup := seen[c]; dup {
			continue
		}
		for _, a := range out[:ancestors] {
			if a.Implements(c) {
				add(c)
				break
			}
		}
	}

	add(Root)
	return out
}
